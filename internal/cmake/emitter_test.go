package cmake

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func render(fn func(e *Emitter)) string {
	var sb strings.Builder
	e := NewEmitter(&sb)
	fn(e)
	return sb.String()
}

func TestEmitterDirectives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		emit func(e *Emitter)
		want string
	}{
		{"comment", func(e *Emitter) { e.Comment("hello") }, "# hello\n"},
		{"set", func(e *Emitter) { e.Set("CMAKE_CXX_STANDARD", "20") }, "set(CMAKE_CXX_STANDARD 20)\n"},
		{"minimum", func(e *Emitter) { e.MinimumRequired("3.20") }, "cmake_minimum_required(VERSION 3.20)\n"},
		{"project", func(e *Emitter) { e.Project("App") }, "project(App)\n"},
		{"executable", func(e *Emitter) { e.AddExecutable("App", []string{"Main.cpp", "App.h"}) }, "add_executable(App \"Main.cpp\" \"App.h\")\n"},
		{"executable without sources", func(e *Emitter) { e.AddExecutable("App", nil) }, "add_executable(App)\n"},
		{"library", func(e *Emitter) { e.AddLibrary("Lib", "STATIC", []string{"a.cpp"}) }, "add_library(Lib STATIC \"a.cpp\")\n"},
		{"subdirectories", func(e *Emitter) { e.AddSubdirectories([]string{"fmt", "glm"}) }, "add_subdirectory(fmt)\nadd_subdirectory(glm)\n"},
		{"include single", func(e *Emitter) { e.TargetIncludeDirectories("App", "PUBLIC", "inc") }, "target_include_directories(App PUBLIC inc)\n"},
		{"link", func(e *Emitter) { e.TargetLinkLibraries("App", []string{"fmt", "glm"}) }, "target_link_libraries(App fmt glm)\n"},
		{"properties", func(e *Emitter) { e.SetTargetProperties("App", "FOLDER", "Apps") }, "set_target_properties(App PROPERTIES FOLDER Apps)\n"},
		{"cxx standard", func(e *Emitter) { e.CxxStandard("17") }, "set(CMAKE_CXX_STANDARD 17)\n"},
		{"property", func(e *Emitter) { e.SetProperty("DIRECTORY . PROPERTY VS_STARTUP_PROJECT App") }, "set_property(DIRECTORY . PROPERTY VS_STARTUP_PROJECT App)\n"},
		{"source with space", func(e *Emitter) { e.AddExecutable("App", []string{"My Lib/a.cpp"}) }, "add_executable(App \"My Lib/a.cpp\")\n"},
		{"newline", func(e *Emitter) { e.Newline(2) }, "\n\n"},
		{"literal", func(e *Emitter) { e.Indent(1); e.Literal("raw") }, "\traw"},
		{"empty target is not validated", func(e *Emitter) { e.Project("") }, "project()\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := render(tt.emit); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitterHeader(t *testing.T) {
	t.Parallel()

	got := render(func(e *Emitter) { e.Header("Magnet", "v1.2.3") })
	want := "# Generated by Magnet v1.2.3\n" +
		"# Do not edit this file since any changes will be overwritten next time the project files are regenerated.\n" +
		"\n"
	if got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
}

func TestEmitterIfElseNesting(t *testing.T) {
	t.Parallel()

	got := render(func(e *Emitter) {
		e.IfElse("NOT MSVC", func() {
			e.Comment("X1")
			e.Set("X2", "on")
			e.Comment("X3")
		}, func() {
			e.Comment("Y1")
			e.Set("Y2", "off")
		})
	})

	ifIdx := strings.Index(got, "if(NOT MSVC)")
	elseIdx := strings.Index(got, "else()")
	endIdx := strings.Index(got, "endif()")
	if ifIdx < 0 || elseIdx < 0 || endIdx < 0 {
		t.Fatalf("missing markers in %q", got)
	}
	for _, x := range []string{"X1", "X2", "X3"} {
		idx := strings.Index(got, x)
		if idx <= ifIdx || idx >= elseIdx {
			t.Errorf("%s at %d not strictly between if (%d) and else (%d)", x, idx, ifIdx, elseIdx)
		}
	}
	for _, y := range []string{"Y1", "Y2"} {
		idx := strings.Index(got, y)
		if idx <= elseIdx || idx >= endIdx {
			t.Errorf("%s at %d not strictly between else (%d) and endif (%d)", y, idx, elseIdx, endIdx)
		}
	}

	want := "if(NOT MSVC)\n\t# X1\n\tset(X2 on)\n\t# X3\nelse()\n\t# Y1\n\tset(Y2 off)\nendif()\n"
	if got != want {
		t.Errorf("IfElse() = %q, want %q", got, want)
	}
}

func TestEmitterIfCallsBodyOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	got := render(func(e *Emitter) {
		e.If("MSVC", func() {
			calls++
			e.Line("set_property(DIRECTORY PROPERTY VS_STARTUP_PROJECT App)")
		})
	})
	if calls != 1 {
		t.Errorf("body called %d times, want 1", calls)
	}
	want := "if(MSVC)\n\tset_property(DIRECTORY PROPERTY VS_STARTUP_PROJECT App)\nendif()\n"
	if got != want {
		t.Errorf("If() = %q, want %q", got, want)
	}
}

func TestEmitterNestedConditionals(t *testing.T) {
	t.Parallel()

	got := render(func(e *Emitter) {
		e.If("A", func() {
			e.If("B", func() { e.Comment("inner") })
		})
		e.Comment("outer")
	})
	want := "if(A)\n\tif(B)\n\t\t# inner\n\tendif()\nendif()\n# outer\n"
	if got != want {
		t.Errorf("nested = %q, want %q", got, want)
	}
}

func TestEmitterStreamingInclude(t *testing.T) {
	t.Parallel()

	var e *Emitter
	got := render(func(em *Emitter) {
		e = em
		em.BeginTargetIncludeDirectories("App", "PUBLIC")
		em.IncludeDirectory("fmt/include")
		em.IncludeDirectory("glm")
		em.EndTargetIncludeDirectories()
	})
	want := "target_include_directories(App PUBLIC\n\t\"fmt/include\"\n\t\"glm\"\n)\n"
	if got != want {
		t.Errorf("streaming include = %q, want %q", got, want)
	}
	if e.OpenBlocks() != 0 || e.Err() != nil {
		t.Errorf("OpenBlocks() = %d, Err() = %v", e.OpenBlocks(), e.Err())
	}
}

func TestEmitterUnbalancedEnd(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	e := NewEmitter(&sb)
	e.EndTargetIncludeDirectories()
	if !errors.Is(e.Err(), ErrUnbalancedEnd) {
		t.Errorf("Err() = %v, want ErrUnbalancedEnd", e.Err())
	}
	if sb.Len() != 0 {
		t.Errorf("unbalanced end wrote %q", sb.String())
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestEmitterStickyError(t *testing.T) {
	t.Parallel()

	w := &failingWriter{}
	e := NewEmitter(w)
	e.Comment("a")
	e.Comment("b")
	e.Project("c")
	if e.Err() == nil {
		t.Fatal("Err() = nil, want write error")
	}
	if w.writes != 1 {
		t.Errorf("writes after failure = %d, want 1", w.writes)
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CMakeLists.txt")
	err := WriteFile(path, func(e *Emitter) error {
		e.MinimumRequired("3.20")
		e.Project("App")
		return nil
	})
	if err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "cmake_minimum_required(VERSION 3.20)\nproject(App)\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestWriteFileUnclosedBlock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CMakeLists.txt")
	err := WriteFile(path, func(e *Emitter) error {
		e.BeginTargetIncludeDirectories("App", "PUBLIC")
		return nil
	})
	if !errors.Is(err, ErrUnclosedBlock) {
		t.Fatalf("WriteFile() error = %v, want ErrUnclosedBlock", err)
	}
}

func TestWriteFileClosesOnFillError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "CMakeLists.txt")
	fillErr := errors.New("stop")
	err := WriteFile(path, func(e *Emitter) error {
		e.Project("partial")
		return fillErr
	})
	if !errors.Is(err, fillErr) {
		t.Fatalf("WriteFile() error = %v, want fill error", err)
	}
	// The handle was flushed and released: the partial content is readable
	// and the file can be removed.
	data, _ := os.ReadFile(path)
	if string(data) != "project(partial)\n" {
		t.Errorf("file = %q", data)
	}
	if err := os.Remove(path); err != nil {
		t.Errorf("remove after close: %v", err)
	}
}

func TestCreateFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Create(filepath.Join(t.TempDir(), "missing", "CMakeLists.txt"))
	if err == nil {
		t.Fatal("Create() error = nil, want error")
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Main.cpp", `"Main.cpp"`},
		{"My Lib/a.cpp", `"My Lib/a.cpp"`},
		{`odd"name.h`, `"odd\"name.h"`},
		{`back\slash.cpp`, `"back\\slash.cpp"`},
		{"${VAR}.cpp", `"\${VAR}.cpp"`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
