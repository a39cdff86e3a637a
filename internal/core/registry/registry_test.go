package registry

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestRegistryAddPreservesOrder(t *testing.T) {
	t.Parallel()

	r := New(filepath.Join(t.TempDir(), "dependencies.yaml"))
	for _, name := range []string{"glfw", "fmt", "spdlog"} {
		if err := r.Add(name); err != nil {
			t.Fatalf("Add(%q) error: %v", name, err)
		}
	}

	want := []string{"glfw", "fmt", "spdlog"}
	if got := r.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRegistryAddRejectsDuplicate(t *testing.T) {
	t.Parallel()

	r := New("unused")
	if err := r.Add("fmt"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := r.Add("fmt"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second Add() error = %v, want ErrDuplicate", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryAddRejectsEmpty(t *testing.T) {
	t.Parallel()

	r := New("unused")
	if err := r.Add("  "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("Add(blank) error = %v, want ErrEmptyName", err)
	}
}

func TestRegistryAddNormalizesUnicode(t *testing.T) {
	t.Parallel()

	r := New("unused")
	decomposed := "cafe\u0301"
	composed := "caf\u00e9"
	if err := r.Add(decomposed); err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if !r.Contains(composed) {
		t.Error("Contains(composed) = false, want true")
	}
	if err := r.Add(composed); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Add(composed) error = %v, want ErrDuplicate", err)
	}
}

func TestRegistryRemove(t *testing.T) {
	t.Parallel()

	r := New("unused")
	for _, name := range []string{"a", "b", "c"} {
		_ = r.Add(name)
	}

	if !r.Remove("b") {
		t.Error("Remove(b) = false, want true")
	}
	if r.Remove("missing") {
		t.Error("Remove(missing) = true, want false")
	}
	if got, want := r.List(), []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRegistryListReturnsCopy(t *testing.T) {
	t.Parallel()

	r := New("unused")
	_ = r.Add("a")
	list := r.List()
	list[0] = "mutated"
	if r.List()[0] != "a" {
		t.Error("List() exposed internal storage")
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	t.Parallel()

	sequences := [][]string{
		{},
		{"only"},
		{"zlib", "assimp", "glm", "Box2D", "imgui"},
		{"b", "a", "c", "\u00fcn\u00efc\u00f6d\u00e9"},
	}

	for i, seq := range sequences {
		path := filepath.Join(t.TempDir(), ".magnet", "dependencies.yaml")
		r := New(path)
		for _, name := range seq {
			if err := r.Add(name); err != nil {
				t.Fatalf("case %d: Add(%q) error: %v", i, name, err)
			}
		}
		if err := r.Save(); err != nil {
			t.Fatalf("case %d: Save() error: %v", i, err)
		}

		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("case %d: Load() error: %v", i, err)
		}
		if got := loaded.List(); !slices.Equal(got, seq) {
			t.Errorf("case %d: round trip = %v, want %v", i, got, seq)
		}
	}
}

func TestRegistrySaveIsStable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dependencies.yaml")
	r := New(path)
	_ = r.Add("fmt")
	_ = r.Add("glm")
	if err := r.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	first, _ := os.ReadFile(path)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	second, _ := os.ReadFile(path)

	if !bytes.Equal(first, second) {
		t.Errorf("save after load changed document:\n%s\nvs\n%s", first, second)
	}
}

func TestLoadMissingDocument(t *testing.T) {
	t.Parallel()

	r, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}

func TestLoadInvalidDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dependencies.yaml")
	if err := os.WriteFile(path, []byte("dependencies: {broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidYAML) {
		t.Fatalf("Load() error = %v, want ErrInvalidYAML", err)
	}
}

func TestLoadCollapsesDuplicates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dependencies.yaml")
	if err := os.WriteFile(path, []byte("dependencies:\n  - fmt\n  - glm\n  - fmt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := r.List(), []string{"fmt", "glm"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestCheckPresence(t *testing.T) {
	t.Parallel()

	depDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(depDir, "A"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := New("unused")
	_ = r.Add("A")
	_ = r.Add("B")

	got := r.CheckPresence(depDir)
	want := []Presence{{Name: "A", Present: true}, {Name: "B", Present: false}}
	if !slices.Equal(got, want) {
		t.Errorf("CheckPresence() = %v, want %v", got, want)
	}
	if missing := Missing(got); !slices.Equal(missing, []string{"B"}) {
		t.Errorf("Missing() = %v, want [B]", missing)
	}
}

func TestCheckPresenceEmptyRegistry(t *testing.T) {
	t.Parallel()

	r := New("unused")
	if got := r.CheckPresence(filepath.Join(t.TempDir(), "nope")); len(got) != 0 {
		t.Errorf("CheckPresence() = %v, want empty", got)
	}
}

func TestExtractName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"https://github.com/fmtlib/fmt.git":  "fmt",
		"https://github.com/g-truc/glm":      "glm",
		"https://gitlab.com/group/repo.git/": "repo",
		"git@github.com:gabime/spdlog.git":   "spdlog",
		"https://github.com/ocornut/imgui/":  "imgui",
	}
	for url, want := range tests {
		if got := ExtractName(url); got != want {
			t.Errorf("ExtractName(%q) = %q, want %q", url, got, want)
		}
	}
}
