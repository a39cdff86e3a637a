package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncerBatchesPaths(t *testing.T) {
	t.Parallel()

	got := make(chan []string, 1)
	d := NewDebouncer(20*time.Millisecond, func(paths []string) { got <- paths })
	defer d.Stop()

	d.Add("b.cpp")
	d.Add("a.cpp")
	d.Add("b.cpp")

	select {
	case batch := <-got:
		if want := []string{"a.cpp", "b.cpp"}; !slices.Equal(batch, want) {
			t.Errorf("batch = %v, want %v", batch, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not flush")
	}
}

func TestDebouncerStopDiscards(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	flushed := false
	d := NewDebouncer(10*time.Millisecond, func([]string) {
		mu.Lock()
		flushed = true
		mu.Unlock()
	})
	d.Add("a.cpp")
	d.Stop()
	d.Add("b.cpp")

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if flushed {
		t.Error("flush after Stop")
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Patterns = []string{"[broken"}
	if _, err := New(t.TempDir(), cfg); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("New() error = %v, want ErrInvalidPattern", err)
	}
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := New(root, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"new source", "App/Source/Main.cpp", fsnotify.Create, true},
		{"removed header", "App/Source/App.h", fsnotify.Remove, true},
		{"renamed hpp", "App/Source/x/y.hpp", fsnotify.Rename, true},
		{"content write", "App/Source/Main.cpp", fsnotify.Write, false},
		{"chmod", "App/Source/Main.cpp", fsnotify.Chmod, false},
		{"generated script", "App/Source/CMakeLists.txt", fsnotify.Create, false},
		{"build output", "App/Build/gen.cpp", fsnotify.Create, false},
		{"hidden dir", ".magnet/x.cpp", fsnotify.Create, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(tt.path)), Op: tt.op}
			if got := w.Relevant(ev); got != tt.want {
				t.Errorf("Relevant(%s %s) = %v, want %v", tt.op, tt.path, got, tt.want)
			}
		})
	}

	outside := fsnotify.Event{Name: filepath.Join(filepath.Dir(root), "other.cpp"), Op: fsnotify.Create}
	if w.Relevant(outside) {
		t.Error("Relevant(outside root) = true")
	}
}

func TestRunReportsNewSource(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := filepath.Join(root, "App", "Source")
	if err := os.MkdirAll(src, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.DebounceWindow = 20 * time.Millisecond
	w, err := New(root, cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan []string, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(paths []string) { got <- paths }) }()

	newFile := filepath.Join(src, "Extra.cpp")
	if err := os.WriteFile(newFile, []byte("int x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case batch := <-got:
		if !slices.Contains(batch, newFile) {
			t.Errorf("batch = %v, want it to contain %s", batch, newFile)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRelevantWatchedDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	lib := filepath.Join(root, "App", "Source", "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := New(root, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	for _, op := range []fsnotify.Op{fsnotify.Remove, fsnotify.Rename} {
		if !w.Relevant(fsnotify.Event{Name: lib, Op: op}) {
			t.Errorf("Relevant(%s watched dir) = false, want true", op)
		}
	}
	unknown := filepath.Join(root, "App", "Source", "other")
	if w.Relevant(fsnotify.Event{Name: unknown, Op: fsnotify.Remove}) {
		t.Error("Relevant(Remove unwatched non-source path) = true")
	}
}

// startWatch runs a watcher over root and returns its batch channel.
func startWatch(t *testing.T, root string) <-chan []string {
	t.Helper()

	cfg := DefaultConfig()
	cfg.DebounceWindow = 20 * time.Millisecond
	w, err := New(root, cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan []string, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(paths []string) { got <- paths })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return got
}

func waitForPath(t *testing.T, got <-chan []string, want string) {
	t.Helper()

	timeout := time.After(5 * time.Second)
	for {
		select {
		case batch := <-got:
			if slices.Contains(batch, want) {
				return
			}
		case <-timeout:
			t.Fatalf("no batch containing %s", want)
		}
	}
}

func TestRunReportsDirectoryMovedIn(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	root := filepath.Join(base, "project")
	src := filepath.Join(root, "App", "Source")
	outside := filepath.Join(base, "outside", "lib")
	for _, dir := range []string{src, outside} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(outside, "Util.cpp"), []byte("int u;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := startWatch(t, root)
	if err := os.Rename(outside, filepath.Join(src, "lib")); err != nil {
		t.Fatal(err)
	}
	waitForPath(t, got, filepath.Join(src, "lib", "Util.cpp"))
}

func TestRunReportsDirectoryMovedOut(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	root := filepath.Join(base, "project")
	lib := filepath.Join(root, "App", "Source", "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "Util.cpp"), []byte("int u;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := startWatch(t, root)
	if err := os.Rename(lib, filepath.Join(base, "lib")); err != nil {
		t.Fatal(err)
	}
	waitForPath(t, got, lib)
}
