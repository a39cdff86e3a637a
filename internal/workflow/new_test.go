package workflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/magnet-build/magnet/internal/core/git"
	"github.com/magnet-build/magnet/internal/core/project"
	"github.com/magnet-build/magnet/internal/core/registry"
	"github.com/magnet-build/magnet/internal/template"
)

func TestNew_Executable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, out := newTestContext(dir, &fakeRunner{})

	if err := c.New(context.Background(), NewOptions{Name: "Game"}); err != nil {
		t.Fatalf("New() error: %v", err)
	}

	root := filepath.Join(dir, "Game")
	desc, err := project.NewStore().Load(root)
	if err != nil {
		t.Fatalf("load descriptor: %v", err)
	}
	if desc.Name != "Game" || desc.Type != project.Executable || desc.Configuration != project.Debug {
		t.Errorf("descriptor = %+v", desc)
	}

	layout := project.NewLayout(root, "Game")
	reg, err := registry.Load(layout.RegistryPath())
	if err != nil || reg.Len() != 0 {
		t.Errorf("registry = %v, %v", reg, err)
	}
	if !exists(layout.RegistryPath()) {
		t.Error("registry document not written")
	}

	main := string(readFile(t, filepath.Join(layout.SourceDir(), "Main.cpp")))
	if !strings.Contains(main, "Hello from Game!") {
		t.Errorf("Main.cpp = %q", main)
	}
	if _, err := git.Describe(root); !errors.Is(err, git.ErrNoCommits) {
		t.Errorf("Describe() error = %v, want ErrNoCommits on fresh repository", err)
	}
	if !strings.Contains(out.String(), "Next steps: `cd Game && magnet generate`") {
		t.Errorf("output = %q", out)
	}
}

func TestNew_LibraryWithSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, _ := newTestContext(dir, &fakeRunner{})
	c.Settings.CppVersion = "17"

	opts := NewOptions{Name: "Engine", Type: "StaticLibrary", CmakeVersion: "3.25", SkipGit: true}
	if err := c.New(context.Background(), opts); err != nil {
		t.Fatalf("New() error: %v", err)
	}

	root := filepath.Join(dir, "Engine")
	desc, err := project.NewStore().Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if desc.Type != project.StaticLibrary || desc.CppVersion != "17" || desc.CmakeVersion != "3.25" {
		t.Errorf("descriptor = %+v", desc)
	}
	source := project.NewLayout(root, "Engine").SourceDir()
	for _, f := range []string{"Engine.h", "Engine.cpp"} {
		if !exists(filepath.Join(source, f)) {
			t.Errorf("%s not deployed", f)
		}
	}
	if exists(filepath.Join(root, ".git")) {
		t.Error("repository created despite SkipGit")
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    NewOptions
		wantErr error
	}{
		{"empty name", NewOptions{}, project.ErrEmptyName},
		{"bad name", NewOptions{Name: "my app"}, project.ErrInvalidName},
		{"bad type", NewOptions{Name: "App", Type: "Plugin"}, project.ErrInvalidBinaryType},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			c, _ := newTestContext(dir, &fakeRunner{})
			err := c.New(context.Background(), tt.opts)
			var v *ValidationError
			if !errors.As(err, &v) || !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want ValidationError(%v)", err, tt.wantErr)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("New() left %d entries behind", len(entries))
			}
		})
	}
}

func TestNew_ExistingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "App", "keep.txt"), "mine")
	c, _ := newTestContext(dir, &fakeRunner{})

	err := c.New(context.Background(), NewOptions{Name: "App"})
	var pre *PreconditionError
	if !errors.As(err, &pre) || !errors.Is(err, ErrProjectExists) {
		t.Fatalf("New() error = %v, want PreconditionError(ErrProjectExists)", err)
	}
	if string(readFile(t, filepath.Join(dir, "App", "keep.txt"))) != "mine" {
		t.Error("existing directory modified")
	}
}

type failingDeployer struct{}

func (failingDeployer) Deploy(context.Context, string, *template.TemplateContext) ([]string, error) {
	return nil, template.ErrTemplateNotFound
}

func (failingDeployer) ListTemplates(string) []string { return nil }

func TestNew_RemovesPartialProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, _ := newTestContext(dir, &fakeRunner{})
	c.Deployer = failingDeployer{}

	err := c.New(context.Background(), NewOptions{Name: "App"})
	var p *PersistenceError
	if !errors.As(err, &p) || !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("New() error = %v, want PersistenceError(ErrTemplateNotFound)", err)
	}
	if exists(filepath.Join(dir, "App")) {
		t.Error("partial project left behind")
	}
}
