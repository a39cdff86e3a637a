package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// document is the persisted registry schema.
type document struct {
	Dependencies []string `yaml:"dependencies"`
}

// Registry is the ordered set of declared dependency names.
// Insertion order is preserved and names are unique.
type Registry struct {
	path   string
	names  []string
	logger *slog.Logger
}

// New creates an empty registry persisted at path.
func New(path string) *Registry {
	return &Registry{
		path:   path,
		logger: slog.Default().With("module", "registry"),
	}
}

// Load reads the registry document at path.
// A missing document yields an empty registry.
func Load(path string) (*Registry, error) {
	r := New(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("registry document not found, starting empty", "path", path)
			return r, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, path, err)
	}

	for _, name := range doc.Dependencies {
		// Hand-edited documents may carry duplicates; the first occurrence wins.
		if err := r.Add(name); err != nil && !errors.Is(err, ErrDuplicate) {
			return nil, fmt.Errorf("load registry %s: %w", path, err)
		}
	}

	r.logger.Debug("registry loaded", "path", path, "count", len(r.names))
	return r, nil
}

// Path returns the document location.
func (r *Registry) Path() string {
	return r.path
}

// List returns the declared names in insertion order.
func (r *Registry) List() []string {
	return slices.Clone(r.names)
}

// Len returns the number of declared names.
func (r *Registry) Len() int {
	return len(r.names)
}

// Contains reports whether name is declared.
func (r *Registry) Contains(name string) bool {
	return slices.Contains(r.names, Normalize(name))
}

// Add appends name. Declaring a name twice returns ErrDuplicate and leaves the
// registry unchanged.
func (r *Registry) Add(name string) error {
	name = Normalize(name)
	if name == "" {
		return ErrEmptyName
	}
	if slices.Contains(r.names, name) {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.names = append(r.names, name)
	return nil
}

// Remove deletes name and reports whether it was declared.
// Removing an undeclared name is a no-op.
func (r *Registry) Remove(name string) bool {
	name = Normalize(name)
	idx := slices.Index(r.names, name)
	if idx < 0 {
		return false
	}
	r.names = slices.Delete(r.names, idx, idx+1)
	return true
}

// Save persists the registry document atomically.
// Failures wrap ErrPersistence.
func (r *Registry) Save() error {
	data, err := yaml.Marshal(document{Dependencies: r.List()})
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersistence, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrPersistence, err)
	}

	f, err := os.CreateTemp(dir, ".dependencies-*.yaml")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrPersistence, err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write: %v", ErrPersistence, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: fsync: %v", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("%w: replace: %v", ErrPersistence, err)
	}

	r.logger.Debug("registry saved", "path", r.path, "count", len(r.names))
	return nil
}

// Presence is the reconciliation result for one declared dependency.
type Presence struct {
	Name    string
	Present bool
}

// CheckPresence tests, for every declared name in order, whether an entry of
// that name exists under dependencyDir.
func (r *Registry) CheckPresence(dependencyDir string) []Presence {
	result := make([]Presence, 0, len(r.names))
	for _, name := range r.names {
		_, err := os.Stat(filepath.Join(dependencyDir, name))
		result = append(result, Presence{Name: name, Present: err == nil})
	}
	return result
}

// Missing returns the names of absent dependencies, preserving order.
func Missing(presences []Presence) []string {
	var missing []string
	for _, p := range presences {
		if !p.Present {
			missing = append(missing, p.Name)
		}
	}
	return missing
}

// ExtractName derives a dependency name from a repository URL: the last path
// segment without its extension.
func ExtractName(url string) string {
	name := strings.TrimRight(url, "/")
	if idx := strings.LastIndexAny(name, "/:"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// Normalize trims name and converts it to NFC, the form in which names are
// stored and compared.
func Normalize(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
