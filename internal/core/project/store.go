package project

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/magnet-build/magnet/internal/defs"
)

// Store loads and saves the descriptor document of a project root.
type Store struct {
	logger *slog.Logger
}

// NewStore creates a Store.
func NewStore() *Store {
	return &Store{logger: slog.Default().With("module", "project")}
}

// DescriptorPath returns the descriptor document location for a project root.
func DescriptorPath(projectRoot string) string {
	return filepath.Join(filepath.Clean(projectRoot), defs.MagnetDir, defs.ConfigYAML)
}

// Load reads the descriptor stored under projectRoot.
// Returns an error wrapping ErrDescriptorNotFound when the document does not exist.
func (s *Store) Load(projectRoot string) (*Descriptor, error) {
	path := DescriptorPath(projectRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, path)
		}
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	var file descriptorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, path, err)
	}

	d, err := file.toDescriptor()
	if err != nil {
		return nil, fmt.Errorf("load descriptor %s: %w", path, err)
	}

	s.logger.Debug("descriptor loaded",
		"name", d.Name,
		"type", d.Type,
		"configuration", d.Configuration,
	)
	return d, nil
}

// Save overwrites the descriptor stored under projectRoot.
// The .magnet directory is created if needed. Failures wrap ErrPersistence.
func (s *Store) Save(projectRoot string, d *Descriptor) error {
	data, err := yaml.Marshal(d.toFile())
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersistence, err)
	}

	path := DescriptorPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPersistence, filepath.Dir(path), err)
	}
	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.logger.Debug("descriptor saved", "path", path)
	return nil
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".magnet-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
