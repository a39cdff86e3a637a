package template

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// @MX:ANCHOR: [AUTO] Deployer materializes the template layers of a new project on disk.
// @MX:REASON: [AUTO] fan_in=3, workflow New, cli new command, tests
// Deployer extracts templates from a filesystem into a new project directory.
type Deployer interface {
	// Deploy renders every file of the context's layers into projectRoot and
	// returns the written paths relative to projectRoot. Existing files are
	// never overwritten.
	Deploy(ctx context.Context, projectRoot string, tmplCtx *TemplateContext) ([]string, error)

	// ListTemplates returns the destination paths a layer would produce,
	// with placeholders still in place.
	ListTemplates(layer string) []string
}

// deployer is the concrete implementation of Deployer.
type deployer struct {
	fsys     fs.FS
	renderer Renderer
	logger   *slog.Logger
}

// NewDeployer creates a Deployer backed by the given filesystem.
// In production the fs.FS comes from EmbeddedFS; in tests use testing/fstest.MapFS.
func NewDeployer(fsys fs.FS) Deployer {
	return &deployer{
		fsys:     fsys,
		renderer: NewRenderer(fsys),
		logger:   slog.Default().With("module", "template"),
	}
}

// @MX:NOTE: [AUTO] Context cancellation is checked per file. .tmpl files are rendered and saved without the suffix.
// Deploy walks each layer in order and writes its files below projectRoot.
func (d *deployer) Deploy(ctx context.Context, projectRoot string, tmplCtx *TemplateContext) ([]string, error) {
	projectRoot = filepath.Clean(projectRoot)

	var written []string
	for _, layer := range tmplCtx.Layers() {
		if _, err := fs.Stat(d.fsys, layer); err != nil {
			return written, fmt.Errorf("%w: layer %s", ErrTemplateNotFound, layer)
		}

		walkErr := fs.WalkDir(d.fsys, layer, func(srcPath string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}

			rel, ok := strings.CutPrefix(srcPath, layer+"/")
			if !ok {
				return nil
			}
			destRelPath := destinationPath(rel, tmplCtx.ProjectName)

			if err := validateDeployPath(projectRoot, destRelPath); err != nil {
				return err
			}

			content, err := d.content(srcPath, tmplCtx)
			if err != nil {
				return err
			}

			destPath := filepath.Join(projectRoot, filepath.FromSlash(destRelPath))
			if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
				return fmt.Errorf("template deploy mkdir %q: %w", filepath.Dir(destPath), err)
			}

			f, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if err != nil {
				if errors.Is(err, fs.ErrExist) {
					return fmt.Errorf("%w: %s", ErrFileExists, destRelPath)
				}
				return fmt.Errorf("template deploy create %q: %w", destPath, err)
			}
			if _, err := f.Write(content); err != nil {
				_ = f.Close()
				return fmt.Errorf("template deploy write %q: %w", destPath, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("template deploy close %q: %w", destPath, err)
			}

			written = append(written, destRelPath)
			d.logger.Debug("template deployed", "path", destRelPath)
			return nil
		})
		if walkErr != nil {
			return written, walkErr
		}
	}
	return written, nil
}

func (d *deployer) content(srcPath string, tmplCtx *TemplateContext) ([]byte, error) {
	if strings.HasSuffix(srcPath, ".tmpl") {
		rendered, err := d.renderer.Render(srcPath, tmplCtx)
		if err != nil {
			return nil, fmt.Errorf("template render %q: %w", srcPath, err)
		}
		return rendered, nil
	}
	raw, err := fs.ReadFile(d.fsys, srcPath)
	if err != nil {
		return nil, fmt.Errorf("template deploy read %q: %w", srcPath, err)
	}
	return raw, nil
}

// ListTemplates returns sorted destination paths of one layer.
func (d *deployer) ListTemplates(layer string) []string {
	var list []string

	_ = fs.WalkDir(d.fsys, layer, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors during listing
		}
		if entry.IsDir() {
			return nil
		}
		rel, ok := strings.CutPrefix(p, layer+"/")
		if !ok {
			return nil
		}
		list = append(list, strings.TrimSuffix(rel, ".tmpl"))
		return nil
	})

	return list
}

// destinationPath strips the .tmpl suffix and substitutes the project name
// for the placeholder in every path segment.
func destinationPath(rel, name string) string {
	rel = strings.TrimSuffix(rel, ".tmpl")
	return path.Clean(strings.ReplaceAll(rel, NamePlaceholder, name))
}

// validateDeployPath ensures a template path does not escape projectRoot.
func validateDeployPath(projectRoot, relPath string) error {
	cleaned := filepath.Clean(filepath.FromSlash(relPath))

	if filepath.IsAbs(cleaned) {
		return fmt.Errorf("%w: absolute path %q", ErrPathTraversal, relPath)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: parent reference in %q", ErrPathTraversal, relPath)
	}

	absProjectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	absPath := filepath.Join(absProjectRoot, cleaned)
	if !strings.HasPrefix(absPath, absProjectRoot+string(filepath.Separator)) {
		return fmt.Errorf("%w: %q escapes project root", ErrPathTraversal, relPath)
	}
	return nil
}
