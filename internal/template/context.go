package template

import (
	"strings"
	"unicode"
)

// Layer names inside the template tree.
const (
	LayerCommon     = "common"
	LayerExecutable = "executable"
	LayerLibrary    = "library"
)

// NamePlaceholder is replaced by the project name in template paths.
const NamePlaceholder = "__name__"

// TemplateContext provides data for template rendering during project creation.
// All fields are exported for use with Go's text/template package.
type TemplateContext struct {
	ProjectName  string
	ProjectType  string // Executable, StaticLibrary, DynamicLibrary
	IsLibrary    bool
	CppVersion   string
	CmakeVersion string

	// Meta
	Version string // magnet version
}

// ContextOption configures a TemplateContext.
type ContextOption func(*TemplateContext)

// WithLibrary marks the project as a library.
func WithLibrary(isLibrary bool) ContextOption {
	return func(c *TemplateContext) { c.IsLibrary = isLibrary }
}

// WithVersions sets the C++ standard and minimum CMake version.
func WithVersions(cpp, cmake string) ContextOption {
	return func(c *TemplateContext) {
		c.CppVersion = cpp
		c.CmakeVersion = cmake
	}
}

// WithToolVersion records the magnet version.
func WithToolVersion(v string) ContextOption {
	return func(c *TemplateContext) { c.Version = v }
}

// NewTemplateContext creates a context for the named project.
func NewTemplateContext(name, projectType string, opts ...ContextOption) *TemplateContext {
	c := &TemplateContext{ProjectName: name, ProjectType: projectType}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Layers returns the template layers to deploy, in order.
func (c *TemplateContext) Layers() []string {
	if c.IsLibrary {
		return []string{LayerCommon, LayerLibrary}
	}
	return []string{LayerCommon, LayerExecutable}
}

// TypeLabel is a lower-case human name for the binary type.
func (c *TemplateContext) TypeLabel() string {
	switch c.ProjectType {
	case "StaticLibrary":
		return "static library"
	case "DynamicLibrary":
		return "shared library"
	default:
		return "executable"
	}
}

// Namespace turns the project name into a valid C++ identifier.
func (c *TemplateContext) Namespace() string {
	var b strings.Builder
	for i, r := range c.ProjectName {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
