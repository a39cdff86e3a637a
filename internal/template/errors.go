// Package template scaffolds new projects from an embedded file tree.
// Files ending in .tmpl are rendered with text/template; the __name__
// placeholder in paths is replaced by the project name.
package template

import "errors"

var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template: not found")

	// ErrMissingTemplateKey indicates a template referenced an undefined key.
	ErrMissingTemplateKey = errors.New("template: missing key")

	// ErrUnexpandedToken indicates rendered output still contains a placeholder.
	ErrUnexpandedToken = errors.New("template: unexpanded token")

	// ErrPathTraversal indicates a template path escaping the project root.
	ErrPathTraversal = errors.New("template: path traversal")

	// ErrFileExists indicates a destination file that would be overwritten.
	ErrFileExists = errors.New("template: destination exists")
)
