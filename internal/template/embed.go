package template

import (
	"embed"
	"io/fs"
)

//go:embed all:files
var embedded embed.FS

// EmbeddedFS returns the built-in project templates rooted at their layers
// (common, executable, library).
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(err) // the embed directive guarantees the directory exists
	}
	return sub
}
