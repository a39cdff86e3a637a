package ui

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWrap is the column width used for rendered help.
const DefaultWrap = 100

// RenderMarkdown styles md for a terminal. When styled is false the source is
// returned unchanged, which keeps piped help output readable.
func RenderMarkdown(md string, styled bool) (string, error) {
	if !styled {
		return md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultWrap),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
