package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Reporter prints the human-readable status lines of a command. Each line is
// prefixed by a symbol, colored when the output supports it.
type Reporter struct {
	out     io.Writer
	noColor bool

	success lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
	muted   lipgloss.Style
	primary lipgloss.Style
}

// NewReporter creates a Reporter writing to out. noColor disables styling
// even on a color-capable terminal.
func NewReporter(out io.Writer, noColor bool) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:     out,
		noColor: noColor,
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}),
		warn:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}),
		fail:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}),
		muted:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}),
		primary: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}),
	}
}

// Writer returns the underlying output.
func (r *Reporter) Writer() io.Writer {
	return r.out
}

func (r *Reporter) render(s lipgloss.Style, text string) string {
	if r.noColor {
		return text
	}
	return s.Render(text)
}

func (r *Reporter) line(symbol string, style lipgloss.Style, format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", r.render(style, symbol), fmt.Sprintf(format, args...))
}

// Success reports a completed step.
func (r *Reporter) Success(format string, args ...any) {
	r.line("✓", r.success, format, args...)
}

// Info reports progress.
func (r *Reporter) Info(format string, args ...any) {
	r.line("•", r.muted, format, args...)
}

// Warn reports a non-fatal problem.
func (r *Reporter) Warn(format string, args ...any) {
	r.line("!", r.warn, format, args...)
}

// Error reports a failure.
func (r *Reporter) Error(format string, args ...any) {
	r.line("✗", r.fail, format, args...)
}

// Title prints a highlighted heading line.
func (r *Reporter) Title(text string) {
	_, _ = fmt.Fprintln(r.out, r.render(r.primary, text))
}

// Item prints an indented list entry with an optional muted detail.
func (r *Reporter) Item(name, detail string) {
	if detail == "" {
		_, _ = fmt.Fprintf(r.out, "  %s\n", name)
		return
	}
	_, _ = fmt.Fprintf(r.out, "  %s %s\n", name, r.render(r.muted, detail))
}

// Plain prints text unchanged.
func (r *Reporter) Plain(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format+"\n", args...)
}
