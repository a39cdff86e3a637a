// Package cmake serializes CMake directives. The Emitter performs no
// validation of its arguments; it only guarantees ordering, indentation and
// line termination.
package cmake

import (
	"fmt"
	"io"
	"strings"
)

const (
	lineEnd         = "\n"
	indentUnit      = "\t"
	doNotEditNotice = "# Do not edit this file since any changes will be overwritten next time the project files are regenerated."
)

// Emitter writes CMake directives to an io.Writer, one directive per line.
// Directives emitted inside a conditional or an open include block are
// indented one level per nesting depth.
type Emitter struct {
	w     io.Writer
	depth int
	open  int
	err   error
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

// Err returns the first write error, if any. Once a write fails every later
// call is a no-op.
func (e *Emitter) Err() error {
	return e.err
}

// OpenBlocks returns the number of Begin directives not yet closed.
func (e *Emitter) OpenBlocks() int {
	return e.open
}

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// line writes one indented, terminated line.
func (e *Emitter) line(s string) {
	e.write(strings.Repeat(indentUnit, e.depth) + s + lineEnd)
}

// Header writes the generated-file banner followed by a blank line.
func (e *Emitter) Header(tool, version string) {
	e.line(fmt.Sprintf("# Generated by %s %s", tool, version))
	e.line(doNotEditNotice)
	e.Newline(1)
}

// Literal writes text verbatim, without indentation or terminator.
func (e *Emitter) Literal(text string) {
	e.write(text)
}

// Indent writes n indentation units.
func (e *Emitter) Indent(n int) {
	e.write(strings.Repeat(indentUnit, n))
}

// Newline writes n line terminators.
func (e *Emitter) Newline(n int) {
	e.write(strings.Repeat(lineEnd, n))
}

// Line writes text as a single directive line at the current depth.
func (e *Emitter) Line(text string) {
	e.line(text)
}

// Comment writes a "# " prefixed comment line.
func (e *Emitter) Comment(text string) {
	e.line("# " + text)
}

// Set writes set(<variable> <value>).
func (e *Emitter) Set(variable, value string) {
	e.line("set(" + variable + " " + value + ")")
}

// MinimumRequired writes cmake_minimum_required(VERSION <version>).
func (e *Emitter) MinimumRequired(version string) {
	e.line("cmake_minimum_required(VERSION " + version + ")")
}

// Project writes project(<name>).
func (e *Emitter) Project(name string) {
	e.line("project(" + name + ")")
}

// CxxStandard writes set(CMAKE_CXX_STANDARD <version>).
func (e *Emitter) CxxStandard(version string) {
	e.Set("CMAKE_CXX_STANDARD", version)
}

// If writes a conditional block whose body is produced by calling body exactly once.
func (e *Emitter) If(condition string, body func()) {
	e.line("if(" + condition + ")")
	e.nested(body)
	e.line("endif()")
}

// IfElse writes a two-branch conditional block. ifTrue and ifFalse are each
// called exactly once, in that order.
func (e *Emitter) IfElse(condition string, ifTrue, ifFalse func()) {
	e.line("if(" + condition + ")")
	e.nested(ifTrue)
	e.line("else()")
	e.nested(ifFalse)
	e.line("endif()")
}

func (e *Emitter) nested(body func()) {
	e.depth++
	defer func() { e.depth-- }()
	if body != nil {
		body()
	}
}

// AddExecutable writes add_executable(<target> <sources>...). Each source is
// written as a quoted argument.
func (e *Emitter) AddExecutable(target string, sources []string) {
	e.line("add_executable(" + joinArgs(target, quoteAll(sources)...) + ")")
}

// AddLibrary writes add_library(<target> <kind> <sources>...). Each source is
// written as a quoted argument.
func (e *Emitter) AddLibrary(target, kind string, sources []string) {
	e.line("add_library(" + joinArgs(target, append([]string{kind}, quoteAll(sources)...)...) + ")")
}

// AddSubdirectory writes add_subdirectory(<dir>).
func (e *Emitter) AddSubdirectory(dir string) {
	e.line("add_subdirectory(" + dir + ")")
}

// AddSubdirectories writes one add_subdirectory directive per entry, in order.
func (e *Emitter) AddSubdirectories(dirs []string) {
	for _, dir := range dirs {
		e.AddSubdirectory(dir)
	}
}

// TargetIncludeDirectories writes a single-shot
// target_include_directories(<target> <scope> <dir>).
func (e *Emitter) TargetIncludeDirectories(target, scope, dir string) {
	e.line("target_include_directories(" + target + " " + scope + " " + dir + ")")
}

// BeginTargetIncludeDirectories opens a streaming include directive. Every
// Begin must be matched by exactly one EndTargetIncludeDirectories before
// the file is finalized.
func (e *Emitter) BeginTargetIncludeDirectories(target, scope string) {
	e.line("target_include_directories(" + target + " " + scope)
	e.open++
	e.depth++
}

// IncludeDirectory writes one quoted entry of an open include directive.
func (e *Emitter) IncludeDirectory(dir string) {
	e.line(Quote(dir))
}

// EndTargetIncludeDirectories closes the innermost streaming include directive.
func (e *Emitter) EndTargetIncludeDirectories() {
	if e.open == 0 {
		if e.err == nil {
			e.err = ErrUnbalancedEnd
		}
		return
	}
	e.open--
	e.depth--
	e.line(")")
}

// TargetLinkLibraries writes target_link_libraries(<target> <libraries>...).
func (e *Emitter) TargetLinkLibraries(target string, libraries []string) {
	e.line("target_link_libraries(" + joinArgs(target, libraries...) + ")")
}

// SetTargetProperties writes
// set_target_properties(<target> PROPERTIES <property> <value>).
func (e *Emitter) SetTargetProperties(target, property, value string) {
	e.line("set_target_properties(" + target + " PROPERTIES " + property + " " + value + ")")
}

// SetProperty writes set_property(<args>) with args passed through verbatim.
func (e *Emitter) SetProperty(args string) {
	e.line("set_property(" + args + ")")
}

func joinArgs(first string, rest ...string) string {
	if len(rest) == 0 {
		return first
	}
	return first + " " + strings.Join(rest, " ")
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// Quote returns s as a CMake quoted argument. Backslashes, double quotes and
// dollar signs are escaped so the value is taken literally.
func Quote(s string) string {
	return `"` + quoteEscaper.Replace(s) + `"`
}

func quoteAll(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = Quote(a)
	}
	return out
}
