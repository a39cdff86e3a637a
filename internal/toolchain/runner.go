package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command is one external program invocation.
type Command struct {
	// Dir is the working directory. Empty means the current directory.
	Dir  string
	Name string
	Args []string
}

// String renders the command line for messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner executes external programs.
type Runner interface {
	// Run blocks until the program exits. A non-zero exit yields *ExitError.
	Run(ctx context.Context, cmd Command) error
}

// Compile-time interface compliance check.
var _ Runner = (*ExecRunner)(nil)

// ExecRunner runs programs as child processes whose output streams straight
// to the console. There is no timeout; cancellation comes from ctx only.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	logger *slog.Logger
}

// NewExecRunner creates a runner attached to the process standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: slog.Default().With("module", "toolchain"),
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) error {
	if c.Name == "" {
		return ErrEmptyCommand
	}
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, c.Name)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("running external program", "command", c.String(), "dir", c.Dir)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: c, Code: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("run %s: %w", c.Name, err)
	}
	return nil
}
