// Package git wraps the version control operations behind dependency
// management: submodule command lines for the system git binary, and
// in-process repository inspection through go-git.
package git

import "errors"

var (
	// ErrNotRepository indicates the path is not a git working tree.
	ErrNotRepository = errors.New("git: not a repository")

	// ErrNoCommits indicates a repository whose HEAD does not resolve yet.
	ErrNoCommits = errors.New("git: repository has no commits")

	// ErrInvalidGitModules indicates a .gitmodules file that cannot be parsed.
	ErrInvalidGitModules = errors.New("git: invalid .gitmodules")
)
