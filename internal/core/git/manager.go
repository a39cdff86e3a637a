package git

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/ini.v1"

	"github.com/magnet-build/magnet/internal/defs"
	"github.com/magnet-build/magnet/internal/toolchain"
)

// Program is the system git executable.
const Program = "git"

// shortHashLen matches git's default abbreviation.
const shortHashLen = 7

// @MX:ANCHOR: [AUTO] Command builders for every git side effect of dependency management.
// @MX:REASON: [AUTO] fan_in=5, install, install-all, remove, switch and their tests
// SubmoduleAdd registers url as a submodule checked out at path.
func SubmoduleAdd(root, url, path string) toolchain.Command {
	return gitCommand(root, "submodule", "add", url, path)
}

// SubmoduleUpdate initializes and updates every submodule recursively.
func SubmoduleUpdate(root string) toolchain.Command {
	return gitCommand(root, "submodule", "update", "--init", "--recursive")
}

// SubmoduleDeinit unregisters the submodule at path and empties its checkout.
func SubmoduleDeinit(root, path string) toolchain.Command {
	return gitCommand(root, "submodule", "deinit", "-f", path)
}

// Remove drops path from the index and the working tree.
func Remove(root, path string) toolchain.Command {
	return gitCommand(root, "rm", "-f", path)
}

// Checkout switches the repository at path to branch.
func Checkout(root, path, branch string) toolchain.Command {
	return gitCommand(root, "-C", path, "checkout", branch)
}

// Add stages path.
func Add(root, path string) toolchain.Command {
	return gitCommand(root, "add", path)
}

func gitCommand(root string, args ...string) toolchain.Command {
	return toolchain.Command{Dir: root, Name: Program, Args: args}
}

// Init creates a repository at dir with main as its initial branch.
func Init(dir string) error {
	_, err := gogit.PlainInitWithOptions(dir, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.Main},
	})
	if err != nil {
		return fmt.Errorf("init repository %s: %w", dir, err)
	}
	slog.Default().With("module", "git").Debug("repository initialized", "dir", dir)
	return nil
}

// Revision describes the checked-out state of a repository.
type Revision struct {
	// Branch is empty when HEAD is detached.
	Branch string
	Hash   string
}

// String renders "branch@hash", or the bare hash when detached.
func (r Revision) String() string {
	if r.Branch == "" {
		return r.Hash
	}
	return r.Branch + "@" + r.Hash
}

// Describe reports the branch and abbreviated commit of the checkout at dir.
// Submodule checkouts whose .git is a file are supported.
func Describe(dir string) (Revision, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return Revision{}, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return Revision{}, fmt.Errorf("open repository %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Revision{}, fmt.Errorf("%w: %s", ErrNoCommits, dir)
		}
		return Revision{}, fmt.Errorf("resolve HEAD of %s: %w", dir, err)
	}

	rev := Revision{Hash: head.Hash().String()}
	if len(rev.Hash) > shortHashLen {
		rev.Hash = rev.Hash[:shortHashLen]
	}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}
	return rev, nil
}

// Submodule is one entry of a .gitmodules file.
type Submodule struct {
	Name string
	Path string
	URL  string
}

// Submodules parses the .gitmodules file under root, keyed by submodule path.
// A missing file yields an empty map.
func Submodules(root string) (map[string]Submodule, error) {
	path := filepath.Join(root, defs.GitModules)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]Submodule{}, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGitModules, err)
	}

	result := make(map[string]Submodule)
	for _, sec := range cfg.Sections() {
		name, ok := submoduleName(sec.Name())
		if !ok {
			continue
		}
		sm := Submodule{
			Name: name,
			Path: sec.Key("path").String(),
			URL:  sec.Key("url").String(),
		}
		if sm.Path == "" {
			sm.Path = name
		}
		result[sm.Path] = sm
	}
	return result, nil
}

// submoduleName extracts X from a `submodule "X"` section header.
func submoduleName(section string) (string, bool) {
	rest, ok := strings.CutPrefix(section, "submodule")
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}

// ModuleDir returns the directory holding the git metadata of the submodule
// at path. When root/.git is a gitdir file the pointed-to directory is used.
func ModuleDir(root, path string) string {
	gitDir := filepath.Join(root, ".git")
	if data, err := os.ReadFile(gitDir); err == nil {
		if target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:"); ok {
			target = strings.TrimSpace(target)
			if !filepath.IsAbs(target) {
				target = filepath.Join(root, target)
			}
			gitDir = target
		}
	}
	return filepath.Join(gitDir, "modules", filepath.FromSlash(path))
}
