// Package fetch retrieves the upstream source trees into a scoped temporary workspace.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// ErrGitNotInstalled is returned when the git executable can not be found.
var ErrGitNotInstalled = errors.New("git is not installed")

const gitName = "git"

// Workspace is a temporary directory holding retrieved source trees.
// It must be released with Close.
type Workspace struct {
	logger *log.Logger
	dir    string
}

// NewWorkspace creates a new temporary workspace.
func NewWorkspace(logger *log.Logger) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "riscvdata-*")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	logger.Debug("Created workspace", log.String("dir", dir))
	return &Workspace{
		logger: logger,
		dir:    dir,
	}, nil
}

// Dir returns the root directory of the workspace.
func (w *Workspace) Dir() string {
	return w.dir
}

// Close removes the workspace and everything retrieved into it.
// Calling Close more than once is safe.
func (w *Workspace) Close() error {
	if w.dir == "" {
		return nil
	}

	dir := w.dir
	w.dir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing workspace '%s': %w", dir, err)
	}
	w.logger.Debug("Removed workspace", log.String("dir", dir))
	return nil
}

// Clone performs a shallow clone of the repository at url into the
// subdirectory name of the workspace and returns the checkout path.
func (w *Workspace) Clone(ctx context.Context, url, name string) (string, error) {
	if w.dir == "" {
		return "", errors.New("workspace is closed")
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid checkout name '%s'", name)
	}

	git := gitName
	if runtime.GOOS == "windows" {
		git += ".exe"
	}
	if _, err := exec.LookPath(git); err != nil {
		return "", ErrGitNotInstalled
	}

	dest := filepath.Join(w.dir, name)
	w.logger.Info("Cloning repository", log.String("url", url))

	cmd := exec.CommandContext(ctx, git, "clone", "--quiet", "--depth", "1", url, dest)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("cloning '%s': %w", url, ctxErr)
		}
		return "", fmt.Errorf("cloning '%s': %s: %w", url, strings.TrimSpace(string(out)), err)
	}
	return dest, nil
}
