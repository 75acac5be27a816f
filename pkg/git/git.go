// Package git wraps the git CLI for cloning and updating the plugin
// repositories devinit provisions.
package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/logging"
)

// IsURL returns true if s looks like a git repository URL.
func IsURL(s string) bool {
	if strings.Contains(s, "://") {
		return true
	}
	if strings.HasSuffix(s, ".git") {
		return true
	}
	if strings.HasPrefix(s, "git@") {
		return true
	}
	return false
}

// CloneOptions controls a clone.
type CloneOptions struct {
	URL    string
	Target string
	Ref    string // branch or tag; empty clones the default branch
	Depth  int    // 0 means full history
}

// Clone clones a repository through the given runner.
func Clone(ctx context.Context, runner execx.Runner, opts CloneOptions) error {
	if opts.URL == "" || opts.Target == "" {
		return errors.New(errors.ErrInvalidInput, "clone requires url and target")
	}

	logger := logging.GetLogger("git")
	logger.Debug().
		Str("url", opts.URL).
		Str("target", opts.Target).
		Str("ref", opts.Ref).
		Msg("Cloning repository")

	args := []string{"clone"}
	if opts.Depth > 0 {
		args = append(args, fmt.Sprintf("--depth=%d", opts.Depth))
	}
	if opts.Ref != "" {
		args = append(args, "--branch", opts.Ref)
	}
	args = append(args, opts.URL, opts.Target)

	if err := runner.Run(ctx, execx.Command{Name: "git", Args: args}); err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed, "cloning %s", opts.URL)
	}
	return nil
}

// Pull performs a fast-forward-only pull in the given repository directory.
func Pull(ctx context.Context, runner execx.Runner, repoPath string) error {
	args := []string{"-C", repoPath, "pull", "--ff-only"}
	if err := runner.Run(ctx, execx.Command{Name: "git", Args: args}); err != nil {
		return errors.Wrapf(err, errors.ErrCloneFailed, "pulling %s", repoPath)
	}
	return nil
}

// IsRepo reports whether path contains a git repository, by checking for
// a .git directory.
func IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}
