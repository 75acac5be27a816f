// Package execx wraps external command execution behind a Runner so the
// rest of the codebase can be exercised in tests without touching the
// system, and so dry-run can observe commands instead of running them.
package execx

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/devinit-cli/devinit/pkg/errors"
	"github.com/devinit-cli/devinit/pkg/logging"
)

// Command describes a single external command invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // appended to the current environment
}

// String renders the command roughly as a shell would see it.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// LookPathFunc resolves a binary on PATH. It exists so environment checks
// can be faked in tests.
type LookPathFunc func(file string) (string, error)

// SystemLookPath is the real PATH resolver.
var SystemLookPath LookPathFunc = exec.LookPath

// OSRunner executes commands on the host, streaming output to the
// process's stdout and stderr. Stdin is connected to support interactive
// prompts (sudo passwords, SSH passphrases).
type OSRunner struct{}

// NewOSRunner creates a Runner backed by os/exec.
func NewOSRunner() *OSRunner { return &OSRunner{} }

// Run implements Runner.
func (r *OSRunner) Run(ctx context.Context, cmd Command) error {
	logging.LogCommand(cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	if err := c.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrCommandFailed, "command failed: %s", cmd.String()).
			WithDetail("command", cmd.String())
	}
	return nil
}

// RecordingRunner records commands instead of executing them. It backs
// both dry-run previews and tests.
type RecordingRunner struct {
	mu       sync.Mutex
	commands []Command

	// Err, when set, is returned for every Run call.
	Err error

	// FailOn, when non-empty, fails only commands whose String contains it.
	FailOn string
}

// NewRecordingRunner creates an empty RecordingRunner.
func NewRecordingRunner() *RecordingRunner { return &RecordingRunner{} }

// Run implements Runner.
func (r *RecordingRunner) Run(_ context.Context, cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, cmd)

	if r.Err != nil {
		return r.Err
	}
	if r.FailOn != "" && strings.Contains(cmd.String(), r.FailOn) {
		return errors.Newf(errors.ErrCommandFailed, "command failed: %s", cmd.String())
	}
	return nil
}

// Commands returns a copy of everything recorded so far.
func (r *RecordingRunner) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Ran reports whether any recorded command contains the given substring.
func (r *RecordingRunner) Ran(substr string) bool {
	for _, c := range r.Commands() {
		if strings.Contains(c.String(), substr) {
			return true
		}
	}
	return false
}
