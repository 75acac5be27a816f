// Package steps defines the ordered catalog of bootstrap steps. Steps
// are data transformers: they inspect the environment in Check and
// declare operations in Operations, but never perform I/O themselves.
package steps

import (
	"github.com/devinit-cli/devinit/pkg/config"
	"github.com/devinit-cli/devinit/pkg/operations"
	"github.com/devinit-cli/devinit/pkg/paths"
	"github.com/devinit-cli/devinit/pkg/platform"
)

// State describes whether a step's target is already present.
type State int

const (
	// StateInstalled means the target exists and the step will be skipped.
	StateInstalled State = iota

	// StatePending means the target is missing and the step will run.
	StatePending

	// StatePartial means some of the step's targets exist; only the
	// missing ones will be provisioned.
	StatePartial
)

// String returns the display name of a state.
func (s State) String() string {
	switch s {
	case StateInstalled:
		return "installed"
	case StatePartial:
		return "partial"
	default:
		return "missing"
	}
}

// CheckResult is the outcome of a step's existence check.
type CheckResult struct {
	State   State
	Message string
}

// Context carries everything a step needs to inspect the environment
// and declare work.
type Context struct {
	Config   *config.Config
	Paths    *paths.Paths
	Platform *platform.Checker
	PkgMgr   platform.PackageManager
}

// Step is one named unit of the bootstrap checklist.
type Step interface {
	// Name is the stable step identifier used in reports and logs.
	Name() string

	// Description is a one-line summary for status output.
	Description() string

	// Check reports whether the step's target already exists.
	Check(ctx Context) (CheckResult, error)

	// Operations declares the work needed to provision the missing
	// targets. It returns nil when there is nothing to do.
	Operations(ctx Context) ([]operations.Operation, error)
}

// Catalog returns all bootstrap steps in execution order. Ordering
// matters: packages provide the compilers and shells everything after
// them needs, and plugin clones require their framework directories.
func Catalog() []Step {
	return []Step{
		&PackagesStep{},
		&OhMyZshStep{},
		&ZshPluginsStep{},
		&ZshrcStep{},
		&TpmStep{},
		&TmuxConfStep{},
		&NeovimStep{},
		&NodeStep{},
		&GolangStep{},
		&RustStep{},
	}
}

// ByName returns the catalog step with the given name, or nil.
func ByName(name string) Step {
	for _, s := range Catalog() {
		if s.Name() == name {
			return s
		}
	}
	return nil
}
