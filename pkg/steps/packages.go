package steps

import (
	"fmt"
	"strings"

	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/operations"
)

// probeBinaries maps a package name to the binary that proves it is
// installed. Packages without an entry are probed by their own name.
var probeBinaries = map[string]string{
	"build-essential": "gcc",
	"gettext":         "msgfmt",
	"ninja-build":     "ninja",
}

// PackagesStep installs the base package list through apt.
type PackagesStep struct{}

func (s *PackagesStep) Name() string        { return "packages" }
func (s *PackagesStep) Description() string { return "Base packages via the system package manager" }

func (s *PackagesStep) missing(ctx Context) []string {
	var missing []string
	for _, pkg := range ctx.Config.Packages.Base {
		probe, ok := probeBinaries[pkg]
		if !ok {
			probe = pkg
		}
		if !ctx.Platform.HasBinary(probe) {
			missing = append(missing, pkg)
		}
	}
	return missing
}

func (s *PackagesStep) Check(ctx Context) (CheckResult, error) {
	missing := s.missing(ctx)
	switch {
	case len(missing) == 0:
		return CheckResult{State: StateInstalled, Message: "all base packages present"}, nil
	case len(missing) == len(ctx.Config.Packages.Base):
		return CheckResult{State: StatePending,
			Message: fmt.Sprintf("%d packages to install", len(missing))}, nil
	default:
		return CheckResult{State: StatePartial,
			Message: fmt.Sprintf("missing: %s", strings.Join(missing, ", "))}, nil
	}
}

func (s *PackagesStep) Operations(ctx Context) ([]operations.Operation, error) {
	missing := s.missing(ctx)
	if len(missing) == 0 {
		return nil, nil
	}

	pm := string(ctx.PkgMgr)
	return []operations.Operation{
		{
			Type:    operations.RunCommand,
			Step:    s.Name(),
			Command: execx.Command{Name: "sudo", Args: []string{pm, "update"}},
		},
		{
			Type: operations.RunCommand,
			Step: s.Name(),
			Command: execx.Command{
				Name: "sudo",
				Args: append([]string{pm, "install", "-y"}, missing...),
			},
		},
	}, nil
}
