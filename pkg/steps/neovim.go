package steps

import (
	"fmt"
	"path/filepath"

	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/operations"
)

// NeovimStep builds neovim from source and seeds the LazyVim starter
// config. The binary and the config are checked independently so a
// machine with a hand-built nvim still gets the config seeded.
type NeovimStep struct{}

func (s *NeovimStep) Name() string        { return "neovim" }
func (s *NeovimStep) Description() string { return "neovim built from source + LazyVim config" }

func (s *NeovimStep) Check(ctx Context) (CheckResult, error) {
	hasBinary := ctx.Platform.HasBinary("nvim")
	hasConfig := dirExists(ctx.Paths.NvimConfigDir())

	switch {
	case hasBinary && hasConfig:
		return CheckResult{State: StateInstalled, Message: "nvim and config present"}, nil
	case hasBinary:
		return CheckResult{State: StatePartial, Message: "nvim present, config missing"}, nil
	case hasConfig:
		return CheckResult{State: StatePartial, Message: "config present, nvim missing"}, nil
	default:
		return CheckResult{State: StatePending, Message: "nvim not installed"}, nil
	}
}

func (s *NeovimStep) Operations(ctx Context) ([]operations.Operation, error) {
	var ops []operations.Operation

	if !ctx.Platform.HasBinary("nvim") {
		srcDir := filepath.Join(ctx.Paths.CacheDir(), "neovim")

		if !dirExists(srcDir) {
			ops = append(ops, operations.Operation{
				Type:   operations.CloneRepo,
				Step:   s.Name(),
				URL:    ctx.Config.Neovim.Repo,
				Ref:    ctx.Config.Neovim.Ref,
				Target: srcDir,
				Depth:  1,
			})
		}

		ops = append(ops,
			operations.Operation{
				Type: operations.RunCommand,
				Step: s.Name(),
				Command: execx.Command{
					Name: "make",
					Args: []string{fmt.Sprintf("CMAKE_BUILD_TYPE=%s", ctx.Config.Neovim.BuildType)},
					Dir:  srcDir,
				},
			},
			operations.Operation{
				Type: operations.RunCommand,
				Step: s.Name(),
				Command: execx.Command{
					Name: "sudo",
					Args: []string{"make", "install"},
					Dir:  srcDir,
				},
			},
		)
	}

	if !dirExists(ctx.Paths.NvimConfigDir()) {
		configDir := ctx.Paths.NvimConfigDir()
		ops = append(ops,
			operations.Operation{
				Type:   operations.CloneRepo,
				Step:   s.Name(),
				URL:    ctx.Config.LazyVim.URL,
				Ref:    ctx.Config.LazyVim.Ref,
				Target: configDir,
				Depth:  1,
			},
			// The starter is a template, not a tracked checkout.
			operations.Operation{
				Type: operations.RunCommand,
				Step: s.Name(),
				Command: execx.Command{
					Name: "rm",
					Args: []string{"-rf", filepath.Join(configDir, ".git")},
				},
			},
		)
	}

	return ops, nil
}
