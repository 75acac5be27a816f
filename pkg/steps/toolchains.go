package steps

import (
	"path/filepath"

	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/operations"
)

// NodeStep installs Node.js through nvm. nvm is a shell function, so
// the LTS install runs inside a bash -c that sources nvm.sh first.
type NodeStep struct{}

func (s *NodeStep) Name() string        { return "node" }
func (s *NodeStep) Description() string { return "Node.js via nvm" }

func (s *NodeStep) Check(ctx Context) (CheckResult, error) {
	if dirExists(ctx.Paths.NvmDir()) {
		return CheckResult{State: StateInstalled, Message: "~/.nvm exists"}, nil
	}
	return CheckResult{State: StatePending, Message: "nvm not installed"}, nil
}

func (s *NodeStep) Operations(ctx Context) ([]operations.Operation, error) {
	if dirExists(ctx.Paths.NvmDir()) {
		return nil, nil
	}

	installer := filepath.Join(ctx.Paths.CacheDir(), "install-nvm.sh")
	nvmSh := filepath.Join(ctx.Paths.NvmDir(), "nvm.sh")
	return []operations.Operation{
		{
			Type:   operations.DownloadFile,
			Step:   s.Name(),
			URL:    ctx.Config.Installers.Nvm,
			Target: installer,
			Mode:   0755,
		},
		{
			Type:    operations.RunCommand,
			Step:    s.Name(),
			Command: execx.Command{Name: "bash", Args: []string{installer}},
		},
		{
			Type: operations.RunCommand,
			Step: s.Name(),
			Command: execx.Command{
				Name: "bash",
				Args: []string{"-c", "source '" + nvmSh + "' && nvm install --lts"},
			},
		},
	}, nil
}

// GolangStep installs the Go toolchain from the upstream tarball into
// ~/.local/go, keeping the install user-local.
type GolangStep struct{}

func (s *GolangStep) Name() string        { return "golang" }
func (s *GolangStep) Description() string { return "Go toolchain" }

func (s *GolangStep) Check(ctx Context) (CheckResult, error) {
	if ctx.Platform.HasBinary("go") {
		return CheckResult{State: StateInstalled, Message: "go on PATH"}, nil
	}
	if dirExists(ctx.Paths.GoInstallDir()) {
		return CheckResult{State: StateInstalled, Message: "~/.local/go exists"}, nil
	}
	return CheckResult{State: StatePending, Message: "go not installed"}, nil
}

func (s *GolangStep) Operations(ctx Context) ([]operations.Operation, error) {
	if ctx.Platform.HasBinary("go") || dirExists(ctx.Paths.GoInstallDir()) {
		return nil, nil
	}

	tarball := filepath.Join(ctx.Paths.CacheDir(), "go.tar.gz")
	installParent := filepath.Dir(ctx.Paths.GoInstallDir())
	return []operations.Operation{
		{
			Type:   operations.DownloadFile,
			Step:   s.Name(),
			URL:    ctx.Config.Installers.GoTarball,
			Target: tarball,
			Mode:   0644,
		},
		{
			Type:    operations.RunCommand,
			Step:    s.Name(),
			Command: execx.Command{Name: "mkdir", Args: []string{"-p", installParent}},
		},
		// The tarball contains a top-level go/ directory, so extracting
		// into ~/.local yields ~/.local/go.
		{
			Type:    operations.RunCommand,
			Step:    s.Name(),
			Command: execx.Command{Name: "tar", Args: []string{"-C", installParent, "-xzf", tarball}},
		},
	}, nil
}

// RustStep installs Rust through rustup, non-interactively and without
// touching shell profiles; the deployed .zshrc sources ~/.cargo/env.
type RustStep struct{}

func (s *RustStep) Name() string        { return "rust" }
func (s *RustStep) Description() string { return "Rust via rustup" }

func (s *RustStep) Check(ctx Context) (CheckResult, error) {
	if dirExists(ctx.Paths.CargoDir()) {
		return CheckResult{State: StateInstalled, Message: "~/.cargo exists"}, nil
	}
	return CheckResult{State: StatePending, Message: "rustup not run"}, nil
}

func (s *RustStep) Operations(ctx Context) ([]operations.Operation, error) {
	if dirExists(ctx.Paths.CargoDir()) {
		return nil, nil
	}

	installer := filepath.Join(ctx.Paths.CacheDir(), "rustup-init")
	return []operations.Operation{
		{
			Type:   operations.DownloadFile,
			Step:   s.Name(),
			URL:    ctx.Config.Installers.Rustup,
			Target: installer,
			Mode:   0755,
		},
		{
			Type:    operations.RunCommand,
			Step:    s.Name(),
			Command: execx.Command{Name: installer, Args: []string{"-y", "--no-modify-path"}},
		},
	}, nil
}
