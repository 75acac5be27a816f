package steps

import (
	"os"
	"path/filepath"

	"github.com/devinit-cli/devinit/pkg/execx"
	"github.com/devinit-cli/devinit/pkg/operations"
)

// OhMyZshStep installs the oh-my-zsh framework via its upstream
// installer, run non-interactively so it neither switches the shell nor
// replaces the .zshrc devinit deploys later.
type OhMyZshStep struct{}

func (s *OhMyZshStep) Name() string        { return "oh-my-zsh" }
func (s *OhMyZshStep) Description() string { return "oh-my-zsh shell framework" }

func (s *OhMyZshStep) Check(ctx Context) (CheckResult, error) {
	if dirExists(ctx.Paths.OhMyZshDir()) {
		return CheckResult{State: StateInstalled, Message: "~/.oh-my-zsh exists"}, nil
	}
	return CheckResult{State: StatePending, Message: "~/.oh-my-zsh not found"}, nil
}

func (s *OhMyZshStep) Operations(ctx Context) ([]operations.Operation, error) {
	if dirExists(ctx.Paths.OhMyZshDir()) {
		return nil, nil
	}

	installer := filepath.Join(ctx.Paths.CacheDir(), "install-ohmyzsh.sh")
	return []operations.Operation{
		{
			Type:   operations.DownloadFile,
			Step:   s.Name(),
			URL:    ctx.Config.Installers.OhMyZsh,
			Target: installer,
			Mode:   0755,
		},
		{
			Type: operations.RunCommand,
			Step: s.Name(),
			Command: execx.Command{
				Name: "sh",
				Args: []string{installer},
				Env:  []string{"RUNZSH=no", "CHSH=no", "KEEP_ZSHRC=yes"},
			},
		},
	}, nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
