package steps

import (
	_ "embed"

	"github.com/devinit-cli/devinit/pkg/operations"
)

//go:embed templates/tmux.conf
var tmuxConfTemplate []byte

// TpmStep clones the tmux plugin manager into ~/.tmux/plugins/tpm.
type TpmStep struct{}

func (s *TpmStep) Name() string        { return "tpm" }
func (s *TpmStep) Description() string { return "tmux plugin manager" }

func (s *TpmStep) Check(ctx Context) (CheckResult, error) {
	if dirExists(ctx.Paths.TpmDir()) {
		return CheckResult{State: StateInstalled, Message: "~/.tmux/plugins/tpm exists"}, nil
	}
	return CheckResult{State: StatePending, Message: "tpm not cloned"}, nil
}

func (s *TpmStep) Operations(ctx Context) ([]operations.Operation, error) {
	if dirExists(ctx.Paths.TpmDir()) {
		return nil, nil
	}

	return []operations.Operation{{
		Type:   operations.CloneRepo,
		Step:   s.Name(),
		URL:    ctx.Config.Tpm.URL,
		Ref:    ctx.Config.Tpm.Ref,
		Target: ctx.Paths.TpmDir(),
		Depth:  1,
	}}, nil
}

// TmuxConfStep deploys the bundled .tmux.conf.
type TmuxConfStep struct{}

func (s *TmuxConfStep) Name() string        { return "tmux-conf" }
func (s *TmuxConfStep) Description() string { return "Deploy .tmux.conf" }

func (s *TmuxConfStep) Check(ctx Context) (CheckResult, error) {
	return checkDeployedFile(ctx.Paths.TmuxConf(), tmuxConfTemplate)
}

func (s *TmuxConfStep) Operations(ctx Context) ([]operations.Operation, error) {
	return deployFileOperations(s.Name(), ".tmux.conf", ctx.Paths.TmuxConf(), tmuxConfTemplate)
}
