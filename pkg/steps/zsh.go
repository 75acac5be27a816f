package steps

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/devinit-cli/devinit/pkg/operations"
)

//go:embed templates/zshrc
var zshrcTemplate []byte

// ZshPluginsStep clones the custom oh-my-zsh plugins into
// ~/.oh-my-zsh/custom/plugins. Each plugin is skipped independently
// when its directory already exists.
type ZshPluginsStep struct{}

func (s *ZshPluginsStep) Name() string        { return "zsh-plugins" }
func (s *ZshPluginsStep) Description() string { return "Custom oh-my-zsh plugins" }

func (s *ZshPluginsStep) missing(ctx Context) []int {
	var missing []int
	for i, plugin := range ctx.Config.Plugins {
		if !dirExists(ctx.Paths.OhMyZshPluginDir(plugin.Name)) {
			missing = append(missing, i)
		}
	}
	return missing
}

func (s *ZshPluginsStep) Check(ctx Context) (CheckResult, error) {
	missing := s.missing(ctx)
	switch {
	case len(missing) == 0:
		return CheckResult{State: StateInstalled, Message: "all plugins present"}, nil
	case len(missing) == len(ctx.Config.Plugins):
		return CheckResult{State: StatePending,
			Message: fmt.Sprintf("%d plugins to clone", len(missing))}, nil
	default:
		var names []string
		for _, i := range missing {
			names = append(names, ctx.Config.Plugins[i].Name)
		}
		return CheckResult{State: StatePartial,
			Message: fmt.Sprintf("missing: %s", strings.Join(names, ", "))}, nil
	}
}

func (s *ZshPluginsStep) Operations(ctx Context) ([]operations.Operation, error) {
	var ops []operations.Operation
	for _, i := range s.missing(ctx) {
		plugin := ctx.Config.Plugins[i]
		ops = append(ops, operations.Operation{
			Type:   operations.CloneRepo,
			Step:   s.Name(),
			URL:    plugin.URL,
			Ref:    plugin.Ref,
			Target: ctx.Paths.OhMyZshPluginDir(plugin.Name),
			Depth:  1,
		})
	}
	return ops, nil
}

// ZshrcStep deploys the bundled .zshrc. The step is a no-op when the
// deployed file already matches the bundled content; anything else is
// overwritten (after backup, when enabled).
type ZshrcStep struct{}

func (s *ZshrcStep) Name() string        { return "zshrc" }
func (s *ZshrcStep) Description() string { return "Deploy .zshrc" }

func (s *ZshrcStep) Check(ctx Context) (CheckResult, error) {
	return checkDeployedFile(ctx.Paths.Zshrc(), zshrcTemplate)
}

func (s *ZshrcStep) Operations(ctx Context) ([]operations.Operation, error) {
	return deployFileOperations(s.Name(), ".zshrc", ctx.Paths.Zshrc(), zshrcTemplate)
}

// checkDeployedFile compares a deployed config against the bundled
// content. Identical content means installed.
func checkDeployedFile(target string, content []byte) (CheckResult, error) {
	existing, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return CheckResult{State: StatePending, Message: "not deployed"}, nil
	}
	if err != nil {
		return CheckResult{}, err
	}
	if bytes.Equal(existing, content) {
		return CheckResult{State: StateInstalled, Message: "up to date"}, nil
	}
	return CheckResult{State: StatePending, Message: "content differs, will overwrite"}, nil
}

// deployFileOperations declares the CopyFile for a bundled config, or
// nothing when the target already matches.
func deployFileOperations(step, source, target string, content []byte) ([]operations.Operation, error) {
	result, err := checkDeployedFile(target, content)
	if err != nil {
		return nil, err
	}
	if result.State == StateInstalled {
		return nil, nil
	}

	return []operations.Operation{{
		Type:    operations.CopyFile,
		Step:    step,
		Source:  source,
		Target:  target,
		Content: content,
		Mode:    0644,
	}}, nil
}
