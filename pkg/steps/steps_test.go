package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devinit-cli/devinit/pkg/config"
	"github.com/devinit-cli/devinit/pkg/operations"
	"github.com/devinit-cli/devinit/pkg/paths"
	"github.com/devinit-cli/devinit/pkg/platform"
)

// testContext builds a Context rooted at a temp home. bins is the set
// of binaries the fake PATH probe reports as present.
func testContext(t *testing.T, bins ...string) Context {
	t.Helper()

	home := t.TempDir()
	p, err := paths.New(home)
	require.NoError(t, err)

	cfg, err := config.Load("")
	require.NoError(t, err)

	available := make(map[string]bool, len(bins))
	for _, b := range bins {
		available[b] = true
	}
	checker := platform.NewCheckerWith(func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", os.ErrNotExist
	}, func() int { return 1000 })

	return Context{
		Config:   cfg,
		Paths:    p,
		Platform: checker,
		PkgMgr:   platform.AptGet,
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

func TestCatalogOrder(t *testing.T) {
	var names []string
	for _, s := range Catalog() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"packages", "oh-my-zsh", "zsh-plugins", "zshrc",
		"tpm", "tmux-conf", "neovim", "node", "golang", "rust",
	}, names)
}

func TestByName(t *testing.T) {
	assert.NotNil(t, ByName("zshrc"))
	assert.Nil(t, ByName("nonesuch"))
}

func TestPackagesStep(t *testing.T) {
	step := &PackagesStep{}

	t.Run("all missing", func(t *testing.T) {
		ctx := testContext(t)

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePending, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, "sudo apt-get update", ops[0].Command.String())
		assert.Contains(t, ops[1].Command.String(), "apt-get install -y")
		assert.Contains(t, ops[1].Command.Args, "git")
		assert.Contains(t, ops[1].Command.Args, "build-essential")
	})

	t.Run("partial installs only the missing packages", func(t *testing.T) {
		ctx := testContext(t, "git", "curl", "zsh")

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePartial, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.NotContains(t, ops[1].Command.Args, "git")
		assert.Contains(t, ops[1].Command.Args, "tmux")
	})

	t.Run("meta packages probed through their binaries", func(t *testing.T) {
		ctx := testContext(t,
			"git", "curl", "zsh", "tmux", "gcc", "cmake", "msgfmt", "ninja", "unzip")

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		assert.Empty(t, ops)
	})
}

func TestOhMyZshStep(t *testing.T) {
	step := &OhMyZshStep{}

	t.Run("pending", func(t *testing.T) {
		ctx := testContext(t)

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePending, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, operations.DownloadFile, ops[0].Type)
		assert.Equal(t, ctx.Config.Installers.OhMyZsh, ops[0].URL)
		assert.Equal(t, operations.RunCommand, ops[1].Type)
		assert.Contains(t, ops[1].Command.Env, "RUNZSH=no")
		assert.Contains(t, ops[1].Command.Env, "KEEP_ZSHRC=yes")
	})

	t.Run("installed when the directory exists", func(t *testing.T) {
		ctx := testContext(t)
		mkdir(t, ctx.Paths.OhMyZshDir())

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		assert.Empty(t, ops)
	})
}

func TestZshPluginsStep(t *testing.T) {
	step := &ZshPluginsStep{}

	t.Run("clones every configured plugin", func(t *testing.T) {
		ctx := testContext(t)

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePending, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, len(ctx.Config.Plugins))
		for i, op := range ops {
			assert.Equal(t, operations.CloneRepo, op.Type)
			assert.Equal(t, ctx.Config.Plugins[i].URL, op.URL)
			assert.Equal(t, ctx.Paths.OhMyZshPluginDir(ctx.Config.Plugins[i].Name), op.Target)
			assert.Equal(t, 1, op.Depth)
		}
	})

	t.Run("partial clones only the missing plugin", func(t *testing.T) {
		ctx := testContext(t)
		require.NotEmpty(t, ctx.Config.Plugins)
		mkdir(t, ctx.Paths.OhMyZshPluginDir(ctx.Config.Plugins[0].Name))

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePartial, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, len(ctx.Config.Plugins)-1)
		for _, op := range ops {
			assert.NotEqual(t, ctx.Config.Plugins[0].URL, op.URL)
		}
	})

	t.Run("installed", func(t *testing.T) {
		ctx := testContext(t)
		for _, plugin := range ctx.Config.Plugins {
			mkdir(t, ctx.Paths.OhMyZshPluginDir(plugin.Name))
		}

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)
	})
}

func TestZshrcStep(t *testing.T) {
	step := &ZshrcStep{}

	t.Run("not deployed", func(t *testing.T) {
		ctx := testContext(t)

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePending, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 1)
		assert.Equal(t, operations.CopyFile, ops[0].Type)
		assert.Equal(t, ctx.Paths.Zshrc(), ops[0].Target)
		assert.Equal(t, zshrcTemplate, ops[0].Content)
		assert.Equal(t, os.FileMode(0644), ops[0].Mode)
	})

	t.Run("up to date", func(t *testing.T) {
		ctx := testContext(t)
		require.NoError(t, os.WriteFile(ctx.Paths.Zshrc(), zshrcTemplate, 0644))

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		assert.Empty(t, ops)
	})

	t.Run("differing content is overwritten", func(t *testing.T) {
		ctx := testContext(t)
		require.NoError(t, os.WriteFile(ctx.Paths.Zshrc(), []byte("# mine\n"), 0644))

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePending, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 1)
	})
}

func TestTpmStep(t *testing.T) {
	step := &TpmStep{}
	ctx := testContext(t)

	ops, err := step.Operations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, operations.CloneRepo, ops[0].Type)
	assert.Equal(t, ctx.Paths.TpmDir(), ops[0].Target)

	mkdir(t, ctx.Paths.TpmDir())
	result, err := step.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateInstalled, result.State)
}

func TestTmuxConfStep(t *testing.T) {
	step := &TmuxConfStep{}
	ctx := testContext(t)

	ops, err := step.Operations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	assert.Equal(t, ctx.Paths.TmuxConf(), ops[0].Target)
	assert.Equal(t, tmuxConfTemplate, ops[0].Content)
}

func TestNeovimStep(t *testing.T) {
	step := &NeovimStep{}

	t.Run("full build and config seed", func(t *testing.T) {
		ctx := testContext(t)

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePending, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 5)
		assert.Equal(t, operations.CloneRepo, ops[0].Type)
		assert.Equal(t, ctx.Config.Neovim.Repo, ops[0].URL)
		assert.Equal(t, "stable", ops[0].Ref)
		assert.Equal(t, "make CMAKE_BUILD_TYPE=RelWithDebInfo", ops[1].Command.String())
		assert.Equal(t, "sudo make install", ops[2].Command.String())
		assert.Equal(t, operations.CloneRepo, ops[3].Type)
		assert.Equal(t, ctx.Paths.NvimConfigDir(), ops[3].Target)
		assert.Equal(t, "rm", ops[4].Command.Name)
	})

	t.Run("binary present seeds config only", func(t *testing.T) {
		ctx := testContext(t, "nvim")

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StatePartial, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 2)
		assert.Equal(t, operations.CloneRepo, ops[0].Type)
		assert.Equal(t, ctx.Config.LazyVim.URL, ops[0].URL)
	})

	t.Run("installed", func(t *testing.T) {
		ctx := testContext(t, "nvim")
		mkdir(t, ctx.Paths.NvimConfigDir())

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		assert.Empty(t, ops)
	})
}

func TestNodeStep(t *testing.T) {
	step := &NodeStep{}
	ctx := testContext(t)

	ops, err := step.Operations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, operations.DownloadFile, ops[0].Type)
	assert.Equal(t, ctx.Config.Installers.Nvm, ops[0].URL)
	assert.Equal(t, "bash", ops[1].Command.Name)
	assert.Contains(t, ops[2].Command.Args[1], "nvm install --lts")

	mkdir(t, ctx.Paths.NvmDir())
	result, err := step.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateInstalled, result.State)
}

func TestGolangStep(t *testing.T) {
	step := &GolangStep{}

	t.Run("tarball install", func(t *testing.T) {
		ctx := testContext(t)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		require.Len(t, ops, 3)
		assert.Equal(t, operations.DownloadFile, ops[0].Type)
		assert.Equal(t, ctx.Config.Installers.GoTarball, ops[0].URL)
		assert.Equal(t, "mkdir", ops[1].Command.Name)
		assert.Equal(t, "tar", ops[2].Command.Name)
		assert.Contains(t, ops[2].Command.Args, filepath.Dir(ctx.Paths.GoInstallDir()))
	})

	t.Run("go on PATH counts as installed", func(t *testing.T) {
		ctx := testContext(t, "go")

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)

		ops, err := step.Operations(ctx)
		require.NoError(t, err)
		assert.Empty(t, ops)
	})

	t.Run("existing install dir counts as installed", func(t *testing.T) {
		ctx := testContext(t)
		mkdir(t, ctx.Paths.GoInstallDir())

		result, err := step.Check(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateInstalled, result.State)
	})
}

func TestRustStep(t *testing.T) {
	step := &RustStep{}
	ctx := testContext(t)

	ops, err := step.Operations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, operations.DownloadFile, ops[0].Type)
	assert.Equal(t, ctx.Config.Installers.Rustup, ops[0].URL)
	assert.Equal(t, []string{"-y", "--no-modify-path"}, ops[1].Command.Args)

	mkdir(t, ctx.Paths.CargoDir())
	result, err := step.Check(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateInstalled, result.State)
}
