// Package paths provides centralized path handling for devinit.
// It implements XDG Base Directory specification compliance and
// provides the canonical locations of every file and directory the
// bootstrap touches.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/devinit-cli/devinit/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for devinit
	EnvConfigDir = "DEVINIT_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for devinit
	EnvDataDir = "DEVINIT_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for devinit
	EnvStateDir = "DEVINIT_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Directory and file names used by the bootstrap targets.
// These mirror the layout the deployed environment expects and are
// not user-configurable.
const (
	AppDirName = "devinit"

	ConfigFileName = "devinit.toml"
	LogFileName    = "devinit.log"

	OhMyZshDirName     = ".oh-my-zsh"
	TmuxPluginsDirName = ".tmux/plugins"
	TpmDirName         = "tpm"
	NvmDirName         = ".nvm"
	CargoDirName       = ".cargo"
	ZshrcName          = ".zshrc"
	TmuxConfName       = ".tmux.conf"
)

// Paths provides centralized path management for devinit
type Paths struct {
	homeDir   string
	configDir string
	dataDir   string
	stateDir  string
	cacheDir  string
}

// New creates a Paths instance rooted at the given home directory.
// An empty home resolves the current user's home directory.
func New(home string) (*Paths, error) {
	if home == "" {
		var err error
		home, err = GetHomeDirectory()
		if err != nil {
			return nil, err
		}
	}

	p := &Paths{homeDir: home}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = dir
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.dataDir = dir
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = dir
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)

	return p, nil
}

// HomeDir returns the home directory all targets are resolved against.
func (p *Paths) HomeDir() string { return p.homeDir }

// ConfigDir returns devinit's own config directory.
func (p *Paths) ConfigDir() string { return p.configDir }

// ConfigFilePath returns the path of the user config file.
func (p *Paths) ConfigFilePath() string { return filepath.Join(p.configDir, ConfigFileName) }

// DataDir returns devinit's data directory.
func (p *Paths) DataDir() string { return p.dataDir }

// StateDir returns devinit's state directory.
func (p *Paths) StateDir() string { return p.stateDir }

// CacheDir returns devinit's cache directory, used for downloaded installers.
func (p *Paths) CacheDir() string { return p.cacheDir }

// LogFilePath returns the path of the append-mode log file.
func (p *Paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

// Zshrc returns the deployment target for the bundled .zshrc.
func (p *Paths) Zshrc() string { return filepath.Join(p.homeDir, ZshrcName) }

// TmuxConf returns the deployment target for the bundled .tmux.conf.
func (p *Paths) TmuxConf() string { return filepath.Join(p.homeDir, TmuxConfName) }

// OhMyZshDir returns the oh-my-zsh installation directory.
func (p *Paths) OhMyZshDir() string { return filepath.Join(p.homeDir, OhMyZshDirName) }

// OhMyZshPluginDir returns the clone target for a custom oh-my-zsh plugin.
func (p *Paths) OhMyZshPluginDir(name string) string {
	return filepath.Join(p.OhMyZshDir(), "custom", "plugins", name)
}

// TpmDir returns the clone target for the tmux plugin manager.
func (p *Paths) TpmDir() string {
	return filepath.Join(p.homeDir, filepath.FromSlash(TmuxPluginsDirName), TpmDirName)
}

// NvimConfigDir returns the neovim configuration directory.
func (p *Paths) NvimConfigDir() string {
	return filepath.Join(p.homeDir, ".config", "nvim")
}

// NvmDir returns the nvm installation directory.
func (p *Paths) NvmDir() string { return filepath.Join(p.homeDir, NvmDirName) }

// CargoDir returns the rustup/cargo installation directory.
func (p *Paths) CargoDir() string { return filepath.Join(p.homeDir, CargoDirName) }

// GoInstallDir returns the Go toolchain installation directory.
func (p *Paths) GoInstallDir() string {
	return filepath.Join(p.homeDir, ".local", "go")
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable, and errors out rather than guessing a default.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrFileAccess,
		"unable to determine home directory: neither os.UserHomeDir() nor HOME are available")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot expand ~")
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}
