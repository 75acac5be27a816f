// Package config loads devinit's layered configuration: embedded TOML
// defaults, then the user config file, then DEVINIT_ environment
// variables, each layer overriding the previous one.
package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	devinterrors "github.com/devinit-cli/devinit/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment variable overrides,
// e.g. DEVINIT_INSTALLERS_RUSTUP=https://example.test/rustup.sh
const EnvPrefix = "DEVINIT_"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Packages lists the packages installed through the system package manager.
type Packages struct {
	Base []string `koanf:"base" toml:"base"`
}

// Installers holds the upstream installer URLs. Unpinned by default.
type Installers struct {
	OhMyZsh   string `koanf:"ohmyzsh" toml:"ohmyzsh"`
	Nvm       string `koanf:"nvm" toml:"nvm"`
	Rustup    string `koanf:"rustup" toml:"rustup"`
	GoTarball string `koanf:"gotarball" toml:"gotarball"`
}

// Plugin describes a third-party plugin repository to clone.
type Plugin struct {
	Name string `koanf:"name" toml:"name"`
	URL  string `koanf:"url" toml:"url"`
	Ref  string `koanf:"ref" toml:"ref,omitempty"`
}

// Repo describes a single clonable repository.
type Repo struct {
	URL string `koanf:"url" toml:"url"`
	Ref string `koanf:"ref" toml:"ref,omitempty"`
}

// Neovim configures the from-source neovim build.
type Neovim struct {
	Repo      string `koanf:"repo" toml:"repo"`
	Ref       string `koanf:"ref" toml:"ref"`
	BuildType string `koanf:"buildtype" toml:"buildtype"`
}

// Config is the effective merged configuration.
type Config struct {
	Packages   Packages   `koanf:"packages" toml:"packages"`
	Installers Installers `koanf:"installers" toml:"installers"`
	Plugins    []Plugin   `koanf:"plugins" toml:"plugins"`
	Tpm        Repo       `koanf:"tpm" toml:"tpm"`
	Neovim     Neovim     `koanf:"neovim" toml:"neovim"`
	LazyVim    Repo       `koanf:"lazyvim" toml:"lazyvim"`
}

// DefaultTOML returns the embedded default configuration file content.
func DefaultTOML() string { return string(defaultConfig) }

// Load builds the effective configuration. userFile may be empty or point
// at a file that does not exist; both mean "defaults plus env only".
func Load(userFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, devinterrors.Wrap(err, devinterrors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config file, when present
	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return nil, devinterrors.Wrapf(err, devinterrors.ErrConfigLoad,
					"failed to load config from %s", userFile)
			}
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, devinterrors.Wrap(err, devinterrors.ErrConfigLoad, "failed to load environment")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, devinterrors.Wrap(err, devinterrors.ErrConfigParse, "failed to unmarshal config")
	}

	return &cfg, nil
}
