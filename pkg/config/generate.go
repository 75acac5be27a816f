package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	devinterrors "github.com/devinit-cli/devinit/pkg/errors"
)

// WriteDefault writes the commented default configuration to path,
// creating parent directories. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return devinterrors.Newf(devinterrors.ErrInvalidInput,
			"config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return devinterrors.Wrap(err, devinterrors.ErrDirCreate, "creating config directory")
	}

	if err := os.WriteFile(path, defaultConfig, 0644); err != nil {
		return devinterrors.Wrap(err, devinterrors.ErrFileAccess, "writing config file")
	}

	return nil
}

// MarshalEffective serializes the effective merged configuration as TOML.
func MarshalEffective(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", devinterrors.Wrap(err, devinterrors.ErrInternal, "marshaling config")
	}
	return string(out), nil
}
