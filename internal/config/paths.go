package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faunadata/fauna/internal/constants"
)

func ensureDir(dirPath string) error {
	return os.MkdirAll(dirPath, constants.ModeDirPrivate)
}

// ConfigDir returns the fauna configuration directory, creating it if needed.
// FAUNA_CONFIG_DIR overrides the default of ~/.config/fauna.
func ConfigDir() (string, error) {
	if envPath, ok := os.LookupEnv(constants.EnvVarConfigDir); ok && envPath != "" {
		if strings.HasPrefix(envPath, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			envPath = filepath.Join(home, envPath[2:])
		}
		if err := ensureDir(envPath); err != nil {
			return "", err
		}
		return envPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, ".config", "fauna")
	if err := ensureDir(path); err != nil {
		return "", err
	}
	return path, nil
}

// DefaultConfigPath is FAUNA_CONFIG when set, otherwise faunad.yaml in ConfigDir.
func DefaultConfigPath() (string, error) {
	if p, ok := os.LookupEnv(constants.EnvVarConfigFile); ok && p != "" {
		return p, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ServerConfigFileName), nil
}
