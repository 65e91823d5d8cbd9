package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faunadata/fauna/internal/constants"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode renders cfg as json, toml or yaml. Anything else is treated as yaml.
func Encode(cfg *ServerConfig, format string) ([]byte, error) {
	var data []byte
	var err error

	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case "toml":
		data, err = toml.Marshal(cfg)
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Save writes cfg to path in the format implied by its extension.
func Save(cfg *ServerConfig, path string) error {
	data, err := Encode(cfg, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.ModeDirPrivate); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, constants.ModeFileDefault)
}
