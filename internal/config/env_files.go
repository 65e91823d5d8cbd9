package config

import (
	"path/filepath"

	"github.com/faunadata/fauna/internal/constants"
	"github.com/joho/godotenv"
)

// LoadEnvFiles loads .env from the working directory and then from the config
// directory. Variables already set in the environment are never overwritten,
// and missing files are ignored. It returns the files that were loaded.
func LoadEnvFiles() []string {
	candidates := []string{constants.ConfigEnvFileName}
	if configDir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(configDir, constants.ConfigEnvFileName))
	}

	var loaded []string
	for _, path := range candidates {
		if err := godotenv.Load(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	return loaded
}
