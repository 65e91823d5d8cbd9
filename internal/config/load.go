package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/faunadata/fauna/internal/constants"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads the server config at path, applies environment overrides and
// defaults, and validates the result. A missing file yields the defaults.
// An empty path means the default location.
func Load(path string) (*ServerConfig, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func loadFile(path string) (*ServerConfig, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser, err := getConfigParser(path)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := checkUnknownFields(reflect.TypeOf(ServerConfig{}), k.Keys()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	decoderConfig := &mapstructure.DecoderConfig{
		TagName: "koanf",
		Result:  cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			PortDecodeHook(),
			DurationDecodeHook(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
	}
	unmarshalConf := koanf.UnmarshalConf{
		Tag:           "koanf",
		DecoderConfig: decoderConfig,
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides config values with FAUNA_* environment variables.
func applyEnv(cfg *ServerConfig) error {
	if v, ok := lookupEnv(constants.EnvVarHost); ok {
		cfg.Server.Host = v
	}
	if v, ok := lookupEnv(constants.EnvVarPort); ok {
		cfg.Server.Port = Port(v)
	}
	if v, ok := lookupEnv(constants.EnvVarLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookupEnv(constants.EnvVarLogFormat); ok {
		cfg.Log.Format = v
	}
	if v, ok := lookupEnv(constants.EnvVarDataFile); ok {
		cfg.Species.DataFile = v
	}
	if v, ok := lookupEnv(constants.EnvVarQueueLimit); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", constants.EnvVarQueueLimit, v)
		}
		cfg.Monitor.QueueLimit = n
	}
	return nil
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
