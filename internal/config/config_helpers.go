package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
)

var supportedExtensions = []string{".json", ".yaml", ".yml", ".toml"}

func getConfigParser(configFile string) (koanf.Parser, error) {
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(configFile))
	switch ext {
	case ".json":
		parser = json.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported config file type %q (must be one of %s)", ext, strings.Join(supportedExtensions, ", "))
	}
	return parser, nil
}

// knownKeys lists the dotted koanf keys that t accepts. Struct keys are
// included because koanf keeps empty sections as leaves.
func knownKeys(t reflect.Type, prefix string, out map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		out[key] = true
		if field.Type.Kind() == reflect.Struct {
			knownKeys(field.Type, key, out)
		}
	}
}

// checkUnknownFields reports config keys that do not map to a field of t.
func checkUnknownFields(t reflect.Type, keys []string) error {
	known := make(map[string]bool)
	knownKeys(t, "", known)

	var unknown []string
	for _, k := range keys {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown config fields: %s", strings.Join(slices.Compact(unknown), ", "))
}
