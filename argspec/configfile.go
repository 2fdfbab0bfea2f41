package argspec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads configuration overrides from a TOML, YAML, or JSON
// file (chosen by extension) on top of DefaultConfig, then validates the
// result. Fields absent from the file keep their defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("cannot read config file %q: %v", path, err))
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return nil, NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("config file %q has unsupported extension (want .toml, .yaml, .yml, or .json)", path))
	}
	if err != nil {
		return nil, NewParseError(ErrorTypeInvalidConfiguration,
			fmt.Sprintf("cannot decode config file %q: %v", path, err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
