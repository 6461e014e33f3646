package solver

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
)

// ConfigPath points to an optional JSON file overriding where external
// solver executables and model files live. Relative paths resolve against
// the working directory.
var ConfigPath = "config.json"

type toolConfig struct {
	Executables map[string]string `mapstructure:"executables"`
	Models      map[string]string `mapstructure:"models"`
}

func loadToolConfig() toolConfig {
	var cfg toolConfig
	raw, err := os.ReadFile(ConfigPath)
	if err != nil {
		return cfg
	}
	var loose map[string]any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return cfg
	}
	if err := mapstructure.Decode(loose, &cfg); err != nil {
		return toolConfig{}
	}
	return cfg
}

// executablePath resolves a solver executable, falling back to a bare name
// looked up on PATH.
func executablePath(name string) string {
	if path, found := loadToolConfig().Executables[name]; found {
		return path
	}
	return name
}

// modelPath resolves an external model file, such as the MiniZinc model.
func modelPath(name, fallback string) string {
	if path, found := loadToolConfig().Models[name]; found {
		return path
	}
	return fallback
}
