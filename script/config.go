package script

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the script pipeline. It is read from a .verba.yaml file.
type Config struct {
	Name string `yaml:"name"`
	// Extensions are the file extensions treated as scripts.
	Extensions []string `yaml:"extensions"`
	// IgnorePaths are path fragments excluded from directory runs.
	IgnorePaths []string `yaml:"ignore-paths"`
	// MaxErrors aborts a file's report after this many errors; 0 means
	// unlimited.
	MaxErrors int `yaml:"max-errors"`
	// Colors toggles colored report output.
	Colors bool `yaml:"colors"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Name:       "verba",
		Extensions: []string{".vb", ".verba"},
		Colors:     true,
	}
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		return config, nil
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultConfig().Extensions
	}
	return config, nil
}
