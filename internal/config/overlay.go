package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type directoryFile struct {
	Directory map[string]string `yaml:"directory"`
}

// OverlayDirectory merges company -> domain entries from a standalone
// directory.yml over whatever the main config carries. The file is optional.
func OverlayDirectory(cfg *Config, directoryPath string) error {
	b, err := os.ReadFile(directoryPath)
	if err != nil {
		// Missing directory file should not kill startup
		return nil
	}

	var df directoryFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		return err
	}

	if len(df.Directory) == 0 {
		return nil
	}
	if cfg.Directory == nil {
		cfg.Directory = map[string]string{}
	}
	for company, domain := range df.Directory {
		cfg.Directory[company] = domain
	}
	return nil
}
