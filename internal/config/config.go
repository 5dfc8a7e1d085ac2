// Package config loads, validates, and bootstraps the engine's YAML config.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"outreach-engine/internal/domain"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		Provider string `yaml:"provider"`  // serpapi | ddg
		PageSize int    `yaml:"page_size"` // results per query
	} `yaml:"search"`

	Defaults struct {
		Companies     []string `yaml:"companies"`
		Cities        []string `yaml:"cities"`
		Schools       []string `yaml:"schools"`
		Levels        []string `yaml:"levels"`
		Keywords      []string `yaml:"keywords"`
		MaxPerCompany int      `yaml:"max_per_company"`
		Precision     string   `yaml:"precision"` // strict | balanced | search
	} `yaml:"defaults"`

	Keywords struct {
		FrontOffice []string `yaml:"front_office"`
		HR          []string `yaml:"hr"`
	} `yaml:"keywords"`

	// Extra company -> website domain entries merged over the built-in
	// directory. Lets users teach the engine boutique firms.
	Directory map[string]string `yaml:"directory"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Filters builds the engine request from config defaults. Explicit CLI values
// are layered on top by the caller.
func (c Config) Filters() domain.Filters {
	f := domain.Filters{
		Companies:           c.Defaults.Companies,
		Cities:              c.Defaults.Cities,
		Schools:             c.Defaults.Schools,
		Keywords:            c.Defaults.Keywords,
		FrontOfficeKeywords: c.Keywords.FrontOffice,
		HRKeywords:          c.Keywords.HR,
		MaxPerCompany:       c.Defaults.MaxPerCompany,
	}
	for _, s := range c.Defaults.Levels {
		if l := domain.ParseLevel(s); l != domain.LevelUnknown {
			f.Levels = append(f.Levels, l)
		}
	}
	return f
}
