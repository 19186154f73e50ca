package blogtok

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeedYAML []byte

// Seed is the data inserted into an empty database on first start.
type Seed struct {
	Categories []SeedCategory    `yaml:"categories"`
	Settings   map[string]string `yaml:"settings"`
}

// SeedCategory is a default category.
type SeedCategory struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseSeed decodes seed data from YAML.
func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

// DefaultSeed returns the embedded seed data.
func DefaultSeed() Seed {
	s, err := ParseSeed(defaultSeedYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// settingsList returns the seed settings sorted by key.
func (s Seed) settingsList() []Setting {
	keys := make([]string, 0, len(s.Settings))
	for k := range s.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Setting, len(keys))
	for i, k := range keys {
		out[i] = Setting{Key: k, Value: s.Settings[k]}
	}
	return out
}
