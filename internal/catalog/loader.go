package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileCatalog mirrors the on-disk catalog layout: species grouped by tier,
// tiers in shop order.
type fileCatalog struct {
	Basic     []Species `yaml:"basic"`
	Rare      []Species `yaml:"rare"`
	Legendary []Species `yaml:"legendary"`
}

// Load reads a YAML species catalog. The loaded table fully replaces the
// built-in one.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileCatalog
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	ordered := make([]Species, 0, len(fc.Basic)+len(fc.Rare)+len(fc.Legendary))
	ordered = append(ordered, fc.Basic...)
	ordered = append(ordered, fc.Rare...)
	ordered = append(ordered, fc.Legendary...)
	if len(ordered) == 0 {
		return nil, fmt.Errorf("catalog %s defines no species", path)
	}
	for i, sp := range ordered {
		if sp.Name == "" {
			return nil, fmt.Errorf("catalog %s: species %d has no name", path, i)
		}
		if sp.Cost < 0 {
			return nil, fmt.Errorf("catalog %s: species %q has negative cost", path, sp.Name)
		}
	}
	return New(ordered...), nil
}
