package harness

import (
	"fmt"
	"path"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ScenarioPattern matches scenario files at any depth.
const ScenarioPattern = "**/*.{yaml,yml,toml}"

// Discover returns the scenario files below root in fsys, sorted by path.
func Discover(fsys afero.Fs, root string) ([]string, error) {
	matches, err := doublestar.Glob(afero.NewIOFS(fsys), path.Join(root, ScenarioPattern))
	if err != nil {
		return nil, fmt.Errorf("discover scenarios in %s: %w", root, err)
	}
	slices.Sort(matches)
	return matches, nil
}

// LoadAll discovers and loads every scenario below root. Loading stops at
// the first file that fails.
func LoadAll(fsys afero.Fs, root string) ([]*Scenario, error) {
	files, err := Discover(fsys, root)
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(files))
	for _, f := range files {
		s, err := LoadScenario(fsys, f)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
