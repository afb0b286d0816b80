package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/pisle-planner/internal/habitat"
)

var errMissingBasis = errors.New("missing -basis file")

// basisFlag registers the shared -basis flag on fs
func basisFlag(fs *flag.FlagSet) *string {
	return fs.String("basis", "", "YAML or JSON file mapping habitat to {level, gold, cost, hearts, multiplier}")
}

// loadBasis reads a basis file. JSON documents are valid YAML, so one
// decoder handles both.
func loadBasis(path string) (habitat.Collection, error) {
	if path == "" {
		return habitat.Collection{}, errMissingBasis
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return habitat.Collection{}, fmt.Errorf("failed to read basis file %s: %w", path, err)
	}

	var rows map[habitat.Kind]habitat.Input
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return habitat.Collection{}, fmt.Errorf("failed to parse basis file %s: %w", path, err)
	}

	return habitat.ParseInputs(rows)
}
