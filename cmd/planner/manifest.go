package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nomadstar/classplanner/internal/rows"
)

// loadManifest reads a manifest YAML file mapping sheet names to the three
// CSV paths they resolve to, following the same os.ReadFile-then-
// yaml.Unmarshal shape the pack's aleutian CLI uses for its own
// config.yaml.
func loadManifest(path string) (rows.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rows.Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m rows.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return rows.Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}
