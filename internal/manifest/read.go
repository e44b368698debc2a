package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReadFile parses a manifest YAML file from disk. It mirrors Write so that
// a future unpack-style command could re-extract sprites from an atlas
// using only the manifest and the atlas image.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return &m, nil
}
