package common

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// ReadManifest reads and decodes a manifest file. A manifest without a name
// takes the name of its file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	if m.Name == "" {
		m.Name = ManifestBaseName(filepath.Base(path))
	}
	return m, nil
}

// ParseManifest decodes manifest JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
