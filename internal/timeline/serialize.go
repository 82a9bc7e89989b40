package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal serializes a project to an indented JSON document. Round-tripping
// through Unmarshal is lossless for every model field.
func Marshal(p *Project) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal parses a project document and validates its invariants.
func Unmarshal(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	// Overlap checking compares neighbors, so order must be restored before
	// validation runs.
	for _, tr := range p.Timeline.Tracks {
		tr.SortClips()
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project document: %w", err)
	}
	return &p, nil
}

// Save writes a project to a JSON file.
func Save(p *Project, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from a JSON file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
