package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is a named export configuration, loadable from a YAML file.
type Preset struct {
	Name     string         `yaml:"name"`
	Settings ExportSettings `yaml:"settings"`
}

// PresetFile is the on-disk preset collection format.
type PresetFile struct {
	Version string   `yaml:"version"`
	Presets []Preset `yaml:"presets"`
}

// BuiltinPreset returns one of the stock aspect-ratio presets:
// "16:9", "9:16" (Shorts/TikTok), "4:5" (Instagram).
func BuiltinPreset(name string) (ExportSettings, bool) {
	s := ExportSettings{}.Default()
	switch name {
	case "16:9":
		s.Width, s.Height = 1920, 1080
	case "9:16":
		s.Width, s.Height = 1080, 1920
	case "4:5":
		s.Width, s.Height = 1080, 1350
	default:
		return ExportSettings{}, false
	}
	return s, true
}

// WritePresets writes a preset collection to a YAML file.
func WritePresets(pf *PresetFile, path string) error {
	data, err := yaml.Marshal(pf)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPresets reads a preset collection from a YAML file.
func ReadPresets(path string) (*PresetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}

// FindPreset looks a preset up by name in a loaded file.
func (pf *PresetFile) FindPreset(name string) (ExportSettings, error) {
	for _, p := range pf.Presets {
		if p.Name == name {
			return p.Settings.Default(), nil
		}
	}
	return ExportSettings{}, fmt.Errorf("пресет %q не найден", name)
}
