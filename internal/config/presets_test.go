package config

import (
	"path/filepath"
	"testing"
)

func TestBuiltinPresets(t *testing.T) {
	tests := []struct {
		name          string
		ok            bool
		width, height int
	}{
		{"16:9", true, 1920, 1080},
		{"9:16", true, 1080, 1920},
		{"4:5", true, 1080, 1350},
		{"21:9", false, 0, 0},
		{"", false, 0, 0},
	}
	for _, tt := range tests {
		s, ok := BuiltinPreset(tt.name)
		if ok != tt.ok {
			t.Errorf("BuiltinPreset(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if s.Width != tt.width || s.Height != tt.height {
			t.Errorf("BuiltinPreset(%q) = %dx%d, want %dx%d", tt.name, s.Width, s.Height, tt.width, tt.height)
		}
		if s.Format != "mp4" || s.FrameRate != 30 || s.Quality != 23 {
			t.Errorf("BuiltinPreset(%q) missing defaults: %+v", tt.name, s)
		}
	}
}

func TestDefaultFillsUnsetOnly(t *testing.T) {
	s := ExportSettings{Format: "webm", FrameRate: 60, Quality: 18}.Default()
	if s.Format != "webm" || s.FrameRate != 60 || s.Quality != 18 {
		t.Errorf("Default overwrote explicit fields: %+v", s)
	}
	if s.Audio.SampleRate != 48000 || s.Audio.Channels != 2 || s.Audio.Bitrate != 192 {
		t.Errorf("Default left audio unset: %+v", s.Audio)
	}
}

func TestPresetFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	pf := &PresetFile{
		Version: "1",
		Presets: []Preset{
			{
				Name: "archive",
				Settings: ExportSettings{
					Format: "mov", Codec: "libx264",
					Width: 3840, Height: 2160, FrameRate: 25,
					Quality:   16,
					Audio:     AudioExportSettings{Format: "wav", SampleRate: 48000, Channels: 2},
					Upscaling: UpscalingSettings{Enabled: true, Quality: "best", Sharpening: 0.4},
				},
			},
			{
				Name:     "draft",
				Settings: ExportSettings{Width: 640, Height: 360},
			},
		},
	}
	if err := WritePresets(pf, path); err != nil {
		t.Fatalf("WritePresets: %v", err)
	}

	got, err := ReadPresets(path)
	if err != nil {
		t.Fatalf("ReadPresets: %v", err)
	}
	if len(got.Presets) != 2 {
		t.Fatalf("presets = %d, want 2", len(got.Presets))
	}
	arch := got.Presets[0].Settings
	if arch.Codec != "libx264" || arch.Width != 3840 || !arch.Upscaling.Enabled || arch.Upscaling.Sharpening != 0.4 {
		t.Errorf("archive preset corrupted by round trip: %+v", arch)
	}
}

func TestFindPresetAppliesDefaults(t *testing.T) {
	pf := &PresetFile{Presets: []Preset{
		{Name: "draft", Settings: ExportSettings{Width: 640, Height: 360}},
	}}

	s, err := pf.FindPreset("draft")
	if err != nil {
		t.Fatalf("FindPreset: %v", err)
	}
	if s.Width != 640 || s.Format != "mp4" || s.Audio.SampleRate != 48000 {
		t.Errorf("FindPreset should return settings with defaults filled: %+v", s)
	}

	if _, err := pf.FindPreset("missing"); err == nil {
		t.Error("FindPreset on an unknown name should fail")
	}
}

func TestReadPresetsRejectsBadFile(t *testing.T) {
	if _, err := ReadPresets(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("reading a missing file should fail")
	}
}
