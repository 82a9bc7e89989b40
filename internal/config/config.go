package config

// ExportSettings describes one video export request.
type ExportSettings struct {
	Format           string  `json:"format" yaml:"format"` // container: mp4, webm, mov
	Codec            string  `json:"codec" yaml:"codec"`   // empty: pick best available
	Width            int     `json:"width" yaml:"width"`
	Height           int     `json:"height" yaml:"height"`
	FrameRate        float64 `json:"frameRate" yaml:"frameRate"`
	Bitrate          int     `json:"bitrate,omitempty" yaml:"bitrate,omitempty"` // kbit/s
	BitrateMode      string  `json:"bitrateMode,omitempty" yaml:"bitrateMode,omitempty"`
	Quality          int     `json:"quality" yaml:"quality"` // CRF for software encoders
	KeyframeInterval int     `json:"keyframeInterval,omitempty" yaml:"keyframeInterval,omitempty"`

	Audio     AudioExportSettings `json:"audio" yaml:"audio"`
	Upscaling UpscalingSettings   `json:"upscaling,omitempty" yaml:"upscaling,omitempty"`
}

// AudioExportSettings describes the audio mixdown target.
type AudioExportSettings struct {
	Format     string `json:"format,omitempty" yaml:"format,omitempty"` // aac, mp3, wav
	SampleRate int    `json:"sampleRate" yaml:"sampleRate"`
	Channels   int    `json:"channels" yaml:"channels"`
	Bitrate    int    `json:"bitrate,omitempty" yaml:"bitrate,omitempty"` // kbit/s
}

// UpscalingSettings turns on the edge-directed upscale pass when the export
// resolution exceeds the project resolution.
type UpscalingSettings struct {
	Enabled    bool    `json:"enabled" yaml:"enabled"`
	Quality    string  `json:"quality,omitempty" yaml:"quality,omitempty"` // fast, best
	Sharpening float64 `json:"sharpening,omitempty" yaml:"sharpening,omitempty"`
}

// Default fills unset fields with workable values.
func (s ExportSettings) Default() ExportSettings {
	if s.Format == "" {
		s.Format = "mp4"
	}
	if s.FrameRate <= 0 {
		s.FrameRate = 30
	}
	if s.Quality <= 0 {
		s.Quality = 23
	}
	if s.Audio.SampleRate <= 0 {
		s.Audio.SampleRate = 48000
	}
	if s.Audio.Channels <= 0 {
		s.Audio.Channels = 2
	}
	if s.Audio.Bitrate <= 0 {
		s.Audio.Bitrate = 192
	}
	return s
}
