package timeline

// MediaType classifies library entries.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
	MediaImage MediaType = "image"
)

// MediaItem is a media library entry. IsPlaceholder marks assets that are
// referenced but not resolved (missing file, pending import); clips pointing
// at a placeholder render a fixed placeholder visual instead of failing.
type MediaItem struct {
	ID            string    `json:"id"`
	Type          MediaType `json:"type"`
	Name          string    `json:"name"`
	Path          string    `json:"path,omitempty"`
	Width         int       `json:"width,omitempty"`
	Height        int       `json:"height,omitempty"`
	Duration      float64   `json:"duration,omitempty"`
	Channels      int       `json:"channels,omitempty"`
	FileSize      int64     `json:"fileSize,omitempty"`
	IsPlaceholder bool      `json:"isPlaceholder,omitempty"`
}
