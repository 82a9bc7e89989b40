package timeline

import (
	"time"

	"github.com/google/uuid"
)

// MinClipDuration is the hard floor for clip length in seconds.
// Every trim/split operation enforces it.
const MinClipDuration = 0.1

// Settings holds the output parameters of a project.
type Settings struct {
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameRate  float64 `json:"frameRate"`
	SampleRate int     `json:"sampleRate"`
	Channels   int     `json:"channels"`
}

// Project is the root aggregate. It owns the timeline and the media library.
type Project struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Settings     Settings    `json:"settings"`
	Timeline     Timeline    `json:"timeline"`
	MediaLibrary []MediaItem `json:"mediaLibrary"`
	CreatedAt    time.Time   `json:"createdAt"`
	ModifiedAt   time.Time   `json:"modifiedAt"`
}

// Timeline is an ordered set of tracks. Track order is compositing z-order,
// later tracks render on top.
type Timeline struct {
	Tracks    []*Track   `json:"tracks"`
	Markers   []Marker   `json:"markers,omitempty"`
	Subtitles []Subtitle `json:"subtitles,omitempty"`
}

// Marker is a named point on the timeline ruler.
type Marker struct {
	ID    string  `json:"id"`
	Time  float64 `json:"time"`
	Label string  `json:"label"`
	Color string  `json:"color,omitempty"`
}

// Subtitle is a timed caption. Subtitles live beside tracks, not on them.
type Subtitle struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
}

// NewProject creates an empty project with the given output settings.
func NewProject(name string, s Settings) *Project {
	now := time.Now()
	return &Project{
		ID:         uuid.NewString(),
		Name:       name,
		Settings:   s,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// Duration is derived, not authoritative: the end of the last clip on any track.
func (p *Project) Duration() float64 {
	end := 0.0
	for _, tr := range p.Timeline.Tracks {
		for _, c := range tr.Clips {
			if e := c.End(); e > end {
				end = e
			}
		}
	}
	for _, s := range p.Timeline.Subtitles {
		if s.EndTime > end {
			end = s.EndTime
		}
	}
	return end
}

// Touch bumps ModifiedAt. Called by the edit engine after every successful
// mutation; downstream collaborators (autosave) key off this.
func (p *Project) Touch() {
	p.ModifiedAt = time.Now()
}

// TrackByID returns the track with the given id, or nil.
func (p *Project) TrackByID(id string) *Track {
	for _, tr := range p.Timeline.Tracks {
		if tr.ID == id {
			return tr
		}
	}
	return nil
}

// TrackIndex returns the z-order index of a track, or -1.
func (p *Project) TrackIndex(id string) int {
	for i, tr := range p.Timeline.Tracks {
		if tr.ID == id {
			return i
		}
	}
	return -1
}

// ClipByID returns the clip and its owning track, or nils.
func (p *Project) ClipByID(id string) (*Clip, *Track) {
	for _, tr := range p.Timeline.Tracks {
		for _, c := range tr.Clips {
			if c.ID == id {
				return c, tr
			}
		}
	}
	return nil, nil
}

// MediaByID returns the media library entry with the given id, or nil.
func (p *Project) MediaByID(id string) *MediaItem {
	for i := range p.MediaLibrary {
		if p.MediaLibrary[i].ID == id {
			return &p.MediaLibrary[i]
		}
	}
	return nil
}

// Clone returns a deep copy. The compositor and the export pipeline consume
// clones so that live edits never race an in-flight render.
func (p *Project) Clone() *Project {
	cp := *p
	cp.MediaLibrary = append([]MediaItem(nil), p.MediaLibrary...)
	cp.Timeline.Markers = append([]Marker(nil), p.Timeline.Markers...)
	cp.Timeline.Subtitles = append([]Subtitle(nil), p.Timeline.Subtitles...)
	cp.Timeline.Tracks = make([]*Track, len(p.Timeline.Tracks))
	for i, tr := range p.Timeline.Tracks {
		cp.Timeline.Tracks[i] = tr.Clone()
	}
	return &cp
}

// Validate checks the structural invariants: non-negative start times,
// duration floor, per-track interval non-overlap, keyframe times in range.
func (p *Project) Validate() error {
	for _, tr := range p.Timeline.Tracks {
		if err := tr.validate(); err != nil {
			return err
		}
	}
	return nil
}
