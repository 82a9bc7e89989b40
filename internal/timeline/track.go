package timeline

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// TrackType restricts which clip kinds a track may host.
type TrackType string

const (
	TrackVideo    TrackType = "video"
	TrackAudio    TrackType = "audio"
	TrackImage    TrackType = "image"
	TrackText     TrackType = "text"
	TrackGraphics TrackType = "graphics"
)

// Track is a lane of non-overlapping clips. Its position inside
// Timeline.Tracks is its z-order.
type Track struct {
	ID     string    `json:"id"`
	Type   TrackType `json:"type"`
	Clips  []*Clip   `json:"clips"`
	Locked bool      `json:"locked,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
	Muted  bool      `json:"muted,omitempty"`
	Solo   bool      `json:"solo,omitempty"`
}

// NewTrack creates an empty track of the given type.
func NewTrack(t TrackType) *Track {
	return &Track{ID: uuid.NewString(), Type: t}
}

// Clone returns a deep copy of the track and its clips.
func (t *Track) Clone() *Track {
	ct := *t
	ct.Clips = make([]*Clip, len(t.Clips))
	for i, c := range t.Clips {
		ct.Clips[i] = c.Clone()
	}
	return &ct
}

// ClipByID returns the clip with the given id, or nil.
func (t *Track) ClipByID(id string) *Clip {
	for _, c := range t.Clips {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ActiveAt returns the clip whose [start, start+duration) interval contains
// the given time, or nil. At most one clip can match on a valid track.
func (t *Track) ActiveAt(time float64) *Clip {
	for _, c := range t.Clips {
		if c.ContainsTime(time) {
			return c
		}
	}
	return nil
}

// CanPlace reports whether the interval [start, start+duration) is free.
// The clip with excludeID is ignored, which lets a move validate against
// everything but itself.
func (t *Track) CanPlace(start, duration float64, excludeID string) bool {
	if start < 0 || duration <= 0 {
		return false
	}
	end := start + duration
	for _, c := range t.Clips {
		if c.ID == excludeID {
			continue
		}
		if start < c.End() && c.StartTime < end {
			return false
		}
	}
	return true
}

// CanHostKind reports whether clips of the given kind belong on this track.
// Media clips go on the track matching their media type; text clips go on
// text or graphics tracks; shape/svg/sticker clips go on graphics or text
// tracks.
func (t *Track) CanHostKind(kind ClipKind, mediaType MediaType) bool {
	switch kind {
	case ClipMedia:
		switch mediaType {
		case MediaVideo:
			return t.Type == TrackVideo
		case MediaAudio:
			return t.Type == TrackAudio
		case MediaImage:
			return t.Type == TrackImage
		}
		return false
	case ClipText:
		return t.Type == TrackText || t.Type == TrackGraphics
	case ClipShape, ClipSVG, ClipSticker:
		return t.Type == TrackGraphics || t.Type == TrackText
	}
	return false
}

// InsertClip adds a clip and keeps Clips sorted by start time.
// The caller is responsible for having validated placement.
func (t *Track) InsertClip(c *Clip) {
	c.TrackID = t.ID
	t.Clips = append(t.Clips, c)
	t.SortClips()
}

// RemoveClip deletes the clip with the given id and reports whether it existed.
func (t *Track) RemoveClip(id string) bool {
	for i, c := range t.Clips {
		if c.ID == id {
			t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
			return true
		}
	}
	return false
}

// SortClips restores the start-time ordering.
func (t *Track) SortClips() {
	sort.SliceStable(t.Clips, func(i, j int) bool {
		return t.Clips[i].StartTime < t.Clips[j].StartTime
	})
}

func (t *Track) validate() error {
	for i, c := range t.Clips {
		if c.StartTime < 0 {
			return fmt.Errorf("track %s: clip %s starts at %.3f", t.ID, c.ID, c.StartTime)
		}
		if c.Duration < MinClipDuration {
			return fmt.Errorf("track %s: clip %s duration %.3f below floor", t.ID, c.ID, c.Duration)
		}
		for _, kf := range c.Keyframes {
			if kf.Time < 0 || kf.Time > c.Duration {
				return fmt.Errorf("clip %s: keyframe %s at %.3f outside [0, %.3f]", c.ID, kf.ID, kf.Time, c.Duration)
			}
		}
		if i > 0 {
			prev := t.Clips[i-1]
			if prev.End() > c.StartTime {
				return fmt.Errorf("track %s: clips %s and %s overlap", t.ID, prev.ID, c.ID)
			}
		}
	}
	return nil
}
