package timeline

import (
	"strings"

	"github.com/google/uuid"
)

// ExitKeyframePrefix tags keyframes anchored to the clip end. Their time is
// still stored relative to the clip start, but duration-changing edits keep
// their distance to the end constant instead of their distance to the start.
const ExitKeyframePrefix = "exit-"

// Easing selects the interpolation curve between two keyframes.
type Easing string

const (
	EaseLinear Easing = "linear"
	EaseIn     Easing = "ease-in"
	EaseOut    Easing = "ease-out"
	EaseInOut  Easing = "ease-in-out"
)

// Keyframe overrides one transform property at a clip-local time.
// Property paths: position.x, position.y, scale.x, scale.y, rotation,
// opacity, anchor.x, anchor.y.
type Keyframe struct {
	ID       string  `json:"id"`
	Time     float64 `json:"time"` // relative to clip start, in [0, duration]
	Property string  `json:"property"`
	Value    float64 `json:"value"`
	Easing   Easing  `json:"easing,omitempty"`
}

// NewKeyframe creates an entry keyframe.
func NewKeyframe(property string, t, value float64, easing Easing) Keyframe {
	return Keyframe{ID: uuid.NewString(), Time: t, Property: property, Value: value, Easing: easing}
}

// NewExitKeyframe creates a keyframe anchored to the clip end.
func NewExitKeyframe(property string, t, value float64, easing Easing) Keyframe {
	return Keyframe{ID: ExitKeyframePrefix + uuid.NewString(), Time: t, Property: property, Value: value, Easing: easing}
}

// IsExit reports whether the keyframe is anchored to the clip end.
func (k Keyframe) IsExit() bool {
	return strings.HasPrefix(k.ID, ExitKeyframePrefix)
}

// ReanchorKeyframes adjusts keyframe times after the clip duration changed
// from oldDur to newDur. Exit keyframes are repositioned so their distance to
// the end is preserved; entry keyframes are left untouched and only clamped
// into the new range.
func (c *Clip) ReanchorKeyframes(oldDur, newDur float64) {
	for i := range c.Keyframes {
		kf := &c.Keyframes[i]
		if kf.IsExit() {
			dist := oldDur - kf.Time
			kf.Time = newDur - dist
		}
		if kf.Time < 0 {
			kf.Time = 0
		}
		if kf.Time > newDur {
			kf.Time = newDur
		}
	}
}

// KeyframesFor returns the keyframes targeting one property, in insertion
// order. The resolver sorts its own copy by time.
func (c *Clip) KeyframesFor(property string) []Keyframe {
	var out []Keyframe
	for _, kf := range c.Keyframes {
		if kf.Property == property {
			out = append(out, kf)
		}
	}
	return out
}
