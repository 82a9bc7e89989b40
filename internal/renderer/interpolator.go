package renderer

import (
	"sort"

	"github.com/ivlev/clipforge/internal/timeline"
)

// Resolve calculates the effective transform of a clip at a clip-local time
// by interpolating its keyframes. Properties without keyframes fall back to
// the clip's static transform. The function is pure: identical inputs yield
// bit-identical output, which the export pipeline relies on.
func Resolve(clip *timeline.Clip, localTime float64) timeline.Transform {
	tr := clip.Transform
	if len(clip.Keyframes) == 0 {
		return tr
	}

	byProp := make(map[string][]timeline.Keyframe)
	for _, kf := range clip.Keyframes {
		byProp[kf.Property] = append(byProp[kf.Property], kf)
	}
	for prop, kfs := range byProp {
		sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time })
		setProperty(&tr, prop, interpolate(kfs, localTime))
	}
	if tr.Opacity < 0 {
		tr.Opacity = 0
	}
	if tr.Opacity > 1 {
		tr.Opacity = 1
	}
	return tr
}

// interpolate evaluates a sorted keyframe list at a given time.
func interpolate(keyframes []timeline.Keyframe, currentTime float64) float64 {
	// If before first keyframe, use first keyframe
	if currentTime <= keyframes[0].Time {
		return keyframes[0].Value
	}

	// If after last keyframe, use last keyframe
	last := keyframes[len(keyframes)-1]
	if currentTime >= last.Time {
		return last.Value
	}

	// Find surrounding keyframes
	var prevKf, nextKf timeline.Keyframe
	for i := 0; i < len(keyframes)-1; i++ {
		if currentTime >= keyframes[i].Time && currentTime < keyframes[i+1].Time {
			prevKf = keyframes[i]
			nextKf = keyframes[i+1]
			break
		}
	}

	timeDelta := nextKf.Time - prevKf.Time
	if timeDelta == 0 {
		timeDelta = 0.001 // Avoid division by zero
	}
	t := (currentTime - prevKf.Time) / timeDelta

	// The outgoing keyframe declares the easing of its segment.
	t = ease(prevKf.Easing, t)

	return lerp(prevKf.Value, nextKf.Value, t)
}

func setProperty(tr *timeline.Transform, prop string, v float64) {
	switch prop {
	case "position.x":
		tr.Position.X = v
	case "position.y":
		tr.Position.Y = v
	case "scale.x":
		tr.Scale.X = v
	case "scale.y":
		tr.Scale.Y = v
	case "rotation":
		tr.Rotation = v
	case "opacity":
		tr.Opacity = v
	case "anchor.x":
		tr.Anchor.X = v
	case "anchor.y":
		tr.Anchor.Y = v
	}
}

func ease(e timeline.Easing, t float64) float64 {
	switch e {
	case timeline.EaseIn:
		return t * t * t
	case timeline.EaseOut:
		return 1 - pow(1-t, 3)
	case timeline.EaseInOut:
		return easeInOutCubic(t)
	default:
		return t
	}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easeInOutCubic applies smooth easing function
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - pow(-2*t+2, 3)/2
}

// pow calculates x^n
func pow(x float64, n int) float64 {
	result := 1.0
	for i := 0; i < n; i++ {
		result *= x
	}
	return result
}
