package renderer

import (
	"testing"

	"github.com/ivlev/clipforge/internal/timeline"
)

func TestResolveInterpolatesKeyframes(t *testing.T) {
	clip := timeline.NewClip(timeline.ClipMedia, 0, 5.0)
	clip.Keyframes = []timeline.Keyframe{
		timeline.NewKeyframe("opacity", 0.0, 0.0, timeline.EaseInOut),
		timeline.NewKeyframe("opacity", 2.0, 1.0, timeline.EaseInOut),
		timeline.NewKeyframe("opacity", 4.0, 0.5, timeline.EaseInOut),
	}

	tests := []struct {
		time     float64
		expected float64
	}{
		{0.0, 0.0},  // first keyframe
		{1.0, 0.5},  // midpoint between first and second (approximately)
		{2.0, 1.0},  // second keyframe
		{3.0, 0.75}, // midpoint between second and third (approximately)
		{4.0, 0.5},  // third keyframe
		{5.0, 0.5},  // after last keyframe
	}

	for _, tt := range tests {
		eff := Resolve(clip, tt.time)

		// Allow some tolerance due to easing
		tolerance := 0.3
		if abs(eff.Opacity-tt.expected) > tolerance {
			t.Errorf("At time %.1f: expected opacity ~%.2f, got %.2f", tt.time, tt.expected, eff.Opacity)
		}
	}
}

func TestResolveBeforeAndAfterRange(t *testing.T) {
	clip := timeline.NewClip(timeline.ClipMedia, 0, 10.0)
	clip.Keyframes = []timeline.Keyframe{
		timeline.NewKeyframe("scale.x", 2.0, 1.5, timeline.EaseLinear),
		timeline.NewKeyframe("scale.x", 4.0, 2.0, timeline.EaseLinear),
	}

	if eff := Resolve(clip, 0.0); eff.Scale.X != 1.5 {
		t.Errorf("before first keyframe: scale %.2f, want 1.5", eff.Scale.X)
	}
	if eff := Resolve(clip, 9.0); eff.Scale.X != 2.0 {
		t.Errorf("after last keyframe: scale %.2f, want 2.0", eff.Scale.X)
	}
}

func TestResolveLinearEasingIsExact(t *testing.T) {
	clip := timeline.NewClip(timeline.ClipMedia, 0, 4.0)
	clip.Keyframes = []timeline.Keyframe{
		timeline.NewKeyframe("position.x", 0.0, 0.0, timeline.EaseLinear),
		timeline.NewKeyframe("position.x", 4.0, 100.0, timeline.EaseLinear),
	}

	eff := Resolve(clip, 1.0)
	if abs(eff.Position.X-25.0) > 1e-9 {
		t.Errorf("linear interpolation at t=1: %.4f, want 25.0", eff.Position.X)
	}
}

func TestResolveLeavesUnkeyedProperties(t *testing.T) {
	clip := timeline.NewClip(timeline.ClipMedia, 0, 5.0)
	clip.Transform.Rotation = 45
	clip.Keyframes = []timeline.Keyframe{
		timeline.NewKeyframe("opacity", 0.0, 0.5, timeline.EaseLinear),
	}

	eff := Resolve(clip, 2.0)
	if eff.Rotation != 45 {
		t.Errorf("static rotation changed: %.2f, want 45", eff.Rotation)
	}
	if eff.Opacity != 0.5 {
		t.Errorf("keyed opacity: %.2f, want 0.5", eff.Opacity)
	}
}

func TestResolveClampsOpacity(t *testing.T) {
	clip := timeline.NewClip(timeline.ClipMedia, 0, 5.0)
	clip.Keyframes = []timeline.Keyframe{
		timeline.NewKeyframe("opacity", 0.0, 2.5, timeline.EaseLinear),
	}

	if eff := Resolve(clip, 0.0); eff.Opacity != 1.0 {
		t.Errorf("opacity not clamped: %.2f", eff.Opacity)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	clip := timeline.NewClip(timeline.ClipMedia, 0, 5.0)
	clip.Keyframes = []timeline.Keyframe{
		timeline.NewKeyframe("scale.x", 0.0, 1.0, timeline.EaseInOut),
		timeline.NewKeyframe("scale.x", 5.0, 2.0, timeline.EaseInOut),
		timeline.NewKeyframe("position.y", 0.0, 0.0, timeline.EaseIn),
		timeline.NewKeyframe("position.y", 5.0, -50.0, timeline.EaseIn),
	}

	first := Resolve(clip, 2.345)
	for i := 0; i < 100; i++ {
		if got := Resolve(clip, 2.345); got != first {
			t.Fatalf("iteration %d: resolve diverged: %+v != %+v", i, got, first)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
