package edit

import (
	"github.com/ivlev/clipforge/internal/timeline"
)

// Keyframe presets generate common animation paths on a clip: a slow zoom,
// an opacity fade, or a pan-and-zoom drift. Fade-out and zoom return legs are
// written as exit keyframes so they survive later trims.

const (
	PresetZoomIn    = "zoom-in"
	PresetZoomOut   = "zoom-out"
	PresetFadeInOut = "fade-in-out"
	PresetKenBurns  = "ken-burns"
)

type applyPresetCommand struct {
	clipID string
	preset string

	saved []timeline.Keyframe
}

func (c *applyPresetCommand) Name() string { return "Apply keyframe preset" }

func (c *applyPresetCommand) Apply(p *timeline.Project) error {
	clip, _ := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	generated, err := presetKeyframes(c.preset, clip.Duration)
	if err != nil {
		return err
	}
	c.saved = append([]timeline.Keyframe(nil), clip.Keyframes...)
	clip.Keyframes = append(clip.Keyframes, generated...)
	return nil
}

func (c *applyPresetCommand) Revert(p *timeline.Project) error {
	clip, _ := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	clip.Keyframes = append([]timeline.Keyframe(nil), c.saved...)
	return nil
}

func presetKeyframes(preset string, duration float64) ([]timeline.Keyframe, error) {
	fade := 0.5
	if fade > duration/2 {
		fade = duration / 2
	}
	switch preset {
	case PresetZoomIn:
		return []timeline.Keyframe{
			timeline.NewKeyframe("scale.x", 0, 1.0, timeline.EaseInOut),
			timeline.NewKeyframe("scale.y", 0, 1.0, timeline.EaseInOut),
			timeline.NewExitKeyframe("scale.x", duration, 1.15, timeline.EaseInOut),
			timeline.NewExitKeyframe("scale.y", duration, 1.15, timeline.EaseInOut),
		}, nil
	case PresetZoomOut:
		return []timeline.Keyframe{
			timeline.NewKeyframe("scale.x", 0, 1.15, timeline.EaseInOut),
			timeline.NewKeyframe("scale.y", 0, 1.15, timeline.EaseInOut),
			timeline.NewExitKeyframe("scale.x", duration, 1.0, timeline.EaseInOut),
			timeline.NewExitKeyframe("scale.y", duration, 1.0, timeline.EaseInOut),
		}, nil
	case PresetFadeInOut:
		return []timeline.Keyframe{
			timeline.NewKeyframe("opacity", 0, 0, timeline.EaseOut),
			timeline.NewKeyframe("opacity", fade, 1, timeline.EaseOut),
			timeline.NewExitKeyframe("opacity", duration-fade, 1, timeline.EaseIn),
			timeline.NewExitKeyframe("opacity", duration, 0, timeline.EaseIn),
		}, nil
	case PresetKenBurns:
		return []timeline.Keyframe{
			timeline.NewKeyframe("scale.x", 0, 1.0, timeline.EaseInOut),
			timeline.NewKeyframe("scale.y", 0, 1.0, timeline.EaseInOut),
			timeline.NewKeyframe("position.x", 0, 0, timeline.EaseInOut),
			timeline.NewExitKeyframe("scale.x", duration, 1.2, timeline.EaseInOut),
			timeline.NewExitKeyframe("scale.y", duration, 1.2, timeline.EaseInOut),
			timeline.NewExitKeyframe("position.x", duration, -40, timeline.EaseInOut),
		}, nil
	}
	return nil, validationf(KindInvalidArgument, "unknown preset %q", preset)
}
