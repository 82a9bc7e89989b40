package edit

import (
	"image"

	"github.com/ivlev/clipforge/internal/analyzer"
	"github.com/ivlev/clipforge/internal/director"
	"github.com/ivlev/clipforge/internal/timeline"
)

type autoFrameCommand struct {
	clipID    string
	generated []timeline.Keyframe

	saved []timeline.Keyframe
}

func (c *autoFrameCommand) Name() string { return "Auto-frame clip" }

func (c *autoFrameCommand) Apply(p *timeline.Project) error {
	clip, _ := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	c.saved = append([]timeline.Keyframe(nil), clip.Keyframes...)
	clip.Keyframes = append([]timeline.Keyframe(nil), c.generated...)
	return nil
}

func (c *autoFrameCommand) Revert(p *timeline.Project) error {
	clip, _ := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	clip.Keyframes = append([]timeline.Keyframe(nil), c.saved...)
	return nil
}

// AutoFrameClip analyzes the clip's content and replaces its keyframes with
// a generated camera path over the detected regions. The caller supplies a
// rendered still of the content, typically the clip's first frame. The edit
// is a single undoable step.
func (e *Engine) AutoFrameClip(clipID string, content image.Image) error {
	clip, _ := e.project.ClipByID(clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", clipID)
	}

	det := analyzer.NewContrastDetector()
	regions, err := det.Detect(content)
	if err != nil {
		return err
	}
	if len(regions) == 0 {
		return validationf(KindInvalidArgument, "no content regions detected in clip %s", clipID)
	}

	d := director.New(e.project.Settings.Width, e.project.Settings.Height)
	kfs, err := d.PlanKeyframes(regions, content.Bounds().Dx(), content.Bounds().Dy(), clip.Duration, clip.Transform.FitMode)
	if err != nil {
		return err
	}
	return e.do(&autoFrameCommand{clipID: clipID, generated: kfs})
}
