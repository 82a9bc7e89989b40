package edit

import (
	"github.com/ivlev/clipforge/internal/timeline"
)

type addMarkerCommand struct {
	marker timeline.Marker
}

func (c *addMarkerCommand) Name() string { return "Add marker" }

func (c *addMarkerCommand) Apply(p *timeline.Project) error {
	if c.marker.Time < 0 {
		return validationf(KindInvalidArgument, "marker time %.3f is negative", c.marker.Time)
	}
	p.Timeline.Markers = append(p.Timeline.Markers, c.marker)
	return nil
}

func (c *addMarkerCommand) Revert(p *timeline.Project) error {
	for i, m := range p.Timeline.Markers {
		if m.ID == c.marker.ID {
			p.Timeline.Markers = append(p.Timeline.Markers[:i], p.Timeline.Markers[i+1:]...)
			return nil
		}
	}
	return validationf(KindNotFound, "marker %s", c.marker.ID)
}

type removeMarkerCommand struct {
	markerID string

	removed timeline.Marker
	index   int
}

func (c *removeMarkerCommand) Name() string { return "Remove marker" }

func (c *removeMarkerCommand) Apply(p *timeline.Project) error {
	for i, m := range p.Timeline.Markers {
		if m.ID == c.markerID {
			c.removed = m
			c.index = i
			p.Timeline.Markers = append(p.Timeline.Markers[:i], p.Timeline.Markers[i+1:]...)
			return nil
		}
	}
	return validationf(KindNotFound, "marker %s", c.markerID)
}

func (c *removeMarkerCommand) Revert(p *timeline.Project) error {
	markers := append(p.Timeline.Markers, timeline.Marker{})
	copy(markers[c.index+1:], markers[c.index:])
	markers[c.index] = c.removed
	p.Timeline.Markers = markers
	return nil
}

type addSubtitleCommand struct {
	subtitle timeline.Subtitle
}

func (c *addSubtitleCommand) Name() string { return "Add subtitle" }

func (c *addSubtitleCommand) Apply(p *timeline.Project) error {
	if c.subtitle.StartTime < 0 || c.subtitle.EndTime <= c.subtitle.StartTime {
		return validationf(KindInvalidArgument, "subtitle interval [%.3f, %.3f)", c.subtitle.StartTime, c.subtitle.EndTime)
	}
	p.Timeline.Subtitles = append(p.Timeline.Subtitles, c.subtitle)
	return nil
}

func (c *addSubtitleCommand) Revert(p *timeline.Project) error {
	for i, s := range p.Timeline.Subtitles {
		if s.ID == c.subtitle.ID {
			p.Timeline.Subtitles = append(p.Timeline.Subtitles[:i], p.Timeline.Subtitles[i+1:]...)
			return nil
		}
	}
	return validationf(KindNotFound, "subtitle %s", c.subtitle.ID)
}

type removeSubtitleCommand struct {
	subtitleID string

	removed timeline.Subtitle
	index   int
}

func (c *removeSubtitleCommand) Name() string { return "Remove subtitle" }

func (c *removeSubtitleCommand) Apply(p *timeline.Project) error {
	for i, s := range p.Timeline.Subtitles {
		if s.ID == c.subtitleID {
			c.removed = s
			c.index = i
			p.Timeline.Subtitles = append(p.Timeline.Subtitles[:i], p.Timeline.Subtitles[i+1:]...)
			return nil
		}
	}
	return validationf(KindNotFound, "subtitle %s", c.subtitleID)
}

func (c *removeSubtitleCommand) Revert(p *timeline.Project) error {
	subs := append(p.Timeline.Subtitles, timeline.Subtitle{})
	copy(subs[c.index+1:], subs[c.index:])
	subs[c.index] = c.removed
	p.Timeline.Subtitles = subs
	return nil
}
