package edit

import (
	"github.com/ivlev/clipforge/internal/timeline"
)

// Command represents an edit that can be applied and reverted.
//
// Apply validates against the model invariants before mutating anything, so
// a failed Apply leaves the project untouched. Revert restores the exact
// structural state from before Apply; commands capture deep copies (mementos)
// of whatever they are about to change.
type Command interface {
	Apply(p *timeline.Project) error
	Revert(p *timeline.Project) error
	Name() string
}

// ---------------------------------------------------------------------------
// Track commands
// ---------------------------------------------------------------------------

type addTrackCommand struct {
	track *timeline.Track
	index int
}

func (c *addTrackCommand) Name() string { return "Add track" }

func (c *addTrackCommand) Apply(p *timeline.Project) error {
	tracks := p.Timeline.Tracks
	idx := c.index
	if idx < 0 || idx > len(tracks) {
		idx = len(tracks)
	}
	tracks = append(tracks, nil)
	copy(tracks[idx+1:], tracks[idx:])
	tracks[idx] = c.track.Clone()
	p.Timeline.Tracks = tracks
	return nil
}

func (c *addTrackCommand) Revert(p *timeline.Project) error {
	idx := p.TrackIndex(c.track.ID)
	if idx < 0 {
		return validationf(KindNotFound, "track %s", c.track.ID)
	}
	p.Timeline.Tracks = append(p.Timeline.Tracks[:idx], p.Timeline.Tracks[idx+1:]...)
	return nil
}

type reorderTrackCommand struct {
	trackID  string
	newIndex int
	oldIndex int
}

func (c *reorderTrackCommand) Name() string { return "Reorder track" }

func (c *reorderTrackCommand) Apply(p *timeline.Project) error {
	idx := p.TrackIndex(c.trackID)
	if idx < 0 {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	if c.newIndex < 0 || c.newIndex >= len(p.Timeline.Tracks) {
		return validationf(KindInvalidArgument, "track index %d out of range", c.newIndex)
	}
	c.oldIndex = idx
	moveTrack(p, idx, c.newIndex)
	return nil
}

func (c *reorderTrackCommand) Revert(p *timeline.Project) error {
	idx := p.TrackIndex(c.trackID)
	if idx < 0 {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	moveTrack(p, idx, c.oldIndex)
	return nil
}

func moveTrack(p *timeline.Project, from, to int) {
	tracks := p.Timeline.Tracks
	tr := tracks[from]
	tracks = append(tracks[:from], tracks[from+1:]...)
	tracks = append(tracks, nil)
	copy(tracks[to+1:], tracks[to:])
	tracks[to] = tr
	p.Timeline.Tracks = tracks
}

// ---------------------------------------------------------------------------
// Clip commands
// ---------------------------------------------------------------------------

type addClipCommand struct {
	name    string
	trackID string
	clip    *timeline.Clip
}

func (c *addClipCommand) Name() string { return c.name }

func (c *addClipCommand) Apply(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	if track.Locked {
		return validationf(KindTrackLocked, "track %s is locked", c.trackID)
	}
	mt := mediaTypeOf(p, c.clip)
	if !track.CanHostKind(c.clip.Kind, mt) {
		return validationf(KindTrackTypeMismatch, "%s clip on %s track", c.clip.Kind, track.Type)
	}
	if c.clip.Duration < timeline.MinClipDuration {
		return validationf(KindMinDuration, "duration %.3f below %.1fs floor", c.clip.Duration, timeline.MinClipDuration)
	}
	if !track.CanPlace(c.clip.StartTime, c.clip.Duration, "") {
		return validationf(KindOverlap, "interval [%.3f, %.3f) collides on track %s",
			c.clip.StartTime, c.clip.End(), c.trackID)
	}
	track.InsertClip(c.clip.Clone())
	return nil
}

func (c *addClipCommand) Revert(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil || !track.RemoveClip(c.clip.ID) {
		return validationf(KindNotFound, "clip %s", c.clip.ID)
	}
	return nil
}

type moveClipCommand struct {
	clipID        string
	newStart      float64
	targetTrackID string // empty: stay on the current track

	oldStart   float64
	oldTrackID string
}

func (c *moveClipCommand) Name() string { return "Move clip" }

func (c *moveClipCommand) Apply(p *timeline.Project) error {
	clip, from := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	dest := from
	if c.targetTrackID != "" && c.targetTrackID != from.ID {
		dest = p.TrackByID(c.targetTrackID)
		if dest == nil {
			return validationf(KindNotFound, "track %s", c.targetTrackID)
		}
	}
	if from.Locked || dest.Locked {
		return validationf(KindTrackLocked, "track is locked")
	}
	if c.newStart < 0 {
		return validationf(KindInvalidArgument, "start time %.3f is negative", c.newStart)
	}
	if dest != from && !dest.CanHostKind(clip.Kind, mediaTypeOf(p, clip)) {
		return validationf(KindTrackTypeMismatch, "%s clip on %s track", clip.Kind, dest.Type)
	}
	exclude := ""
	if dest == from {
		exclude = clip.ID
	}
	if !dest.CanPlace(c.newStart, clip.Duration, exclude) {
		return validationf(KindOverlap, "interval [%.3f, %.3f) collides on track %s",
			c.newStart, c.newStart+clip.Duration, dest.ID)
	}

	c.oldStart = clip.StartTime
	c.oldTrackID = from.ID
	clip.StartTime = c.newStart
	if dest != from {
		from.RemoveClip(clip.ID)
		dest.InsertClip(clip)
	} else {
		from.SortClips()
	}
	return nil
}

func (c *moveClipCommand) Revert(p *timeline.Project) error {
	clip, cur := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	clip.StartTime = c.oldStart
	if cur.ID != c.oldTrackID {
		orig := p.TrackByID(c.oldTrackID)
		if orig == nil {
			return validationf(KindNotFound, "track %s", c.oldTrackID)
		}
		cur.RemoveClip(clip.ID)
		orig.InsertClip(clip)
	} else {
		cur.SortClips()
	}
	return nil
}

// TrimEdge selects which clip edge a trim moves.
type TrimEdge string

const (
	TrimLeft  TrimEdge = "left"
	TrimRight TrimEdge = "right"
)

type trimClipCommand struct {
	clipID  string
	edge    TrimEdge
	newTime float64

	original *timeline.Clip
	trackID  string
}

func (c *trimClipCommand) Name() string { return "Trim clip" }

func (c *trimClipCommand) Apply(p *timeline.Project) error {
	clip, track := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	if track.Locked {
		return validationf(KindTrackLocked, "track %s is locked", track.ID)
	}

	var newStart, newDur float64
	switch c.edge {
	case TrimLeft:
		// The right edge stays fixed; start and duration change together.
		newStart = c.newTime
		newDur = clip.End() - c.newTime
	case TrimRight:
		// The left edge stays fixed; only duration changes.
		newStart = clip.StartTime
		newDur = c.newTime - clip.StartTime
	default:
		return validationf(KindInvalidArgument, "unknown trim edge %q", c.edge)
	}
	if newStart < 0 {
		return validationf(KindInvalidArgument, "start time %.3f is negative", newStart)
	}
	if newDur < timeline.MinClipDuration {
		return validationf(KindMinDuration, "duration %.3f below %.1fs floor", newDur, timeline.MinClipDuration)
	}
	if !track.CanPlace(newStart, newDur, clip.ID) {
		return validationf(KindOverlap, "interval [%.3f, %.3f) collides on track %s",
			newStart, newStart+newDur, track.ID)
	}

	c.original = clip.Clone()
	c.trackID = track.ID

	oldDur := clip.Duration
	if c.edge == TrimLeft && clip.Media != nil {
		clip.Media.InPoint += newStart - clip.StartTime
	}
	if c.edge == TrimRight && clip.Media != nil {
		clip.Media.OutPoint = clip.Media.InPoint + newDur
	}
	clip.StartTime = newStart
	clip.Duration = newDur
	clip.ReanchorKeyframes(oldDur, newDur)
	track.SortClips()
	return nil
}

func (c *trimClipCommand) Revert(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil || !track.RemoveClip(c.clipID) {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	track.InsertClip(c.original.Clone())
	return nil
}

type splitClipCommand struct {
	clipID string
	atTime float64
	second *timeline.Clip // pre-built second half, ids stable across redo

	original *timeline.Clip
	trackID  string
}

func (c *splitClipCommand) Name() string { return "Split clip" }

func (c *splitClipCommand) Apply(p *timeline.Project) error {
	clip, track := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	if track.Locked {
		return validationf(KindTrackLocked, "track %s is locked", track.ID)
	}
	if c.atTime <= clip.StartTime || c.atTime >= clip.End() {
		return validationf(KindBadSplitPoint, "%.3f outside (%.3f, %.3f)", c.atTime, clip.StartTime, clip.End())
	}
	firstDur := c.atTime - clip.StartTime
	secondDur := clip.End() - c.atTime
	if firstDur < timeline.MinClipDuration || secondDur < timeline.MinClipDuration {
		return validationf(KindMinDuration, "split at %.3f produces a sub-%.1fs clip", c.atTime, timeline.MinClipDuration)
	}

	c.original = clip.Clone()
	c.trackID = track.ID

	// The second half is prepared once so its ids survive undo/redo cycles.
	if c.second == nil {
		c.second = clip.WithNewID()
	}
	second := c.second.Clone()
	second.StartTime = c.atTime
	second.Duration = secondDur
	if second.Media != nil {
		second.Media.InPoint += firstDur
	}

	// Keyframes partition by relative time. Times in the first half stay as
	// they are (exit keyframes now anchor to the synthetic end); times in the
	// second half shift by the first half's duration.
	var firstKf, secondKf []timeline.Keyframe
	for i, kf := range clip.Keyframes {
		if kf.Time < firstDur {
			firstKf = append(firstKf, kf)
		} else {
			skf := second.Keyframes[i]
			skf.Time = kf.Time - firstDur
			secondKf = append(secondKf, skf)
		}
	}
	clip.Duration = firstDur
	if clip.Media != nil {
		clip.Media.OutPoint = clip.Media.InPoint + firstDur
	}
	clip.Keyframes = firstKf
	second.Keyframes = secondKf

	track.InsertClip(second)
	return nil
}

func (c *splitClipCommand) Revert(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	if !track.RemoveClip(c.second.ID) || !track.RemoveClip(c.clipID) {
		return validationf(KindNotFound, "split halves of %s", c.clipID)
	}
	track.InsertClip(c.original.Clone())
	return nil
}

type removeClipCommand struct {
	clipID string
	ripple bool

	original *timeline.Clip
	trackID  string
	shifted  []string // clip ids moved left by the ripple
}

func (c *removeClipCommand) Name() string {
	if c.ripple {
		return "Ripple delete clip"
	}
	return "Remove clip"
}

func (c *removeClipCommand) Apply(p *timeline.Project) error {
	clip, track := p.ClipByID(c.clipID)
	if clip == nil {
		return validationf(KindNotFound, "clip %s", c.clipID)
	}
	if track.Locked {
		return validationf(KindTrackLocked, "track %s is locked", track.ID)
	}
	c.original = clip.Clone()
	c.trackID = track.ID
	c.shifted = nil

	track.RemoveClip(clip.ID)
	if c.ripple {
		// Later clips close the gap. They all start at or after the removed
		// clip's end, so shifting by its duration can never go negative.
		for _, other := range track.Clips {
			if other.StartTime >= c.original.StartTime {
				other.StartTime -= c.original.Duration
				c.shifted = append(c.shifted, other.ID)
			}
		}
		track.SortClips()
	}
	return nil
}

func (c *removeClipCommand) Revert(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	for _, id := range c.shifted {
		if other := track.ClipByID(id); other != nil {
			other.StartTime += c.original.Duration
		}
	}
	track.InsertClip(c.original.Clone())
	return nil
}

type pasteClipsCommand struct {
	name    string
	trackID string
	clips   []*timeline.Clip // pre-positioned, fresh ids
}

func (c *pasteClipsCommand) Name() string { return c.name }

func (c *pasteClipsCommand) Apply(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	if track.Locked {
		return validationf(KindTrackLocked, "track %s is locked", track.ID)
	}
	// Validate every clip before inserting any: paste is all-or-nothing.
	for _, clip := range c.clips {
		if !track.CanHostKind(clip.Kind, mediaTypeOf(p, clip)) {
			return validationf(KindTrackTypeMismatch, "%s clip on %s track", clip.Kind, track.Type)
		}
		if !track.CanPlace(clip.StartTime, clip.Duration, "") {
			return validationf(KindOverlap, "interval [%.3f, %.3f) collides on track %s",
				clip.StartTime, clip.End(), track.ID)
		}
	}
	// Pasted clips must not collide with each other either.
	for i := 0; i < len(c.clips); i++ {
		for j := i + 1; j < len(c.clips); j++ {
			a, b := c.clips[i], c.clips[j]
			if a.StartTime < b.End() && b.StartTime < a.End() {
				return validationf(KindOverlap, "pasted clips %s and %s overlap", a.ID, b.ID)
			}
		}
	}
	for _, clip := range c.clips {
		track.InsertClip(clip.Clone())
	}
	return nil
}

func (c *pasteClipsCommand) Revert(p *timeline.Project) error {
	track := p.TrackByID(c.trackID)
	if track == nil {
		return validationf(KindNotFound, "track %s", c.trackID)
	}
	for _, clip := range c.clips {
		if !track.RemoveClip(clip.ID) {
			return validationf(KindNotFound, "pasted clip %s", clip.ID)
		}
	}
	return nil
}

// mediaTypeOf resolves the media type backing a clip, or "" for procedural
// kinds.
func mediaTypeOf(p *timeline.Project, c *timeline.Clip) timeline.MediaType {
	if c.Kind != timeline.ClipMedia || c.Media == nil {
		return ""
	}
	if item := p.MediaByID(c.Media.MediaID); item != nil {
		return item.Type
	}
	return ""
}
