// Package edit is the only path that mutates a timeline project. It validates
// every command against the model invariants before committing, keeps an
// undo/redo history of applied commands, and hands immutable snapshots to the
// renderer and the export pipeline.
package edit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ivlev/clipforge/internal/timeline"
)

// DefaultImageDuration is the clip length given to still images and
// procedural clips when the caller does not specify one.
const DefaultImageDuration = 4.0

const defaultMaxHistory = 1000

type historyEntry struct {
	command Command
	at      time.Time
}

// Engine owns a project and its edit history. All mutation goes through it;
// concurrent readers use Snapshot.
type Engine struct {
	mu      sync.Mutex
	project *timeline.Project

	undoStack []*historyEntry
	redoStack []*historyEntry
	maxHist   int

	clipboard []*timeline.Clip
}

// NewEngine wraps a project in an edit engine with the default history depth.
func NewEngine(p *timeline.Project) *Engine {
	return &Engine{project: p, maxHist: defaultMaxHistory}
}

// Project returns the live model. Callers outside the engine must treat it
// as read-only; renderers should prefer Snapshot.
func (e *Engine) Project() *timeline.Project {
	return e.project
}

// Snapshot returns a deep copy safe to read while edits continue.
func (e *Engine) Snapshot() *timeline.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project.Clone()
}

// do applies a command, records it, and bumps ModifiedAt. A failed Apply
// leaves both the model and the history untouched.
func (e *Engine) do(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := cmd.Apply(e.project); err != nil {
		return err
	}
	e.undoStack = append(e.undoStack, &historyEntry{command: cmd, at: time.Now()})
	e.redoStack = nil
	if len(e.undoStack) > e.maxHist {
		excess := len(e.undoStack) - e.maxHist
		e.undoStack = e.undoStack[excess:]
	}
	e.project.Touch()
	return nil
}

// Undo reverts the most recent command.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.undoStack) == 0 {
		return ErrNothingToUndo
	}
	entry := e.undoStack[len(e.undoStack)-1]
	if err := entry.command.Revert(e.project); err != nil {
		return err
	}
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, entry)
	e.project.Touch()
	return nil
}

// Redo reapplies the most recently undone command.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.redoStack) == 0 {
		return ErrNothingToRedo
	}
	entry := e.redoStack[len(e.redoStack)-1]
	if err := entry.command.Apply(e.project); err != nil {
		return err
	}
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, entry)
	e.project.Touch()
	return nil
}

// CanUndo reports whether an undo is available.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undoStack) > 0
}

// CanRedo reports whether a redo is available.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.redoStack) > 0
}

// ---------------------------------------------------------------------------
// Track operations
// ---------------------------------------------------------------------------

// AddTrack inserts a new track of the given type at the z-order index.
// An out-of-range index appends.
func (e *Engine) AddTrack(t timeline.TrackType, index int) (*timeline.Track, error) {
	track := timeline.NewTrack(t)
	if err := e.do(&addTrackCommand{track: track, index: index}); err != nil {
		return nil, err
	}
	return e.project.TrackByID(track.ID), nil
}

// ReorderTrack moves a track to a new z-order index.
func (e *Engine) ReorderTrack(trackID string, newIndex int) error {
	return e.do(&reorderTrackCommand{trackID: trackID, newIndex: newIndex})
}

// ---------------------------------------------------------------------------
// Clip operations
// ---------------------------------------------------------------------------

// AddClip places a media clip on a track. Duration derives from the media
// metadata; still images get DefaultImageDuration.
func (e *Engine) AddClip(trackID, mediaID string, startTime float64) (*timeline.Clip, error) {
	item := e.project.MediaByID(mediaID)
	if item == nil {
		return nil, validationf(KindNotFound, "media %s", mediaID)
	}
	dur := item.Duration
	if item.Type == timeline.MediaImage || dur <= 0 {
		dur = DefaultImageDuration
	}
	clip := timeline.NewClip(timeline.ClipMedia, startTime, dur)
	clip.Media = &timeline.MediaProps{MediaID: mediaID, InPoint: 0, OutPoint: dur, Volume: 1}
	if err := e.do(&addClipCommand{name: "Add clip", trackID: trackID, clip: clip}); err != nil {
		return nil, err
	}
	c, _ := e.project.ClipByID(clip.ID)
	return c, nil
}

// AddTextClip places a text clip.
func (e *Engine) AddTextClip(trackID string, startTime, duration float64, props timeline.TextProps) (*timeline.Clip, error) {
	clip := timeline.NewClip(timeline.ClipText, startTime, duration)
	clip.Text = &props
	if err := e.do(&addClipCommand{name: "Add text clip", trackID: trackID, clip: clip}); err != nil {
		return nil, err
	}
	c, _ := e.project.ClipByID(clip.ID)
	return c, nil
}

// AddShapeClip places a vector shape clip.
func (e *Engine) AddShapeClip(trackID string, startTime, duration float64, props timeline.ShapeProps) (*timeline.Clip, error) {
	clip := timeline.NewClip(timeline.ClipShape, startTime, duration)
	clip.Shape = &props
	if err := e.do(&addClipCommand{name: "Add shape clip", trackID: trackID, clip: clip}); err != nil {
		return nil, err
	}
	c, _ := e.project.ClipByID(clip.ID)
	return c, nil
}

// AddSVGClip places a clip rasterized from SVG markup.
func (e *Engine) AddSVGClip(trackID string, startTime, duration float64, props timeline.SVGProps) (*timeline.Clip, error) {
	clip := timeline.NewClip(timeline.ClipSVG, startTime, duration)
	clip.SVG = &props
	if err := e.do(&addClipCommand{name: "Add SVG clip", trackID: trackID, clip: clip}); err != nil {
		return nil, err
	}
	c, _ := e.project.ClipByID(clip.ID)
	return c, nil
}

// AddStickerClip places a sticker clip (library image or generated QR code).
func (e *Engine) AddStickerClip(trackID string, startTime, duration float64, props timeline.StickerProps) (*timeline.Clip, error) {
	clip := timeline.NewClip(timeline.ClipSticker, startTime, duration)
	clip.Sticker = &props
	if err := e.do(&addClipCommand{name: "Add sticker clip", trackID: trackID, clip: clip}); err != nil {
		return nil, err
	}
	c, _ := e.project.ClipByID(clip.ID)
	return c, nil
}

// MoveClip repositions a clip, optionally onto another track. Nothing but
// its start time (and owning track) changes.
func (e *Engine) MoveClip(clipID string, newStartTime float64, targetTrackID string) error {
	return e.do(&moveClipCommand{clipID: clipID, newStart: newStartTime, targetTrackID: targetTrackID})
}

// TrimClip moves one clip edge to newTime (timeline seconds), recomputing
// duration from the fixed edge. Exit keyframes keep their distance to the
// clip end.
func (e *Engine) TrimClip(clipID string, edge TrimEdge, newTime float64) error {
	return e.do(&trimClipCommand{clipID: clipID, edge: edge, newTime: newTime})
}

// SplitClip cuts a clip at a timeline instant strictly inside its interval
// and returns the ids of the two halves. Their durations sum exactly to the
// original's.
func (e *Engine) SplitClip(clipID string, atTime float64) (firstID, secondID string, err error) {
	cmd := &splitClipCommand{clipID: clipID, atTime: atTime}
	if err := e.do(cmd); err != nil {
		return "", "", err
	}
	return clipID, cmd.second.ID, nil
}

// RemoveClip deletes a clip, leaving a gap.
func (e *Engine) RemoveClip(clipID string) error {
	return e.do(&removeClipCommand{clipID: clipID})
}

// RippleDeleteClip deletes a clip and shifts all later clips on the same
// track left by its duration.
func (e *Engine) RippleDeleteClip(clipID string) error {
	return e.do(&removeClipCommand{clipID: clipID, ripple: true})
}

// ---------------------------------------------------------------------------
// Clipboard
// ---------------------------------------------------------------------------

// CopyClips stores deep copies of the given clips on the engine clipboard.
// Copying is not an edit: the history is untouched.
func (e *Engine) CopyClips(clipIDs []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	var copied []*timeline.Clip
	for _, id := range clipIDs {
		clip, _ := e.project.ClipByID(id)
		if clip == nil {
			return validationf(KindNotFound, "clip %s", id)
		}
		copied = append(copied, clip.Clone())
	}
	e.clipboard = copied
	return nil
}

// PasteClips inserts clipboard contents on a track starting at atTime,
// preserving the copied clips' relative timing. Placement is revalidated
// like AddClip.
func (e *Engine) PasteClips(trackID string, atTime float64) ([]string, error) {
	e.mu.Lock()
	if len(e.clipboard) == 0 {
		e.mu.Unlock()
		return nil, validationf(KindInvalidArgument, "clipboard is empty")
	}
	base := e.clipboard[0].StartTime
	for _, c := range e.clipboard {
		if c.StartTime < base {
			base = c.StartTime
		}
	}
	clips := make([]*timeline.Clip, len(e.clipboard))
	ids := make([]string, len(e.clipboard))
	for i, c := range e.clipboard {
		nc := c.WithNewID()
		nc.StartTime = atTime + (c.StartTime - base)
		clips[i] = nc
		ids[i] = nc.ID
	}
	e.mu.Unlock()

	if err := e.do(&pasteClipsCommand{name: "Paste clips", trackID: trackID, clips: clips}); err != nil {
		return nil, err
	}
	return ids, nil
}

// DuplicateClip clones a clip right after itself on the same track.
func (e *Engine) DuplicateClip(clipID string) (string, error) {
	e.mu.Lock()
	clip, track := e.project.ClipByID(clipID)
	if clip == nil {
		e.mu.Unlock()
		return "", validationf(KindNotFound, "clip %s", clipID)
	}
	dup := clip.WithNewID()
	dup.StartTime = clip.End()
	trackID := track.ID
	e.mu.Unlock()

	if err := e.do(&pasteClipsCommand{name: "Duplicate clip", trackID: trackID, clips: []*timeline.Clip{dup}}); err != nil {
		return "", err
	}
	return dup.ID, nil
}

// ---------------------------------------------------------------------------
// Markers, subtitles, presets
// ---------------------------------------------------------------------------

// AddMarker drops a named marker on the timeline ruler.
func (e *Engine) AddMarker(t float64, label, color string) (string, error) {
	m := timeline.Marker{ID: uuid.NewString(), Time: t, Label: label, Color: color}
	if err := e.do(&addMarkerCommand{marker: m}); err != nil {
		return "", err
	}
	return m.ID, nil
}

// RemoveMarker deletes a marker by id.
func (e *Engine) RemoveMarker(markerID string) error {
	return e.do(&removeMarkerCommand{markerID: markerID})
}

// AddSubtitle adds a timed caption.
func (e *Engine) AddSubtitle(start, end float64, text string) (string, error) {
	s := timeline.Subtitle{ID: uuid.NewString(), StartTime: start, EndTime: end, Text: text}
	if err := e.do(&addSubtitleCommand{subtitle: s}); err != nil {
		return "", err
	}
	return s.ID, nil
}

// RemoveSubtitle deletes a subtitle by id.
func (e *Engine) RemoveSubtitle(subtitleID string) error {
	return e.do(&removeSubtitleCommand{subtitleID: subtitleID})
}

// ApplyKeyframePreset appends a generated animation path to a clip.
func (e *Engine) ApplyKeyframePreset(clipID, preset string) error {
	return e.do(&applyPresetCommand{clipID: clipID, preset: preset})
}
