package edit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/ivlev/clipforge/internal/timeline"
)

// Random edit sequences must unwind perfectly: after undoing everything the
// document is byte-identical to the initial snapshot, and the model stays
// valid after every step.
func TestRandomEditsUndoToInitialState(t *testing.T) {
	e, video, _ := testEngine(t)
	video2, _ := e.AddTrack(timeline.TrackVideo, -1)
	tracks := []string{video.ID, video2.ID}

	// ModifiedAt moves on every edit including undo, so compare with it
	// zeroed out.
	canon := func() string {
		c := e.Project().Clone()
		c.ModifiedAt = time.Time{}
		data, err := timeline.Marshal(c)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		return string(data)
	}
	initial := canon()

	r := rand.New(rand.NewSource(42))
	applied := 0

	clipIDs := func() []string {
		var ids []string
		for _, tr := range e.Project().Timeline.Tracks {
			for _, c := range tr.Clips {
				ids = append(ids, c.ID)
			}
		}
		return ids
	}

	for i := 0; i < 300; i++ {
		ids := clipIDs()
		var opErr error
		did := false

		switch op := r.Intn(7); op {
		case 0:
			_, opErr = e.AddClip(tracks[r.Intn(len(tracks))], "img1", r.Float64()*60)
			did = opErr == nil
		case 1:
			if len(ids) > 0 {
				id := ids[r.Intn(len(ids))]
				opErr = e.MoveClip(id, r.Float64()*60, tracks[r.Intn(len(tracks))])
				did = opErr == nil
			}
		case 2:
			if len(ids) > 0 {
				id := ids[r.Intn(len(ids))]
				clip, _ := e.Project().ClipByID(id)
				edge := TrimLeft
				newTime := clip.StartTime + r.Float64()*clip.Duration*0.4
				if r.Intn(2) == 0 {
					edge = TrimRight
					newTime = clip.End() - r.Float64()*clip.Duration*0.4
				}
				opErr = e.TrimClip(id, edge, newTime)
				did = opErr == nil
			}
		case 3:
			if len(ids) > 0 {
				id := ids[r.Intn(len(ids))]
				clip, _ := e.Project().ClipByID(id)
				_, _, opErr = e.SplitClip(id, clip.StartTime+clip.Duration*(0.2+r.Float64()*0.6))
				did = opErr == nil
			}
		case 4:
			if len(ids) > 0 {
				opErr = e.RemoveClip(ids[r.Intn(len(ids))])
				did = opErr == nil
			}
		case 5:
			if len(ids) > 0 {
				_, opErr = e.DuplicateClip(ids[r.Intn(len(ids))])
				did = opErr == nil
			}
		case 6:
			if len(ids) > 0 {
				opErr = e.ApplyKeyframePreset(ids[r.Intn(len(ids))], PresetKenBurns)
				did = opErr == nil
			}
		}

		if opErr != nil {
			// Rejections are fine, but they have to be typed and leave the
			// model valid.
			if KindOf(opErr) == "" {
				t.Fatalf("step %d: untyped error %v", i, opErr)
			}
		}
		if did {
			applied++
		}
		if err := e.Project().Validate(); err != nil {
			t.Fatalf("step %d left the model invalid: %v", i, err)
		}
	}

	t.Logf("applied %d edits", applied)

	for i := 0; i < applied; i++ {
		if err := e.Undo(); err != nil {
			t.Fatalf("Undo %d: %v", i, err)
		}
		if err := e.Project().Validate(); err != nil {
			t.Fatalf("undo %d left the model invalid: %v", i, err)
		}
	}

	if got := canon(); got != initial {
		t.Error("undoing every edit did not restore the initial document")
	}

	// Redo everything and undo again; the history must replay cleanly.
	for e.CanRedo() {
		if err := e.Redo(); err != nil {
			t.Fatalf("Redo: %v", err)
		}
	}
	for i := 0; i < applied; i++ {
		if err := e.Undo(); err != nil {
			t.Fatalf("Undo after redo: %v", err)
		}
	}
	if got := canon(); got != initial {
		t.Error("redo/undo cycle did not restore the initial document")
	}
}
