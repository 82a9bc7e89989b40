package timeline

import (
	"testing"
)

func testProject() *Project {
	return NewProject("test", Settings{
		Width: 1280, Height: 720, FrameRate: 30,
		SampleRate: 48000, Channels: 2,
	})
}

func TestCanPlaceRejectsOverlap(t *testing.T) {
	track := NewTrack(TrackVideo)
	track.InsertClip(NewClip(ClipMedia, 2.0, 3.0)) // [2,5)

	tests := []struct {
		name     string
		start    float64
		duration float64
		want     bool
	}{
		{"before", 0, 2.0, true},
		{"after", 5.0, 2.0, true},
		{"overlap left", 1.0, 2.0, false},
		{"overlap right", 4.0, 2.0, false},
		{"contained", 3.0, 1.0, false},
		{"containing", 1.0, 6.0, false},
		{"touching end", 5.0, 1.0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := track.CanPlace(tt.start, tt.duration, ""); got != tt.want {
				t.Errorf("CanPlace(%.1f, %.1f) = %v, want %v", tt.start, tt.duration, got, tt.want)
			}
		})
	}
}

func TestCanPlaceExcludesSelf(t *testing.T) {
	track := NewTrack(TrackVideo)
	clip := NewClip(ClipMedia, 2.0, 3.0)
	track.InsertClip(clip)

	if !track.CanPlace(2.5, 3.0, clip.ID) {
		t.Error("moving a clip over itself should be allowed")
	}
}

func TestCanHostKind(t *testing.T) {
	tests := []struct {
		track TrackType
		kind  ClipKind
		media MediaType
		want  bool
	}{
		{TrackVideo, ClipMedia, MediaVideo, true},
		{TrackVideo, ClipMedia, MediaAudio, false},
		{TrackAudio, ClipMedia, MediaAudio, true},
		{TrackAudio, ClipText, "", false},
		{TrackText, ClipText, "", true},
		{TrackGraphics, ClipText, "", true},
		{TrackGraphics, ClipShape, "", true},
		{TrackText, ClipSticker, "", true},
		{TrackVideo, ClipShape, "", false},
		{TrackImage, ClipMedia, MediaImage, true},
	}
	for _, tt := range tests {
		track := NewTrack(tt.track)
		if got := track.CanHostKind(tt.kind, tt.media); got != tt.want {
			t.Errorf("%s track hosting %s/%s = %v, want %v", tt.track, tt.kind, tt.media, got, tt.want)
		}
	}
}

func TestProjectDuration(t *testing.T) {
	p := testProject()
	if p.Duration() != 0 {
		t.Errorf("empty project duration = %f, want 0", p.Duration())
	}

	v := NewTrack(TrackVideo)
	v.InsertClip(NewClip(ClipMedia, 0, 4.0))
	a := NewTrack(TrackAudio)
	a.InsertClip(NewClip(ClipMedia, 3.0, 6.0))
	p.Timeline.Tracks = []*Track{v, a}

	if got := p.Duration(); got != 9.0 {
		t.Errorf("duration = %f, want 9.0", got)
	}

	p.Timeline.Subtitles = append(p.Timeline.Subtitles, Subtitle{StartTime: 8, EndTime: 12, Text: "tail"})
	if got := p.Duration(); got != 12.0 {
		t.Errorf("duration with subtitle = %f, want 12.0", got)
	}
}

func TestValidateCatchesOverlap(t *testing.T) {
	p := testProject()
	track := NewTrack(TrackVideo)
	track.InsertClip(NewClip(ClipMedia, 0, 3.0))
	track.InsertClip(NewClip(ClipMedia, 2.0, 3.0))
	p.Timeline.Tracks = []*Track{track}

	if err := p.Validate(); err == nil {
		t.Error("expected validation error for overlapping clips")
	}
}

func TestValidateCatchesShortClip(t *testing.T) {
	p := testProject()
	track := NewTrack(TrackVideo)
	track.InsertClip(NewClip(ClipMedia, 0, MinClipDuration/2))
	p.Timeline.Tracks = []*Track{track}

	if err := p.Validate(); err == nil {
		t.Error("expected validation error for sub-minimum duration")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := testProject()
	track := NewTrack(TrackVideo)
	clip := NewClip(ClipMedia, 0, 5.0)
	clip.Keyframes = append(clip.Keyframes, NewKeyframe("opacity", 1.0, 0.5, EaseLinear))
	track.InsertClip(clip)
	p.Timeline.Tracks = []*Track{track}

	clone := p.Clone()
	clone.Timeline.Tracks[0].Clips[0].StartTime = 99
	clone.Timeline.Tracks[0].Clips[0].Keyframes[0].Value = 0.9

	if p.Timeline.Tracks[0].Clips[0].StartTime != 0 {
		t.Error("clone shares clip with original")
	}
	if p.Timeline.Tracks[0].Clips[0].Keyframes[0].Value != 0.5 {
		t.Error("clone shares keyframes with original")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	p := testProject()
	p.MediaLibrary = append(p.MediaLibrary, MediaItem{
		ID: "m1", Type: MediaVideo, Name: "clip.mp4", Path: "/media/clip.mp4",
		Width: 1920, Height: 1080, Duration: 12.5,
	})
	track := NewTrack(TrackVideo)
	clip := NewClip(ClipMedia, 1.0, 5.0)
	clip.Media = &MediaProps{MediaID: "m1", InPoint: 2.0, OutPoint: 7.0, Volume: 0.8}
	clip.Keyframes = append(clip.Keyframes,
		NewKeyframe("scale.x", 0, 1.0, EaseInOut),
		NewExitKeyframe("opacity", 5.0, 0, EaseIn),
	)
	track.InsertClip(clip)
	p.Timeline.Tracks = []*Track{track}
	p.Timeline.Markers = append(p.Timeline.Markers, Marker{ID: "mk1", Time: 3.0, Label: "cut here"})

	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got.ID != p.ID || got.Name != p.Name {
		t.Errorf("identity mismatch: got %s/%s", got.ID, got.Name)
	}
	gotClip, _ := got.ClipByID(clip.ID)
	if gotClip == nil {
		t.Fatal("clip lost in round trip")
	}
	if gotClip.Media == nil || gotClip.Media.InPoint != 2.0 || gotClip.Media.Volume != 0.8 {
		t.Errorf("media props lost: %+v", gotClip.Media)
	}
	if len(gotClip.Keyframes) != 2 {
		t.Fatalf("keyframes lost: got %d", len(gotClip.Keyframes))
	}
	if !gotClip.Keyframes[1].IsExit() {
		t.Error("exit keyframe flag lost in round trip")
	}
	if len(got.Timeline.Markers) != 1 || got.Timeline.Markers[0].Label != "cut here" {
		t.Error("markers lost in round trip")
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	p := testProject()
	track := NewTrack(TrackVideo)
	track.Clips = []*Clip{NewClip(ClipMedia, 0, 3.0), NewClip(ClipMedia, 1.0, 3.0)}
	p.Timeline.Tracks = []*Track{track}

	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if _, err := Unmarshal(data); err == nil {
		t.Error("expected error loading a document with overlapping clips")
	}
}

func TestUnmarshalSortsUnorderedClips(t *testing.T) {
	p := testProject()
	track := NewTrack(TrackVideo)
	// Non-overlapping but stored out of order: [4,6) before [0,3).
	track.Clips = []*Clip{NewClip(ClipMedia, 4.0, 2.0), NewClip(ClipMedia, 0, 3.0)}
	p.Timeline.Tracks = []*Track{track}

	data, err := Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unordered but valid document rejected: %v", err)
	}
	clips := got.Timeline.Tracks[0].Clips
	if clips[0].StartTime != 0 || clips[1].StartTime != 4.0 {
		t.Errorf("clips not sorted after load: %.1f, %.1f", clips[0].StartTime, clips[1].StartTime)
	}
}

func TestReanchorKeyframes(t *testing.T) {
	clip := NewClip(ClipMedia, 0, 5.0)
	clip.Keyframes = []Keyframe{
		NewKeyframe("opacity", 0.5, 1, EaseLinear),
		NewExitKeyframe("opacity", 4.5, 0, EaseLinear), // 0.5s from the end
	}

	clip.Duration = 3.0
	clip.ReanchorKeyframes(5.0, 3.0)

	if clip.Keyframes[0].Time != 0.5 {
		t.Errorf("entry keyframe moved: time = %f, want 0.5", clip.Keyframes[0].Time)
	}
	if clip.Keyframes[1].Time != 2.5 {
		t.Errorf("exit keyframe should keep its distance from the end: time = %f, want 2.5", clip.Keyframes[1].Time)
	}
}

func TestReanchorClampsOutOfRange(t *testing.T) {
	clip := NewClip(ClipMedia, 0, 5.0)
	clip.Keyframes = []Keyframe{
		NewKeyframe("opacity", 4.0, 1, EaseLinear),
	}

	clip.Duration = 2.0
	clip.ReanchorKeyframes(5.0, 2.0)

	if clip.Keyframes[0].Time > 2.0 {
		t.Errorf("keyframe time %f exceeds new duration", clip.Keyframes[0].Time)
	}
}

func TestActiveAt(t *testing.T) {
	track := NewTrack(TrackVideo)
	clip := NewClip(ClipMedia, 1.0, 2.0) // [1,3)
	track.InsertClip(clip)

	if track.ActiveAt(0.5) != nil {
		t.Error("no clip should be active before start")
	}
	if got := track.ActiveAt(1.0); got == nil || got.ID != clip.ID {
		t.Error("clip should be active at its start")
	}
	if track.ActiveAt(3.0) != nil {
		t.Error("clip end is exclusive")
	}
}

func TestWithNewIDPreservesExitPrefix(t *testing.T) {
	clip := NewClip(ClipMedia, 0, 5.0)
	clip.Keyframes = []Keyframe{
		NewKeyframe("opacity", 0, 1, EaseLinear),
		NewExitKeyframe("opacity", 5.0, 0, EaseLinear),
	}

	dup := clip.WithNewID()
	if dup.ID == clip.ID {
		t.Error("duplicate kept the original clip id")
	}
	if dup.Keyframes[0].ID == clip.Keyframes[0].ID {
		t.Error("duplicate kept the original keyframe id")
	}
	if dup.Keyframes[0].IsExit() {
		t.Error("entry keyframe became exit")
	}
	if !dup.Keyframes[1].IsExit() {
		t.Error("exit keyframe lost its prefix")
	}
}
