package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ivlev/clipforge/internal/timeline"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "clipforge.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storedProject(name string) *timeline.Project {
	p := timeline.NewProject(name, timeline.Settings{
		Width: 1920, Height: 1080, FrameRate: 30,
		SampleRate: 48000, Channels: 2,
	})
	track := timeline.NewTrack(timeline.TrackVideo)
	clip := timeline.NewClip(timeline.ClipMedia, 0, 4.0)
	clip.Media = &timeline.MediaProps{MediaID: "m1", OutPoint: 4.0, Volume: 1.0}
	track.InsertClip(clip)
	p.Timeline.Tracks = append(p.Timeline.Tracks, track)
	p.MediaLibrary = []timeline.MediaItem{
		{ID: "m1", Type: timeline.MediaVideo, Name: "m1", Duration: 10},
	}
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := storedProject("round-trip")

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, p.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want, _ := timeline.Marshal(p)
	data, _ := timeline.Marshal(got)
	if string(data) != string(want) {
		t.Error("loaded project differs from saved snapshot")
	}
}

func TestSaveUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := storedProject("v1")

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p.Name = "v2"
	p.ModifiedAt = p.ModifiedAt.Add(time.Minute)
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Load(ctx, p.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "v2" {
		t.Errorf("name = %q, want the updated snapshot", got.Name)
	}
	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Errorf("upsert produced %d rows, want 1", len(infos))
	}
}

func TestListOrdersByModifiedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	old := storedProject("old")
	old.ModifiedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fresh := storedProject("fresh")
	fresh.ModifiedAt = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, old); err != nil {
		t.Fatalf("Save old: %v", err)
	}
	if err := s.Save(ctx, fresh); err != nil {
		t.Fatalf("Save fresh: %v", err)
	}

	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("rows = %d, want 2", len(infos))
	}
	if infos[0].Name != "fresh" || infos[1].Name != "old" {
		t.Errorf("order = [%s, %s], want most recent first", infos[0].Name, infos[1].Name)
	}
	if !infos[0].ModifiedAt.Equal(fresh.ModifiedAt) {
		t.Errorf("ModifiedAt = %v, want %v", infos[0].ModifiedAt, fresh.ModifiedAt)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := storedProject("doomed")

	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load(ctx, p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Load after delete = %v, want ErrProjectNotFound", err)
	}
	if err := s.Delete(ctx, p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("second Delete = %v, want ErrProjectNotFound", err)
	}
}

func TestLoadUnknownID(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}
