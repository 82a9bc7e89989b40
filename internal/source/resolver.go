package source

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ivlev/clipforge/internal/timeline"
)

// Resolver opens and caches sources for media library entries. Placeholder
// entries and open failures resolve to ErrMissingMedia so the compositor can
// degrade to a placeholder visual instead of failing the frame.
type Resolver struct {
	mu   sync.Mutex
	open map[string]Source

	// Register lets tests and collaborators inject pre-built sources
	// (solid colors, in-memory images) keyed by media id.
	injected map[string]Source
}

func NewResolver() *Resolver {
	return &Resolver{
		open:     make(map[string]Source),
		injected: make(map[string]Source),
	}
}

// Register binds a media id to an existing source, bypassing file resolution.
func (r *Resolver) Register(mediaID string, s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.injected[mediaID] = s
}

// Resolve returns a source for the library item. Returns ErrMissingMedia for
// placeholder entries, unknown paths, and undecodable files.
func (r *Resolver) Resolve(item *timeline.MediaItem) (Source, error) {
	if item == nil || item.IsPlaceholder {
		return nil, ErrMissingMedia
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.injected[item.ID]; ok {
		return s, nil
	}
	if s, ok := r.open[item.ID]; ok {
		return s, nil
	}
	if item.Path == "" {
		return nil, ErrMissingMedia
	}

	s, err := openPath(item)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingMedia, err)
	}
	r.open[item.ID] = s
	return s, nil
}

// Close releases every file-backed source.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for id, s := range r.open {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.open, id)
	}
	return firstErr
}

func openPath(item *timeline.MediaItem) (Source, error) {
	ext := strings.ToLower(filepath.Ext(item.Path))
	switch {
	case item.Type == timeline.MediaVideo:
		return NewVideoSource(item.Path, item.Width, item.Height, item.Duration), nil
	case ext == ".pdf" || ext == ".svg" || ext == ".epub":
		return NewFitzSource(item.Path)
	default:
		return NewImageSource(item.Path)
	}
}
