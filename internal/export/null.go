package export

import (
	"image"
	"sync"

	"github.com/ivlev/clipforge/internal/config"
)

// NullEncoder отбрасывает кадры и считает записи. Используется для прогонов
// без кодирования (dry-run) и в тестах пайплайна.
type NullEncoder struct {
	mu      sync.Mutex
	frames  int
	samples int
	closed  bool
	aborted bool
}

func (e *NullEncoder) Start(width, height int, settings config.ExportSettings) error {
	return nil
}

func (e *NullEncoder) WriteFrame(img *image.RGBA) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames++
	return nil
}

func (e *NullEncoder) WriteAudio(pcm []int16) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.samples += len(pcm)
	return nil
}

func (e *NullEncoder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}

func (e *NullEncoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aborted = true
}

func (e *NullEncoder) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *NullEncoder) Samples() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.samples
}

func (e *NullEncoder) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

func (e *NullEncoder) Aborted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aborted
}
