package system

import (
	"image"
	"testing"
)

func TestRenderWorkers(t *testing.T) {
	if n := RenderWorkers(); n < 1 {
		t.Errorf("RenderWorkers() = %d, want at least 1", n)
	}
}

func TestPrefetchDepthBounds(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {64, 36}, {1920, 1080}, {3840, 2160}, {100000, 100000}} {
		d := PrefetchDepth(size[0], size[1])
		if d < 2 || d > 16 {
			t.Errorf("PrefetchDepth(%d, %d) = %d, want within [2, 16]", size[0], size[1], d)
		}
	}
}

func TestImagePoolReuse(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 64, 36)

	a := pool.Get(rect)
	if a.Bounds() != rect {
		t.Fatalf("bounds = %v, want %v", a.Bounds(), rect)
	}
	a.Pix[0] = 200
	pool.Put(a)

	b := pool.Get(rect)
	if b.Bounds() != rect {
		t.Fatalf("bounds after reuse = %v, want %v", b.Bounds(), rect)
	}
	for i, v := range b.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, pooled frame must come back zeroed", i, v)
		}
	}

	// Mismatched size must still produce a correctly sized frame.
	big := pool.Get(image.Rect(0, 0, 128, 72))
	if big.Bounds().Dx() != 128 || big.Bounds().Dy() != 72 {
		t.Errorf("bounds = %v, want 128x72", big.Bounds())
	}
}
