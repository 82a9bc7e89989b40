// Package director turns detected content regions into a camera path. The
// path is expressed as ordinary clip keyframes, so a planned move edits and
// exports exactly like a hand-made one.
package director

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/ivlev/clipforge/internal/analyzer"
	"github.com/ivlev/clipforge/internal/timeline"
)

// Director plans camera movement over clip content on a fixed canvas.
type Director struct {
	CanvasWidth  int
	CanvasHeight int
	MinDwell     float64 // minimum time per region (seconds)
	MaxDwell     float64 // maximum time per region (seconds)
	Padding      float64 // fraction of the canvas a focused region may fill
	MaxZoom      float64
}

func New(canvasWidth, canvasHeight int) *Director {
	return &Director{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		MinDwell:     1.0,
		MaxDwell:     3.0,
		Padding:      0.9,
		MaxZoom:      3.0,
	}
}

// PlanKeyframes builds a camera path over the given regions: full view,
// then each region in reading order, then back to full view. The return to
// full view is an exit keyframe, so it stays pinned to the clip end through
// later trims. imgW and imgH are the content dimensions in pixels; fitMode
// is the clip's image fit mode, which determines the base scale the zoom
// multiplies.
func (d *Director) PlanKeyframes(regions []analyzer.Region, imgW, imgH int, duration float64, fitMode string) ([]timeline.Keyframe, error) {
	if len(regions) == 0 {
		return nil, fmt.Errorf("no regions detected")
	}
	if imgW <= 0 || imgH <= 0 {
		return nil, fmt.Errorf("invalid content size %dx%d", imgW, imgH)
	}

	sorted := readingOrder(regions)
	dwell := d.dwellTime(duration, len(sorted))

	base := d.baseScale(imgW, imgH, fitMode)

	var kfs []timeline.Keyframe
	kfs = append(kfs, cameraStop(0, 1, 0, 0)...)

	t := 1.0 // intro second on the full view
	for _, region := range sorted {
		if t+dwell > duration {
			break
		}
		zoom, px, py := d.focus(region.Rect, imgW, imgH, base)
		kfs = append(kfs, cameraStop(t, zoom, px, py)...)
		t += dwell
	}

	kfs = append(kfs,
		timeline.NewExitKeyframe("scale.x", duration, 1, timeline.EaseInOut),
		timeline.NewExitKeyframe("scale.y", duration, 1, timeline.EaseInOut),
		timeline.NewExitKeyframe("position.x", duration, 0, timeline.EaseInOut),
		timeline.NewExitKeyframe("position.y", duration, 0, timeline.EaseInOut),
	)
	return kfs, nil
}

func cameraStop(t, zoom, px, py float64) []timeline.Keyframe {
	return []timeline.Keyframe{
		timeline.NewKeyframe("scale.x", t, zoom, timeline.EaseInOut),
		timeline.NewKeyframe("scale.y", t, zoom, timeline.EaseInOut),
		timeline.NewKeyframe("position.x", t, px, timeline.EaseInOut),
		timeline.NewKeyframe("position.y", t, py, timeline.EaseInOut),
	}
}

// readingOrder sorts regions top-to-bottom, left-to-right. Regions whose
// tops are within a small band count as the same row.
func readingOrder(regions []analyzer.Region) []analyzer.Region {
	sorted := make([]analyzer.Region, len(regions))
	copy(sorted, regions)

	const rowBand = 20
	sort.Slice(sorted, func(i, j int) bool {
		dy := sorted[i].Rect.Min.Y - sorted[j].Rect.Min.Y
		if dy < -rowBand || dy > rowBand {
			return sorted[i].Rect.Min.Y < sorted[j].Rect.Min.Y
		}
		return sorted[i].Rect.Min.X < sorted[j].Rect.Min.X
	})
	return sorted
}

func (d *Director) dwellTime(duration float64, regionCount int) float64 {
	// A second each of intro and outro stays on the full view
	available := duration - 2.0
	if available <= 0 {
		available = duration
	}
	dwell := available / float64(regionCount)
	if dwell < d.MinDwell {
		dwell = d.MinDwell
	}
	if dwell > d.MaxDwell {
		dwell = d.MaxDwell
	}
	return dwell
}

// baseScale is the content-to-canvas scale the fit mode applies before any
// keyframed zoom.
func (d *Director) baseScale(imgW, imgH int, fitMode string) float64 {
	cw, ch := float64(d.CanvasWidth), float64(d.CanvasHeight)
	switch fitMode {
	case "contain", "fill":
		return math.Min(cw/float64(imgW), ch/float64(imgH))
	case "cover":
		return math.Max(cw/float64(imgW), ch/float64(imgH))
	}
	return 1.0
}

// focus computes the zoom and position offset that center a region on the
// canvas with some padding around it.
func (d *Director) focus(rect image.Rectangle, imgW, imgH int, base float64) (zoom, px, py float64) {
	rw, rh := float64(rect.Dx()), float64(rect.Dy())
	if rw == 0 || rh == 0 {
		return 1, 0, 0
	}
	cw, ch := float64(d.CanvasWidth), float64(d.CanvasHeight)

	zoom = d.Padding * math.Min(cw/(base*rw), ch/(base*rh))
	if zoom < 1 {
		zoom = 1
	}
	if zoom > d.MaxZoom {
		zoom = d.MaxZoom
	}

	// The anchor sits at the content center; shifting the layer by the
	// scaled distance from content center to region center brings the
	// region to the canvas center.
	cx := float64(rect.Min.X) + rw/2
	cy := float64(rect.Min.Y) + rh/2
	s := base * zoom
	px = -s * (cx - float64(imgW)/2)
	py = -s * (cy - float64(imgH)/2)
	return zoom, px, py
}
