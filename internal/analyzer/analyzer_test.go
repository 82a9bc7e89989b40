package analyzer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// blockImage paints high-contrast rectangles on a flat background.
func blockImage(w, h int, blocks ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 240, G: 240, B: 240, A: 255}), image.Point{}, draw.Src)
	for _, b := range blocks {
		draw.Draw(img, b, image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	}
	return img
}

func TestDetectFindsContrastBlock(t *testing.T) {
	block := image.Rect(100, 80, 220, 160)
	img := blockImage(480, 320, block)

	regions, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(regions) == 0 {
		t.Fatal("no regions found around a high-contrast block")
	}

	found := false
	for _, r := range regions {
		if r.Rect.Overlaps(block) {
			found = true
			if r.Confidence <= 0 || r.Confidence > 1 {
				t.Errorf("confidence = %v, want within (0, 1]", r.Confidence)
			}
		}
	}
	if !found {
		t.Errorf("no region overlaps the block, got %v", regions)
	}
}

func TestDetectIgnoresFlatImage(t *testing.T) {
	img := blockImage(480, 320)

	regions, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("flat image produced %d regions, want 0", len(regions))
	}
}

func TestDetectFiltersSmallRegions(t *testing.T) {
	// A 10x10 speck is below the default MinRegionArea even after dilation.
	img := blockImage(480, 320, image.Rect(50, 50, 60, 60))

	d := NewContrastDetector()
	d.MinRegionArea = 2000
	regions, err := d.Detect(img)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("speck survived the area filter: %v", regions)
	}
}

func TestDetectMapsDownsampledCoordinates(t *testing.T) {
	// 1920 wide forces analysis at AnalysisWidth and a map back to source
	// coordinates.
	block := image.Rect(800, 300, 1100, 600)
	img := blockImage(1920, 1080, block)

	regions, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(regions) == 0 {
		t.Fatal("no regions found")
	}

	for _, r := range regions {
		if r.Rect.Overlaps(block) {
			// Dilation pads the rect; it must still be in the source
			// coordinate neighborhood, not analysis coordinates.
			if r.Rect.Min.X < block.Min.X-100 || r.Rect.Max.X > block.Max.X+100 {
				t.Errorf("region %v too far from block %v, coordinates look unmapped", r.Rect, block)
			}
			return
		}
	}
	t.Errorf("no region overlaps the block, got %v", regions)
}

func TestNewDetector(t *testing.T) {
	for _, variant := range []string{"", "contrast"} {
		d, err := NewDetector(variant)
		if err != nil || d == nil {
			t.Errorf("NewDetector(%q) = %v, %v", variant, d, err)
		}
	}
	if _, err := NewDetector("face"); err == nil {
		t.Error("face variant should report not implemented")
	}
	if _, err := NewDetector("quantum"); err == nil {
		t.Error("unknown variant should fail")
	}
}
