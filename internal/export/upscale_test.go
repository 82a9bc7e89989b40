package export

import (
	"bytes"
	"image"
	"testing"

	"github.com/ivlev/clipforge/internal/config"
)

func checkerRGBA(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			i := img.PixOffset(x, y)
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
		}
	}
	return img
}

func TestUpscaleNoopAtSameSize(t *testing.T) {
	src := checkerRGBA(16, 12)
	if got := Upscale(src, 16, 12, config.UpscalingSettings{}); got != src {
		t.Error("same-size upscale should return the source frame")
	}
}

func TestUpscaleResizesWhenDisabled(t *testing.T) {
	src := checkerRGBA(8, 6)

	plain := Upscale(src, 16, 12, config.UpscalingSettings{})
	if plain.Bounds().Dx() != 16 || plain.Bounds().Dy() != 12 {
		t.Fatalf("bounds = %v, frame must match the output size even with upscaling off", plain.Bounds())
	}

	// Quality and sharpening are ignored while Enabled is false.
	off := Upscale(src, 16, 12, config.UpscalingSettings{Quality: "best", Sharpening: 0.8})
	if !bytes.Equal(off.Pix, plain.Pix) {
		t.Error("disabled upscaling must reduce to a plain resize")
	}
}

func TestUpscaleBestQualityUsesBetterScaler(t *testing.T) {
	src := checkerRGBA(8, 6)

	plain := Upscale(src, 16, 12, config.UpscalingSettings{})
	best := Upscale(src, 16, 12, config.UpscalingSettings{Enabled: true, Quality: "best"})
	if bytes.Equal(best.Pix, plain.Pix) {
		t.Error("quality \"best\" should change the scaler output")
	}
}

func TestUpscaleSharpeningApplies(t *testing.T) {
	src := checkerRGBA(8, 6)

	soft := Upscale(src, 16, 12, config.UpscalingSettings{Enabled: true, Quality: "best"})
	sharp := Upscale(src, 16, 12, config.UpscalingSettings{Enabled: true, Quality: "best", Sharpening: 0.8})
	if bytes.Equal(sharp.Pix, soft.Pix) {
		t.Error("sharpening had no effect on the output")
	}
}
