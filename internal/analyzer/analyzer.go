// Package analyzer finds regions of interest in clip content. The detected
// regions feed the director, which turns them into camera keyframes.
package analyzer

import (
	"fmt"
	"image"
)

// Region is a detected area of interest.
type Region struct {
	Rect       image.Rectangle
	Confidence float64 // 0.0-1.0
}

// Detector is the interface for content analysis strategies.
type Detector interface {
	Detect(img image.Image) ([]Region, error)
}

// NewDetector creates a detector based on the specified variant.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	case "face":
		return nil, fmt.Errorf("face detector not yet implemented")
	default:
		return nil, fmt.Errorf("unknown detector variant: %s", variant)
	}
}
