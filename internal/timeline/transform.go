package timeline

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec3 is used for 3D rotation angles in degrees.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Crop is a sub-rectangle of the clip content in normalized clip-local
// coordinates (0..1).
type Crop struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// BlendMode names follow the CSS set. The renderer maps them onto its native
// set; modes without a native equivalent fall back to normal blending.
type BlendMode string

const (
	BlendNormal    BlendMode = "normal"
	BlendMultiply  BlendMode = "multiply"
	BlendScreen    BlendMode = "screen"
	BlendAdd       BlendMode = "add"
	BlendDarken    BlendMode = "darken"
	BlendLighten   BlendMode = "lighten"
	BlendOverlay   BlendMode = "overlay"    // approximated as normal
	BlendSoftLight BlendMode = "soft-light" // approximated as normal
	BlendHardLight BlendMode = "hard-light" // approximated as normal
)

// Transform is the static visual placement of a clip. Keyframes override
// individual properties at render time; the struct itself never changes
// during playback.
type Transform struct {
	// Position is the offset of the clip anchor from the canvas center,
	// in canvas pixels.
	Position Vec2    `json:"position"`
	Scale    Vec2    `json:"scale"`
	Rotation float64 `json:"rotation"` // degrees, clockwise
	Opacity  float64 `json:"opacity"`  // 0..1
	// Anchor is normalized over the content size; {0.5,0.5} is the center.
	Anchor Vec2 `json:"anchor"`

	BorderRadius float64   `json:"borderRadius,omitempty"` // content pixels
	Crop         *Crop     `json:"crop,omitempty"`
	BlendMode    BlendMode `json:"blendMode,omitempty"`
	BlendOpacity float64   `json:"blendOpacity,omitempty"`
	Rotate3D     *Vec3     `json:"rotate3d,omitempty"`
	Perspective  float64   `json:"perspective,omitempty"`
	FitMode      string    `json:"fitMode,omitempty"` // contain, cover, fill
}

// DefaultTransform returns the identity placement: centered, unscaled,
// fully opaque.
func DefaultTransform() Transform {
	return Transform{
		Scale:   Vec2{X: 1, Y: 1},
		Opacity: 1,
		Anchor:  Vec2{X: 0.5, Y: 0.5},
	}
}
