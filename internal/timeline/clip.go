package timeline

import "github.com/google/uuid"

// ClipKind tags the closed union of clip content types.
type ClipKind string

const (
	ClipMedia   ClipKind = "media"
	ClipText    ClipKind = "text"
	ClipShape   ClipKind = "shape"
	ClipSVG     ClipKind = "svg"
	ClipSticker ClipKind = "sticker"
)

// Clip is a timed placement of content on a track. Exactly one of the
// kind-specific property pointers is set, matching Kind.
type Clip struct {
	ID        string   `json:"id"`
	TrackID   string   `json:"trackId"`
	Kind      ClipKind `json:"kind"`
	StartTime float64  `json:"startTime"`
	Duration  float64  `json:"duration"`

	Transform Transform  `json:"transform"`
	Keyframes []Keyframe `json:"keyframes,omitempty"`
	Effects   []Effect   `json:"effects,omitempty"`

	Media   *MediaProps   `json:"media,omitempty"`
	Text    *TextProps    `json:"text,omitempty"`
	Shape   *ShapeProps   `json:"shape,omitempty"`
	SVG     *SVGProps     `json:"svg,omitempty"`
	Sticker *StickerProps `json:"sticker,omitempty"`
}

// MediaProps holds the source reference and trim points of a media clip.
// InPoint/OutPoint are offsets into the source in seconds.
type MediaProps struct {
	MediaID  string  `json:"mediaId"`
	InPoint  float64 `json:"inPoint"`
	OutPoint float64 `json:"outPoint"`
	Volume   float64 `json:"volume"`
	Muted    bool    `json:"muted,omitempty"`
}

// TextProps describes a procedurally rendered text clip.
type TextProps struct {
	Content      string  `json:"content"`
	FontSize     float64 `json:"fontSize"`
	Color        string  `json:"color"`
	Background   string  `json:"background,omitempty"`
	Align        string  `json:"align,omitempty"`
	Bold         bool    `json:"bold,omitempty"`
	ShadowColor  string  `json:"shadowColor,omitempty"`
	ShadowOffset float64 `json:"shadowOffset,omitempty"`
}

// ShapeType enumerates the parametric shapes the renderer understands.
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeTriangle  ShapeType = "triangle"
	ShapeStar      ShapeType = "star"
	ShapePolygon   ShapeType = "polygon"
	ShapeLine      ShapeType = "line"
)

// ShapeProps describes a vector shape clip.
type ShapeProps struct {
	Shape       ShapeType `json:"shape"`
	Fill        string    `json:"fill"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Sides       int       `json:"sides,omitempty"`       // polygon
	InnerRadius float64   `json:"innerRadius,omitempty"` // star, fraction of outer
	Width       float64   `json:"width"`                 // natural size in pixels
	Height      float64   `json:"height"`
}

// SVGProps holds raw SVG markup rasterized at render time.
type SVGProps struct {
	Markup string  `json:"markup"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// StickerProps references a sticker image or a generated QR code.
type StickerProps struct {
	Source  string `json:"source"`            // "image" or "qr"
	MediaID string `json:"mediaId,omitempty"` // source == "image"
	Content string `json:"content,omitempty"` // source == "qr": encoded payload
	Size    int    `json:"size,omitempty"`    // qr edge in pixels
}

// Effect is an opaque named effect with numeric parameters. The core invokes
// effects it knows and skips the rest; effect semantics beyond transforms are
// collaborator territory.
type Effect struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params,omitempty"`
}

// NewClip creates a clip of the given kind with a default transform.
func NewClip(kind ClipKind, start, duration float64) *Clip {
	return &Clip{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartTime: start,
		Duration:  duration,
		Transform: DefaultTransform(),
	}
}

// End returns the exclusive end of the clip interval.
func (c *Clip) End() float64 {
	return c.StartTime + c.Duration
}

// ContainsTime reports whether t falls in [StartTime, End).
func (c *Clip) ContainsTime(t float64) bool {
	return t >= c.StartTime && t < c.End()
}

// LocalTime converts timeline time to clip-local time.
func (c *Clip) LocalTime(t float64) float64 {
	return t - c.StartTime
}

// Clone returns a deep copy with the same id. Use WithNewID for paste/duplicate.
func (c *Clip) Clone() *Clip {
	cc := *c
	cc.Keyframes = append([]Keyframe(nil), c.Keyframes...)
	cc.Effects = make([]Effect, len(c.Effects))
	for i, e := range c.Effects {
		ce := e
		if e.Params != nil {
			ce.Params = make(map[string]float64, len(e.Params))
			for k, v := range e.Params {
				ce.Params[k] = v
			}
		}
		cc.Effects[i] = ce
	}
	if c.Media != nil {
		m := *c.Media
		cc.Media = &m
	}
	if c.Text != nil {
		t := *c.Text
		cc.Text = &t
	}
	if c.Shape != nil {
		s := *c.Shape
		cc.Shape = &s
	}
	if c.SVG != nil {
		s := *c.SVG
		cc.SVG = &s
	}
	if c.Sticker != nil {
		s := *c.Sticker
		cc.Sticker = &s
	}
	if c.Transform.Crop != nil {
		cr := *c.Transform.Crop
		cc.Transform.Crop = &cr
	}
	if c.Transform.Rotate3D != nil {
		r := *c.Transform.Rotate3D
		cc.Transform.Rotate3D = &r
	}
	return &cc
}

// WithNewID returns a deep copy under fresh clip and keyframe ids.
// Exit keyframe ids keep their "exit" prefix so re-anchoring still applies.
func (c *Clip) WithNewID() *Clip {
	cc := c.Clone()
	cc.ID = uuid.NewString()
	for i := range cc.Keyframes {
		if cc.Keyframes[i].IsExit() {
			cc.Keyframes[i].ID = ExitKeyframePrefix + uuid.NewString()
		} else {
			cc.Keyframes[i].ID = uuid.NewString()
		}
	}
	return cc
}
