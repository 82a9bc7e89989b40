package renderer

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ivlev/clipforge/internal/source"
	"github.com/ivlev/clipforge/internal/system"
)

// SceneContext bundles everything a composition needs beyond the project
// document: media sources, fonts, and the frame buffer pool. It is owned by
// whoever builds the compositor and passed explicitly, so independent
// compositions never share state.
type SceneContext struct {
	Sources *source.Resolver
	Pool    *system.ImagePool

	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
}

// NewSceneContext builds a context with an empty media resolver.
func NewSceneContext() *SceneContext {
	return &SceneContext{
		Sources: source.NewResolver(),
		Pool:    system.NewImagePool(),
	}
}

// face returns a font face for the given weight and pixel size. Faces are
// created per call; the parsed fonts are cached.
func (ctx *SceneContext) face(bold bool, size float64) (font.Face, error) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.regular == nil {
		var err error
		if ctx.regular, err = opentype.Parse(goregular.TTF); err != nil {
			return nil, err
		}
		if ctx.bold, err = opentype.Parse(gobold.TTF); err != nil {
			return nil, err
		}
	}
	f := ctx.regular
	if bold {
		f = ctx.bold
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}
