package source

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzSource renders vector documents (PDF, SVG, EPUB) through MuPDF.
// Documents are stills from the timeline's point of view: every frame shows
// the first page.
type FitzSource struct {
	doc  *fitz.Document
	path string
	dpi  float64
}

func NewFitzSource(path string) (*FitzSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &FitzSource{doc: doc, path: path, dpi: 144}, nil
}

// NewFitzMemorySource rasterizes in-memory markup (SVG clips hand their
// markup here).
func NewFitzMemorySource(data []byte) (*FitzSource, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return &FitzSource{doc: doc, dpi: 144}, nil
}

func (s *FitzSource) Dimensions() (int, int) {
	rect, err := s.doc.Bound(0)
	if err != nil {
		return 0, 0
	}
	return rect.Dx(), rect.Dy()
}

func (s *FitzSource) Duration() float64 { return 0 }

func (s *FitzSource) FrameAt(_ float64) (image.Image, error) {
	return s.doc.ImageDPI(0, s.dpi)
}

func (s *FitzSource) Close() error {
	return s.doc.Close()
}
