package psdoc

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/oov/psd"
)

// smartObjectKeys are the additional-info records Photoshop writes for
// embedded, linked and placed smart objects.
var smartObjectKeys = []psd.AdditionalInfoKey{"SoLd", "SoLE", "PlLd"}

// Open parses a PSD or PSB file into a Document. The merged preview image
// stored in the file is skipped; composites are produced from the layer
// data instead.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, _, err := psd.Decode(f, &psd.DecodeOptions{SkipMergedImage: true})
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	doc := &Document{
		Name:   filepath.Base(path),
		Width:  parsed.Config.Rect.Dx(),
		Height: parsed.Config.Rect.Dy(),
	}
	doc.Layers = convertLayers(parsed.Layer)
	return doc, nil
}

func convertLayers(src []psd.Layer) []Layer {
	out := make([]Layer, 0, len(src))
	for i := range src {
		out = append(out, convertLayer(&src[i]))
	}
	return out
}

func convertLayer(l *psd.Layer) Layer {
	return &fileLayer{
		name:     l.Name,
		kind:     classify(l),
		rect:     l.Rect,
		visible:  l.Visible(),
		mode:     blendModeName(l.BlendMode),
		opacity:  float64(l.Opacity) / 255,
		picture:  l.Picker,
		children: convertLayers(l.Layer),
	}
}

func classify(l *psd.Layer) string {
	if l.Folder() {
		return KindGroup
	}
	for _, key := range smartObjectKeys {
		if _, ok := l.AdditionalLayerInfo[key]; ok {
			return KindSmartObject
		}
	}
	if _, ok := l.AdditionalLayerInfo[psd.AdditionalInfoKey("TySh")]; ok {
		return KindType
	}
	return KindPixel
}

func blendModeName(m psd.BlendMode) string {
	switch m {
	case psd.BlendModeScreen:
		return BlendScreen
	case psd.BlendModeMultiply:
		return BlendMultiply
	default:
		return BlendNormal
	}
}

// fileLayer adapts one parsed PSD layer record.
type fileLayer struct {
	name     string
	kind     string
	rect     image.Rectangle
	visible  bool
	mode     string
	opacity  float64
	picture  image.Image
	children []Layer
}

func (l *fileLayer) Name() string      { return l.name }
func (l *fileLayer) Kind() string      { return l.kind }
func (l *fileLayer) Visible() bool     { return l.visible }
func (l *fileLayer) SetVisible(v bool) { l.visible = v }
func (l *fileLayer) IsGroup() bool     { return l.kind == KindGroup }
func (l *fileLayer) Children() []Layer { return l.children }
func (l *fileLayer) BlendMode() string { return l.mode }
func (l *fileLayer) Opacity() float64  { return l.opacity }

func (l *fileLayer) BBox() image.Rectangle {
	if l.IsGroup() {
		return unionBBox(l.children)
	}
	return l.rect
}

func (l *fileLayer) Composite() *image.NRGBA {
	if l.IsGroup() {
		return compositeGroup(l)
	}
	return toNRGBA(l.picture)
}

// toNRGBA normalizes a decoded layer image to an NRGBA buffer whose
// bounds start at the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Empty() {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
