package psdoc

import (
	"image"
	"image/draw"

	"github.com/oov/psd/blend"
)

// Composite flattens the document's visible layers, bottom to top, onto a
// canvas-sized transparent image. Per-layer screen and multiply blend
// modes and opacity are honored; every other mode falls back to normal.
func (d *Document) Composite() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	drawLayers(dst, d.Layers, image.Point{})
	return dst
}

// drawLayers composites layers into dst. origin is the document-space
// point mapped to dst's (0,0).
func drawLayers(dst *image.NRGBA, layers []Layer, origin image.Point) {
	for _, l := range layers {
		if !l.Visible() {
			continue
		}
		if l.IsGroup() {
			// A group at reduced opacity or a non-normal mode blends as
			// one unit, not child by child.
			if l.Opacity() < 1 || l.BlendMode() != BlendNormal {
				if src := compositeGroup(l); src != nil {
					drawLayer(dst, src, l.BBox().Min.Sub(origin), l.BlendMode(), l.Opacity())
				}
				continue
			}
			drawLayers(dst, l.Children(), origin)
			continue
		}
		src := l.Composite()
		if src == nil {
			continue
		}
		drawLayer(dst, src, l.BBox().Min.Sub(origin), l.BlendMode(), l.Opacity())
	}
}

func drawLayer(dst *image.NRGBA, src *image.NRGBA, at image.Point, mode string, opacity float64) {
	if opacity < 1 {
		src = fadeAlpha(src, opacity)
	}
	r := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	switch mode {
	case BlendScreen:
		blend.Screen.Draw(dst, r, src, src.Bounds().Min)
	case BlendMultiply:
		blend.Multiply.Draw(dst, r, src, src.Bounds().Min)
	default:
		draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
	}
}

// compositeGroup renders a group's visible children into the group's
// union bounding box.
func compositeGroup(g Layer) *image.NRGBA {
	b := g.BBox()
	if b.Empty() {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	drawLayers(dst, g.Children(), b.Min)
	return dst
}

// unionBBox is the union of the children's bounding boxes.
func unionBBox(children []Layer) image.Rectangle {
	var r image.Rectangle
	for _, c := range children {
		r = r.Union(c.BBox())
	}
	return r
}

func fadeAlpha(src *image.NRGBA, f float64) *image.NRGBA {
	out := image.NewNRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i]) * f)
	}
	return out
}
