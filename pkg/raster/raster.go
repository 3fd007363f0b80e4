// Package raster positions layer composites on document-sized canvases
// and flattens ordered blend instructions into a final image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/oov/psd/blend"

	"vhsmock/pkg/psdoc"
)

// NewCanvas allocates a fully transparent canvas.
func NewCanvas(width, height int) *image.NRGBA {
	return imaging.New(width, height, color.NRGBA{})
}

// ToCanvas renders a single layer (or group) onto a canvas sized like the
// document, transparent except for the layer's content alpha-composited
// at its bounding-box origin. This isolates the layer for reuse
// regardless of its position in the group tree.
func ToCanvas(doc *psdoc.Document, layer psdoc.Layer) *image.NRGBA {
	canvas := NewCanvas(doc.Width, doc.Height)
	src := layer.Composite()
	if src == nil {
		return canvas
	}
	return imaging.Overlay(canvas, src, layer.BBox().Min, 1.0)
}

// ScaleAlpha scales the alpha channel by f. At f >= 1 the input is
// returned unchanged.
func ScaleAlpha(img *image.NRGBA, f float64) *image.NRGBA {
	if f >= 1 {
		return img
	}
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i]) * f)
	}
	return out
}

// Over alpha-composites overlay onto base, optionally scaling the
// overlay's alpha by opacity first.
func Over(base, overlay *image.NRGBA, opacity float64) *image.NRGBA {
	return imaging.Overlay(base, ScaleAlpha(overlay, opacity), image.Point{}, 1.0)
}

// Screen applies the photographic screen blend between the RGB channels
// of base and overlay, masked by the overlay's alpha. The base's own
// alpha channel is preserved unchanged, and base pixels outside the
// overlay's extent are left untouched.
func Screen(base, overlay *image.NRGBA) *image.NRGBA {
	screened := opaque(base)
	ov := opaque(overlay)
	blend.Screen.Draw(screened, screened.Bounds(), ov, ov.Bounds().Min)

	out := imaging.Clone(base)
	mask := imaging.Clone(overlay)
	r := out.Bounds().Intersect(mask.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := out.PixOffset(x, y)
			a := int(mask.Pix[mask.PixOffset(x, y)+3])
			for c := 0; c < 3; c++ {
				b := int(out.Pix[i+c])
				s := int(screened.Pix[i+c])
				out.Pix[i+c] = uint8((b*(255-a) + s*a + 127) / 255)
			}
		}
	}
	return out
}

// MultiplyMix computes the per-channel product of base and overlay on
// RGB, then interpolates between base and the product by mix. The result
// is opaque; mix is a scalar, not a per-pixel mask.
func MultiplyMix(base, overlay *image.NRGBA, mix float64) *image.NRGBA {
	return blendMix(blend.Multiply, base, overlay, mix)
}

// ScreenMix is the full-frame screen counterpart of MultiplyMix.
func ScreenMix(base, overlay *image.NRGBA, mix float64) *image.NRGBA {
	return blendMix(blend.Screen, base, overlay, mix)
}

func blendMix(drawer draw.Drawer, base, overlay *image.NRGBA, mix float64) *image.NRGBA {
	blended := opaque(base)
	ov := opaque(overlay)
	drawer.Draw(blended, blended.Bounds(), ov, ov.Bounds().Min)
	return Mix(opaque(base), blended, mix)
}

// Mix linearly interpolates from a to b by f across all channels. The
// images must share dimensions.
func Mix(a, b *image.NRGBA, f float64) *image.NRGBA {
	out := imaging.Clone(a)
	bb := imaging.Clone(b)
	for i := range out.Pix {
		av := float64(out.Pix[i])
		out.Pix[i] = uint8(math.Round(av + (float64(bb.Pix[i])-av)*f))
	}
	return out
}

// opaque clones img with the alpha channel forced fully opaque, the
// equivalent of dropping to RGB before a channel blend.
func opaque(img *image.NRGBA) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}
