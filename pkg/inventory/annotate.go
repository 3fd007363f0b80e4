package inventory

import (
	"github.com/fogleman/gg"

	"vhsmock/pkg/psdoc"
)

// Annotate renders the document composite with every key layer's bounding
// box outlined and labeled, and saves it as a PNG. Zero-size boxes
// (adjustment layers and the like) are skipped.
func Annotate(doc *psdoc.Document, entry Entry, path string) error {
	dc := gg.NewContextForImage(doc.Composite())

	dc.SetLineWidth(2)
	for _, info := range entry.KeyLayers {
		if info.BBox.Width == 0 || info.BBox.Height == 0 {
			continue
		}
		x := float64(info.BBox.X)
		y := float64(info.BBox.Y)

		dc.SetRGBA(1, 0.2, 0.2, 0.9)
		dc.DrawRectangle(x, y, float64(info.BBox.Width), float64(info.BBox.Height))
		dc.Stroke()

		dc.SetRGBA(1, 1, 1, 0.9)
		dc.DrawString(info.Name, x+4, y+14)
	}
	return dc.SavePNG(path)
}
