// Package proto simulates the poster-compositing pipeline without the
// original design tool: it hides the design layers, re-composites the
// document and combines the result with a pasted poster under three
// blend variants for visual evaluation.
package proto

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"vhsmock/pkg/poster"
	"vhsmock/pkg/psdoc"
	"vhsmock/pkg/raster"
)

// DesignMarker is the substring identifying design layers to hide before
// the "no design" re-composite.
const DesignMarker = "Your Design Here"

// Layer names of the Black VHS Case FRONT document.
const (
	DefaultDesignLayer     = "**Your Design Here [Double-Click]** (Sleeve Insert)"
	DefaultBackgroundLayer = "Background Color [Double-Click]"
)

// Output filenames.
const (
	FileNoDesign = "front_full_no_design.png"
	FileOver     = "front_proto_over.png"
	FileMultiply = "front_proto_multiply.png"
	FileScreen   = "front_proto_screen.png"
)

// Options configures a prototype run. The mix factors are empirical
// preview constants, tunable per call.
type Options struct {
	OutDir          string
	DesignLayer     string
	BackgroundLayer string
	MultiplyMix     float64
	ScreenMix       float64
}

// Result reports what the run produced.
type Result struct {
	DesignBBox image.Rectangle
	Files      []string
}

// Run executes the pipeline. Both named layers are resolved before any
// file is written; a missing one aborts the run with no output.
func Run(doc *psdoc.Document, posterImg image.Image, opts Options) (*Result, error) {
	design := doc.FindByName(opts.DesignLayer)
	if design == nil {
		return nil, fmt.Errorf("could not find design layer: %s", opts.DesignLayer)
	}
	background := doc.FindByName(opts.BackgroundLayer)
	if background == nil {
		return nil, fmt.Errorf("could not find background layer: %s", opts.BackgroundLayer)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, err
	}

	doc.Walk(func(_ []string, l psdoc.Layer) {
		if strings.Contains(l.Name(), DesignMarker) {
			l.SetVisible(false)
		}
	})
	noDesign := doc.Composite()

	bbox := design.BBox()
	posterCanvas := poster.FitInto(posterImg, bbox, doc.Width, doc.Height)
	base := raster.Over(raster.ToCanvas(doc, background), posterCanvas, 1)

	variants := []struct {
		name string
		img  *image.NRGBA
	}{
		{FileNoDesign, noDesign},
		{FileOver, raster.Over(base, noDesign, 1)},
		{FileMultiply, raster.MultiplyMix(base, noDesign, opts.MultiplyMix)},
		{FileScreen, raster.ScreenMix(base, noDesign, opts.ScreenMix)},
	}

	result := &Result{DesignBBox: bbox}
	for _, v := range variants {
		dst := filepath.Join(opts.OutDir, v.name)
		if err := imaging.Save(v.img, dst); err != nil {
			return nil, fmt.Errorf("writing %s: %w", v.name, err)
		}
		result.Files = append(result.Files, dst)
	}
	return result, nil
}
