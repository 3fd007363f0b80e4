// Package template extracts reusable template assets from a FRONT mockup
// document: per-layer canvas PNGs, a flattened placeholder cover
// (PNG + WEBP) and a JSON manifest describing blend order.
package template

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"vhsmock/pkg/psdoc"
	"vhsmock/pkg/raster"
)

// DefaultLayerPaths maps the template aliases to their layer paths inside
// the Black VHS Case FRONT document. "Mokcup" is spelled the way the
// source document spells it.
var DefaultLayerPaths = map[string]string{
	"shadow":    "Shadows/Facing Down (Alt)",
	"case":      "Black VHS Case/Front Case Mokcup",
	"design":    "Black VHS Case/**Your Design Here [Double-Click]** (Sleeve Insert)",
	"plastic":   "Textures/Texture/Plastic",
	"scratches": "Textures/Texture/Scratches + Reflection [Adjust]",
}

// Output filenames, fixed parts of the template contract.
const (
	FileShadow    = "front-shadow-underlay.png"
	FileCase      = "front-case-underlay.png"
	FileDesign    = "front-placeholder-design.png"
	FilePlastic   = "front-texture-plastic.png"
	FileScratches = "front-texture-scratches.png"
	FileCoverPNG  = "front-placeholder-cover.png"
	FileCoverWEBP = "front-placeholder-cover.webp"
	FileMetadata  = "front-metadata.json"
)

// Options configures a template build.
type Options struct {
	OutputDir    string
	PublicPrefix string            // public asset path prefix recorded in the manifest
	WebPQuality  float32           // lossy quality for the cover webp
	Aliases      map[string]string // nil means DefaultLayerPaths
}

// Size is a canvas size in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a placement rectangle in document coordinates.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Placement is one manifest entry of the underlay/overlay stacks.
type Placement struct {
	PublicPath string  `json:"publicPath"`
	Blend      string  `json:"blend"`
	Opacity    float64 `json:"opacity"`
}

// Metadata is the front-metadata.json schema.
type Metadata struct {
	SourcePSBName string      `json:"sourcePsbName"`
	Output        Size        `json:"output"`
	Poster        Rect        `json:"poster"`
	Underlays     []Placement `json:"underlays"`
	Overlays      []Placement `json:"overlays"`
}

// Build resolves the alias table against doc, exports the five layer
// canvases, composes the placeholder cover and writes the manifest.
// Resolution happens before any file is written, so a missing layer
// produces no partial output.
func Build(doc *psdoc.Document, opts Options) (*Metadata, error) {
	aliases := opts.Aliases
	if aliases == nil {
		aliases = DefaultLayerPaths
	}
	layers, err := psdoc.ResolveAliases(doc, aliases)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, err
	}

	shadow := raster.ToCanvas(doc, layers["shadow"])
	caseImg := raster.ToCanvas(doc, layers["case"])
	design := raster.ToCanvas(doc, layers["design"])
	plastic := raster.ToCanvas(doc, layers["plastic"])
	scratches := raster.ToCanvas(doc, layers["scratches"])

	exports := []struct {
		name string
		img  *image.NRGBA
	}{
		{FileShadow, shadow},
		{FileCase, caseImg},
		{FileDesign, design},
		{FilePlastic, plastic},
		{FileScratches, scratches},
	}
	for _, e := range exports {
		if err := imaging.Save(e.img, filepath.Join(opts.OutputDir, e.name)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}

	cover := PlaceholderCover(shadow, caseImg, design, plastic, scratches)
	if err := imaging.Save(cover, filepath.Join(opts.OutputDir, FileCoverPNG)); err != nil {
		return nil, fmt.Errorf("writing %s: %w", FileCoverPNG, err)
	}
	if err := writeWEBP(filepath.Join(opts.OutputDir, FileCoverWEBP), cover, opts.WebPQuality); err != nil {
		return nil, fmt.Errorf("writing %s: %w", FileCoverWEBP, err)
	}

	bbox := layers["design"].BBox()
	meta := &Metadata{
		SourcePSBName: doc.Name,
		Output:        Size{Width: doc.Width, Height: doc.Height},
		Poster: Rect{
			Left:   bbox.Min.X,
			Top:    bbox.Min.Y,
			Width:  bbox.Dx(),
			Height: bbox.Dy(),
		},
		Underlays: []Placement{
			{PublicPath: path.Join(opts.PublicPrefix, FileShadow), Blend: "over", Opacity: 0.5},
			{PublicPath: path.Join(opts.PublicPrefix, FileCase), Blend: "over", Opacity: 1},
		},
		Overlays: []Placement{
			{PublicPath: path.Join(opts.PublicPrefix, FilePlastic), Blend: "screen", Opacity: 1},
			{PublicPath: path.Join(opts.PublicPrefix, FileScratches), Blend: "over", Opacity: 0.5},
		},
	}

	encoded, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(opts.OutputDir, FileMetadata), encoded, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", FileMetadata, err)
	}
	return meta, nil
}

// PlaceholderCover flattens the five template rasters into the preview
// cover: shadow at half opacity, case, design, screened plastic texture,
// scratches at half opacity.
func PlaceholderCover(shadow, caseImg, design, plastic, scratches *image.NRGBA) *image.NRGBA {
	canvas := raster.NewCanvas(caseImg.Bounds().Dx(), caseImg.Bounds().Dy())
	return raster.Compose(canvas, []raster.Instruction{
		{Raster: shadow, Mode: raster.ModeOver, Opacity: 0.5},
		{Raster: caseImg, Mode: raster.ModeOver, Opacity: 1},
		{Raster: design, Mode: raster.ModeOver, Opacity: 1},
		{Raster: plastic, Mode: raster.ModeScreen},
		{Raster: scratches, Mode: raster.ModeOver, Opacity: 0.5},
	})
}

// writeWEBP encodes a lossy webp, dropping alpha the way the PNG cover's
// RGB conversion does.
func writeWEBP(dst string, img *image.NRGBA, quality float32) error {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	return webp.Encode(f, out, &webp.Options{Quality: quality})
}
