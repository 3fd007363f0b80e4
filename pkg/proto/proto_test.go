package proto

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"vhsmock/pkg/imagediff"
	"vhsmock/pkg/psdoc"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func frontDoc() *psdoc.Document {
	background := psdoc.NewStaticLayer("Background Color [Double-Click]", psdoc.KindPixel, image.Rect(0, 0, 100, 100), solid(100, 100, color.NRGBA{R: 15, G: 15, B: 15, A: 255}))
	design := psdoc.NewStaticLayer("**Your Design Here [Double-Click]** (Sleeve Insert)", psdoc.KindSmartObject, image.Rect(10, 10, 60, 60), solid(50, 50, color.NRGBA{R: 255, A: 255}))
	caseLayer := psdoc.NewStaticLayer("Front Case", psdoc.KindPixel, image.Rect(0, 0, 100, 100), solid(100, 100, color.NRGBA{R: 60, G: 60, B: 60, A: 90}))

	return &psdoc.Document{
		Name:   "Black VHS Case - FRONT.psb",
		Width:  100,
		Height: 100,
		Layers: []psdoc.Layer{background, design, caseLayer},
	}
}

func defaultOptions(dir string) Options {
	return Options{
		OutDir:          dir,
		DesignLayer:     DefaultDesignLayer,
		BackgroundLayer: DefaultBackgroundLayer,
		MultiplyMix:     0.82,
		ScreenMix:       0.38,
	}
}

func TestRun_WritesAllVariants(t *testing.T) {
	dir := t.TempDir()
	doc := frontDoc()
	posterImg := imaging.New(80, 120, color.NRGBA{B: 255, A: 255})

	result, err := Run(doc, posterImg, defaultOptions(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{FileNoDesign, FileOver, FileMultiply, FileScreen}
	if len(result.Files) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(result.Files))
	}
	for _, name := range want {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}

	if result.DesignBBox != image.Rect(10, 10, 60, 60) {
		t.Errorf("unexpected design bbox: %v", result.DesignBBox)
	}

	// The written no-design render must round-trip as the document
	// composite with the design layers hidden.
	noDesign, err := imaging.Open(filepath.Join(dir, FileNoDesign))
	if err != nil {
		t.Fatalf("reading %s: %v", FileNoDesign, err)
	}
	diff, err := imagediff.Compare(noDesign, doc.Composite(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.Match {
		t.Errorf("no-design render drifted from the document composite: %+v", diff)
	}
}

func TestRun_HidesDesignLayersInNoDesign(t *testing.T) {
	doc := frontDoc()
	posterImg := imaging.New(10, 10, color.NRGBA{B: 255, A: 255})

	if _, err := Run(doc, posterImg, defaultOptions(t.TempDir())); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	design := doc.FindByName(DefaultDesignLayer)
	if design.Visible() {
		t.Error("layers containing the design marker must be hidden")
	}
	if bg := doc.FindByName(DefaultBackgroundLayer); !bg.Visible() {
		t.Error("the background layer must stay visible")
	}
}

func TestRun_MissingDesignLayerAborts(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOptions(dir)
	opts.DesignLayer = "No Such Layer"

	_, err := Run(frontDoc(), imaging.New(4, 4, color.NRGBA{A: 255}), opts)
	if err == nil {
		t.Fatal("expected an error for the missing design layer")
	}
	if !strings.Contains(err.Error(), "No Such Layer") {
		t.Errorf("error should name the missing layer, got: %v", err)
	}

	listing, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(listing) != 0 {
		t.Errorf("an aborted run must not write files, found %d", len(listing))
	}
}

func TestRun_MissingBackgroundLayerAborts(t *testing.T) {
	dir := t.TempDir()
	opts := defaultOptions(dir)
	opts.BackgroundLayer = "No Such Background"

	_, err := Run(frontDoc(), imaging.New(4, 4, color.NRGBA{A: 255}), opts)
	if err == nil {
		t.Fatal("expected an error for the missing background layer")
	}
	if len(mustReadDir(t, dir)) != 0 {
		t.Error("an aborted run must not write files")
	}
}

func mustReadDir(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	listing, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	return listing
}
