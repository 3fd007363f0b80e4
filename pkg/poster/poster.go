// Package poster loads a cover/poster image from disk or over HTTP and
// fits it into a target placement rectangle.
package poster

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Load reads a poster image from a local path or an http(s) URL and
// normalizes it to NRGBA.
func Load(src string) (*image.NRGBA, error) {
	var r *bytes.Reader
	if IsNetworkURL(src) {
		body, err := fetch(src)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(body)
	} else {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// FitInto resizes the poster to exactly fill bbox (Lanczos resampling)
// and pastes it, masked by its own alpha, at the bbox origin on a
// transparent canvas of the given size.
func FitInto(p image.Image, bbox image.Rectangle, canvasWidth, canvasHeight int) *image.NRGBA {
	resized := imaging.Resize(p, bbox.Dx(), bbox.Dy(), imaging.Lanczos)
	canvas := imaging.New(canvasWidth, canvasHeight, color.NRGBA{})
	return imaging.Overlay(canvas, resized, bbox.Min, 1.0)
}
