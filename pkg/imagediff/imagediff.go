// Package imagediff compares raster images pixel-by-pixel. It backs the
// compositor and pipeline tests.
package imagediff

import (
	"bytes"
	"fmt"
	"image"
)

// Result contains the results of an image comparison.
type Result struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // max color channel difference found
}

// Compare checks two images channel-by-channel, allowing up to tolerance
// difference per channel (0 for exact match). Differing dimensions are an
// error, not a mismatch count.
func Compare(got, want image.Image, tolerance int) (*Result, error) {
	gb, wb := got.Bounds(), want.Bounds()
	if gb.Dx() != wb.Dx() || gb.Dy() != wb.Dy() {
		return nil, fmt.Errorf("image dimensions differ: got=%v, want=%v", gb, wb)
	}

	result := &Result{
		Match:       true,
		TotalPixels: gb.Dx() * gb.Dy(),
	}
	for y := 0; y < gb.Dy(); y++ {
		for x := 0; x < gb.Dx(); x++ {
			gr, gg, gbl, ga := rgba8(got, gb.Min.X+x, gb.Min.Y+y)
			wr, wg, wbl, wa := rgba8(want, wb.Min.X+x, wb.Min.Y+y)

			diff := maxInt(
				absInt(gr-wr),
				absInt(gg-wg),
				absInt(gbl-wbl),
				absInt(ga-wa),
			)
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}
			if diff > tolerance {
				result.DifferentPixels++
				result.Match = false
			}
		}
	}
	return result, nil
}

// Identical reports whether two NRGBA images have the same geometry and
// byte-identical pixel data.
func Identical(a, b *image.NRGBA) bool {
	return a.Rect == b.Rect && a.Stride == b.Stride && bytes.Equal(a.Pix, b.Pix)
}

func rgba8(img image.Image, x, y int) (r, g, b, a int) {
	r16, g16, b16, a16 := img.At(x, y).RGBA()
	return int(r16 >> 8), int(g16 >> 8), int(b16 >> 8), int(a16 >> 8)
}

func maxInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
