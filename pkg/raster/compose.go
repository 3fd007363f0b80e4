package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// Blend instruction modes.
type Mode string

const (
	ModeOver     Mode = "over"
	ModeScreen   Mode = "screen"
	ModeMultiply Mode = "multiply"
)

// Instruction is one ordered compositing step.
type Instruction struct {
	Raster  *image.NRGBA
	Mode    Mode
	Opacity float64 // over: alpha scale in [0,1]
	Mix     float64 // multiply: scalar interpolation factor in [0,1]
}

// Compose applies the instructions to base in list order. Compositing is
// order-dependent and deterministic; base is not modified.
func Compose(base *image.NRGBA, steps []Instruction) *image.NRGBA {
	acc := imaging.Clone(base)
	for _, step := range steps {
		switch step.Mode {
		case ModeScreen:
			acc = Screen(acc, step.Raster)
		case ModeMultiply:
			acc = MultiplyMix(acc, step.Raster, step.Mix)
		default:
			acc = Over(acc, step.Raster, step.Opacity)
		}
	}
	return acc
}
