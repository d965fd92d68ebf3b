// Package bode evaluates and plots the frequency response of a compensation
// network with one zero and one pole:
//
//	H(f) = (1 + j·f/f_z) / (1 + j·f/f_p)
package bode

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/vk/trccalc/internal/trc"
)

// DefaultDecades is how far the sweep extends on each side of the
// compensation frequency.
const DefaultDecades = 3

// DefaultPoints is the default number of samples in a sweep.
const DefaultPoints = 241

// Point is one sample of the frequency response.
type Point struct {
	Frequency float64 // Hz
	Magnitude float64 // dB
	Phase     float64 // degrees
}

// Response returns H(f) for the given zero and pole frequencies.
func Response(f, zero, pole float64) complex128 {
	return complex(1, f/zero) / complex(1, f/pole)
}

// Sweep samples the response of result on a logarithmic grid centred on its
// compensation frequency, spanning decades on each side.
func Sweep(result trc.CustomTrc, decades float64, points int) ([]Point, error) {
	fc := result.CompensationFreq
	if math.IsNaN(fc) || math.IsInf(fc, 0) || fc <= 0 {
		return nil, fmt.Errorf("cannot sweep around compensation frequency %v", fc)
	}
	if decades <= 0 {
		return nil, errors.New("decades must be positive")
	}
	if points < 2 {
		return nil, errors.New("a sweep needs at least two points")
	}

	zero, pole := result.Zero(), result.Pole()
	start := math.Log10(fc) - decades
	step := 2 * decades / float64(points-1)

	sweep := make([]Point, points)
	for i := range sweep {
		f := math.Pow(10, start+float64(i)*step)
		h := Response(f, zero, pole)
		sweep[i] = Point{
			Frequency: f,
			Magnitude: 20 * math.Log10(cmplx.Abs(h)),
			Phase:     cmplx.Phase(h) * 180 / math.Pi,
		}
	}
	return sweep, nil
}
