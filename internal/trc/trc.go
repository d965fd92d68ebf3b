package trc

import (
	"math"

	"github.com/vk/trccalc/internal/device"
)

// poleCeiling bounds the compensation pole as a multiple of the gain-bandwidth.
const poleCeiling = 4.0

// CustomTrc is the result of a compensation calculation.
type CustomTrc struct {
	// GainBandwidth echoes the requested gain-bandwidth in Hz.
	GainBandwidth float64
	// CompensationFreq is the geometric mean of the pole and zero in Hz.
	CompensationFreq float64
	// PoleZeroRatio is the pole frequency divided by the zero frequency.
	PoleZeroRatio float64
}

// Pole returns the compensation pole frequency in Hz.
func (t CustomTrc) Pole() float64 {
	return t.CompensationFreq * math.Sqrt(t.PoleZeroRatio)
}

// Zero returns the compensation zero frequency in Hz.
func (t CustomTrc) Zero() float64 {
	return t.CompensationFreq / math.Sqrt(t.PoleZeroRatio)
}

// NaturalPole returns the pole formed by the feedback resistance, the feedback
// capacitance and the amplifier loop delay.
func NaturalPole(resistance, capacitance, loopDelay float64) float64 {
	return 1 / (2 * math.Pi * (resistance*capacitance + loopDelay))
}

// Calculate places the compensation pole and zero for the given range of spec.
// It returns a *device.UnknownRangeError if rangeName is not one of the
// device's ranges.
func Calculate(spec *device.Specification, rangeName string, capacitance, gainBandwidth float64) (CustomTrc, error) {
	resistance, err := spec.Resistance(rangeName)
	if err != nil {
		return CustomTrc{}, err
	}

	maxRatio := spec.MaxPoleZeroRatio
	fCap := NaturalPole(resistance, capacitance, spec.LoopDelay)

	zero := math.Max(fCap, math.Sqrt(gainBandwidth*fCap/maxRatio))
	pole := math.Min(zero*maxRatio, poleCeiling*gainBandwidth)
	zero = math.Min(zero, pole*maxRatio)

	return CustomTrc{
		GainBandwidth:    gainBandwidth,
		CompensationFreq: math.Sqrt(pole * zero),
		PoleZeroRatio:    pole / zero,
	}, nil
}
