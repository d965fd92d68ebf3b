package device

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Specification describes the electrical parameters of one device.
type Specification struct {
	// LoopDelay is the effective time constant of the amplifier loop in seconds.
	LoopDelay float64
	// MaxPoleZeroRatio is the largest compensation pole to zero ratio allowed.
	MaxPoleZeroRatio float64
	// OffsetResistance is added in series to every range, in ohms.
	OffsetResistance float64
	// Ranges maps a range name to its base feedback resistance in ohms.
	Ranges map[string]float64
}

// UnknownRangeError is returned when a range name is not part of a device.
type UnknownRangeError struct {
	Range string
}

// Error implements the error interface for UnknownRangeError.
func (e *UnknownRangeError) Error() string {
	return fmt.Sprintf("no such range %q", e.Range)
}

// RangeNames returns the range names in lexicographic order.
func (s *Specification) RangeNames() []string {
	names := make([]string, 0, len(s.Ranges))
	for name := range s.Ranges {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resistance returns the effective feedback resistance of a range, which is
// the range's base resistance plus the device offset resistance.
func (s *Specification) Resistance(rangeName string) (float64, error) {
	base, ok := s.Ranges[rangeName]
	if !ok {
		return 0, &UnknownRangeError{Range: rangeName}
	}
	return base + s.OffsetResistance, nil
}

// Validate checks that the specification describes a physical device. All
// problems are joined into a single error.
func (s *Specification) Validate() error {
	var errs []error

	if !finite(s.LoopDelay) || s.LoopDelay < 0 {
		errs = append(errs, fmt.Errorf("loop_delay must be a non-negative number, got %v", s.LoopDelay))
	}
	if !finite(s.MaxPoleZeroRatio) || s.MaxPoleZeroRatio <= 1 {
		errs = append(errs, fmt.Errorf("max_pole_zero_ratio must be greater than 1, got %v", s.MaxPoleZeroRatio))
	}
	if !finite(s.OffsetResistance) || s.OffsetResistance < 0 {
		errs = append(errs, fmt.Errorf("offset_resistance must be a non-negative number, got %v", s.OffsetResistance))
	}
	if len(s.Ranges) == 0 {
		errs = append(errs, errors.New("ranges must contain at least one entry"))
	}
	for _, name := range s.RangeNames() {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("range names must not be blank"))
			continue
		}
		if r := s.Ranges[name]; !finite(r) || r < 0 {
			errs = append(errs, fmt.Errorf("range %q must have a non-negative resistance, got %v", name, r))
		}
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
