package butterworth

import (
	"fmt"
	"math"
)

// Section is one second-order stage: b0 + b1 z^-1 + b2 z^-2 over 1 + a1 z^-1 + a2 z^-2.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// SectionState is the transposed direct-form II delay line of a Section.
type SectionState struct {
	z1, z2 float64
}

// Process runs one sample through the section.
func (s *SectionState) Process(sec *Section, in float64) float64 {
	out := sec.B0*in + s.z1
	s.z1 = sec.B1*in - sec.A1*out + s.z2
	s.z2 = sec.B2*in - sec.A2*out

	return out
}

// LowPassSections designs the same filter as LowPass as a cascade of order/2 biquads, each with unity DC gain.
// Order must be even.
func LowPassSections(order int, wn float64) ([]Section, error) {
	if order%2 != 0 {
		return nil, fmt.Errorf("%w: %d is odd", ErrInvalidOrder, order)
	}

	_, poles, _, err := lowPassZPK(order, wn)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, order/2)

	// poles[k] and poles[order-1-k] are conjugates.
	for k := range sections {
		p := poles[k]
		a1 := -2 * real(p)
		a2 := real(p)*real(p) + imag(p)*imag(p)

		// Zeros sit at z = -1, so the numerator is g(1 + 2z^-1 + z^-2) and H(1) = 4g / (1 + a1 + a2).
		g := (1 + a1 + a2) / 4

		sections[k] = Section{B0: g, B1: 2 * g, B2: g, A1: a1, A2: a2}
	}

	return sections, nil
}

// Stable reports whether every pole of the cascade lies strictly inside the unit circle.
func Stable(sections []Section) bool {
	for _, sec := range sections {
		// Jury conditions for a monic quadratic.
		if math.Abs(sec.A2) >= 1 || math.Abs(sec.A1) >= 1+sec.A2 {
			return false
		}
	}

	return true
}
