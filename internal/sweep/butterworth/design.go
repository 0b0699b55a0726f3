// Package butterworth designs digital Butterworth low-pass filters and applies them with zero phase.
//
// Design goes through the analog prototype: poles on the left half of the unit circle, frequency pre-warping,
// bilinear transform with fs = 2 (normalized frequency, 1.0 = Nyquist). Coefficients match the usual
// numerical-computing conventions for butter(order, wn, "low").
package butterworth

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// Order is the filter order used by the sweep.
const Order = 4

var (
	// ErrInvalidCutoff is returned for a normalized cutoff outside (0, 1).
	ErrInvalidCutoff = errors.New("normalized cutoff must be in (0, 1)")
	// ErrInvalidOrder is returned for a non-positive order.
	ErrInvalidOrder = errors.New("filter order must be positive")
)

// Coefficients of a transfer function H(z) = B(z) / A(z), highest power first, with A[0] == 1.
type Coefficients struct {
	B []float64
	A []float64
}

// Len returns max(len(B), len(A)).
func (c Coefficients) Len() int {
	return max(len(c.B), len(c.A))
}

// LowPass designs an order-th Butterworth low-pass at the normalized cutoff wn.
func LowPass(order int, wn float64) (Coefficients, error) {
	zeros, poles, gain, err := lowPassZPK(order, wn)
	if err != nil {
		return Coefficients{}, err
	}

	b := realPoly(zeros)
	for i := range b {
		b[i] *= gain
	}

	return Coefficients{B: b, A: realPoly(poles)}, nil
}

// lowPassZPK returns the digital zeros, poles and gain.
func lowPassZPK(order int, wn float64) (zeros, poles []complex128, gain float64, err error) {
	if order <= 0 {
		return nil, nil, 0, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	if !(wn > 0 && wn < 1) {
		return nil, nil, 0, fmt.Errorf("%w: %v", ErrInvalidCutoff, wn)
	}

	const fs = 2.0

	// Pre-warp so the digital -3 dB point lands on wn.
	warped := 2 * fs * math.Tan(math.Pi*wn/fs)

	poles = make([]complex128, order)
	zeros = make([]complex128, order)
	den := complex(1, 0)

	for k := range order {
		m := float64(-order + 1 + 2*k)
		analog := -cmplx.Exp(complex(0, math.Pi*m/float64(2*order))) * complex(warped, 0)

		poles[k] = (complex(2*fs, 0) + analog) / (complex(2*fs, 0) - analog)
		zeros[k] = -1
		den *= complex(2*fs, 0) - analog
	}

	// Analog gain is warped^order with no finite zeros.
	gain = real(complex(math.Pow(warped, float64(order)), 0) / den)

	return zeros, poles, gain, nil
}

// realPoly expands prod(z - r) and returns the real part, highest power first.
func realPoly(roots []complex128) []float64 {
	coeffs := []complex128{1}

	for _, root := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * root
		}

		coeffs = next
	}

	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		out[i] = real(c)
	}

	return out
}

// Response evaluates |H(e^{j*pi*w})| at the normalized frequency w.
func (c Coefficients) Response(w float64) float64 {
	z := cmplx.Exp(complex(0, -math.Pi*w))

	eval := func(p []float64) complex128 {
		var acc complex128

		zk := complex(1, 0)
		for _, v := range p {
			acc += complex(v, 0) * zk
			zk *= z
		}

		return acc
	}

	return cmplx.Abs(eval(c.B) / eval(c.A))
}
