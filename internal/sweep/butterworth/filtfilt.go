package butterworth

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrTooShort is returned when the input is not longer than the edge padding.
	ErrTooShort = errors.New("input must be longer than the filter padding")
	// ErrSingular is returned when the steady-state initial conditions cannot be solved.
	ErrSingular = errors.New("cannot solve filter initial state")
	// ErrNonFinite is returned when filtering produced NaN or Inf.
	ErrNonFinite = errors.New("filter output is not finite")
)

// PadLen returns the odd-extension length used on each side by FiltFilt: three times the coefficient count.
func (c Coefficients) PadLen() int {
	return 3 * c.Len()
}

// FiltFilt applies the filter forward then backward, cancelling the phase response.
// The input is extended at both ends by odd reflection, and each pass starts from the steady-state response to
// the first sample so edges do not ring. The input is not modified.
func FiltFilt(coeffs Coefficients, input []float64) ([]float64, error) {
	padLen := coeffs.PadLen()
	if len(input) <= padLen {
		return nil, fmt.Errorf("%w: %d samples, padding %d", ErrTooShort, len(input), padLen)
	}

	b, a := normalize(coeffs)

	zi, err := steadyState(b, a)
	if err != nil {
		return nil, err
	}

	ext := oddExtend(input, padLen)

	state := scaled(zi, ext[0])
	forward := lfilter(b, a, ext, state)

	slices.Reverse(forward)
	state = scaled(zi, forward[0])
	backward := lfilter(b, a, forward, state)
	slices.Reverse(backward)

	out := backward[padLen : len(backward)-padLen]
	if !finite(out) {
		return nil, ErrNonFinite
	}

	return out, nil
}

// normalize pads B and A to the same length and divides both by A[0].
func normalize(coeffs Coefficients) (b, a []float64) {
	n := coeffs.Len()
	b = make([]float64, n)
	a = make([]float64, n)

	copy(b, coeffs.B)
	copy(a, coeffs.A)

	if a[0] != 1 {
		floats.Scale(1/a[0], b)
		floats.Scale(1/a[0], a)
	}

	return b, a
}

// steadyState solves (I - companion(a)^T) zi = b[1:] - a[1:]*b[0], the delay line matching a unit step input.
func steadyState(b, a []float64) ([]float64, error) {
	n := len(a) - 1
	if n == 0 {
		return nil, nil
	}

	system := mat.NewDense(n, n, nil)
	rhs := mat.NewVecDense(n, nil)

	for i := range n {
		// companion(a)^T has -a[i+1] down its first column and ones on the superdiagonal.
		system.Set(i, 0, a[i+1])

		if i+1 < n {
			system.Set(i, i+1, -1)
		}

		system.Set(i, i, system.At(i, i)+1)
		rhs.SetVec(i, b[i+1]-a[i+1]*b[0])
	}

	var zi mat.VecDense
	if err := zi.SolveVec(system, rhs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingular, err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = zi.AtVec(i)
	}

	return out, nil
}

// lfilter runs the transposed direct-form II recursion, updating state in place.
func lfilter(b, a, input, state []float64) []float64 {
	out := make([]float64, len(input))
	last := len(b) - 1

	for idx, x := range input {
		y := b[0] * x
		if last > 0 {
			y += state[0]

			for i := range last - 1 {
				state[i] = b[i+1]*x + state[i+1] - a[i+1]*y
			}

			state[last-1] = b[last]*x - a[last]*y
		}

		out[idx] = y
	}

	return out
}

// oddExtend returns 2*x[0]-x[padLen..1], x, 2*x[n-1]-x[n-2..n-1-padLen].
func oddExtend(input []float64, padLen int) []float64 {
	n := len(input)
	ext := make([]float64, 0, n+2*padLen)

	for i := padLen; i >= 1; i-- {
		ext = append(ext, 2*input[0]-input[i])
	}

	ext = append(ext, input...)

	for i := n - 2; i >= n-1-padLen; i-- {
		ext = append(ext, 2*input[n-1]-input[i])
	}

	return ext
}

func scaled(values []float64, factor float64) []float64 {
	out := slices.Clone(values)
	floats.Scale(factor, out)

	return out
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
