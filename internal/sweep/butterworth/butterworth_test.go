package butterworth_test

import (
	"errors"
	"math"
	"math/cmplx"
	"slices"
	"testing"

	"github.com/farcloser/lowsweep/internal/sweep/butterworth"
)

func closeTo(t *testing.T, name string, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}

	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s[%d] = %.10f, want %.10f", name, i, got[i], want[i])
		}
	}
}

func TestLowPassReferenceCoefficients(t *testing.T) {
	t.Parallel()

	coeffs, err := butterworth.LowPass(4, 0.5)
	if err != nil {
		t.Fatalf("LowPass() error: %v", err)
	}

	closeTo(t, "b", coeffs.B, []float64{0.0939809, 0.3759234, 0.5638851, 0.3759234, 0.0939809}, 1e-6)
	closeTo(t, "a", coeffs.A, []float64{1, 0, 0.4860288, 0, 0.0176648}, 1e-6)

	coeffs, err = butterworth.LowPass(2, 0.5)
	if err != nil {
		t.Fatalf("LowPass() error: %v", err)
	}

	closeTo(t, "b", coeffs.B, []float64{0.29289322, 0.58578644, 0.29289322}, 1e-7)
	closeTo(t, "a", coeffs.A, []float64{1, 0, 0.17157288}, 1e-7)
}

func TestLowPassResponse(t *testing.T) {
	t.Parallel()

	for _, wn := range []float64{0.02, 0.1, 0.3, 0.5, 0.7, 0.9} {
		coeffs, err := butterworth.LowPass(butterworth.Order, wn)
		if err != nil {
			t.Fatalf("LowPass(%v) error: %v", wn, err)
		}

		if dc := coeffs.Response(0); math.Abs(dc-1) > 1e-9 {
			t.Errorf("wn %v: DC gain = %v, want 1", wn, dc)
		}

		if corner := coeffs.Response(wn); math.Abs(corner-1/math.Sqrt2) > 1e-6 {
			t.Errorf("wn %v: gain at cutoff = %v, want %v", wn, corner, 1/math.Sqrt2)
		}

		if nyquist := coeffs.Response(1); nyquist > 1e-6 {
			t.Errorf("wn %v: Nyquist gain = %v, want 0", wn, nyquist)
		}
	}
}

func TestLowPassInvalid(t *testing.T) {
	t.Parallel()

	for _, wn := range []float64{0, 1, -0.2, 1.5, math.NaN()} {
		if _, err := butterworth.LowPass(4, wn); !errors.Is(err, butterworth.ErrInvalidCutoff) {
			t.Errorf("LowPass(4, %v) error = %v, want ErrInvalidCutoff", wn, err)
		}
	}

	if _, err := butterworth.LowPass(0, 0.5); !errors.Is(err, butterworth.ErrInvalidOrder) {
		t.Errorf("LowPass(0, 0.5) error = %v, want ErrInvalidOrder", err)
	}
}

func sine(n int, w float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(math.Pi * w * float64(i))
	}

	return out
}

func rms(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(values)))
}

func TestFiltFiltConstantPassesThrough(t *testing.T) {
	t.Parallel()

	coeffs, err := butterworth.LowPass(4, 0.2)
	if err != nil {
		t.Fatal(err)
	}

	input := make([]float64, 100)
	for i := range input {
		input[i] = 0.5
	}

	out, err := butterworth.FiltFilt(coeffs, input)
	if err != nil {
		t.Fatalf("FiltFilt() error: %v", err)
	}

	closeTo(t, "out", out, input, 1e-9)
}

func TestFiltFiltAttenuatesAboveCutoff(t *testing.T) {
	t.Parallel()

	coeffs, err := butterworth.LowPass(4, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	input := sine(2000, 0.9)
	original := slices.Clone(input)

	out, err := butterworth.FiltFilt(coeffs, input)
	if err != nil {
		t.Fatalf("FiltFilt() error: %v", err)
	}

	if len(out) != len(input) {
		t.Fatalf("len = %d, want %d", len(out), len(input))
	}

	if got := rms(out[500:1500]) / rms(original[500:1500]); got > 0.01 {
		t.Errorf("residual ratio = %v, want < 0.01", got)
	}

	if !slices.Equal(input, original) {
		t.Error("input was modified")
	}
}

func TestFiltFiltKeepsPassband(t *testing.T) {
	t.Parallel()

	coeffs, err := butterworth.LowPass(4, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	input := sine(2000, 0.01)

	out, err := butterworth.FiltFilt(coeffs, input)
	if err != nil {
		t.Fatalf("FiltFilt() error: %v", err)
	}

	// Zero phase: no delay in the middle of the signal.
	closeTo(t, "out", out[500:1500], input[500:1500], 1e-3)
}

func TestFiltFiltTooShort(t *testing.T) {
	t.Parallel()

	coeffs, err := butterworth.LowPass(4, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if coeffs.PadLen() != 15 {
		t.Errorf("PadLen() = %d, want 15", coeffs.PadLen())
	}

	if _, err = butterworth.FiltFilt(coeffs, make([]float64, 15)); !errors.Is(err, butterworth.ErrTooShort) {
		t.Errorf("FiltFilt(15 samples) error = %v, want ErrTooShort", err)
	}

	if _, err = butterworth.FiltFilt(coeffs, make([]float64, 16)); err != nil {
		t.Errorf("FiltFilt(16 samples) error: %v", err)
	}
}

func TestFiltFiltNonFinite(t *testing.T) {
	t.Parallel()

	coeffs, err := butterworth.LowPass(4, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	input := make([]float64, 64)
	input[30] = math.Inf(1)

	if _, err = butterworth.FiltFilt(coeffs, input); !errors.Is(err, butterworth.ErrNonFinite) {
		t.Errorf("FiltFilt(Inf) error = %v, want ErrNonFinite", err)
	}
}

func cascadeResponse(sections []butterworth.Section, w float64) float64 {
	z := cmplx.Exp(complex(0, -math.Pi*w))
	gain := complex(1, 0)

	for _, sec := range sections {
		num := complex(sec.B0, 0) + complex(sec.B1, 0)*z + complex(sec.B2, 0)*z*z
		den := 1 + complex(sec.A1, 0)*z + complex(sec.A2, 0)*z*z
		gain *= num / den
	}

	return cmplx.Abs(gain)
}

func TestLowPassSectionsMatchTransferFunction(t *testing.T) {
	t.Parallel()

	for _, wn := range []float64{0.05, 0.25, 0.8} {
		coeffs, err := butterworth.LowPass(4, wn)
		if err != nil {
			t.Fatal(err)
		}

		sections, err := butterworth.LowPassSections(4, wn)
		if err != nil {
			t.Fatalf("LowPassSections(%v) error: %v", wn, err)
		}

		if len(sections) != 2 {
			t.Fatalf("len = %d, want 2", len(sections))
		}

		if !butterworth.Stable(sections) {
			t.Errorf("wn %v: cascade reported unstable", wn)
		}

		for _, w := range []float64{0, 0.1, wn, 0.5, 0.9} {
			if got, want := cascadeResponse(sections, w), coeffs.Response(w); math.Abs(got-want) > 1e-9 {
				t.Errorf("wn %v: |H(%v)| = %v, want %v", wn, w, got, want)
			}
		}
	}
}

func TestSectionStateSettlesOnStep(t *testing.T) {
	t.Parallel()

	sections, err := butterworth.LowPassSections(4, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	states := make([]butterworth.SectionState, len(sections))

	var out float64

	for range 2000 {
		out = 1
		for i := range sections {
			out = states[i].Process(&sections[i], out)
		}
	}

	if math.Abs(out-1) > 1e-9 {
		t.Errorf("step response settles at %v, want 1", out)
	}
}

func TestLowPassSectionsOddOrder(t *testing.T) {
	t.Parallel()

	if _, err := butterworth.LowPassSections(3, 0.5); !errors.Is(err, butterworth.ErrInvalidOrder) {
		t.Errorf("LowPassSections(3) error = %v, want ErrInvalidOrder", err)
	}
}

func TestStableRejectsOutsideUnitCircle(t *testing.T) {
	t.Parallel()

	if butterworth.Stable([]butterworth.Section{{B0: 1, A1: 0, A2: 1.2}}) {
		t.Error("|a2| > 1 reported stable")
	}
}
