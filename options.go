package lowsweep

import "fmt"

// Mode selects how the cutoff sweep is rendered.
type Mode int

const (
	// ModeFramewise filters each frame in isolation with a zero-phase low-pass. Frame boundaries are audible.
	ModeFramewise Mode = iota
	// ModeContinuous runs one causal low-pass over the whole file with state carried across frames.
	ModeContinuous
)

func (m Mode) String() string {
	switch m {
	case ModeFramewise:
		return "framewise"
	case ModeContinuous:
		return "continuous"
	}

	return "unknown"
}

// ParseMode converts a string to a Mode value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "framewise", "":
		return ModeFramewise, nil
	case "continuous":
		return ModeContinuous, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (valid: framewise, continuous)", s)
	}
}

// Options configures a sweep.
type Options struct {
	FrameRate   float64 // annotation rows per second (default 75)
	StartCutoff float64 // Hz, cutoff of the first frame
	EndCutoff   float64 // Hz, cutoff of the last frame
	Mode        Mode

	// StrictAlignment fails the file when the frame grid and the sample count disagree by more than one frame.
	// Otherwise the disagreement is logged and the last frame absorbs or clips it.
	StrictAlignment bool
}

// DefaultFrameRate is the annotation rate expected by the downstream model.
const DefaultFrameRate = 75

// DefaultOptions returns options for a framewise sweep at the default frame rate. Cutoffs are left to the caller.
func DefaultOptions() Options {
	return Options{
		FrameRate: DefaultFrameRate,
		Mode:      ModeFramewise,
	}
}
