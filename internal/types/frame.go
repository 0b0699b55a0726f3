package types

// Outcome tells what happened to a single frame during filtering.
type Outcome int

const (
	// OutcomeFiltered means the frame went through the zero-phase low-pass.
	OutcomeFiltered Outcome = iota
	// OutcomeDegenerate means the frame was too short to filter and was copied as-is.
	OutcomeDegenerate
	// OutcomeFallback means design or application failed and the raw samples were copied.
	OutcomeFallback
	// OutcomeEmpty means the frame started at or past the end of the buffer and wrote nothing.
	OutcomeEmpty
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFiltered:
		return "filtered"
	case OutcomeDegenerate:
		return "degenerate"
	case OutcomeFallback:
		return "fallback"
	case OutcomeEmpty:
		return "empty"
	}

	return "unknown"
}

// Severity orders outcomes so a multi-channel frame reports its worst channel.
// Empty frames have no channel data, so they rank lowest.
func (o Outcome) Severity() int {
	switch o {
	case OutcomeEmpty:
		return 0
	case OutcomeFiltered:
		return 1
	case OutcomeDegenerate:
		return 2
	case OutcomeFallback:
		return 3
	}

	return 0
}

// FrameReport describes how one frame of a buffer was processed.
type FrameReport struct {
	Index int
	Start int // first sample, inclusive
	End   int // last sample, exclusive

	Cutoff           float64 // target cutoff in Hz, as annotated
	NormalizedCutoff float64 // cutoff / nyquist after clamping, as designed

	Outcome Outcome
	Cause   error // set for OutcomeFallback
}
