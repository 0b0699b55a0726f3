package batch

// Summary aggregates the records of a run.
type Summary struct {
	Processed int
	Created   int
	Skipped   int
	Failed    int

	Frames     int
	Degenerate int
	Fallback   int
	Misaligned int // files whose frame grid was off by more than one frame
}

// Summarize counts records.
func Summarize(records []Record) Summary {
	var summary Summary

	for idx := range records {
		record := &records[idx]

		summary.Processed++
		summary.Created += record.Created
		summary.Skipped += record.Skipped
		summary.Frames += record.Frames
		summary.Degenerate += record.Degenerate
		summary.Fallback += record.Fallback

		if record.Failed() {
			summary.Failed++
		}

		if record.Misaligned {
			summary.Misaligned++
		}
	}

	return summary
}
