// Package output provides shared serialization of run summaries and digests for the format printers.
package output

import (
	"github.com/farcloser/lowsweep/internal/batch"
	"github.com/farcloser/lowsweep/internal/digest"
)

// SummaryToMap converts a run summary into the canonical map structure used by every output format.
func SummaryToMap(summary batch.Summary) map[string]any {
	return map[string]any{
		"processed": summary.Processed,
		"created":   summary.Created,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
		"frames": map[string]any{
			"total":      summary.Frames,
			"degenerate": summary.Degenerate,
			"fallback":   summary.Fallback,
		},
		"misaligned_files": summary.Misaligned,
	}
}

// RecordsToMap lists failed files with their error, and the files that needed frame fallbacks.
func RecordsToMap(records []batch.Record) map[string]any {
	failed := make(map[string]any)
	fallbacks := make(map[string]any)

	for idx := range records {
		record := &records[idx]

		if record.Failed() {
			failed[record.Source] = record.Err.Error()

			continue
		}

		if record.Fallback > 0 || record.Degenerate > 0 {
			fallbacks[record.Source] = map[string]any{
				"frames":     record.Frames,
				"degenerate": record.Degenerate,
				"fallback":   record.Fallback,
			}
		}
	}

	meta := map[string]any{}

	if len(failed) > 0 {
		meta["failed"] = failed
	}

	if len(fallbacks) > 0 {
		meta["fallbacks"] = fallbacks
	}

	return meta
}

// ReportToMap converts a digest report. Only entries with a problem are listed.
func ReportToMap(report *digest.Report) map[string]any {
	meta := map[string]any{
		"summary": map[string]any{
			"files":          len(report.Entries),
			"pairs":          report.Pairs,
			"missing_track":  report.MissingTrack,
			"row_mismatch":   report.RowMismatch,
			"class_mismatch": report.ClassMismatch,
			"unresolved":     report.Unresolved,
			"failed":         report.Failed,
		},
	}

	problems := make(map[string]any)

	for idx := range report.Entries {
		entry := &report.Entries[idx]

		switch {
		case entry.Err != nil:
			problems[entry.Audio] = "error: " + entry.Err.Error()
		case entry.Track == "":
			problems[entry.Audio] = "missing annotation track"
		case entry.RowMismatch() || entry.ClassMismatch():
			problems[entry.Audio] = map[string]any{
				"rows":           entry.Rows,
				"expected_rows":  entry.ExpectedRows,
				"class_index":    entry.ClassIndex,
				"expected_class": entry.ExpectedClass,
				"mixed_classes":  entry.MixedClasses,
			}
		}
	}

	if len(problems) > 0 {
		meta["problems"] = problems
	}

	return meta
}
