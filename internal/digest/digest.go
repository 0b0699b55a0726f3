// Package digest inspects an output tree after a run: every WAV must have its annotation track, with one row per
// frame of audio and a class index matching the file name.
package digest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/farcloser/lowsweep/internal/annotation"
	"github.com/farcloser/lowsweep/internal/audio"
	"github.com/farcloser/lowsweep/internal/batch"
	"github.com/farcloser/lowsweep/internal/sweep/trajectory"
)

// Entry is the inspection of one WAV/CSV pair.
type Entry struct {
	Audio string
	Track string // empty when missing

	Seconds      float64
	Rows         int
	ExpectedRows int

	ClassIndex    int  // class index of the first row
	ExpectedClass int  // resolved from the file name or directory, annotation.Unresolved when unknown
	MixedClasses  bool // rows disagree on the class index

	Err error

	checkClass bool
}

// RowMismatch reports whether the track length disagrees with the audio duration.
func (e *Entry) RowMismatch() bool {
	return e.Track != "" && e.Err == nil && e.Rows != e.ExpectedRows
}

// ClassMismatch reports whether the track class disagrees with the file name. Without a class list only mixed
// indices count.
func (e *Entry) ClassMismatch() bool {
	if e.Track == "" || e.Err != nil || e.Rows == 0 {
		return false
	}

	return e.MixedClasses || (e.checkClass && e.ClassIndex != e.ExpectedClass)
}

// Report aggregates entries.
type Report struct {
	Entries []Entry

	Pairs         int
	MissingTrack  int
	RowMismatch   int
	ClassMismatch int
	Unresolved    int // tracks carrying annotation.Unresolved
	Failed        int
}

// Inspect walks dir for WAV files and checks them against their tracks at the given frame rate.
// classes may be nil, in which case class indices are not compared with file names.
func Inspect(dir string, fps float64, classes annotation.Classes) (*Report, error) {
	files, err := batch.DiscoverWAV(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Entries: make([]Entry, 0, len(files))}

	for _, file := range files {
		entry := inspect(file, fps, classes)

		switch {
		case entry.Err != nil:
			report.Failed++

			slog.Error("failed to inspect", "file", file, "error", entry.Err)
		case entry.Track == "":
			report.MissingTrack++
		default:
			report.Pairs++

			if entry.RowMismatch() {
				report.RowMismatch++
			}

			if entry.ClassMismatch() {
				report.ClassMismatch++
			}

			if entry.Rows > 0 && entry.ClassIndex == annotation.Unresolved {
				report.Unresolved++
			}
		}

		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

func inspect(file string, fps float64, classes annotation.Classes) Entry {
	entry := Entry{
		Audio:         file,
		ExpectedClass: expectedClass(file, classes),
		checkClass:    len(classes) > 0,
	}

	buffer, err := audio.ReadWAV(file)
	if err != nil {
		entry.Err = err

		return entry
	}

	entry.Seconds = buffer.Seconds()

	if entry.ExpectedRows, err = trajectory.FrameCount(entry.Seconds, fps); err != nil {
		entry.Err = err

		return entry
	}

	trackPath := strings.TrimSuffix(file, filepath.Ext(file)) + ".csv"

	trackFile, err := os.Open(trackPath) //nolint:gosec // sibling of a discovered output file
	if err != nil {
		if os.IsNotExist(err) {
			return entry
		}

		entry.Err = err

		return entry
	}
	defer trackFile.Close()

	entry.Track = trackPath

	track, err := annotation.Read(trackFile)
	if err != nil {
		entry.Err = fmt.Errorf("%s: %w", trackPath, err)

		return entry
	}

	entry.Rows = len(track.Rows)

	for idx, row := range track.Rows {
		if idx == 0 {
			entry.ClassIndex = row.ClassIndex
		} else if row.ClassIndex != entry.ClassIndex {
			entry.MixedClasses = true
		}
	}

	return entry
}

// expectedClass resolves <class>_<stem> names first, then files kept in a class directory.
func expectedClass(file string, classes annotation.Classes) int {
	if idx := classes.IndexOfBaseName(file); idx != annotation.Unresolved {
		return idx
	}

	return classes.Index(annotation.ClassOf(file))
}
