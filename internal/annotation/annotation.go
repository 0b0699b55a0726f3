// Package annotation reads and writes the per-frame CSV tracks paired with each output audio file, and resolves
// class indices from file names.
package annotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"
)

// Column headers of the value column.
const (
	CutoffHeader    = "cutoff_freq_Hz"
	IntensityHeader = "intensity"
	classHeader     = "class_index"
)

// Unresolved is the class index of a name missing from the class list.
const Unresolved = -1

var (
	errHeader = errors.New("unexpected annotation header")
	errRow    = errors.New("malformed annotation row")
)

// Row is one frame of a track.
type Row struct {
	ClassIndex int
	Value      float64
}

// Track is a parsed annotation file.
type Track struct {
	ValueHeader string
	Rows        []Row
}

// Write writes the header class_index,<valueHeader> then one row per value, values rounded to two decimals.
func Write(w io.Writer, valueHeader string, classIndex int, values []float64) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write([]string{classHeader, valueHeader}); err != nil {
		return err
	}

	class := strconv.Itoa(classIndex)

	for _, value := range values {
		if err := writer.Write([]string{class, FormatValue(value)}); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

// FormatValue rounds to two decimals and keeps a fractional part on whole numbers ("500.0"), the way existing
// tracks were written.
func FormatValue(value float64) string {
	rounded := math.Round(value*100) / 100
	text := strconv.FormatFloat(rounded, 'f', -1, 64)

	if !strings.ContainsAny(text, ".eEnN") {
		text += ".0"
	}

	return text
}

// Read parses a track written by Write.
func Read(r io.Reader) (*Track, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	if header[0] != classHeader {
		return nil, fmt.Errorf("%w: %q", errHeader, strings.Join(header, ","))
	}

	track := &Track{ValueHeader: header[1]}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
		}

		class, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", errRow, line, err)
		}

		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", errRow, line, err)
		}

		track.Rows = append(track.Rows, Row{ClassIndex: class, Value: value})
	}

	return track, nil
}
