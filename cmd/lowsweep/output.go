//nolint:wrapcheck
package main

import (
	"maps"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/lowsweep/internal/batch"
	"github.com/farcloser/lowsweep/internal/digest"
	"github.com/farcloser/lowsweep/internal/output"
)

// checkFormat fails on an unknown format before any file is touched.
func checkFormat(formatName string) error {
	_, err := format.GetFormatter(formatName)

	return err
}

func outputSummary(formatName, outputDir string, records []batch.Record) error {
	meta := map[string]any{
		"summary": output.SummaryToMap(batch.Summarize(records)),
	}

	maps.Copy(meta, output.RecordsToMap(records))

	return printData(formatName, outputDir, meta)
}

func outputDigest(formatName, dir string, report *digest.Report) error {
	return printData(formatName, dir, output.ReportToMap(report))
}

func printData(formatName, object string, meta map[string]any) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	data := &format.Data{
		Object: object,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}
