package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/lowsweep/internal/batch"
)

func transposeCommand() *cli.Command {
	return &cli.Command{
		Name:  "transpose",
		Usage: "Write one-semitone-down and up variants of every WAV file, mirroring the input tree",
		Flags: []cli.Flag{
			inputDirFlag(),
			outputDirFlag("Folder receiving the mirrored tree"),
			&cli.BoolFlag{
				Name:  "copy-originals",
				Usage: "Also copy the unshifted file (and its .csv) into the output tree",
			},
			overwriteFlag(),
			workersFlag(),
			bitDepthFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputDir := cmd.String("input-dir")
			outputDir := cmd.String("output-dir")
			formatName := cmd.String("format")

			if err := checkFormat(formatName); err != nil {
				return err
			}

			depth, err := toBitDepth(cmd.Int("bit-depth"))
			if err != nil {
				return fmt.Errorf("--bit-depth %d: %w", cmd.Int("bit-depth"), err)
			}

			files, err := batch.DiscoverWAV(inputDir)
			if err != nil {
				return err
			}

			if err = ensureDir(outputDir); err != nil {
				return err
			}

			slog.Info("transposing", "files", len(files), "variants", len(batch.Shifts))

			records, err := batch.Run(ctx, files, cmd.Int("workers"), &batch.Transposer{
				InputDir:      inputDir,
				OutputDir:     outputDir,
				CopyOriginals: cmd.Bool("copy-originals"),
				Overwrite:     cmd.Bool("overwrite"),
				Shift:         batch.ShiftWithFFmpeg(depth),
			})
			if err != nil {
				return err
			}

			return outputSummary(formatName, outputDir, records)
		},
	}
}
