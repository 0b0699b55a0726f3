package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/lowsweep"
	"github.com/farcloser/lowsweep/internal/batch"
	"github.com/farcloser/lowsweep/internal/config"
)

func sweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Apply a frame-wise low-pass sweep to every audio file and write cutoff annotations",
		Flags: []cli.Flag{
			inputDirFlag(),
			outputDirFlag("Folder receiving <class>_<stem>.wav and .csv pairs"),
			paramsFlag(),
			fpsFlag(),
			overwriteFlag(),
			workersFlag(),
			bitDepthFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Filtering mode: framewise (independent zero-phase frames) or continuous (causal, carried state)",
				Value:   lowsweep.ModeFramewise.String(),
			},
			&cli.BoolFlag{
				Name:  "strict-alignment",
				Usage: "Fail a file when its frame tiling is off by more than one frame",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			inputDir := cmd.String("input-dir")
			outputDir := cmd.String("output-dir")
			formatName := cmd.String("format")

			if err := checkFormat(formatName); err != nil {
				return err
			}

			params, err := config.Load(cmd.String("params"))
			if err != nil {
				return err
			}

			if err = params.RequireCutoffs(); err != nil {
				return err
			}

			fps, err := frameRate(cmd)
			if err != nil {
				return err
			}

			mode, err := lowsweep.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}

			depth, err := toBitDepth(cmd.Int("bit-depth"))
			if err != nil {
				return fmt.Errorf("--bit-depth %d: %w", cmd.Int("bit-depth"), err)
			}

			files, err := batch.Discover(inputDir)
			if err != nil {
				return err
			}

			if err = ensureDir(outputDir); err != nil {
				return err
			}

			sweeper := &batch.Sweeper{
				OutputDir: outputDir,
				Classes:   params.Classes,
				Options: lowsweep.Options{
					FrameRate:       fps,
					StartCutoff:     params.StartCutoff,
					EndCutoff:       params.EndCutoff,
					Mode:            mode,
					StrictAlignment: cmd.Bool("strict-alignment"),
				},
				BitDepth:  depth,
				Overwrite: cmd.Bool("overwrite"),
			}

			slog.Info("sweeping",
				"files", len(files),
				"classes", len(params.Classes),
				"cutoff", fmt.Sprintf("%g->%g Hz", params.StartCutoff, params.EndCutoff),
				"mode", mode,
				"workers", cmd.Int("workers"),
			)

			records, err := batch.Run(ctx, files, cmd.Int("workers"), sweeper)
			if err != nil {
				return err
			}

			return outputSummary(formatName, outputDir, records)
		},
	}
}
