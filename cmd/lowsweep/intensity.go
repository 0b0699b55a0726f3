package main

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/lowsweep/internal/batch"
	"github.com/farcloser/lowsweep/internal/config"
)

func intensityCommand() *cli.Command {
	return &cli.Command{
		Name:  "intensity",
		Usage: "Copy every audio file and write a linear 100 to 0 intensity annotation",
		Flags: []cli.Flag{
			inputDirFlag(),
			outputDirFlag("Folder receiving <class>_<stem> copies and .csv tracks"),
			paramsFlag(),
			fpsFlag(),
			overwriteFlag(),
			workersFlag(),
			formatFlag(),
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

			fps, err := frameRate(cmd)
			if err != nil {
				return err
			}

			files, err := batch.Discover(inputDir)
			if err != nil {
				return err
			}

			if err = ensureDir(outputDir); err != nil {
				return err
			}

			slog.Info("annotating intensity", "files", len(files), "classes", len(params.Classes))

			records, err := batch.Run(ctx, files, cmd.Int("workers"), &batch.Intensifier{
				OutputDir: outputDir,
				Classes:   params.Classes,
				FrameRate: fps,
				Overwrite: cmd.Bool("overwrite"),
			})
			if err != nil {
				return err
			}

			return outputSummary(formatName, outputDir, records)
		},
	}
}
