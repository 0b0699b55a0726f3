package main

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/lowsweep/internal/annotation"
	"github.com/farcloser/lowsweep/internal/config"
	"github.com/farcloser/lowsweep/internal/digest"
)

var errDigestUsage = errors.New("usage: lowsweep digest <output-dir>")

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Check an output folder: every WAV has a track with one row per frame and a matching class",
		ArgsUsage: "<output-dir>",
		Flags: []cli.Flag{
			fpsFlag(),
			formatFlag(),
			&cli.StringFlag{
				Name:    "params",
				Aliases: []string{"p"},
				Usage:   "Parameter document whose class list is checked against file names",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errDigestUsage
			}

			dir := cmd.Args().First()
			formatName := cmd.String("format")

			if err := checkFormat(formatName); err != nil {
				return err
			}

			fps, err := frameRate(cmd)
			if err != nil {
				return err
			}

			var classes annotation.Classes

			if path := cmd.String("params"); path != "" {
				params, loadErr := config.Load(path)
				if loadErr != nil {
					return loadErr
				}

				classes = params.Classes
			}

			report, err := digest.Inspect(dir, fps, classes)
			if err != nil {
				return err
			}

			return outputDigest(formatName, dir, report)
		},
	}
}
