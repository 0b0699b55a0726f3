package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/lowsweep"
	"github.com/farcloser/lowsweep/internal/types"
)

var (
	errInvalidFrameRate = errors.New("--fps must be positive")
	errInvalidBitDepth  = errors.New("must be 16, 24, or 32")
)

func inputDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "input-dir",
		Aliases:  []string{"i"},
		Usage:    "Root folder containing source audio files (searched recursively)",
		Required: true,
	}
}

func outputDirFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:     "output-dir",
		Aliases:  []string{"o"},
		Usage:    usage,
		Required: true,
	}
}

func paramsFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "params",
		Aliases:  []string{"p"},
		Usage:    "Parameter document (JSON or YAML) with parameter_1.classes and parameter_2 cutoffs",
		Required: true,
	}
}

func fpsFlag() cli.Flag {
	return &cli.FloatFlag{
		Name:  "fps",
		Usage: "Annotation rows per second of audio",
		Value: lowsweep.DefaultFrameRate,
	}
}

func overwriteFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "overwrite",
		Usage: "Replace existing outputs instead of skipping them",
	}
}

func workersFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "workers",
		Aliases: []string{"j"},
		Usage:   "Number of files processed concurrently",
		Value:   1,
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Summary format: console, json, markdown",
		Value:   "console",
	}
}

func bitDepthFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "bit-depth",
		Aliases: []string{"b"},
		Usage:   "Bit depth of written WAV files (16, 24, or 32)",
		Value:   16,
	}
}

func frameRate(cmd *cli.Command) (float64, error) {
	fps := cmd.Float("fps")
	if !(fps > 0) {
		return 0, fmt.Errorf("%w: got %v", errInvalidFrameRate, fps)
	}

	return fps, nil
}

func toBitDepth(v int) (types.BitDepth, error) {
	switch v {
	case 16:
		return types.Depth16, nil
	case 24:
		return types.Depth24, nil
	case 32:
		return types.Depth32, nil
	default:
		return 0, errInvalidBitDepth
	}
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil { //nolint:gosec // output tree is meant to be shared
		return fmt.Errorf("creating output directory: %w", err)
	}

	return nil
}
