package testutils

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/lowsweep/internal/audio"
	"github.com/farcloser/lowsweep/internal/types"
)

// Parameters is a parameter document with three classes and a 4000 -> 500 Hz sweep.
const Parameters = `{
  "parameter_1": {"classes": ["violin", "cello", "double_bass"]},
  "parameter_2": {"start_cutoff": 4000, "end_cutoff": 500}
}`

// ClassesOnly is a parameter document without sweep bounds.
const ClassesOnly = `{"parameter_1": {"classes": ["violin", "cello"]}}`

// WriteTone writes a mono 16-bit WAV of a sine at hz.
func WriteTone(path string, sampleRate int, seconds, hz float64) error {
	length := int(seconds * float64(sampleRate))
	buffer := types.NewBuffer(sampleRate, 1, length)

	for i := range length {
		buffer.Samples[0][i] = 0.5 * math.Sin(2*math.Pi*hz*float64(i)/float64(sampleRate))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return audio.WriteWAV(path, buffer, types.Depth16)
}

// Dataset lays out an input tree of two-second tones, one folder per class, plus a parameter document, and
// records the paths in the labels input, output, and params.
func Dataset(data test.Data, helpers test.Helpers, params string, files ...string) {
	root := data.Temp().Dir("dataset")
	input := filepath.Join(root, "input")
	output := filepath.Join(root, "output")
	paramsPath := filepath.Join(root, "params.json")

	for idx, file := range files {
		if err := WriteTone(filepath.Join(input, file), 16000, 2, 440*float64(idx+1)); err != nil {
			helpers.T().Log(fmt.Sprintf("writing fixture %s: %v", file, err))
			helpers.T().FailNow()
		}
	}

	if err := os.WriteFile(paramsPath, []byte(params), 0o600); err != nil {
		helpers.T().Log(fmt.Sprintf("writing parameters: %v", err))
		helpers.T().FailNow()
	}

	data.Labels().Set("input", input)
	data.Labels().Set("output", output)
	data.Labels().Set("params", paramsPath)
}

// CopyInto copies a generated fixture into the input tree under class, keeping its extension.
func CopyInto(data test.Data, helpers test.Helpers, fixture, class, stem string) string {
	destination := filepath.Join(data.Labels().Get("input"), class, stem+filepath.Ext(fixture))

	err := func() error {
		if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
			return err
		}

		in, err := os.Open(fixture)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.Create(destination)
		if err != nil {
			return err
		}
		defer out.Close()

		if _, err = io.Copy(out, in); err != nil {
			return err
		}

		return out.Close()
	}()
	if err != nil {
		helpers.T().Log(fmt.Sprintf("copying fixture %s: %v", fixture, err))
		helpers.T().FailNow()
	}

	return destination
}
