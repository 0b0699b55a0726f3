// Package config loads the parameter document shared by every command: the ordered class list, and the cutoff
// bounds of the low-pass sweep.
//
// The document is the JSON file produced alongside the dataset:
//
//	{
//	  "parameter_1": {"classes": ["violin", "cello"]},
//	  "parameter_2": {"start_cutoff": 4000, "end_cutoff": 500}
//	}
//
// YAML with the same keys is accepted as well. Unknown keys are ignored: the document carries other parameters.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farcloser/lowsweep/internal/annotation"
)

var (
	// ErrMissingCutoffs is returned by RequireCutoffs when parameter_2 is absent or incomplete.
	ErrMissingCutoffs = errors.New("parameter_2.start_cutoff and parameter_2.end_cutoff are required")
	errNoClasses      = errors.New("parameter_1.classes is required and must not be empty")
)

// Parameters is the validated content of the parameter document.
type Parameters struct {
	Classes     annotation.Classes
	StartCutoff float64 // Hz, zero when absent
	EndCutoff   float64 // Hz, zero when absent
}

//nolint:tagliatelle // keys are fixed by the dataset tooling
type document struct {
	Parameter1 struct {
		Classes []string `yaml:"classes"`
	} `yaml:"parameter_1"`
	Parameter2 struct {
		StartCutoff *float64 `yaml:"start_cutoff"`
		EndCutoff   *float64 `yaml:"end_cutoff"`
	} `yaml:"parameter_2"`
}

// Load reads the parameter document at path. It is a convenience wrapper around LoadFromReader.
func Load(path string) (*Parameters, error) {
	f, err := os.Open(path) //nolint:gosec // user-provided parameter file
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	params, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return params, nil
}

// LoadFromReader decodes a parameter document from r and validates it.
func LoadFromReader(r io.Reader) (*Parameters, error) {
	var doc document

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config: empty document")
		}

		return nil, fmt.Errorf("config: decode: %w", err)
	}

	params := &Parameters{Classes: doc.Parameter1.Classes}

	if doc.Parameter2.StartCutoff != nil {
		params.StartCutoff = *doc.Parameter2.StartCutoff
	}

	if doc.Parameter2.EndCutoff != nil {
		params.EndCutoff = *doc.Parameter2.EndCutoff
	}

	if err := Validate(params, doc.Parameter2.StartCutoff != nil, doc.Parameter2.EndCutoff != nil); err != nil {
		return nil, err
	}

	return params, nil
}

// Validate checks the class list, and the cutoffs that were provided.
// It returns a joined error listing every failure found.
func Validate(params *Parameters, hasStart, hasEnd bool) error {
	var errs []error

	if len(params.Classes) == 0 {
		errs = append(errs, errNoClasses)
	}

	seen := make(map[string]int, len(params.Classes))

	for i, class := range params.Classes {
		if class == "" {
			errs = append(errs, fmt.Errorf("parameter_1.classes[%d] is empty", i))

			continue
		}

		if prev, ok := seen[class]; ok {
			errs = append(errs, fmt.Errorf("parameter_1.classes[%d] %q is a duplicate of classes[%d]", i, class, prev))
		}

		seen[class] = i
	}

	if hasStart && !validCutoff(params.StartCutoff) {
		errs = append(errs, fmt.Errorf("parameter_2.start_cutoff %v must be a positive frequency", params.StartCutoff))
	}

	if hasEnd && !validCutoff(params.EndCutoff) {
		errs = append(errs, fmt.Errorf("parameter_2.end_cutoff %v must be a positive frequency", params.EndCutoff))
	}

	return errors.Join(errs...)
}

// RequireCutoffs fails when the document did not provide both sweep bounds.
func (p *Parameters) RequireCutoffs() error {
	if p.StartCutoff == 0 || p.EndCutoff == 0 {
		return ErrMissingCutoffs
	}

	return nil
}

func validCutoff(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
