package batch

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrOutputCollision is returned when several sources would write the same output file.
var ErrOutputCollision = errors.New("several sources map to the same output")

// OutputLister is implemented by processors whose outputs are known before processing.
type OutputLister interface {
	Outputs(source string) []string
}

// CheckCollisions fails when two files share an output path, e.g. take1.flac and take1.wav in the same class
// folder. Every colliding group is listed.
func CheckCollisions(files []string, lister OutputLister) error {
	owners := make(map[string][]string)

	for _, file := range files {
		for _, output := range lister.Outputs(file) {
			if !slices.Contains(owners[output], file) {
				owners[output] = append(owners[output], file)
			}
		}
	}

	var errs []error

	for output, sources := range owners {
		if len(sources) > 1 {
			errs = append(errs, fmt.Errorf("%w: %s from %s", ErrOutputCollision, output, strings.Join(sources, ", ")))
		}
	}

	slices.SortFunc(errs, func(a, b error) int {
		return strings.Compare(a.Error(), b.Error())
	})

	return errors.Join(errs...)
}
