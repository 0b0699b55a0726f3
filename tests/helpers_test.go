package tests_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"

	"github.com/farcloser/lowsweep/internal/annotation"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectCount returns a comparator verifying that the JSON output carries key with the given value.
// The first occurrence of key, at any depth, is used.
func expectCount(key string, want int) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		decoder := json.NewDecoder(strings.NewReader(stdout))

		for {
			var doc any

			err := decoder.Decode(&doc)
			if errors.Is(err, io.EOF) {
				break
			}

			if err != nil {
				testing.Log(fmt.Sprintf("output is not JSON: %v\n%s", err, stdout))
				testing.Fail()

				return
			}

			if got, ok := lookup(doc, key); ok {
				if got != float64(want) {
					testing.Log(fmt.Sprintf("%s = %v, want %d in output:\n%s", key, got, want, stdout))
					testing.Fail()
				}

				return
			}
		}

		testing.Log(fmt.Sprintf("key %q not found in output:\n%s", key, stdout))
		testing.Fail()
	}
}

func lookup(doc any, key string) (any, bool) {
	switch node := doc.(type) {
	case map[string]any:
		if value, ok := node[key]; ok {
			return value, true
		}

		for _, child := range node {
			if value, ok := lookup(child, key); ok {
				return value, true
			}
		}
	case []any:
		for _, child := range node {
			if value, ok := lookup(child, key); ok {
				return value, true
			}
		}
	}

	return nil, false
}

// expectTrack returns a comparator verifying that the annotation track at path has rows rows of classIndex.
func expectTrack(path string, header string, classIndex, rows int) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		file, err := os.Open(path)
		if err != nil {
			testing.Log(fmt.Sprintf("opening track: %v", err))
			testing.Fail()

			return
		}
		defer file.Close()

		track, err := annotation.Read(file)
		if err != nil {
			testing.Log(fmt.Sprintf("reading track %s: %v", path, err))
			testing.Fail()

			return
		}

		if track.ValueHeader != header || len(track.Rows) != rows {
			testing.Log(fmt.Sprintf("%s: header %q with %d rows, want %q with %d", path, track.ValueHeader,
				len(track.Rows), header, rows))
			testing.Fail()

			return
		}

		for idx, row := range track.Rows {
			if row.ClassIndex != classIndex {
				testing.Log(fmt.Sprintf("%s: row %d class %d, want %d", path, idx, row.ClassIndex, classIndex))
				testing.Fail()

				return
			}
		}
	}
}

// expectFiles returns a comparator verifying that every path exists.
func expectFiles(dir string, names ...string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		for _, name := range names {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				testing.Log(fmt.Sprintf("expected output %s: %v", name, err))
				testing.Fail()
			}
		}
	}
}
