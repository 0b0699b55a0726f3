package annotation

import (
	"path/filepath"
	"slices"
	"strings"
)

// Classes is the ordered list of class names. A class index is a position in this list.
type Classes []string

// Index returns the position of name, or Unresolved.
func (c Classes) Index(name string) int {
	idx := slices.Index(c, name)
	if idx < 0 {
		return Unresolved
	}

	return idx
}

// ClassOf returns the class name of a source file: its immediate parent directory.
func ClassOf(sourcePath string) string {
	return filepath.Base(filepath.Dir(sourcePath))
}

// BaseName returns the output base name of a source file, <class>_<stem>, without extension.
func BaseName(sourcePath string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	return ClassOf(sourcePath) + "_" + stem
}

// IndexOfBaseName resolves the class of an output file written as <class>_<stem>.ext. Class names may contain
// underscores themselves, so the longest matching class wins.
func (c Classes) IndexOfBaseName(name string) int {
	base := filepath.Base(name)
	best := Unresolved

	for idx, class := range c {
		if !strings.HasPrefix(base, class+"_") {
			continue
		}

		if best == Unresolved || len(class) > len(c[best]) {
			best = idx
		}
	}

	return best
}
