// Package batch drives the per-file commands over a directory tree: discovery, output naming, overwrite policy,
// bounded fan-out, and the run summary.
package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var (
	// ErrNotDirectory is returned when the input path is missing or not a directory.
	ErrNotDirectory = errors.New("not a directory")
	// ErrNoAudioFiles is returned when discovery finds nothing to process.
	ErrNoAudioFiles = errors.New("no supported audio files found")
)

// Extensions is the allow-list of audio file extensions, lower-case.
//
//nolint:gochecknoglobals // configuration data, effectively const
var Extensions = []string{
	".wav", ".mp3", ".flac", ".aac", ".ogg", ".m4a", ".wma", ".aiff", ".au",
	".ra", ".3gp", ".amr", ".ac3", ".dts", ".ape", ".mka", ".opus",
}

// Supported reports whether path has an allowed extension, ignoring case.
func Supported(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Discover returns every supported audio file under root, recursively, sorted.
// It fails when root is not a directory or holds no audio file.
func Discover(root string) ([]string, error) {
	return discover(root, Supported)
}

// DiscoverWAV returns every .wav file under root, recursively, sorted.
func DiscoverWAV(root string) ([]string, error) {
	return discover(root, func(path string) bool {
		return strings.EqualFold(filepath.Ext(path), ".wav")
	})
}

func discover(root string, keep func(string) bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%q: %w", root, ErrNotDirectory)
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.Type().IsRegular() && keep(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning folder: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%q: %w", root, ErrNoAudioFiles)
	}

	slices.Sort(files)

	return files, nil
}
