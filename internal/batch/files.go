package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/farcloser/lowsweep/internal/annotation"
	"github.com/farcloser/lowsweep/internal/types"
)

// DecodeFunc reads an audio file into a buffer.
type DecodeFunc func(ctx context.Context, path string) (*types.Buffer, error)

func exists(path string) bool {
	_, err := os.Stat(path)

	return !errors.Is(err, fs.ErrNotExist)
}

func writeTrack(path, header string, classIndex int, values []float64) error {
	file, err := os.Create(path) //nolint:gosec // output path derived from user-specified directory
	if err != nil {
		return err
	}
	defer file.Close()

	if err = annotation.Write(file, header, classIndex, values); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return file.Close()
}

// copyFile copies src to dst, keeping the source permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // source files come from the discovered input tree
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // output path derived from user-specified directory
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}

	return out.Close()
}
