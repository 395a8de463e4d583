// Package fileutil provides file system utilities.
package fileutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by WriteFileAtomic when NoClobber is set and the
// destination already exists.
var ErrExists = errors.New("file already exists")

// Options controls WriteFileAtomic.
type Options struct {
	Perm      os.FileMode
	NoClobber bool
}

// WriteFileAtomic streams the output of write into a temporary file next to
// filename and renames it into place once write, the flush and the fsync have
// all succeeded. Readers see either the previous file or the complete new one.
//
// With NoClobber the file is linked into place instead of renamed, so of
// several concurrent writers to the same name exactly one succeeds and the
// rest get ErrExists.
func WriteFileAtomic(filename string, opts Options, write func(io.Writer) error) error {
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	// Skip the encode when the target is already there.
	if opts.NoClobber {
		if _, err := os.Stat(filename); err == nil {
			return fmt.Errorf("%s: %w", filename, ErrExists)
		}
	}

	// Same directory, so the rename stays on one filesystem.
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, "."+base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmpFile)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Chmod(tmpPath, opts.Perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if opts.NoClobber {
		err := os.Link(tmpPath, filename)
		os.Remove(tmpPath)
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", filename, ErrExists)
		}
		if err != nil {
			return fmt.Errorf("failed to link temp file: %w", err)
		}
		return nil
	}

	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
