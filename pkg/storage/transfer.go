// Copyright © 2018 One Concern

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Upload stores a local file at the remote path
func Upload(ctx context.Context, store Store, fs afero.Fs, localPath, remotePath string) error {
	source, err := fs.Open(localPath)
	if err != nil {
		return err
	}
	defer source.Close()

	return store.Put(ctx, remotePath, source)
}

// Download retrieves a remote file to a local path.
//
// The file is first written to a temporary file in the destination directory, then renamed,
// so that an interrupted transfer never leaves a partial file at localPath.
func Download(ctx context.Context, store Store, fs afero.Fs, remotePath, localPath string) error {
	reader, err := store.Get(ctx, remotePath)
	if err != nil {
		return err
	}
	defer reader.Close()

	dir := filepath.Dir(localPath)
	target, err := afero.TempFile(fs, dir, "."+filepath.Base(localPath)+"-")
	if err != nil {
		return fmt.Errorf("create temporary file for %q: %w", localPath, err)
	}
	tmpName := target.Name()
	defer func() {
		_ = fs.Remove(tmpName)
	}()

	if _, err = io.Copy(target, reader); err != nil {
		_ = target.Close()
		return fmt.Errorf("write %q: %w", localPath, err)
	}
	if err = target.Close(); err != nil {
		return err
	}
	if err = fs.Chmod(tmpName, os.FileMode(0o644)); err != nil {
		return err
	}
	return fs.Rename(tmpName, localPath)
}
