// Copyright © 2018 One Concern

package cloud

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DownloadFile retrieves a file from the first bucket, in declared order, whose keywords
// match its name. The file is saved in localDir, which is created when missing.
//
// An existing local file is never overwritten: its path is returned as is.
func (m *Manager) DownloadFile(ctx context.Context, fileName, localDir string) (string, error) {
	name := filepath.Base(fileName)
	bucket, ok := m.buckets.Match(name)
	if !ok {
		return "", newError(KindFileNotFound, name,
			fmt.Errorf("no bucket keyword matches this name in %v", m.buckets.Names()))
	}
	bucketPath := model.BucketPath(m.creds, bucket.Name)
	remote := model.RemoteFilePath(m.creds, bucket.Name, name)
	localPath := filepath.Join(localDir, name)

	err := storage.WithSession(ctx, m.open, func(store storage.Store) error {
		found, err := store.Exists(ctx, bucketPath)
		if err != nil {
			return storeError(bucketPath, err)
		}
		if !found {
			return newError(KindFileNotFound, remote, fmt.Errorf("bucket %q does not exist", bucket.Name))
		}
		present, err := m.remoteFileExists(ctx, store, bucketPath, name)
		if err != nil {
			return err
		}
		if !present {
			return newError(KindFileNotFound, remote, nil)
		}

		exists, err := afero.Exists(m.fs, localPath)
		if err != nil {
			return newError(KindDownload, localPath, err)
		}
		if exists {
			m.l.Warn("local file already exists: not downloaded again", zap.String("file", localPath))
			return nil
		}
		if err = m.fs.MkdirAll(localDir, 0o755); err != nil {
			return newError(KindDownload, localDir, err)
		}

		m.l.Info("downloading", zap.String("file", remote), zap.String("to", localPath))
		if err = storage.Download(ctx, store, m.fs, remote, localPath); err != nil {
			return newError(KindDownload, remote, err)
		}
		if exists, _ = afero.Exists(m.fs, localPath); !exists {
			return newError(KindDownload, localPath, fmt.Errorf("file not found after download"))
		}
		m.l.Info("downloaded", zap.String("file", localPath))
		return nil
	})
	if err != nil {
		return "", err
	}
	return localPath, nil
}
