// Copyright © 2018 One Concern

package cloud

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/storage"
	"go.uber.org/zap"
)

// Listing maps bucket names to their files, by ascending modification time
type Listing map[string][]storage.FileInfo

// Names of the files in each bucket
func (l Listing) Names() map[string][]string {
	if l == nil {
		return nil
	}
	names := make(map[string][]string, len(l))
	for bucket, files := range l {
		names[bucket] = storage.Names(files)
	}
	return names
}

// ListBuckets lists the files in every configured bucket.
//
// It returns a nil listing when the project bucket path does not exist yet. A missing or
// empty bucket is listed with no file.
func (m *Manager) ListBuckets(ctx context.Context) (Listing, error) {
	var listing Listing
	err := storage.WithSession(ctx, m.open, func(store storage.Store) error {
		projectPath := m.ProjectBucketPath()
		found, err := store.Exists(ctx, projectPath)
		if err != nil {
			return storeError(projectPath, err)
		}
		if !found {
			m.l.Info("no buckets: nothing has been uploaded yet")
			return nil
		}

		listing = make(Listing, len(m.buckets))
		for _, bucket := range m.buckets {
			bucketPath := model.BucketPath(m.creds, bucket.Name)
			found, err = store.Exists(ctx, bucketPath)
			if err != nil {
				return storeError(bucketPath, err)
			}
			if !found {
				m.l.Warn("bucket does not exist", zap.String("bucket", bucket.Name))
				listing[bucket.Name] = []storage.FileInfo{}
				continue
			}
			entries, err := store.List(ctx, bucketPath)
			if err != nil {
				return storeError(bucketPath, err)
			}
			files := storage.Files(entries)
			storage.SortByModTime(files)
			listing[bucket.Name] = files

			m.l.Info("bucket", zap.String("bucket", bucket.Name), zap.Int("files", len(files)))
			for _, f := range files {
				m.l.Info(fmt.Sprintf("%-10s %10d %s %s", f.Owner, f.Size, f.ModifiedAt.Format("2006-01-02 15:04:05"), f.Name))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// DeleteFile removes a file from the first bucket whose keywords match its name
func (m *Manager) DeleteFile(ctx context.Context, fileName string) (string, error) {
	fileName = filepath.Base(fileName)
	bucket, ok := m.buckets.Match(fileName)
	if !ok {
		return "", newError(KindFileNotFound, fileName,
			fmt.Errorf("no bucket keyword matches this name in %v", m.buckets.Names()))
	}
	remote := model.RemoteFilePath(m.creds, bucket.Name, fileName)
	bucketPath := model.BucketPath(m.creds, bucket.Name)

	err := storage.WithSession(ctx, m.open, func(store storage.Store) error {
		present, err := m.remoteFileExists(ctx, store, bucketPath, fileName)
		if err != nil {
			return err
		}
		if !present {
			return newError(KindFileNotFound, remote, nil)
		}
		if err = store.Delete(ctx, remote); err != nil {
			return storeError(remote, err)
		}
		m.l.Info("deleted", zap.String("file", remote))
		return nil
	})
	if err != nil {
		return "", err
	}
	return remote, nil
}
