// Copyright © 2018 One Concern

package cloud

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oneconcern/repoassist/pkg/artifact"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"go.uber.org/zap"
)

type candidate struct {
	bucket    model.Bucket
	localPath string
}

// candidates selects, for each bucket and each of its keywords, the latest file in dir.
//
// A file may be selected for several buckets, but only once per bucket.
func (m *Manager) candidates(dir string) ([]candidate, error) {
	var selected []candidate
	for _, bucket := range m.buckets {
		seen := make(map[string]struct{}, len(bucket.Keywords))
		for _, keyword := range bucket.Keywords {
			latest, err := artifact.LatestWithKeyword(m.fs, dir, keyword)
			if err != nil {
				if errors.Is(err, artifact.ErrNoArtifact) {
					continue
				}
				return nil, newError(KindFileNotFound, dir, err)
			}
			if _, dup := seen[latest]; dup {
				continue
			}
			seen[latest] = struct{}{}
			selected = append(selected, candidate{bucket: bucket, localPath: latest})
		}
	}
	return selected, nil
}

// UploadArtifacts uploads the latest artifacts from dir to their buckets.
//
// Files already present in a bucket are never sent again. It returns the remote paths of
// the uploaded files.
func (m *Manager) UploadArtifacts(ctx context.Context, dir string) ([]string, error) {
	selected, err := m.candidates(dir)
	if err != nil {
		return nil, err
	}
	uploaded := make([]string, 0, len(selected))
	if len(selected) == 0 {
		m.l.Info("no files to upload", zap.String("dir", dir))
		return uploaded, nil
	}

	err = storage.WithSession(ctx, m.open, func(store storage.Store) error {
		treeReady := false
		for _, c := range selected {
			ok, err := m.askConfirmation(fmt.Sprintf("Upload %s to bucket %q?", filepath.Base(c.localPath), c.bucket.Name))
			if err != nil {
				return err
			}
			if !ok {
				m.l.Info("upload skipped", zap.String("file", c.localPath), zap.String("bucket", c.bucket.Name))
				continue
			}
			if !treeReady {
				if err = m.ensureBucketTree(ctx, store); err != nil {
					return err
				}
				treeReady = true
			}
			remote, sent, err := m.uploadTo(ctx, store, c.localPath, c.bucket)
			if err != nil {
				return err
			}
			if sent {
				uploaded = append(uploaded, remote)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uploaded, nil
}

// UploadFile uploads a single file to the named bucket
func (m *Manager) UploadFile(ctx context.Context, localPath, bucketName string) (string, error) {
	fi, err := m.fs.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", newError(KindFileNotFound, localPath, err)
		}
		return "", newError(KindInvalid, localPath, err)
	}
	if fi.IsDir() {
		return "", newError(KindFileNotFound, localPath, fmt.Errorf("not a regular file"))
	}
	bucket, ok := m.buckets.Get(bucketName)
	if !ok {
		return "", newError(KindBucketNotFound, bucketName,
			fmt.Errorf("not among configured buckets %v", m.buckets.Names()))
	}

	ok, err = m.askConfirmation(fmt.Sprintf("Upload %s to bucket %q?", filepath.Base(localPath), bucket.Name))
	if err != nil {
		return "", err
	}
	if !ok {
		m.l.Info("upload skipped", zap.String("file", localPath), zap.String("bucket", bucket.Name))
		return "", nil
	}

	var remote string
	err = storage.WithSession(ctx, m.open, func(store storage.Store) error {
		if err := m.ensureBucketTree(ctx, store); err != nil {
			return err
		}
		remote, _, err = m.uploadTo(ctx, store, localPath, bucket)
		return err
	})
	if err != nil {
		return "", err
	}
	return remote, nil
}

// uploadTo sends a local file to a bucket, unless a file with the same name is already there
func (m *Manager) uploadTo(ctx context.Context, store storage.Store, localPath string, bucket model.Bucket) (string, bool, error) {
	name := filepath.Base(localPath)
	bucketPath := model.BucketPath(m.creds, bucket.Name)
	remote := model.RemoteFilePath(m.creds, bucket.Name, name)

	present, err := m.remoteFileExists(ctx, store, bucketPath, name)
	if err != nil {
		return remote, false, err
	}
	if present {
		m.l.Warn("file already exists in bucket: not uploaded again",
			zap.String("file", name), zap.String("bucket", bucket.Name))
		return remote, false, nil
	}

	m.l.Info("uploading", zap.String("file", localPath), zap.String("to", remote))
	if err = storage.Upload(ctx, store, m.fs, localPath, remote); err != nil {
		return remote, false, newError(KindUpload, remote, err)
	}
	present, err = m.remoteFileExists(ctx, store, bucketPath, name)
	if err != nil {
		return remote, false, err
	}
	if !present {
		return remote, false, newError(KindUpload, remote, fmt.Errorf("file not listed in bucket after upload"))
	}
	m.l.Info("uploaded", zap.String("file", name), zap.String("bucket", bucket.Name))
	return remote, true, nil
}

func (m *Manager) remoteFileExists(ctx context.Context, store storage.Store, dir, name string) (bool, error) {
	entries, err := store.List(ctx, dir)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return false, nil
		}
		return false, storeError(dir, err)
	}
	return storage.Contains(storage.Files(entries), name), nil
}
