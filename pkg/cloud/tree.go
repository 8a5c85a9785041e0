// Copyright © 2018 One Concern

package cloud

import (
	"context"
	"fmt"

	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"go.uber.org/zap"
)

// EnsureBucketTree creates every missing directory from the anchor down to each bucket.
//
// It fails with ErrBucketNotFound when the anchor directory does not exist. Calling it
// again is harmless.
func (m *Manager) EnsureBucketTree(ctx context.Context) error {
	return storage.WithSession(ctx, m.open, func(store storage.Store) error {
		return m.ensureBucketTree(ctx, store)
	})
}

func (m *Manager) ensureBucketTree(ctx context.Context, store storage.Store) error {
	anchor := model.AnchorPath(m.creds)
	found, err := store.Exists(ctx, anchor)
	if err != nil {
		return storeError(anchor, err)
	}
	if !found {
		return newError(KindBucketNotFound, anchor,
			fmt.Errorf("the anchor directory must be created on %s before any upload", store.String()))
	}

	segments := model.PathSegments(m.ProjectBucketPath())
	for _, dir := range segments[1:] {
		if err := m.mkdirIfMissing(ctx, store, dir); err != nil {
			return err
		}
	}
	for _, bucket := range m.buckets {
		if err := m.mkdirIfMissing(ctx, store, model.BucketPath(m.creds, bucket.Name)); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) mkdirIfMissing(ctx context.Context, store storage.Store, dir string) error {
	found, err := store.Exists(ctx, dir)
	if err != nil {
		return storeError(dir, err)
	}
	if found {
		return nil
	}
	if err = store.MkDir(ctx, dir); err != nil && !errors.Is(err, status.ErrExists) {
		return storeError(dir, err)
	}
	m.l.Info("created remote directory", zap.String("path", dir))
	return nil
}
