// Copyright © 2018 One Concern

// Package gcs implements a remote store on a Google Cloud Storage bucket.
//
// Like the S3 store, directories are key prefixes and MkDir stores an empty "<dir>/" marker.
package gcs

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"strings"

	gcsStorage "cloud.google.com/go/storage"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const delimiter = "/"

type gcs struct {
	bucket     string
	objects    objectAPI
	clientOpts []option.ClientOption
	cwd        string
	l          *zap.Logger
}

// New GCS remote store on a bucket
func New(ctx context.Context, bucket string, opts ...Option) (storage.Store, error) {
	g := &gcs{
		bucket: bucket,
		cwd:    delimiter,
		l:      zap.NewNop(),
	}
	for _, apply := range opts {
		apply(g)
	}
	if g.objects == nil {
		client, err := gcsStorage.NewClient(ctx, append(g.clientOpts, option.WithScopes(gcsStorage.ScopeFullControl))...)
		if err != nil {
			return nil, toSentinelErrors(err)
		}
		g.objects = newBucketAPI(client, bucket)
	}
	return g, nil
}

func (g *gcs) String() string {
	return "gcs://" + g.bucket
}

func (g *gcs) abs(p string) string {
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(g.cwd, p)
}

func (g *gcs) key(p string) string {
	return strings.TrimPrefix(g.abs(p), delimiter)
}

func (g *gcs) prefix(dir string) string {
	k := g.key(dir)
	if k == "" {
		return ""
	}
	return k + delimiter
}

func (g *gcs) Exists(ctx context.Context, dir string) (bool, error) {
	prefix := g.prefix(dir)
	if prefix == "" {
		return true, nil
	}
	attrs, err := g.objects.List(ctx, prefix, "", 1)
	if err != nil {
		return false, toSentinelErrors(err)
	}
	return len(attrs) > 0, nil
}

func (g *gcs) MkDir(ctx context.Context, dir string) error {
	target := g.abs(dir)
	found, err := g.Exists(ctx, target)
	if err != nil {
		return err
	}
	if found {
		return status.ErrExists.WrapMessage(target, os.ErrExist)
	}
	parent, err := g.Exists(ctx, path.Dir(target))
	if err != nil {
		return err
	}
	if !parent {
		return status.ErrNotFound.WrapMessage(path.Dir(target), os.ErrNotExist)
	}
	return toSentinelErrors(g.objects.Write(ctx, g.prefix(target), bytes.NewReader(nil)))
}

func (g *gcs) ChangeDir(ctx context.Context, dir string) error {
	target := g.abs(dir)
	found, err := g.Exists(ctx, target)
	if err != nil {
		return err
	}
	if !found {
		return status.ErrNotFound.WrapMessage(target, os.ErrNotExist)
	}
	g.cwd = target
	return nil
}

func (g *gcs) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	prefix := g.prefix(dir)
	attrs, err := g.objects.List(ctx, prefix, delimiter, 0)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	if len(attrs) == 0 && prefix != "" {
		return nil, status.ErrNotFound.WrapMessage(g.abs(dir), os.ErrNotExist)
	}
	entries := make([]storage.FileInfo, 0, len(attrs))
	for _, a := range attrs {
		if a.Prefix != "" {
			entries = append(entries, storage.FileInfo{
				Name:  strings.TrimSuffix(strings.TrimPrefix(a.Prefix, prefix), delimiter),
				IsDir: true,
			})
			continue
		}
		if a.Name == prefix {
			// directory marker
			continue
		}
		entries = append(entries, storage.FileInfo{
			Name:       strings.TrimPrefix(a.Name, prefix),
			Size:       a.Size,
			Owner:      a.Owner,
			ModifiedAt: a.Updated,
		})
	}
	return entries, nil
}

func (g *gcs) Put(ctx context.Context, key string, rdr io.Reader) error {
	target := g.abs(key)
	parent, err := g.Exists(ctx, path.Dir(target))
	if err != nil {
		return err
	}
	if !parent {
		return status.ErrNotFound.WrapMessage(path.Dir(target), os.ErrNotExist)
	}
	g.l.Debug("gcs put", zap.String("bucket", g.bucket), zap.String("key", g.key(target)))
	return toSentinelErrors(g.objects.Write(ctx, g.key(target), rdr))
}

func (g *gcs) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rdr, err := g.objects.Read(ctx, g.key(key))
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return rdr, nil
}

func (g *gcs) Delete(ctx context.Context, key string) error {
	if _, err := g.objects.Attrs(ctx, g.key(key)); err != nil {
		err = toSentinelErrors(err)
		if errors.Is(err, status.ErrNotFound) {
			return status.ErrNotExists.Wrap(err)
		}
		return err
	}
	return toSentinelErrors(g.objects.Delete(ctx, g.key(key)))
}

func (g *gcs) Close() error {
	return g.objects.Close()
}
