package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	gcsStorage "cloud.google.com/go/storage"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

var t0 = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// fakeBucket keeps objects in memory and lists them the way the GCS API does
type fakeBucket struct {
	objects map[string][]byte
	closed  bool
}

func (f *fakeBucket) List(_ context.Context, prefix, delimiter string, limit int) ([]*gcsStorage.ObjectAttrs, error) {
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var attrs []*gcsStorage.ObjectAttrs
	seen := make(map[string]bool)
	for _, k := range keys {
		if limit > 0 && len(attrs) >= limit {
			break
		}
		rest := strings.TrimPrefix(k, prefix)
		if delimiter != "" {
			if idx := strings.Index(rest, delimiter); idx >= 0 {
				p := prefix + rest[:idx+1]
				if !seen[p] {
					seen[p] = true
					attrs = append(attrs, &gcsStorage.ObjectAttrs{Prefix: p})
				}
				continue
			}
		}
		attrs = append(attrs, &gcsStorage.ObjectAttrs{Name: k, Size: int64(len(f.objects[k])), Owner: "owner", Updated: t0})
	}
	return attrs, nil
}

func (f *fakeBucket) Attrs(_ context.Context, key string) (*gcsStorage.ObjectAttrs, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, gcsStorage.ErrObjectNotExist
	}
	return &gcsStorage.ObjectAttrs{Name: key, Size: int64(len(data))}, nil
}

func (f *fakeBucket) Write(_ context.Context, key string, rdr io.Reader) error {
	data, err := io.ReadAll(rdr)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeBucket) Read(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, gcsStorage.ErrObjectNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBucket) Delete(_ context.Context, key string) error {
	if _, ok := f.objects[key]; !ok {
		return gcsStorage.ErrObjectNotExist
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBucket) Close() error {
	f.closed = true
	return nil
}

func setupStore(t *testing.T) (storage.Store, *fakeBucket) {
	bucket := &fakeBucket{objects: map[string][]byte{"anchor/": {}}}
	store, err := New(context.Background(), "artifacts", withObjects(bucket))
	require.NoError(t, err)
	return store, bucket
}

func TestDirectories(t *testing.T) {
	store, bucket := setupStore(t)
	ctx := context.Background()

	found, err := store.Exists(ctx, "/anchor")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = store.Exists(ctx, "/anchor/main")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.MkDir(ctx, "/anchor/main"))
	assert.Contains(t, bucket.objects, "anchor/main/")
	assert.ErrorIs(t, store.MkDir(ctx, "/anchor/main"), status.ErrExists)
	assert.ErrorIs(t, store.MkDir(ctx, "/nowhere/main"), status.ErrNotFound)

	require.NoError(t, store.ChangeDir(ctx, "/anchor"))
	found, err = store.Exists(ctx, "main")
	require.NoError(t, err)
	assert.True(t, found)
	assert.ErrorIs(t, store.ChangeDir(ctx, "/nowhere"), status.ErrNotFound)
}

func TestFiles(t *testing.T) {
	store, bucket := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.MkDir(ctx, "/anchor/release"))
	require.NoError(t, store.Put(ctx, "/anchor/release/pkg_release.txt", bytes.NewBufferString("data")))
	assert.ErrorIs(t, store.Put(ctx, "/anchor/missing/pkg.txt", bytes.NewBufferString("x")), status.ErrNotFound)

	entries, err := store.List(ctx, "/anchor/release")
	require.NoError(t, err)
	require.Len(t, entries, 1, "the directory marker is not listed")
	assert.Equal(t, storage.FileInfo{Name: "pkg_release.txt", Size: 4, Owner: "owner", ModifiedAt: t0}, entries[0])

	entries, err = store.List(ctx, "/anchor")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "release", entries[0].Name)
	assert.True(t, entries[0].IsDir)

	_, err = store.List(ctx, "/anchor/missing")
	assert.ErrorIs(t, err, status.ErrNotFound)

	rdr, err := store.Get(ctx, "/anchor/release/pkg_release.txt")
	require.NoError(t, err)
	b, err := io.ReadAll(rdr)
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	_, err = store.Get(ctx, "/anchor/release/missing.txt")
	assert.ErrorIs(t, err, status.ErrNotExists)

	require.NoError(t, store.Delete(ctx, "/anchor/release/pkg_release.txt"))
	assert.ErrorIs(t, store.Delete(ctx, "/anchor/release/pkg_release.txt"), status.ErrNotExists)

	assert.NoError(t, store.Close())
	assert.True(t, bucket.closed)
	assert.Equal(t, "gcs://artifacts", store.String())
}

func TestToSentinelErrors(t *testing.T) {
	assert.NoError(t, toSentinelErrors(nil))
	assert.ErrorIs(t, toSentinelErrors(gcsStorage.ErrObjectNotExist), status.ErrNotExists)
	assert.ErrorIs(t, toSentinelErrors(gcsStorage.ErrBucketNotExist), status.ErrNotFound)
	assert.ErrorIs(t, toSentinelErrors(&googleapi.Error{Code: 403}), status.ErrForbidden)
	assert.ErrorIs(t, toSentinelErrors(&googleapi.Error{Code: 401}), status.ErrUnauthorized)
	assert.ErrorIs(t, toSentinelErrors(&googleapi.Error{Code: 400, Body: "bucket is not valid"}), status.ErrInvalidResource)
	assert.ErrorIs(t, toSentinelErrors(fmt.Errorf("wrapped: %w", &googleapi.Error{Code: 500})), status.ErrStorageAPI)
	assert.ErrorIs(t, toSentinelErrors(fmt.Errorf("connection reset")), status.ErrStorageAPI)
}
