package gcs

import (
	"context"
	"io"

	gcsStorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// objectAPI is the subset of the GCS client used by the store
type objectAPI interface {
	List(ctx context.Context, prefix, delimiter string, limit int) ([]*gcsStorage.ObjectAttrs, error)
	Attrs(ctx context.Context, key string) (*gcsStorage.ObjectAttrs, error)
	Write(ctx context.Context, key string, rdr io.Reader) error
	Read(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

type bucketAPI struct {
	client *gcsStorage.Client
	bucket *gcsStorage.BucketHandle
}

func newBucketAPI(client *gcsStorage.Client, bucket string) *bucketAPI {
	return &bucketAPI{
		client: client,
		bucket: client.Bucket(bucket),
	}
}

func (b *bucketAPI) List(ctx context.Context, prefix, delimiter string, limit int) ([]*gcsStorage.ObjectAttrs, error) {
	it := b.bucket.Objects(ctx, &gcsStorage.Query{Prefix: prefix, Delimiter: delimiter})
	var attrs []*gcsStorage.ObjectAttrs
	for limit <= 0 || len(attrs) < limit {
		objAttrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, objAttrs)
	}
	return attrs, nil
}

func (b *bucketAPI) Attrs(ctx context.Context, key string) (*gcsStorage.ObjectAttrs, error) {
	return b.bucket.Object(key).Attrs(ctx)
}

func (b *bucketAPI) Write(ctx context.Context, key string, rdr io.Reader) error {
	writer := b.bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(writer, rdr); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func (b *bucketAPI) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	return b.bucket.Object(key).NewReader(ctx)
}

func (b *bucketAPI) Delete(ctx context.Context, key string) error {
	return b.bucket.Object(key).Delete(ctx)
}

func (b *bucketAPI) Close() error {
	return b.client.Close()
}
