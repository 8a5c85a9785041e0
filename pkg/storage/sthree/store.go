// Package sthree implements a remote store on an S3 bucket.
//
// Directories are emulated with key prefixes: a directory exists when at least one key
// lives beneath it, and MkDir stores an empty "<dir>/" marker object.
package sthree

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"go.uber.org/zap"
)

const delimiter = "/"

type s3Store struct {
	bucket    string
	awsConfig *aws.Config
	client    s3iface.S3API
	uploader  s3manageriface.UploaderAPI
	cwd       string
	l         *zap.Logger
}

// New S3 remote store on a bucket
func New(ctx context.Context, bucket string, opts ...Option) (storage.Store, error) {
	s := &s3Store{
		bucket:    bucket,
		awsConfig: aws.NewConfig(),
		cwd:       delimiter,
		l:         zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	if s.client == nil {
		sess, err := session.NewSession(s.awsConfig)
		if err != nil {
			return nil, status.ErrStorageAPI.Wrap(err)
		}
		s.client = s3.New(sess)
	}
	if s.uploader == nil {
		s.uploader = s3manager.NewUploaderWithClient(s.client)
	}
	return s, nil
}

func (s *s3Store) String() string {
	return "s3@" + s.bucket
}

func (s *s3Store) abs(p string) string {
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Join(s.cwd, p)
}

// key of an object, without leading slash
func (s *s3Store) key(p string) string {
	return strings.TrimPrefix(s.abs(p), delimiter)
}

// prefix of the keys beneath a directory
func (s *s3Store) prefix(dir string) string {
	k := s.key(dir)
	if k == "" {
		return ""
	}
	return k + delimiter
}

func (s *s3Store) Exists(ctx context.Context, dir string) (bool, error) {
	prefix := s.prefix(dir)
	if prefix == "" {
		return true, nil
	}
	out, err := s.client.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int64(1),
	})
	if err != nil {
		return false, toSentinelErrors(err)
	}
	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

func (s *s3Store) MkDir(ctx context.Context, dir string) error {
	target := s.abs(dir)
	found, err := s.Exists(ctx, target)
	if err != nil {
		return err
	}
	if found {
		return status.ErrExists.WrapMessage(target, os.ErrExist)
	}
	parent, err := s.Exists(ctx, path.Dir(target))
	if err != nil {
		return err
	}
	if !parent {
		return status.ErrNotFound.WrapMessage(path.Dir(target), os.ErrNotExist)
	}
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix(target)),
		Body:   bytes.NewReader(nil),
	})
	return toSentinelErrors(err)
}

func (s *s3Store) ChangeDir(ctx context.Context, dir string) error {
	target := s.abs(dir)
	found, err := s.Exists(ctx, target)
	if err != nil {
		return err
	}
	if !found {
		return status.ErrNotFound.WrapMessage(target, os.ErrNotExist)
	}
	s.cwd = target
	return nil
}

func (s *s3Store) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	prefix := s.prefix(dir)
	var (
		entries []storage.FileInfo
		seen    bool
	)
	eachPage := func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, common := range page.CommonPrefixes {
			seen = true
			name := strings.TrimSuffix(strings.TrimPrefix(aws.StringValue(common.Prefix), prefix), delimiter)
			entries = append(entries, storage.FileInfo{Name: name, IsDir: true})
		}
		for _, obj := range page.Contents {
			seen = true
			key := aws.StringValue(obj.Key)
			if key == prefix {
				// directory marker
				continue
			}
			info := storage.FileInfo{
				Name:       strings.TrimPrefix(key, prefix),
				Size:       aws.Int64Value(obj.Size),
				ModifiedAt: aws.TimeValue(obj.LastModified),
			}
			if obj.Owner != nil {
				info.Owner = aws.StringValue(obj.Owner.DisplayName)
			}
			entries = append(entries, info)
		}
		return true
	}
	err := s.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:     aws.String(s.bucket),
		Prefix:     aws.String(prefix),
		Delimiter:  aws.String(delimiter),
		FetchOwner: aws.Bool(true),
	}, eachPage)
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	if !seen && prefix != "" {
		return nil, status.ErrNotFound.WrapMessage(s.abs(dir), os.ErrNotExist)
	}
	return entries, nil
}

func (s *s3Store) Put(ctx context.Context, key string, rdr io.Reader) error {
	target := s.abs(key)
	parent, err := s.Exists(ctx, path.Dir(target))
	if err != nil {
		return err
	}
	if !parent {
		return status.ErrNotFound.WrapMessage(path.Dir(target), os.ErrNotExist)
	}
	_, err = s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(target)),
		Body:   rdr,
	})
	return toSentinelErrors(err)
}

func (s *s3Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		return nil, toSentinelErrors(err)
	}
	return obj.Body, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		err = toSentinelErrors(err)
		if errors.Is(err, status.ErrNotFound) {
			return status.ErrNotExists.Wrap(err)
		}
		return err
	}
	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	return toSentinelErrors(err)
}

func (s *s3Store) Close() error {
	return nil
}
