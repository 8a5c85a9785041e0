// Copyright © 2018 One Concern

// Package remote opens remote store sessions from cloud credentials.
//
// The server field selects the backend:
//
//	host[:port], ftp://host[:port], ftps://host[:port]   FTP (explicit TLS for ftps)
//	s3://bucket?region=eu-west-1&endpoint=http://minio:9000   S3
//	gs://bucket   Google Cloud Storage (password: path to a service account key file)
//	file:///srv/artifacts   local directory
package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/ftp"
	"github.com/oneconcern/repoassist/pkg/storage/gcs"
	"github.com/oneconcern/repoassist/pkg/storage/localfs"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"github.com/oneconcern/repoassist/pkg/storage/sthree"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option for the opener
type Option func(*settings)

type settings struct {
	l       *zap.Logger
	timeout time.Duration
	fs      afero.Fs
}

// Logger for opened stores
func Logger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.l = l
		}
	}
}

// Timeout when connecting to a server
func Timeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// Fs is the file system serving file:// remotes
func Fs(fs afero.Fs) Option {
	return func(s *settings) {
		s.fs = fs
	}
}

// Opener builds a session opener for the server designated by the credentials.
//
// Every opened store is instrumented with debug logging.
func Opener(creds model.Credentials, opts ...Option) (storage.Opener, error) {
	s := &settings{
		l:       zap.NewNop(),
		timeout: 30 * time.Second,
		fs:      afero.NewOsFs(),
	}
	for _, apply := range opts {
		apply(s)
	}

	server := strings.TrimSpace(creds.Server)
	if !strings.Contains(server, "://") {
		server = "ftp://" + server
	}
	u, err := url.Parse(server)
	if err != nil {
		return nil, status.ErrInvalidResource.WrapMessage(creds.Server, err)
	}

	var open storage.Opener
	switch u.Scheme {
	case "ftp", "ftps":
		if u.Host == "" {
			return nil, status.ErrInvalidResource.WrapMessage(creds.Server, fmt.Errorf("missing host"))
		}
		explicitTLS := u.Scheme == "ftps"
		open = func(ctx context.Context) (storage.Store, error) {
			return ftp.New(ctx, u.Host, creds.Username, creds.Password,
				ftp.Timeout(s.timeout),
				ftp.ExplicitTLS(explicitTLS),
				ftp.Logger(s.l),
			)
		}
	case "s3":
		if u.Host == "" {
			return nil, status.ErrInvalidResource.WrapMessage(creds.Server, fmt.Errorf("missing bucket"))
		}
		query := u.Query()
		open = func(ctx context.Context) (storage.Store, error) {
			return sthree.New(ctx, u.Host,
				sthree.Region(query.Get("region")),
				sthree.Endpoint(query.Get("endpoint")),
				sthree.StaticCredentials(creds.Username, creds.Password),
				sthree.Logger(s.l),
			)
		}
	case "gs":
		if u.Host == "" {
			return nil, status.ErrInvalidResource.WrapMessage(creds.Server, fmt.Errorf("missing bucket"))
		}
		open = func(ctx context.Context) (storage.Store, error) {
			return gcs.New(ctx, u.Host,
				gcs.CredentialsFile(creds.Password),
				gcs.Logger(s.l),
			)
		}
	case "file":
		if u.Path == "" {
			return nil, status.ErrInvalidResource.WrapMessage(creds.Server, fmt.Errorf("missing path"))
		}
		root := afero.NewBasePathFs(s.fs, u.Path)
		open = func(context.Context) (storage.Store, error) {
			return localfs.New(root, localfs.Owner(creds.Username)), nil
		}
	default:
		return nil, status.ErrNotSupported.WrapMessage(u.Scheme, fmt.Errorf("unsupported remote store scheme"))
	}

	return func(ctx context.Context) (storage.Store, error) {
		store, err := open(ctx)
		if err != nil {
			return nil, err
		}
		return storage.Instrument(s.l, store), nil
	}, nil
}
