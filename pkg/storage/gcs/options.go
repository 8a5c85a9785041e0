package gcs

import (
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Option is a functor to pass optional parameters to the gcs store
type Option func(*gcs)

// Logger specifies a logger for this store
func Logger(logger *zap.Logger) Option {
	return func(g *gcs) {
		if logger != nil {
			g.l = logger
		}
	}
}

// CredentialsFile is a service account key file. When not set, application default credentials apply.
func CredentialsFile(path string) Option {
	return func(g *gcs) {
		if path != "" {
			g.clientOpts = append(g.clientOpts, option.WithCredentialsFile(path))
		}
	}
}

// ClientOptions passes extra options to the GCS client, e.g. a custom endpoint
func ClientOptions(opts ...option.ClientOption) Option {
	return func(g *gcs) {
		g.clientOpts = append(g.clientOpts, opts...)
	}
}

func withObjects(api objectAPI) Option {
	return func(g *gcs) {
		g.objects = api
	}
}
