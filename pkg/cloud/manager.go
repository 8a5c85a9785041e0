// Copyright © 2018 One Concern

// Package cloud synchronizes build artifacts with buckets on a remote store.
//
// Remote layout:
//
//	/<main_bucket_path>/[<client_name>/][<project_name>/]<bucket_name>/<file_name>
//
// The anchor directory (first segment of main_bucket_path) must exist on the server:
// everything beneath it is created on demand.
package cloud

import (
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Manager uploads, downloads and lists artifacts in buckets.
//
// Every operation runs in its own remote store session.
type Manager struct {
	creds   model.Credentials
	buckets model.Buckets
	open    storage.Opener
	fs      afero.Fs
	confirm ConfirmFunc
	l       *zap.Logger
}

// New cloud manager
func New(creds model.Credentials, buckets model.Buckets, open storage.Opener, opts ...Option) *Manager {
	m := &Manager{
		creds:   creds,
		buckets: buckets,
		open:    open,
		fs:      afero.NewOsFs(),
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(m)
	}
	m.l = m.l.With(zap.String("project_bucket", model.ProjectBucketPath(creds)))
	return m
}

// ProjectBucketPath is the remote directory holding the buckets
func (m *Manager) ProjectBucketPath() string {
	return model.ProjectBucketPath(m.creds)
}

// Buckets configured for this project
func (m *Manager) Buckets() model.Buckets {
	return m.buckets
}

func (m *Manager) askConfirmation(question string) (bool, error) {
	if m.confirm == nil {
		return true, nil
	}
	return m.confirm(question)
}
