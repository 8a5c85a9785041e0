// Copyright © 2018 One Concern

// Package localfs implements a remote store on a local file system.
//
// It serves file:// remotes, and in-memory remote stores for tests.
package localfs

import (
	"context"
	"io"
	"os"
	"path"
	"sync"

	"github.com/oneconcern/repoassist/pkg/storage"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"github.com/spf13/afero"
)

// Option for the local store
type Option func(*localFS)

// Owner reported for all listed entries
func Owner(owner string) Option {
	return func(l *localFS) {
		l.owner = owner
	}
}

// New creates a new local file system backed remote store
func New(fs afero.Fs, opts ...Option) storage.Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	l := &localFS{
		fs:  fs,
		cwd: "/",
	}
	for _, apply := range opts {
		apply(l)
	}
	return l
}

type localFS struct {
	fs     afero.Fs
	owner  string
	mx     sync.Mutex
	cwd    string
	closed bool
}

func (l *localFS) abs(p string) string {
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	l.mx.Lock()
	defer l.mx.Unlock()
	return path.Join(l.cwd, p)
}

func (l *localFS) checkOpen() error {
	l.mx.Lock()
	defer l.mx.Unlock()
	if l.closed {
		return status.ErrClosed
	}
	return nil
}

func (l *localFS) Exists(ctx context.Context, dir string) (bool, error) {
	if err := l.checkOpen(); err != nil {
		return false, err
	}
	found, err := afero.DirExists(l.fs, l.abs(dir))
	if err != nil {
		return false, status.ErrStorageAPI.Wrap(err)
	}
	return found, nil
}

func (l *localFS) MkDir(ctx context.Context, dir string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	target := l.abs(dir)
	parent, err := afero.DirExists(l.fs, path.Dir(target))
	if err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	if !parent {
		return status.ErrNotFound.WrapMessage(path.Dir(target), os.ErrNotExist)
	}
	if exists, _ := afero.Exists(l.fs, target); exists {
		return status.ErrExists.WrapMessage(target, os.ErrExist)
	}
	if err := l.fs.Mkdir(target, 0o755); err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

func (l *localFS) ChangeDir(ctx context.Context, dir string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	target := l.abs(dir)
	found, err := afero.DirExists(l.fs, target)
	if err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	if !found {
		return status.ErrNotFound.WrapMessage(target, os.ErrNotExist)
	}
	l.mx.Lock()
	l.cwd = target
	l.mx.Unlock()
	return nil
}

func (l *localFS) List(ctx context.Context, dir string) ([]storage.FileInfo, error) {
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	infos, err := afero.ReadDir(l.fs, l.abs(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.ErrNotFound.Wrap(err)
		}
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	entries := make([]storage.FileInfo, 0, len(infos))
	for _, fi := range infos {
		entries = append(entries, storage.FileInfo{
			Name:       fi.Name(),
			Size:       fi.Size(),
			Owner:      l.owner,
			ModifiedAt: fi.ModTime(),
			IsDir:      fi.IsDir(),
		})
	}
	return entries, nil
}

func (l *localFS) Put(ctx context.Context, key string, source io.Reader) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	target := l.abs(key)
	found, err := afero.DirExists(l.fs, path.Dir(target))
	if err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	if !found {
		return status.ErrNotFound.WrapMessage(path.Dir(target), os.ErrNotExist)
	}
	file, err := l.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	if _, err = io.Copy(file, source); err != nil {
		_ = file.Close()
		return status.ErrStorageAPI.Wrap(err)
	}
	if err = file.Close(); err != nil {
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

func (l *localFS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := l.checkOpen(); err != nil {
		return nil, err
	}
	target := l.abs(key)
	fi, err := l.fs.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, status.ErrNotExists.Wrap(err)
		}
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	if fi.IsDir() {
		return nil, status.ErrInvalidResource.WrapMessage(target, os.ErrInvalid)
	}
	file, err := l.fs.Open(target)
	if err != nil {
		return nil, status.ErrStorageAPI.Wrap(err)
	}
	return file, nil
}

func (l *localFS) Delete(ctx context.Context, key string) error {
	if err := l.checkOpen(); err != nil {
		return err
	}
	if err := l.fs.Remove(l.abs(key)); err != nil {
		if os.IsNotExist(err) {
			return status.ErrNotExists.Wrap(err)
		}
		return status.ErrStorageAPI.Wrap(err)
	}
	return nil
}

func (l *localFS) Close() error {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.closed = true
	return nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("/")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}
