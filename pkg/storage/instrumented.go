// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"
)

// Instrument a store with debug logging of all its operations
func Instrument(logger *zap.Logger, store Store) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedStore{
		store: store,
		l:     logger.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store Store
	l     *zap.Logger
}

func (i *instrumentedStore) trace(op, path string, t0 time.Time, err error) {
	fields := []zap.Field{zap.String("op", op), zap.String("path", path), zap.Duration("duration", time.Since(t0))}
	if err != nil {
		i.l.Debug("storage op failed", append(fields, zap.Error(err))...)
		return
	}
	i.l.Debug("storage op", fields...)
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}

func (i *instrumentedStore) Exists(ctx context.Context, path string) (found bool, err error) {
	defer func(t0 time.Time) { i.trace("exists", path, t0, err) }(time.Now())
	return i.store.Exists(ctx, path)
}

func (i *instrumentedStore) MkDir(ctx context.Context, path string) (err error) {
	defer func(t0 time.Time) { i.trace("mkdir", path, t0, err) }(time.Now())
	return i.store.MkDir(ctx, path)
}

func (i *instrumentedStore) ChangeDir(ctx context.Context, path string) (err error) {
	defer func(t0 time.Time) { i.trace("cd", path, t0, err) }(time.Now())
	return i.store.ChangeDir(ctx, path)
}

func (i *instrumentedStore) List(ctx context.Context, path string) (entries []FileInfo, err error) {
	defer func(t0 time.Time) { i.trace("list", path, t0, err) }(time.Now())
	return i.store.List(ctx, path)
}

func (i *instrumentedStore) Put(ctx context.Context, path string, rdr io.Reader) (err error) {
	defer func(t0 time.Time) { i.trace("put", path, t0, err) }(time.Now())
	return i.store.Put(ctx, path, rdr)
}

func (i *instrumentedStore) Get(ctx context.Context, path string) (rdr io.ReadCloser, err error) {
	defer func(t0 time.Time) { i.trace("get", path, t0, err) }(time.Now())
	return i.store.Get(ctx, path)
}

func (i *instrumentedStore) Delete(ctx context.Context, path string) (err error) {
	defer func(t0 time.Time) { i.trace("delete", path, t0, err) }(time.Now())
	return i.store.Delete(ctx, path)
}

func (i *instrumentedStore) Close() (err error) {
	defer func(t0 time.Time) { i.trace("close", "", t0, err) }(time.Now())
	return i.store.Close()
}
