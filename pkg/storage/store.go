// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"sort"
	"time"
)

// FileInfo describes an entry in a remote directory
type FileInfo struct {
	Name       string
	Size       int64
	Owner      string
	ModifiedAt time.Time
	IsDir      bool
}

//go:generate moq -out mockstorage/store_mock.go -pkg mockstorage . Store

// Store implementations know how to navigate and transfer files to a hierarchical remote store.
//
// Paths are absolute, slash-separated remote paths. A Store is a session: it must be closed.
type Store interface {
	String() string

	// Exists tells if a directory exists. A missing directory is not an error.
	Exists(context.Context, string) (bool, error)
	MkDir(context.Context, string) error
	ChangeDir(context.Context, string) error
	List(context.Context, string) ([]FileInfo, error)
	Put(context.Context, string, io.Reader) error
	Get(context.Context, string) (io.ReadCloser, error)
	Delete(context.Context, string) error
	Close() error
}

// Opener opens a new session on a remote store
type Opener func(context.Context) (Store, error)

// WithSession runs fn within a session opened by open.
//
// The session is always closed, even when fn fails or panics.
func WithSession(ctx context.Context, open Opener, fn func(Store) error) (err error) {
	store, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(store)
}

// Files keeps only regular files from a listing
func Files(entries []FileInfo) []FileInfo {
	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, e)
		}
	}
	return files
}

// Names of the entries
func Names(entries []FileInfo) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

// SortByModTime sorts entries by ascending modification time, then by name
func SortByModTime(entries []FileInfo) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ModifiedAt.Equal(entries[j].ModifiedAt) {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].ModifiedAt.Before(entries[j].ModifiedAt)
	})
}

// Contains tells if a listing holds an entry with that name
func Contains(entries []FileInfo, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}
