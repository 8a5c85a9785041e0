// Copyright © 2018 One Concern

// Package vcs exposes the version control operations used to cut releases.
package vcs

import (
	"context"
	"time"
)

// TagInfo describes a tag, for the changelog history
type TagInfo struct {
	Name    string
	Hash    string
	Date    time.Time
	Message string
}

// Backend is the version control capability needed to cut a release.
//
// All operations, except IsRepository, fail with ErrNotInWorkTree outside of a work tree.
type Backend interface {
	IsRepository() bool
	Root() (string, error)
	HasAnyCommit() (bool, error)
	HasUncommittedChanges() (bool, error)

	// LatestTag is the closest tag reachable from HEAD. It fails with ErrNoTag when there is none.
	LatestTag() (string, error)
	TagCommitHash(tag string) (string, error)
	LatestCommitHash() (string, error)
	ListTags() ([]string, error)

	Add(path string) error
	Commit(message string) (string, error)
	SetTag(tag, message string) error
	DeleteTag(tag string) error
	ResetHard(n int) error

	IsRemoteConfigured() (bool, error)
	PushWithTags(ctx context.Context) error

	CommitMessagesSince(tag string) ([]string, error)
	TagHistory() ([]TagInfo, error)
	Authors() ([]string, error)
}
