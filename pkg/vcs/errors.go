package vcs

import "github.com/oneconcern/repoassist/pkg/errors"

var (
	// ErrNotInWorkTree indicates that the working directory is not inside a git work tree
	ErrNotInWorkTree = errors.New("not in a git work tree")

	// ErrNoCommit indicates that the repository has no commit yet
	ErrNoCommit = errors.New("no commit in repository")

	// ErrNoTag indicates that no tag is reachable from HEAD
	ErrNoTag = errors.New("no tag found")

	// ErrTagExists indicates that a tag with this name already exists
	ErrTagExists = errors.New("tag already exists")

	// ErrTagMissing indicates that the tag does not exist
	ErrTagMissing = errors.New("tag does not exist")

	// ErrRemoteMissing indicates that no remote is configured
	ErrRemoteMissing = errors.New("remote not configured")

	// ErrNothingToReset indicates that there are not enough commits to reset
	ErrNothingToReset = errors.New("not enough commits to reset")

	// ErrCommand indicates that a git operation failed
	ErrCommand = errors.New("git operation failed")
)
