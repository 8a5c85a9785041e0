// Copyright © 2018 One Concern

// Package status declares error constants returned by
// implementations of the Store interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/storage and one
// of its implementions.
package status

import "github.com/oneconcern/repoassist/pkg/errors"

var (
	// Sentinel errors returned by implementations of the interface defined by storage

	// ErrNotExists indicates that the fetched file does not exist on storage
	ErrNotExists = errors.New("file doesn't exist")

	// ErrNotFound indicates that the target directory was not found
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates that you don't provided correct credentials to the remote store
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates that the remote store forbids access to the target resource
	ErrForbidden = errors.New("forbidden")

	// ErrNotSupported indicates that the backend does not support this call
	ErrNotSupported = errors.New("not supported")

	// ErrExists indicates that the resource already exists and cannot be overridden
	ErrExists = errors.New("exists already")

	// ErrInvalidResource indicates that the storage resource has an invalid name
	ErrInvalidResource = errors.New("invalid storage resource name")

	// ErrStorageAPI indicates any other remote store error
	ErrStorageAPI = errors.New("storage API error")

	// ErrClosed indicates that the session has been closed
	ErrClosed = errors.New("storage session closed")
)
