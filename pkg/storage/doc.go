// Copyright © 2018 One Concern

// Package storage provides the interface to a hierarchical remote file store.
//
// Remote stores are session-oriented: a session is opened for a high-level operation,
// used for a bounded sequence of calls, then closed.
//
// This package supports the following backends:
//   - FTP
//   - S3 (AWS, or any S3-compatible endpoint)
//   - Google Cloud Storage
//   - local file system
package storage
