package model

import "github.com/oneconcern/repoassist/pkg/errors"

// ErrInvalidTag indicates that a release tag is not a normalized semantic version
var ErrInvalidTag = errors.New("invalid release tag")
