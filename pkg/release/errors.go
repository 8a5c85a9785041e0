package release

import (
	"fmt"
	"strings"

	"github.com/oneconcern/repoassist/pkg/errors"
)

// Kind of release error
type Kind uint8

// Release error kinds
const (
	KindUnknown Kind = iota
	KindPrecondition
	KindCheckout
	KindMetadata
	KindTagInvalid
	KindVersionNotFound
	KindChangelog
	KindAuthors
	KindCommitAndPush
	KindTagSet
	KindPush
	KindCriticalRollback
	KindPackaging
	KindArtifactName
	KindFileNotFound
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "release precondition failed"
	case KindCheckout:
		return "release checkout failed"
	case KindMetadata:
		return "release metadata error"
	case KindTagInvalid:
		return "invalid release tag"
	case KindVersionNotFound:
		return "version marker not found"
	case KindChangelog:
		return "changelog error"
	case KindAuthors:
		return "authors file error"
	case KindCommitAndPush:
		return "commit of release update failed"
	case KindTagSet:
		return "release tag not set"
	case KindPush:
		return "push failed"
	case KindCriticalRollback:
		return "CRITICAL: release rollback failed, check the git log, the work tree and the tags, then clean up manually"
	case KindPackaging:
		return "packaging failed"
	case KindArtifactName:
		return "distribution package name does not embed the release tag"
	case KindFileNotFound:
		return "file not found"
	default:
		return "unknown release error"
	}
}

// Error reported by the release coordinator
type Error struct {
	Kind  Kind
	State State
	Tag   string
	Path  string
	Err   error
}

// Sentinels to match release errors by kind with errors.Is
var (
	ErrPrecondition    = &Error{Kind: KindPrecondition}
	ErrCheckout        = &Error{Kind: KindCheckout}
	ErrMetadata        = &Error{Kind: KindMetadata}
	ErrTagInvalid      = &Error{Kind: KindTagInvalid}
	ErrVersionNotFound = &Error{Kind: KindVersionNotFound}
	ErrChangelog       = &Error{Kind: KindChangelog}
	ErrAuthors         = &Error{Kind: KindAuthors}
	ErrCommitAndPush   = &Error{Kind: KindCommitAndPush}
	ErrTagSet          = &Error{Kind: KindTagSet}
	ErrPush            = &Error{Kind: KindPush}
	ErrCritical        = &Error{Kind: KindCriticalRollback}
	ErrPackaging       = &Error{Kind: KindPackaging}
	ErrArtifactName    = &Error{Kind: KindArtifactName}
	ErrFileNotFound    = &Error{Kind: KindFileNotFound}
)

var errRootUnknown = errors.New("project root directory unknown")

func (e *Error) Error() string {
	parts := []string{e.Kind.String()}
	if e.State != StateUnknown {
		parts[0] += fmt.Sprintf(" [%v]", e.State)
	}
	if e.Tag != "" {
		parts = append(parts, "tag "+e.Tag)
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap the cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func (e *Error) withTag(tag string) *Error {
	e.Tag = tag
	return e
}

func (e *Error) withPath(path string) *Error {
	e.Path = path
	return e
}
