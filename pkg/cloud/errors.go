package cloud

import (
	"fmt"

	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/storage/status"
)

// Kind of cloud error
type Kind uint8

// Cloud error kinds
const (
	KindUnknown Kind = iota
	KindCredentials
	KindBucketNotFound
	KindFileNotFound
	KindStore
	KindUpload
	KindDownload
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindCredentials:
		return "credentials error"
	case KindBucketNotFound:
		return "bucket not found"
	case KindFileNotFound:
		return "file not found"
	case KindStore:
		return "remote store error"
	case KindUpload:
		return "upload failed"
	case KindDownload:
		return "download failed"
	case KindInvalid:
		return "invalid request"
	default:
		return "unknown cloud error"
	}
}

// Error reported by cloud operations, with the remote or local path involved
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Sentinels to match cloud errors by kind with errors.Is
var (
	ErrCredentials    = &Error{Kind: KindCredentials}
	ErrBucketNotFound = &Error{Kind: KindBucketNotFound}
	ErrFileNotFound   = &Error{Kind: KindFileNotFound}
	ErrStore          = &Error{Kind: KindStore}
	ErrUpload         = &Error{Kind: KindUpload}
	ErrDownload       = &Error{Kind: KindDownload}
	ErrInvalid        = &Error{Kind: KindInvalid}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
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

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// storeError wraps errors returned by the remote store. Errors that are already
// cloud errors pass through.
func storeError(path string, err error) error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return err
	}
	if errors.Is(err, status.ErrUnauthorized) || errors.Is(err, status.ErrForbidden) {
		return newError(KindCredentials, path, err)
	}
	return newError(KindStore, path, err)
}
