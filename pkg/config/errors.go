package config

import (
	"fmt"

	"github.com/oneconcern/repoassist/pkg/errors"
)

var (
	// ErrCredentials indicates that the credentials file is missing or invalid
	ErrCredentials = errors.New("invalid cloud credentials")

	// ErrProject indicates an invalid project configuration
	ErrProject = errors.New("invalid project configuration")
)

// FieldError reports an invalid configuration field
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}
