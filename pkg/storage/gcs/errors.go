package gcs

import (
	"strings"

	gcsStorage "cloud.google.com/go/storage"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/storage/status"
	"google.golang.org/api/googleapi"
)

func apiErrors(err *googleapi.Error) error {
	switch err.Code {
	case 400:
		if strings.Contains(err.Body, "bucket is not valid") || strings.Contains(err.Message, "Invalid bucket name") {
			return status.ErrInvalidResource.Wrap(err)
		}
		return status.ErrStorageAPI.Wrap(err)
	case 401:
		return status.ErrUnauthorized.Wrap(err)
	case 403:
		return status.ErrForbidden.Wrap(err)
	case 404:
		return status.ErrNotFound.Wrap(err)
	default:
		return status.ErrStorageAPI.Wrap(err)
	}
}

func toSentinelErrors(err error) error {
	// return sentinel errors defined by the status package
	if err == nil {
		return nil
	}
	if errors.Is(err, gcsStorage.ErrObjectNotExist) {
		return status.ErrNotExists.Wrap(err)
	}
	if errors.Is(err, gcsStorage.ErrBucketNotExist) {
		return status.ErrNotFound.Wrap(err)
	}
	var typedErr *googleapi.Error
	if errors.As(err, &typedErr) {
		return apiErrors(typedErr)
	}
	return status.ErrStorageAPI.Wrap(err)
}
