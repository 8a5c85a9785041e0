package ftp

import (
	stderrors "errors"
	"net/textproto"

	"github.com/jlaffaye/ftp"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/storage/status"
)

// isUnavailable tells if the server replied with a "550 file unavailable" status
func isUnavailable(err error) bool {
	var protoErr *textproto.Error
	if stderrors.As(err, &protoErr) {
		return protoErr.Code == ftp.StatusFileUnavailable
	}
	return false
}

// toSentinelErrors maps FTP replies to sentinel errors defined by the status package.
//
// notFound is the sentinel used for a 550 reply, which depends on the command.
func toSentinelErrors(err error, notFound *errors.Error) error {
	if err == nil {
		return nil
	}
	var protoErr *textproto.Error
	if !stderrors.As(err, &protoErr) {
		return status.ErrStorageAPI.Wrap(err)
	}
	switch protoErr.Code {
	case ftp.StatusFileUnavailable:
		return notFound.Wrap(err)
	case ftp.StatusNotLoggedIn, ftp.StatusInvalidCredentials:
		return status.ErrUnauthorized.Wrap(err)
	case ftp.StatusBadFileName:
		return status.ErrInvalidResource.Wrap(err)
	case ftp.StatusNotImplemented, ftp.StatusNotImplementedParameter:
		return status.ErrNotSupported.Wrap(err)
	default:
		return status.ErrStorageAPI.Wrap(err)
	}
}
