package ftp

import (
	"time"

	"go.uber.org/zap"
)

// Option for the FTP store
type Option func(*ftpStore)

// Logger for the FTP store
func Logger(l *zap.Logger) Option {
	return func(s *ftpStore) {
		if l != nil {
			s.l = l
		}
	}
}

// Timeout when dialing the server
func Timeout(timeout time.Duration) Option {
	return func(s *ftpStore) {
		s.timeout = timeout
	}
}

// ExplicitTLS upgrades the control and data connections with AUTH TLS
func ExplicitTLS(enabled bool) Option {
	return func(s *ftpStore) {
		s.explicitTLS = enabled
	}
}

// Dialer replaces the connection factory, for tests
func Dialer(dial DialFunc) Option {
	return func(s *ftpStore) {
		s.dial = dial
	}
}
