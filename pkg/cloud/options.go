package cloud

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ConfirmFunc asks the operator to confirm an action
type ConfirmFunc func(question string) (bool, error)

// Option for the cloud manager
type Option func(*Manager)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.l = l
		}
	}
}

// WithFs sets the local file system holding artifacts
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		if fs != nil {
			m.fs = fs
		}
	}
}

// WithConfirm asks for confirmation before each upload
func WithConfirm(confirm ConfirmFunc) Option {
	return func(m *Manager) {
		m.confirm = confirm
	}
}
