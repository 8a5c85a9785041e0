package vcs

import "go.uber.org/zap"

// Option for the git repository backend
type Option func(*Repository)

// Logger for git operations
func Logger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.l = l
		}
	}
}

// Signature used for commits and tags, when the git configuration declares no user
func Signature(name, email string) Option {
	return func(r *Repository) {
		if name != "" {
			r.defaultName = name
		}
		if email != "" {
			r.defaultEmail = email
		}
	}
}

// Remote to push to. Defaults to "origin".
func Remote(name string) Option {
	return func(r *Repository) {
		r.remote = name
	}
}
