package release

import (
	"time"

	"github.com/oneconcern/repoassist/pkg/packager"
	"github.com/oneconcern/repoassist/pkg/wizard"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option for the release coordinator
type Option func(*Coordinator)

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.l = l
		}
	}
}

// WithFs sets the file system holding the project files
func WithFs(fs afero.Fs) Option {
	return func(c *Coordinator) {
		if fs != nil {
			c.fs = fs
		}
	}
}

// WithRoot sets the project root directory. Defaults to the work tree root.
func WithRoot(root string) Option {
	return func(c *Coordinator) {
		c.root = root
	}
}

// WithPrompter sets the prompter used in interactive mode
func WithPrompter(p wizard.Prompter) Option {
	return func(c *Coordinator) {
		if p != nil {
			c.prompter = p
		}
	}
}

// WithPackager sets the build tool runner
func WithPackager(p packager.Packager) Option {
	return func(c *Coordinator) {
		if p != nil {
			c.packager = p
		}
	}
}

// WithClock sets the clock used to date changelog entries
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}
