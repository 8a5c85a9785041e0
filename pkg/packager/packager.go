// Copyright © 2018 One Concern

// Package packager runs the project build tool to produce distribution packages.
package packager

import (
	"context"
	"fmt"
	"strings"

	"github.com/input-output-hk/catalyst-forge-libs/executor"
	"github.com/oneconcern/repoassist/pkg/errors"
	"go.uber.org/zap"
)

// ErrCommand indicates that the build tool failed
var ErrCommand = errors.New("packaging command failed")

// Packager builds and installs the project.
//
// An empty tag lets the build tool determine the version on its own.
type Packager interface {
	Build(ctx context.Context, tag string) error
	Install(ctx context.Context, tag string) error
}

var _ Packager = &Command{}

// Command runs shell-free build and install command lines from the project root
type Command struct {
	dir            string
	buildCommand   string
	installCommand string
	versionEnv     string
	l              *zap.Logger
}

// Option for a command packager
type Option func(*Command)

// WithLogger logs the output of the build tool
func WithLogger(l *zap.Logger) Option {
	return func(c *Command) {
		if l != nil {
			c.l = l
		}
	}
}

// WithBuildCommand sets the command line producing distribution packages
func WithBuildCommand(command string) Option {
	return func(c *Command) {
		c.buildCommand = command
	}
}

// WithInstallCommand sets the command line installing the project
func WithInstallCommand(command string) Option {
	return func(c *Command) {
		c.installCommand = command
	}
}

// WithVersionEnv sets the environment variable used to pass the version to the build tool
func WithVersionEnv(name string) Option {
	return func(c *Command) {
		if name != "" {
			c.versionEnv = name
		}
	}
}

// New packager running commands from dir
func New(dir string, opts ...Option) *Command {
	c := &Command{
		dir:        dir,
		versionEnv: "PBR_VERSION",
		l:          zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c
}

// Build distribution packages
func (c *Command) Build(ctx context.Context, tag string) error {
	return c.run(ctx, "build", c.buildCommand, tag)
}

// Install the project
func (c *Command) Install(ctx context.Context, tag string) error {
	return c.run(ctx, "install", c.installCommand, tag)
}

func (c *Command) options(tag string) []executor.Option {
	opts := []executor.Option{
		executor.WithWorkingDir(c.dir),
		executor.WithCapture(false, false, true),
	}
	if tag == "" {
		c.l.Info("release tag will be set by the build tool")
		return opts
	}
	return append(opts, executor.WithEnvVar(c.versionEnv, tag))
}

func (c *Command) run(ctx context.Context, step, commandLine, tag string) error {
	args := strings.Fields(commandLine)
	if len(args) == 0 {
		return ErrCommand.WrapMessage(step, fmt.Errorf("no command configured"))
	}

	c.l.Info("running", zap.String("step", step), zap.String("command", commandLine), zap.String("tag", tag))
	result, err := executor.New(args[0], args[1:]...).Execute(ctx, c.options(tag)...)
	if result == nil {
		result = &executor.Result{ExitCode: -1}
	}
	for _, line := range strings.Split(result.Combined, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			c.l.Info(line, zap.String("step", step))
		}
	}

	if err != nil {
		return ErrCommand.WrapMessage(fmt.Sprintf("%s (exit code %d)", step, result.ExitCode), err)
	}
	return nil
}
