// Copyright © 2018 One Concern

// Package release turns a work tree into a tagged, versioned distribution package.
//
// A release run goes through the following states:
//
//	CHECK_PRECONDITIONS -> SELECT_ACTION -> MAKE_RELEASE  -> UPDATE_METADATA_FILES -> COMMIT_TAG_PUSH -> BUILD_PACKAGE -> DONE
//	                                     -> REGENERATE -------------------------------------------------> BUILD_PACKAGE -> DONE
//
// A failure while tagging the release commit rolls the commit back.
package release

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/oneconcern/repoassist/pkg/config"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/packager"
	"github.com/oneconcern/repoassist/pkg/vcs"
	"github.com/oneconcern/repoassist/pkg/wizard"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// AutomaticCommitMessage is the message of the commit holding updated release files
const AutomaticCommitMessage = "Automatic update of release data files."

// Request for a release run
type Request struct {
	// Action is used when not prompting
	Action Action

	// Tag and Message of a new release, used when not prompting
	Tag     string
	Message string

	// Prompt interactively for the action, the checkout checkpoints, the tag and the message
	Prompt bool

	// Push the release commit and tag when a remote is configured
	Push bool

	// Force skips the work tree preconditions
	Force bool

	// SkipTagComparison accepts a new tag which is not higher than the latest one
	SkipTagComparison bool
}

// Result of a release run
type Result struct {
	Action Action

	// Tag stamped on the package. It is empty for development builds.
	Tag string

	// Package is the distribution package produced by the build
	Package string

	// ReleasePackage is the copy of the package in the artifacts directory
	ReleasePackage string

	// Staged metadata files committed with the release
	Staged []string

	Pushed bool
}

// Coordinator drives release runs
type Coordinator struct {
	backend  vcs.Backend
	project  config.Project
	root     string
	fs       afero.Fs
	prompter wizard.Prompter
	packager packager.Packager
	now      func() time.Time
	l        *zap.Logger
}

// New release coordinator for a project
func New(backend vcs.Backend, project config.Project, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend: backend,
		project: project,
		fs:      afero.NewOsFs(),
		now:     time.Now,
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}

	if c.root == "" {
		c.root = c.resolveRoot()
	}
	if c.root != "" {
		if abs, err := filepath.Abs(c.root); err == nil {
			c.root = abs
		}
	}
	if c.prompter == nil {
		c.prompter = wizard.NewConsole(os.Stdin, os.Stdout, wizard.WithLogger(c.l))
	}
	if c.packager == nil {
		c.packager = packager.New(c.root,
			packager.WithLogger(c.l),
			packager.WithBuildCommand(project.BuildCommand),
			packager.WithInstallCommand(project.InstallCommand),
			packager.WithVersionEnv(project.VersionEnv),
		)
	}
	return c
}

// getwd is patched by tests
var getwd = os.Getwd

func (c *Coordinator) resolveRoot() string {
	root, err := c.backend.Root()
	if err == nil {
		return root
	}
	wd, wdErr := getwd()
	if wdErr != nil {
		c.l.Warn("cannot resolve the project root", zap.NamedError("repository", err), zap.NamedError("workdir", wdErr))
		return ""
	}
	return wd
}

func (c *Coordinator) checkRoot() error {
	if c.root == "" {
		return newError(KindPrecondition, errRootUnknown)
	}
	return nil
}

// Root directory of the project
func (c *Coordinator) Root() string {
	return c.root
}

func (c *Coordinator) projectPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.root, p)
}

type run struct {
	req     Request
	action  Action
	latest  string
	tag     string
	message string
	files   []string
	result  Result
}

// Release runs the release state machine to completion
func (c *Coordinator) Release(ctx context.Context, req Request) (*Result, error) {
	r := &run{req: req}
	state := StateCheckPreconditions
	c.l.Info("preparing source distribution")

	for state != StateDone {
		next, err := c.step(ctx, state, r)
		if err != nil {
			var rerr *Error
			if errors.As(err, &rerr) && rerr.State == StateUnknown {
				rerr.State = state
			}
			return nil, err
		}
		c.l.Debug("release transition", zap.Stringer("from", state), zap.Stringer("to", next))
		state = next
	}

	c.l.Info("source distribution prepared", zap.String("package", r.result.Package), zap.String("tag", r.result.Tag))
	return &r.result, nil
}

func (c *Coordinator) step(ctx context.Context, state State, r *run) (State, error) {
	switch state {
	case StateCheckPreconditions:
		if err := c.checkRoot(); err != nil {
			return state, err
		}
		if !r.req.Force {
			if err := c.checkPreconditions(); err != nil {
				return state, err
			}
		}
		return StateSelectAction, nil

	case StateSelectAction:
		action, err := c.selectAction(r.req)
		if err != nil {
			return state, err
		}
		r.action = action
		r.result.Action = action
		if action == ActionMakeRelease {
			return StateMakeRelease, nil
		}
		return StateRegenerate, nil

	case StateMakeRelease:
		if err := c.prepareRelease(r); err != nil {
			return state, err
		}
		return StateUpdateMetadataFiles, nil

	case StateUpdateMetadataFiles:
		files, err := c.updateMetadataFiles(r.tag, r.message)
		if err != nil {
			return state, err
		}
		r.files = files
		return StateCommitTagPush, nil

	case StateCommitTagPush:
		pushed, err := c.commitTagPush(ctx, r.tag, r.message, r.files, r.req.Push)
		if err != nil {
			return state, err
		}
		r.result.Staged = r.files
		r.result.Pushed = pushed
		r.result.Tag = r.tag
		return StateBuildPackage, nil

	case StateRegenerate:
		tag, err := c.backend.LatestTag()
		if err != nil {
			return state, newError(KindMetadata, err).withPath("repository must be tagged before regenerate")
		}
		buildTag, err := c.stampedTag(tag)
		if err != nil {
			return state, err
		}
		r.result.Tag = buildTag
		return StateBuildPackage, nil

	case StateBuildPackage:
		pkg, releasePkg, err := c.buildPackage(ctx, r.result.Tag)
		if err != nil {
			return state, err
		}
		r.result.Package = pkg
		r.result.ReleasePackage = releasePkg
		return StateDone, nil
	}

	return StateDone, nil
}

func (c *Coordinator) checkPreconditions() error {
	if !c.backend.IsRepository() {
		return newError(KindPrecondition, vcs.ErrNotInWorkTree).withPath("check that the git repository is initialized")
	}
	hasCommit, err := c.backend.HasAnyCommit()
	if err != nil {
		return newError(KindPrecondition, err)
	}
	if !hasCommit {
		return newError(KindPrecondition, vcs.ErrNoCommit).withPath("commit before release")
	}
	dirty, err := c.backend.HasUncommittedChanges()
	if err != nil {
		return newError(KindPrecondition, err).withPath("checking for changes to commit")
	}
	if dirty {
		return newError(KindPrecondition, nil).withPath("there are changes to commit")
	}
	return nil
}

// stampedTag yields the tag to stamp on a package built from HEAD: the tag itself when
// it points to HEAD, empty for a development build otherwise.
func (c *Coordinator) stampedTag(tag string) (string, error) {
	tagHash, err := c.backend.TagCommitHash(tag)
	if err != nil {
		return "", newError(KindMetadata, err).withTag(tag)
	}
	head, err := c.backend.LatestCommitHash()
	if err != nil {
		return "", newError(KindMetadata, err)
	}
	if tagHash != head {
		c.l.Info("HEAD is not tagged: building a development package", zap.String("latest_tag", tag))
		return "", nil
	}
	return tag, nil
}

// Install the project with the install command
func (c *Coordinator) Install(ctx context.Context, force bool) error {
	c.l.Info("performing installation")
	if err := c.checkRoot(); err != nil {
		return err
	}
	if !force {
		if err := c.checkPreconditions(); err != nil {
			return err
		}
	}
	tag, err := c.backend.LatestTag()
	if err != nil {
		return newError(KindMetadata, err).withPath("retrieving release tag")
	}
	buildTag, err := c.stampedTag(tag)
	if err != nil {
		return err
	}
	if err = c.packager.Install(ctx, buildTag); err != nil {
		return newError(KindPackaging, err).withTag(buildTag)
	}
	c.l.Info("installation completed", zap.String("tag", buildTag))
	return nil
}
