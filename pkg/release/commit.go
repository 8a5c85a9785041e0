package release

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// commitTagPush commits the release files and tags the commit. A tagging failure rolls the
// commit back. A push failure is reported but leaves the local commit and tag in place.
func (c *Coordinator) commitTagPush(ctx context.Context, tag, message string, files []string, push bool) (bool, error) {
	c.l.Info("commit updated release files and set tag", zap.String("tag", tag), zap.Bool("push", push))

	for _, f := range files {
		if err := c.backend.Add(f); err != nil {
			return false, newError(KindCommitAndPush, err).withPath(f)
		}
	}
	commit, err := c.backend.Commit(AutomaticCommitMessage)
	if err != nil {
		return false, newError(KindCommitAndPush, err)
	}
	c.l.Info("new commit with updated release files created", zap.String("commit", commit))

	if err = c.backend.SetTag(tag, message); err != nil {
		return false, c.rollback(tag, commit, newError(KindTagSet, err).withTag(tag))
	}
	latest, err := c.backend.LatestTag()
	if err != nil {
		return false, c.rollback(tag, commit, newError(KindTagSet, err).withTag(tag).withPath("checking the new release tag"))
	}
	if latest != tag {
		return false, c.rollback(tag, commit, newError(KindTagSet, fmt.Errorf("latest tag is %s", latest)).withTag(tag))
	}
	c.l.Info("new tag established", zap.String("tag", tag))

	if !push {
		return false, nil
	}
	return c.push(ctx), nil
}

func (c *Coordinator) push(ctx context.Context) bool {
	configured, err := c.backend.IsRemoteConfigured()
	if err != nil || !configured {
		c.l.Info("no remote configured: release commit and tag not pushed", zap.Error(err))
		return false
	}
	if err = c.backend.PushWithTags(ctx); err != nil {
		c.l.Error("git push failed", zap.Error(newError(KindPush, err)))
		c.l.Warn("IMPORTANT: check the repository remote or credentials and push manually with tags. The release continues.")
		return false
	}
	c.l.Info("release commit and tag pushed")
	return true
}

// rollback undoes the release commit and deletes the release tag when it points to that
// commit. When undoing fails, the work tree is left as is and a critical error is returned.
func (c *Coordinator) rollback(tag, commit string, cause *Error) error {
	c.l.Warn("reverting release", zap.String("tag", tag), zap.Error(cause))

	if err := c.backend.ResetHard(1); err != nil {
		return c.critical(tag, multierr.Combine(cause, fmt.Errorf("reverting the release commit: %w", err)))
	}

	tags, err := c.backend.ListTags()
	if err != nil {
		return c.critical(tag, multierr.Combine(cause, fmt.Errorf("listing tags: %w", err)))
	}
	for _, t := range tags {
		if t != tag {
			continue
		}
		hash, err := c.backend.TagCommitHash(tag)
		if err != nil {
			return c.critical(tag, multierr.Combine(cause, fmt.Errorf("resolving tag: %w", err)))
		}
		if hash != commit {
			break
		}
		if err = c.backend.DeleteTag(tag); err != nil {
			return c.critical(tag, multierr.Combine(cause, fmt.Errorf("deleting the release tag: %w", err)))
		}
	}
	return cause
}

func (c *Coordinator) critical(tag string, err error) error {
	cerr := newError(KindCriticalRollback, err).withTag(tag)
	c.l.Error("release rollback failed", zap.Error(cerr))
	return cerr
}
