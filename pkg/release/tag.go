package release

import (
	"fmt"
	"strings"

	"github.com/oneconcern/repoassist/pkg/config"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/vcs"
	"github.com/oneconcern/repoassist/pkg/wizard"
	"go.uber.org/zap"
)

// ValidateTag checks a new release tag. Unless comparison is disabled, the tag must be
// higher than the latest tag. An empty latest tag stands for an untagged repository.
func ValidateTag(tag, latest string, compare bool) error {
	newTag, err := model.ParseReleaseTag(tag)
	if err != nil {
		return newError(KindTagInvalid, err).withTag(tag)
	}
	if latest == "" || !compare {
		return nil
	}
	latestTag, err := model.ParseReleaseTag(latest)
	if err != nil {
		return newError(KindTagInvalid, err).withTag(latest).withPath("latest release tag is not valid, remove it to continue")
	}
	if !newTag.GreaterThan(latestTag) {
		return newError(KindTagInvalid, fmt.Errorf("must be higher than the latest release tag %s", latest)).withTag(tag)
	}
	return nil
}

// IsHigherTag tells if tag is higher than latest
func IsHigherTag(latest, tag string) (bool, error) {
	l, err := model.ParseReleaseTag(latest)
	if err != nil {
		return false, err
	}
	t, err := model.ParseReleaseTag(tag)
	if err != nil {
		return false, err
	}
	return t.GreaterThan(l), nil
}

type checkpoint struct {
	question string
	expected bool
	fix      string
}

func (c *Coordinator) checkpoints() []checkpoint {
	points := []checkpoint{
		{question: "Are you on the relevant branch?", expected: true, fix: "checkout the proper branch"},
		{question: "Are there any uncommitted changes or files not added into the repo tree?", expected: false, fix: "commit your changes"},
		{question: "Is the README file prepared correctly?", expected: true, fix: "complete the README file"},
		{question: "Is there something that should be added to the TODO file?", expected: false, fix: "complete the TODO file"},
	}
	if c.project.ChangelogType == config.Prepared {
		points = append(points, checkpoint{
			question: fmt.Sprintf("Is the %s file up to date?", config.ChangelogFileName),
			expected: true,
			fix:      "complete the " + config.ChangelogFileName + " file",
		})
	}
	return points
}

func (c *Coordinator) selectAction(req Request) (Action, error) {
	if !req.Prompt {
		if req.Action == "" {
			return ActionRegenerate, nil
		}
		return req.Action, nil
	}

	choice, err := c.prompter.ChooseOne("Make Release or Regenerate a release package using the actual release metadata", Actions())
	if err != nil {
		return "", newError(KindCheckout, err)
	}
	action := Action(choice)
	if action != ActionMakeRelease {
		return action, nil
	}

	for _, point := range c.checkpoints() {
		ok, err := c.prompter.Confirm(point.question)
		if err != nil {
			return "", newError(KindCheckout, err)
		}
		if ok != point.expected {
			return "", newError(KindCheckout, nil).withPath(point.fix)
		}
	}
	return action, nil
}

// latestTag returns the latest tag, or empty when the repository is not tagged yet
func (c *Coordinator) latestTag() (string, error) {
	latest, err := c.backend.LatestTag()
	switch {
	case err == nil:
		return latest, nil
	case errors.Is(err, vcs.ErrNoTag), errors.Is(err, vcs.ErrNoCommit):
		return "", nil
	default:
		return "", newError(KindMetadata, err).withPath("retrieving the latest release tag")
	}
}

func (c *Coordinator) prepareRelease(r *run) error {
	latest, err := c.latestTag()
	if err != nil {
		return err
	}
	r.latest = latest

	if !r.req.Prompt {
		if err = ValidateTag(r.req.Tag, latest, !r.req.SkipTagComparison); err != nil {
			return err
		}
		msg := strings.TrimSpace(r.req.Message)
		if msg == "" {
			return newError(KindMetadata, wizard.ErrEmptyMessage).withTag(r.req.Tag)
		}
		r.tag, r.message = r.req.Tag, msg
		return nil
	}

	if r.tag, err = c.promptTag(latest, !r.req.SkipTagComparison); err != nil {
		return err
	}
	if r.message, err = c.promptMessage(latest); err != nil {
		return err
	}
	return nil
}

func (c *Coordinator) promptTag(latest string, compare bool) (string, error) {
	suggestion := ""
	if latest == "" {
		suggestion = model.InitialReleaseTag
		c.l.Info("repository has not been tagged yet", zap.String("proposed_tag", suggestion))
	} else {
		c.l.Info("last release tag", zap.String("tag", latest))
	}

	for {
		tag, err := c.prompter.Input("Enter new release tag - <major>.<minor>.<patch> e.g. 1.0.0:", suggestion)
		if err != nil {
			return "", newError(KindTagInvalid, err)
		}
		if !model.IsValidReleaseTag(tag) {
			c.l.Error("entered release tag not valid: correct and enter a new one", zap.String("tag", tag))
			continue
		}
		if latest == "" || !compare {
			return tag, nil
		}
		if !model.IsValidReleaseTag(latest) {
			c.l.Error("latest release tag not valid", zap.String("latest", latest))
			ok, err := c.prompter.Confirm("Continue without comparing the new release tag with the latest?")
			if err != nil {
				return "", newError(KindTagInvalid, err)
			}
			if !ok {
				return "", newError(KindTagInvalid, nil).withTag(latest).withPath("latest release tag is not valid, remove it to continue")
			}
			return tag, nil
		}
		if higher, _ := IsHigherTag(latest, tag); higher {
			return tag, nil
		}
		c.l.Error("entered release tag is not higher than the latest release tag: correct and enter a new one",
			zap.String("tag", tag), zap.String("latest", latest))
	}
}

var messageTips = []string{
	"Below are commit messages generated from the last tag.",
	"If the last tag does not exist, messages are from the first commit.",
	"Use these messages to prepare a relevant release message.",
	"All lines starting with this tip mark are removed.",
	"",
}

func (c *Coordinator) promptMessage(latest string) (string, error) {
	commits, err := c.backend.CommitMessagesSince(latest)
	if err != nil {
		c.l.Warn("could not retrieve commit messages", zap.Error(err))
		commits = nil
	}
	msg, err := c.prompter.Message(wizard.Template(messageTips, commits))
	if err != nil {
		return "", newError(KindMetadata, err).withPath("release message")
	}
	return msg, nil
}
