// Copyright © 2018 One Concern

package vcs

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"go.uber.org/zap"
)

const (
	defaultRemote = "origin"
	tagRefSpec    = "refs/tags/*:refs/tags/*"
)

var _ Backend = &Repository{}

// Repository is a git backend built on go-git
type Repository struct {
	repo         *git.Repository
	wt           *git.Worktree
	remote       string
	defaultName  string
	defaultEmail string
	l            *zap.Logger
}

func newRepository(opts ...Option) *Repository {
	r := &Repository{
		remote:       defaultRemote,
		defaultName:  "repoassist",
		defaultEmail: "repoassist@localhost",
		l:            zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// Open the git work tree containing dir.
//
// Opening never fails: outside a work tree, IsRepository reports false and all other
// operations fail with ErrNotInWorkTree.
func Open(dir string, opts ...Option) *Repository {
	r := newRepository(opts...)
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		r.l.Debug("no git repository", zap.String("dir", dir), zap.Error(err))
		return r
	}
	r.attach(repo)
	return r
}

// New git backend on an already opened repository
func New(repo *git.Repository, opts ...Option) *Repository {
	r := newRepository(opts...)
	r.attach(repo)
	return r
}

func (r *Repository) attach(repo *git.Repository) {
	wt, err := repo.Worktree()
	if err != nil {
		r.l.Debug("repository has no work tree", zap.Error(err))
		return
	}
	r.repo = repo
	r.wt = wt
}

// guard is called first by every operation requiring a work tree
func (r *Repository) guard() error {
	if r.repo == nil || r.wt == nil {
		return ErrNotInWorkTree
	}
	return nil
}

func wrap(msg string, err error) error {
	return ErrCommand.WrapMessage(msg, err)
}

// IsRepository tells if the backend operates on a git work tree
func (r *Repository) IsRepository() bool {
	return r.guard() == nil
}

// Root of the work tree
func (r *Repository) Root() (string, error) {
	if err := r.guard(); err != nil {
		return "", err
	}
	return r.wt.Filesystem.Root(), nil
}

func (r *Repository) head() (*plumbing.Reference, error) {
	head, err := r.repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommit
		}
		return nil, wrap("resolve HEAD", err)
	}
	return head, nil
}

// HasAnyCommit tells if HEAD points to a commit
func (r *Repository) HasAnyCommit() (bool, error) {
	if err := r.guard(); err != nil {
		return false, err
	}
	_, err := r.head()
	if err == ErrNoCommit {
		return false, nil
	}
	return err == nil, err
}

// HasUncommittedChanges tells if tracked files are modified, in the index or in the work tree.
// Untracked files are ignored.
func (r *Repository) HasUncommittedChanges() (bool, error) {
	if err := r.guard(); err != nil {
		return false, err
	}
	st, err := r.wt.Status()
	if err != nil {
		return false, wrap("status", err)
	}
	for _, fs := range st {
		if fs.Staging == git.Untracked && fs.Worktree == git.Untracked {
			continue
		}
		if fs.Staging != git.Unmodified || fs.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

func (r *Repository) resolveTag(ref *plumbing.Reference) (TagInfo, error) {
	info := TagInfo{Name: ref.Name().Short()}
	tag, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, cerr := tag.Commit()
		if cerr != nil {
			return info, cerr
		}
		info.Hash = commit.Hash.String()
		info.Date = tag.Tagger.When
		info.Message = strings.TrimSpace(tag.Message)
	case stderrors.Is(err, plumbing.ErrObjectNotFound):
		// lightweight tag
		commit, cerr := r.repo.CommitObject(ref.Hash())
		if cerr != nil {
			return info, cerr
		}
		info.Hash = commit.Hash.String()
		info.Date = commit.Committer.When
	default:
		return info, err
	}
	return info, nil
}

func (r *Repository) allTags() ([]TagInfo, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, wrap("list tags", err)
	}
	var tags []TagInfo
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		info, err := r.resolveTag(ref)
		if err != nil {
			r.l.Debug("skipping tag", zap.String("tag", ref.Name().Short()), zap.Error(err))
			return nil
		}
		tags = append(tags, info)
		return nil
	})
	if err != nil {
		return nil, wrap("list tags", err)
	}
	return tags, nil
}

// newestFirst orders tags by descending date, then by descending name
func newestFirst(tags []TagInfo) {
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Date.Equal(tags[j].Date) {
			return tags[i].Name > tags[j].Name
		}
		return tags[i].Date.After(tags[j].Date)
	})
}

// LatestTag is the tag on the closest ancestor of HEAD, like "git describe --abbrev=0 --tags"
func (r *Repository) LatestTag() (string, error) {
	if err := r.guard(); err != nil {
		return "", err
	}
	head, err := r.head()
	if err != nil {
		return "", err
	}
	tags, err := r.allTags()
	if err != nil {
		return "", err
	}
	byCommit := make(map[string][]TagInfo, len(tags))
	for _, t := range tags {
		byCommit[t.Hash] = append(byCommit[t.Hash], t)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderBSF})
	if err != nil {
		return "", wrap("log", err)
	}
	var found []TagInfo
	err = iter.ForEach(func(c *object.Commit) error {
		if candidates, ok := byCommit[c.Hash.String()]; ok {
			found = candidates
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", wrap("log", err)
	}
	if len(found) == 0 {
		return "", ErrNoTag
	}
	newestFirst(found)
	return found[0].Name, nil
}

// TagCommitHash is the hash of the commit a tag points to
func (r *Repository) TagCommitHash(tag string) (string, error) {
	if err := r.guard(); err != nil {
		return "", err
	}
	ref, err := r.repo.Tag(tag)
	if err != nil {
		if stderrors.Is(err, git.ErrTagNotFound) {
			return "", ErrTagMissing.WrapMessage(tag, err)
		}
		return "", wrap("resolve tag "+tag, err)
	}
	info, err := r.resolveTag(ref)
	if err != nil {
		return "", wrap("resolve tag "+tag, err)
	}
	return info.Hash, nil
}

// LatestCommitHash is the hash of HEAD
func (r *Repository) LatestCommitHash() (string, error) {
	if err := r.guard(); err != nil {
		return "", err
	}
	head, err := r.head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// ListTags returns the names of all tags, sorted
func (r *Repository) ListTags() ([]string, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, wrap("list tags", err)
	}
	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, wrap("list tags", err)
	}
	sort.Strings(names)
	return names, nil
}

// Add a file to the index. The path is absolute or relative to the work tree root.
func (r *Repository) Add(path string) error {
	if err := r.guard(); err != nil {
		return err
	}
	rel := path
	if filepath.IsAbs(path) {
		var err error
		rel, err = filepath.Rel(r.wt.Filesystem.Root(), path)
		if err != nil {
			return wrap("add "+path, err)
		}
	}
	if _, err := r.wt.Add(filepath.ToSlash(rel)); err != nil {
		return wrap("add "+path, err)
	}
	r.l.Debug("staged", zap.String("path", rel))
	return nil
}

func (r *Repository) signature() *object.Signature {
	sig := &object.Signature{Name: r.defaultName, Email: r.defaultEmail, When: time.Now()}
	cfg, err := r.repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

// Commit staged changes. It returns the hash of the new commit.
func (r *Repository) Commit(message string) (string, error) {
	if err := r.guard(); err != nil {
		return "", err
	}
	sig := r.signature()
	hash, err := r.wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		return "", wrap("commit", err)
	}
	r.l.Debug("committed", zap.String("hash", hash.String()))
	return hash.String(), nil
}

// SetTag creates an annotated tag on HEAD
func (r *Repository) SetTag(tag, message string) error {
	if err := r.guard(); err != nil {
		return err
	}
	head, err := r.head()
	if err != nil {
		return err
	}
	if _, err = r.repo.Tag(tag); err == nil {
		return ErrTagExists.WrapMessage(tag, git.ErrTagExists)
	}
	_, err = r.repo.CreateTag(tag, head.Hash(), &git.CreateTagOptions{
		Tagger:  r.signature(),
		Message: message,
	})
	if err != nil {
		return wrap("tag "+tag, err)
	}
	r.l.Debug("tagged", zap.String("tag", tag), zap.String("hash", head.Hash().String()))
	return nil
}

// DeleteTag removes a tag
func (r *Repository) DeleteTag(tag string) error {
	if err := r.guard(); err != nil {
		return err
	}
	if err := r.repo.DeleteTag(tag); err != nil {
		if stderrors.Is(err, git.ErrTagNotFound) {
			return ErrTagMissing.WrapMessage(tag, err)
		}
		return wrap("delete tag "+tag, err)
	}
	r.l.Debug("deleted tag", zap.String("tag", tag))
	return nil
}

// ResetHard moves HEAD n commits back, discarding changes to tracked files
func (r *Repository) ResetHard(n int) error {
	if err := r.guard(); err != nil {
		return err
	}
	head, err := r.head()
	if err != nil {
		return err
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return wrap("reset", err)
	}
	for i := 0; i < n; i++ {
		if commit.NumParents() == 0 {
			return ErrNothingToReset.WrapMessage(fmt.Sprintf("reset %d commits", n), nil)
		}
		if commit, err = commit.Parent(0); err != nil {
			return wrap("reset", err)
		}
	}
	if err = r.wt.Reset(&git.ResetOptions{Commit: commit.Hash, Mode: git.HardReset}); err != nil {
		return wrap("reset", err)
	}
	r.l.Debug("reset", zap.Int("commits", n), zap.String("head", commit.Hash.String()))
	return nil
}

// IsRemoteConfigured tells if the push remote exists
func (r *Repository) IsRemoteConfigured() (bool, error) {
	if err := r.guard(); err != nil {
		return false, err
	}
	_, err := r.repo.Remote(r.remote)
	if err != nil {
		if stderrors.Is(err, git.ErrRemoteNotFound) {
			return false, nil
		}
		return false, wrap("remote", err)
	}
	return true, nil
}

// PushWithTags pushes the current branch and all tags to the remote
func (r *Repository) PushWithTags(ctx context.Context) error {
	if err := r.guard(); err != nil {
		return err
	}
	configured, err := r.IsRemoteConfigured()
	if err != nil {
		return err
	}
	if !configured {
		return ErrRemoteMissing.WrapMessage(r.remote, git.ErrRemoteNotFound)
	}
	head, err := r.head()
	if err != nil {
		return err
	}
	if !head.Name().IsBranch() {
		return wrap("push", fmt.Errorf("HEAD is detached"))
	}
	branch := head.Name().String()
	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: r.remote,
		RefSpecs: []config.RefSpec{
			config.RefSpec(branch + ":" + branch),
			config.RefSpec(tagRefSpec),
		},
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return wrap("push", err)
	}
	r.l.Debug("pushed", zap.String("remote", r.remote), zap.String("branch", branch))
	return nil
}

// CommitMessagesSince returns the subject lines of commits since tag, newest first.
// With an empty tag, all commits are returned.
func (r *Repository) CommitMessagesSince(tag string) ([]string, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	head, err := r.head()
	if err != nil {
		return nil, err
	}
	var stop string
	if tag != "" {
		if stop, err = r.TagCommitHash(tag); err != nil {
			return nil, err
		}
	}
	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, wrap("log", err)
	}
	var messages []string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash.String() == stop {
			return storer.ErrStop
		}
		subject := strings.TrimSpace(strings.SplitN(c.Message, "\n", 2)[0])
		if subject != "" {
			messages = append(messages, subject)
		}
		return nil
	})
	if err != nil {
		return nil, wrap("log", err)
	}
	return messages, nil
}

// TagHistory lists all tags, newest first
func (r *Repository) TagHistory() ([]TagInfo, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	tags, err := r.allTags()
	if err != nil {
		return nil, err
	}
	newestFirst(tags)
	return tags, nil
}

// Authors of commits reachable from HEAD, as sorted unique "Name <email>" entries
func (r *Repository) Authors() ([]string, error) {
	if err := r.guard(); err != nil {
		return nil, err
	}
	head, err := r.head()
	if err != nil {
		return nil, err
	}
	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, wrap("log", err)
	}
	unique := make(map[string]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		unique[fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email)] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, wrap("log", err)
	}
	authors := make([]string, 0, len(unique))
	for a := range unique {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors, nil
}
