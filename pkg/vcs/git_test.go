package vcs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func memRepository(t *testing.T) *Repository {
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)
	return New(repo, Logger(zaptest.NewLogger(t)), Signature("tester", "tester@example.com"))
}

func commitFile(t *testing.T, r *Repository, name, content, msg string) string {
	require.NoError(t, util.WriteFile(r.wt.Filesystem, name, []byte(content), 0644))
	require.NoError(t, r.Add(name))
	hash, err := r.Commit(msg)
	require.NoError(t, err)
	return hash
}

func TestNotInWorkTree(t *testing.T) {
	r := Open(t.TempDir())
	assert.False(t, r.IsRepository())

	_, err := r.Root()
	assert.True(t, errors.Is(err, ErrNotInWorkTree))
	_, err = r.LatestTag()
	assert.True(t, errors.Is(err, ErrNotInWorkTree))
	assert.True(t, errors.Is(r.Add("x"), ErrNotInWorkTree))
	assert.True(t, errors.Is(r.ResetHard(1), ErrNotInWorkTree))
	assert.True(t, errors.Is(r.PushWithTags(context.Background()), ErrNotInWorkTree))
}

func TestOpenDetectsWorkTree(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))

	r := Open(sub)
	require.True(t, r.IsRepository())
	root, err := r.Root()
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	hasCommit, err := r.HasAnyCommit()
	require.NoError(t, err)
	assert.False(t, hasCommit)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte("x"), 0600))
	require.NoError(t, r.Add(filepath.Join(dir, "setup.py")))
	_, err = r.Commit("initial")
	require.NoError(t, err)

	hasCommit, err = r.HasAnyCommit()
	require.NoError(t, err)
	assert.True(t, hasCommit)
}

func TestUncommittedChanges(t *testing.T) {
	r := memRepository(t)
	commitFile(t, r, "version.py", "__version__ = '0.1.0'", "initial")

	dirty, err := r.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	require.NoError(t, util.WriteFile(r.wt.Filesystem, "untracked.txt", []byte("new"), 0644))
	dirty, err = r.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty, "untracked files are not changes")

	require.NoError(t, util.WriteFile(r.wt.Filesystem, "version.py", []byte("__version__ = '0.2.0'"), 0644))
	dirty, err = r.HasUncommittedChanges()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestTags(t *testing.T) {
	r := memRepository(t)

	_, err := r.LatestTag()
	assert.True(t, errors.Is(err, ErrNoCommit))

	first := commitFile(t, r, "a.txt", "a", "first")
	_, err = r.LatestTag()
	assert.True(t, errors.Is(err, ErrNoTag))

	require.NoError(t, r.SetTag("0.1.0", "first release"))
	assert.True(t, errors.Is(r.SetTag("0.1.0", "again"), ErrTagExists))

	second := commitFile(t, r, "b.txt", "b", "second\n\nwith a body")
	require.NoError(t, r.SetTag("0.2.0", "second release"))

	latest, err := r.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", latest)

	hash, err := r.TagCommitHash("0.1.0")
	require.NoError(t, err)
	assert.Equal(t, first, hash)

	head, err := r.LatestCommitHash()
	require.NoError(t, err)
	assert.Equal(t, second, head)

	_, err = r.TagCommitHash("9.9.9")
	assert.True(t, errors.Is(err, ErrTagMissing))

	tags, err := r.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"0.1.0", "0.2.0"}, tags)

	history, err := r.TagHistory()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second release", history[0].Message)
	assert.Equal(t, "0.1.0", history[1].Name)

	messages, err := r.CommitMessagesSince("0.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, messages)

	messages, err = r.CommitMessagesSince("")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, messages)

	require.NoError(t, r.DeleteTag("0.2.0"))
	assert.True(t, errors.Is(r.DeleteTag("0.2.0"), ErrTagMissing))
	latest, err = r.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", latest)
}

func TestLightweightTag(t *testing.T) {
	r := memRepository(t)
	hash := commitFile(t, r, "a.txt", "a", "first")
	head, err := r.repo.Head()
	require.NoError(t, err)
	_, err = r.repo.CreateTag("0.0.1", head.Hash(), nil)
	require.NoError(t, err)

	latest, err := r.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", latest)

	tagged, err := r.TagCommitHash("0.0.1")
	require.NoError(t, err)
	assert.Equal(t, hash, tagged)
}

func TestResetHard(t *testing.T) {
	r := memRepository(t)
	first := commitFile(t, r, "version.py", "v1", "first")
	commitFile(t, r, "version.py", "v2", "second")

	require.NoError(t, r.ResetHard(1))
	head, err := r.LatestCommitHash()
	require.NoError(t, err)
	assert.Equal(t, first, head)

	content, err := util.ReadFile(r.wt.Filesystem, "version.py")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(content))

	assert.True(t, errors.Is(r.ResetHard(1), ErrNothingToReset))
}

func TestAuthors(t *testing.T) {
	r := memRepository(t)
	commitFile(t, r, "a.txt", "a", "first")
	commitFile(t, r, "b.txt", "b", "second")

	authors, err := r.Authors()
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Contains(t, authors[0], "<")
}

func TestRemote(t *testing.T) {
	r := memRepository(t)
	commitFile(t, r, "a.txt", "a", "first")

	configured, err := r.IsRemoteConfigured()
	require.NoError(t, err)
	assert.False(t, configured)
	assert.True(t, errors.Is(r.PushWithTags(context.Background()), ErrRemoteMissing))

	_, err = r.repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"https://example.com/repo.git"}})
	require.NoError(t, err)
	configured, err = r.IsRemoteConfigured()
	require.NoError(t, err)
	assert.True(t, configured)

	other := New(r.repo, Remote("upstream"))
	configured, err = other.IsRemoteConfigured()
	require.NoError(t, err)
	assert.False(t, configured)
}
