package release

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	projectconfig "github.com/oneconcern/repoassist/pkg/config"
	"github.com/oneconcern/repoassist/pkg/errors"
	"github.com/oneconcern/repoassist/pkg/vcs"
	"github.com/oneconcern/repoassist/pkg/wizard"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
}

type fakePackager struct {
	fs       afero.Fs
	dist     string
	version  string
	builds   []string
	installs []string
}

func (p *fakePackager) Build(_ context.Context, tag string) error {
	p.builds = append(p.builds, tag)
	version := tag
	if p.version != "" {
		version = p.version
	}
	if version == "" {
		version = "0.0.0.dev1"
	}
	if err := p.fs.MkdirAll(p.dist, 0755); err != nil {
		return err
	}
	return afero.WriteFile(p.fs, filepath.Join(p.dist, "demo-"+version+".tar.gz"), []byte(version), 0644)
}

func (p *fakePackager) Install(_ context.Context, tag string) error {
	p.installs = append(p.installs, tag)
	return nil
}

// faultyBackend injects failures in a real backend
type faultyBackend struct {
	vcs.Backend
	setTagErr error
	resetErr  error
	tagged    string
}

func (f *faultyBackend) SetTag(tag, message string) error {
	if f.setTagErr != nil {
		return f.setTagErr
	}
	return f.Backend.SetTag(tag, message)
}

func (f *faultyBackend) ResetHard(n int) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	return f.Backend.ResetHard(n)
}

func (f *faultyBackend) LatestTag() (string, error) {
	if f.tagged != "" {
		return f.tagged, nil
	}
	return f.Backend.LatestTag()
}

type fixture struct {
	dir  string
	repo *vcs.Repository
	pkg  *fakePackager
	l    *zap.Logger
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		dir:  dir,
		repo: vcs.Open(dir, vcs.Signature("tester", "tester@example.com")),
		pkg:  &fakePackager{fs: afero.NewOsFs(), dist: filepath.Join(dir, "dist")},
		l:    zap.New(core),
		logs: logs,
	}
	f.commit(t, "initial", map[string]string{"demo/__init__.py": "\"\"\"demo\"\"\"\n__version__ = '0.0.0'\n"})
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (f *fixture) read(t *testing.T, name string) string {
	content, err := os.ReadFile(filepath.Join(f.dir, name))
	require.NoError(t, err)
	return string(content)
}

func (f *fixture) commit(t *testing.T, msg string, files map[string]string) string {
	for name, content := range files {
		require.NoError(t, f.repo.Add(f.write(t, name, content)))
	}
	hash, err := f.repo.Commit(msg)
	require.NoError(t, err)
	return hash
}

func (f *fixture) head(t *testing.T) string {
	hash, err := f.repo.LatestCommitHash()
	require.NoError(t, err)
	return hash
}

func demoProject() projectconfig.Project {
	p := projectconfig.DefaultProject()
	p.Name = "demo"
	return p
}

func (f *fixture) coordinator(backend vcs.Backend, project projectconfig.Project, opts ...Option) *Coordinator {
	base := []Option{
		WithRoot(f.dir),
		WithLogger(f.l),
		WithPackager(f.pkg),
		WithClock(fixedClock),
		WithPrompter(wizard.NewScripted()),
	}
	return New(backend, project, append(base, opts...)...)
}

func makeRelease(tag, message string) Request {
	return Request{Action: ActionMakeRelease, Tag: tag, Message: message, Push: true}
}

func TestMakeRelease(t *testing.T) {
	f := newFixture(t)
	c := f.coordinator(f.repo, demoProject())

	res, err := c.Release(context.Background(), makeRelease("0.1.0", "first release"))
	require.NoError(t, err)

	assert.Equal(t, ActionMakeRelease, res.Action)
	assert.Equal(t, "0.1.0", res.Tag)
	assert.Equal(t, filepath.Join(f.dir, "dist", "demo-0.1.0.tar.gz"), res.Package)
	assert.Equal(t, filepath.Join(f.dir, "release", "demo-0.1.0_release.tar.gz"), res.ReleasePackage)
	assert.Len(t, res.Staged, 3)
	assert.False(t, res.Pushed)
	assert.Equal(t, []string{"0.1.0"}, f.pkg.builds)

	assert.Equal(t, "\"\"\"demo\"\"\"\n__version__ = '0.1.0'\n", f.read(t, "demo/__init__.py"))
	assert.Equal(t, "# Changelog\n\n### Version: 0.1.0 | Released: 2024-05-01 \nfirst release\n\n", f.read(t, "CHANGELOG.md"))
	authors := f.read(t, "AUTHORS")
	assert.Equal(t, 1, strings.Count(authors, "\n"), "a single author")
	assert.Contains(t, authors, "<")

	latest, err := f.repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", latest)
	dirty, err := f.repo.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	messages, err := f.repo.CommitMessagesSince("")
	require.NoError(t, err)
	assert.Equal(t, AutomaticCommitMessage, messages[0])

	res, err = c.Release(context.Background(), makeRelease("0.2.0", "second release"))
	require.NoError(t, err)
	assert.Equal(t, "0.2.0", res.Tag)

	changelog := f.read(t, "CHANGELOG.md")
	second := strings.Index(changelog, "### Version: 0.2.0 | Released: 2024-05-01 \nsecond release\n")
	first := strings.Index(changelog, "### Version: 0.1.0 | Released: ")
	require.True(t, second > 0)
	assert.True(t, first > second, "history follows the new entry")
	assert.Contains(t, changelog, "\nfirst release\n")
}

func TestRejectLowerTag(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.SetTag("1.2.0", "current"))
	before := f.head(t)

	_, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), makeRelease("1.0.0", "older"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTagInvalid))

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, StateMakeRelease, rerr.State)

	assert.Equal(t, before, f.head(t))
	assert.Contains(t, f.read(t, "demo/__init__.py"), "'0.0.0'")
	assert.Empty(t, f.pkg.builds)

	res, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), Request{
		Action:            ActionMakeRelease,
		Tag:               "1.0.0",
		Message:           "backport",
		SkipTagComparison: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", res.Tag)
}

func TestRollbackWhenTagFails(t *testing.T) {
	f := newFixture(t)
	before := f.head(t)
	backend := &faultyBackend{Backend: f.repo, setTagErr: fmt.Errorf("simulated tag failure")}

	_, err := f.coordinator(backend, demoProject()).Release(context.Background(), makeRelease("0.1.0", "first"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTagSet))
	assert.False(t, errors.Is(err, ErrCritical))

	assert.Equal(t, before, f.head(t), "release commit is undone")
	tags, err := f.repo.ListTags()
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Contains(t, f.read(t, "demo/__init__.py"), "'0.0.0'")
	assert.Equal(t, 1, f.logs.FilterMessage("reverting release").Len())
	assert.Empty(t, f.pkg.builds)
}

func TestRollbackWhenTagIsWrong(t *testing.T) {
	f := newFixture(t)
	before := f.head(t)
	require.NoError(t, f.repo.SetTag("0.0.1", "initial"))
	backend := &faultyBackend{Backend: f.repo, tagged: "0.0.1"}

	_, err := f.coordinator(backend, demoProject()).Release(context.Background(), makeRelease("0.1.0", "first"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTagSet))

	assert.Equal(t, before, f.head(t))
	tags, err := f.repo.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"0.0.1"}, tags, "the wrongly set release tag is deleted")
}

func TestCriticalRollback(t *testing.T) {
	f := newFixture(t)
	backend := &faultyBackend{
		Backend:   f.repo,
		setTagErr: fmt.Errorf("simulated tag failure"),
		resetErr:  fmt.Errorf("simulated reset failure"),
	}

	_, err := f.coordinator(backend, demoProject()).Release(context.Background(), makeRelease("0.1.0", "first"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCritical))
	assert.Contains(t, err.Error(), "simulated reset failure")
	assert.Contains(t, err.Error(), "clean up manually")
	assert.Equal(t, 1, f.logs.FilterMessage("release rollback failed").Len())
}

func TestPushFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	repo, err := git.PlainOpen(f.dir)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{filepath.Join(t.TempDir(), "missing.git")},
	})
	require.NoError(t, err)

	res, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), makeRelease("0.1.0", "first"))
	require.NoError(t, err)
	assert.False(t, res.Pushed)
	assert.Equal(t, 1, f.logs.FilterMessageSnippet("push manually").Len())

	latest, err := f.repo.LatestTag()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", latest, "local commit and tag stand")
}

func TestRegenerateGating(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.SetTag("0.1.0", "first"))
	c := f.coordinator(f.repo, demoProject())

	res, err := c.Release(context.Background(), Request{Action: ActionRegenerate})
	require.NoError(t, err)
	assert.Equal(t, ActionRegenerate, res.Action)
	assert.Equal(t, "0.1.0", res.Tag)
	assert.Equal(t, filepath.Join(f.dir, "release", "demo-0.1.0_release.tar.gz"), res.ReleasePackage)
	assert.Empty(t, res.Staged)

	f.commit(t, "more work", map[string]string{"demo/more.py": "pass\n"})
	res, err = c.Release(context.Background(), Request{Action: ActionRegenerate})
	require.NoError(t, err)
	assert.Empty(t, res.Tag, "HEAD is past the tag: development build")
	assert.Equal(t, []string{"0.1.0", ""}, f.pkg.builds)
}

func TestRegenerateRequiresTag(t *testing.T) {
	f := newFixture(t)
	_, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), Request{Action: ActionRegenerate})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMetadata))
}

func TestPackageNameMustEmbedTag(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.SetTag("0.1.0", "first"))
	f.pkg.version = "9.9.9"

	_, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), Request{Action: ActionRegenerate})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArtifactName))
}

func TestPreconditions(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		dir := t.TempDir()
		f := &fixture{dir: dir, pkg: &fakePackager{fs: afero.NewOsFs(), dist: filepath.Join(dir, "dist")}, l: zap.NewNop()}
		backend := vcs.Open(dir)

		_, err := f.coordinator(backend, demoProject()).Release(context.Background(), Request{Action: ActionRegenerate})
		assert.True(t, errors.Is(err, ErrPrecondition))
		assert.True(t, errors.Is(err, vcs.ErrNotInWorkTree))

		_, err = f.coordinator(backend, demoProject()).Release(context.Background(), Request{Action: ActionRegenerate, Force: true})
		assert.True(t, errors.Is(err, ErrMetadata), "forced run goes on and fails on the missing tag")
	})

	t.Run("no commit", func(t *testing.T) {
		dir := t.TempDir()
		_, err := git.PlainInit(dir, false)
		require.NoError(t, err)
		f := &fixture{dir: dir, pkg: &fakePackager{fs: afero.NewOsFs(), dist: filepath.Join(dir, "dist")}, l: zap.NewNop()}

		_, err = f.coordinator(vcs.Open(dir), demoProject()).Release(context.Background(), makeRelease("0.1.0", "m"))
		assert.True(t, errors.Is(err, ErrPrecondition))
		assert.True(t, errors.Is(err, vcs.ErrNoCommit))
	})

	t.Run("uncommitted changes", func(t *testing.T) {
		f := newFixture(t)
		f.write(t, "demo/__init__.py", "__version__ = '0.0.1'\n")

		_, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), makeRelease("0.1.0", "m"))
		assert.True(t, errors.Is(err, ErrPrecondition))
		assert.Empty(t, f.pkg.builds)
	})
}

func TestVersionNotFound(t *testing.T) {
	f := newFixture(t)
	f.commit(t, "drop marker", map[string]string{"demo/__init__.py": "VERSION = 1\n"})
	before := f.head(t)

	_, err := f.coordinator(f.repo, demoProject()).Release(context.Background(), makeRelease("0.1.0", "m"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionNotFound))
	assert.Equal(t, before, f.head(t))
}

func TestModuleVersionFile(t *testing.T) {
	f := newFixture(t)
	f.commit(t, "module layout", map[string]string{"demo.py": "__version__ = \"0.0.0\"  # managed\n"})
	project := demoProject()
	project.Type = projectconfig.ProjectTypeModule

	_, err := f.coordinator(f.repo, project).Release(context.Background(), makeRelease("0.1.0", "m"))
	require.NoError(t, err)
	assert.Equal(t, "__version__ = '0.1.0'  # managed\n", f.read(t, "demo.py"))
}

func TestPreparedFiles(t *testing.T) {
	project := demoProject()
	project.ChangelogType = projectconfig.Prepared
	project.AuthorsType = projectconfig.Prepared
	project.Author = "Jane Doe"
	project.AuthorEmail = "jane@example.com"

	t.Run("missing changelog", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.coordinator(f.repo, project).Release(context.Background(), makeRelease("0.1.0", "m"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrChangelog))
	})

	t.Run("prepared changelog", func(t *testing.T) {
		f := newFixture(t)
		f.commit(t, "changelog", map[string]string{"CHANGELOG.md": "# hand made\n"})

		res, err := f.coordinator(f.repo, project).Release(context.Background(), makeRelease("0.1.0", "m"))
		require.NoError(t, err)
		assert.Len(t, res.Staged, 3)
		assert.Equal(t, "# hand made\n", f.read(t, "CHANGELOG.md"))
		assert.Equal(t, "# Authors\n\nJane Doe <jane@example.com>\n", f.read(t, "AUTHORS"))
	})
}

func TestPromptedRelease(t *testing.T) {
	f := newFixture(t)
	prompter := wizard.NewScripted("rel", "y", "n", "y", "n", "1.0", "", "Release notes")

	res, err := f.coordinator(f.repo, demoProject(), WithPrompter(prompter)).Release(context.Background(), Request{Prompt: true})
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", res.Tag, "empty answer takes the suggested initial tag")
	assert.Contains(t, f.read(t, "CHANGELOG.md"), "\nRelease notes\n")
	assert.Equal(t, 1, f.logs.FilterMessageSnippet("entered release tag not valid").Len())
	assert.Len(t, prompter.Asked, 8)
	assert.Contains(t, prompter.Asked[7], "initial", "commit messages prefill the release message")
}

func TestPromptedTagMustBeHigher(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repo.SetTag("1.2.0", "current"))
	prompter := wizard.NewScripted("rel", "y", "n", "y", "n", "1.0.0", "1.3.0", "notes")

	res, err := f.coordinator(f.repo, demoProject(), WithPrompter(prompter)).Release(context.Background(), Request{Prompt: true})
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", res.Tag)
	assert.Equal(t, 1, f.logs.FilterMessageSnippet("not higher").Len())
}

func TestCheckoutAborts(t *testing.T) {
	f := newFixture(t)
	project := demoProject()
	project.ChangelogType = projectconfig.Prepared
	prompter := wizard.NewScripted("rel", "y", "n", "y", "n", "n")

	_, err := f.coordinator(f.repo, project, WithPrompter(prompter)).Release(context.Background(), Request{Prompt: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckout))
	assert.Contains(t, err.Error(), "CHANGELOG.md")
}

func TestCheckpointNeedsExplicitAnswer(t *testing.T) {
	f := newFixture(t)
	prompter := wizard.NewScripted("rel", "y", "", "y", "n")

	_, err := f.coordinator(f.repo, demoProject(), WithPrompter(prompter)).Release(context.Background(), Request{Prompt: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckout))
	assert.True(t, errors.Is(err, wizard.ErrInvalidChoice))
	assert.Len(t, prompter.Asked, 3, "a blank answer stops at the uncommitted changes checkpoint")

	_, err = f.repo.LatestTag()
	assert.True(t, errors.Is(err, vcs.ErrNoTag))
}

type rootlessBackend struct {
	vcs.Backend
}

func (rootlessBackend) Root() (string, error) {
	return "", vcs.ErrNotInWorkTree
}

func TestUnknownRoot(t *testing.T) {
	f := newFixture(t)
	getwd = func() (string, error) { return "", fmt.Errorf("workdir removed") }
	defer func() { getwd = os.Getwd }()

	c := New(rootlessBackend{Backend: f.repo}, demoProject(),
		WithLogger(f.l),
		WithPackager(f.pkg),
		WithPrompter(wizard.NewScripted()),
	)
	assert.Empty(t, c.Root())
	assert.Equal(t, 1, f.logs.FilterMessage("cannot resolve the project root").Len())

	_, err := c.Release(context.Background(), Request{Action: ActionRegenerate, Force: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.Contains(t, err.Error(), "project root directory unknown")

	err = c.Install(context.Background(), true)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.Empty(t, f.pkg.builds)
	assert.Empty(t, f.pkg.installs)
}

func TestInstall(t *testing.T) {
	f := newFixture(t)
	c := f.coordinator(f.repo, demoProject())

	err := c.Install(context.Background(), false)
	assert.True(t, errors.Is(err, ErrMetadata))

	require.NoError(t, f.repo.SetTag("0.1.0", "first"))
	require.NoError(t, c.Install(context.Background(), false))
	assert.Equal(t, []string{"0.1.0"}, f.pkg.installs)
}

type validateTagFixture struct {
	tag     string
	latest  string
	compare bool
	valid   bool
}

func validateTagTestCases() []validateTagFixture {
	return []validateTagFixture{
		{tag: "1.0.0", valid: true, compare: true},
		{tag: "1.0", compare: true},
		{tag: "v1.0.0", compare: true},
		{tag: "1.0.0-rc.1", latest: "0.9.0", compare: true, valid: true},
		{tag: "1.0.0", latest: "1.2.0", compare: true},
		{tag: "1.2.0", latest: "1.2.0", compare: true},
		{tag: "1.0.0", latest: "1.2.0", compare: false, valid: true},
		{tag: "2.0.0", latest: "not-a-version", compare: true},
		{tag: "2.0.0", latest: "not-a-version", compare: false, valid: true},
	}
}

func TestValidateTag(t *testing.T) {
	for _, toPin := range validateTagTestCases() {
		testCase := toPin
		t.Run(fmt.Sprintf("%s over %q", testCase.tag, testCase.latest), func(t *testing.T) {
			err := ValidateTag(testCase.tag, testCase.latest, testCase.compare)
			if testCase.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrTagInvalid))
		})
	}

	higher, err := IsHigherTag("1.2.0", "1.10.0")
	require.NoError(t, err)
	assert.True(t, higher)
	_, err = IsHigherTag("bad", "1.0.0")
	assert.Error(t, err)
}

func TestReleasePackageName(t *testing.T) {
	assert.Equal(t, "demo-1.0.0_release.tar.gz", ReleasePackageName("demo-1.0.0.tar.gz", "_release"))
	assert.Equal(t, "demo-1.0.0_release.whl", ReleasePackageName("demo-1.0.0.whl", "_release"))
	assert.Equal(t, "demo_release", ReleasePackageName("demo", "_release"))
}

func TestReplaceVersion(t *testing.T) {
	out, found := ReplaceVersion([]byte("a\n__version__='0.1'\n__version__ = '0.1'\n"), "1.0.0")
	require.True(t, found)
	assert.Equal(t, "a\n__version__ = '1.0.0'\n__version__ = '0.1'\n", string(out))

	_, found = ReplaceVersion([]byte("version = 1"), "1.0.0")
	assert.False(t, found)
}

func TestActionFlag(t *testing.T) {
	var a Action
	require.NoError(t, a.Set("rel"))
	assert.Equal(t, ActionMakeRelease, a)
	assert.Error(t, a.Set("release"))
	assert.Equal(t, "action", a.Type())

	flags := pflag.NewFlagSet("release", pflag.ContinueOnError)
	action := ActionRegenerate
	flags.Var(&action, "action", "")
	require.NoError(t, flags.Parse([]string{"--action", "rel"}))
	assert.Equal(t, ActionMakeRelease, action)
	assert.Error(t, flags.Parse([]string{"--action", "nope"}))
}
