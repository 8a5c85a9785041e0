package cmd

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/oneconcern/repoassist/pkg/wizard"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type ExitMocks struct {
	exitStatuses []int
	messages     []string
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.messages = append(m.messages, fmt.Sprintln(v...))
	m.exitStatuses = append(m.exitStatuses, 1)
}

func (m *ExitMocks) Exit(code int) {
	m.exitStatuses = append(m.exitStatuses, code)
}

func (m *ExitMocks) fatalCalls() int {
	return len(m.exitStatuses)
}

func NewExitMocks() *ExitMocks {
	return &ExitMocks{
		exitStatuses: make([]int, 0),
	}
}

var exitMocks *ExitMocks

type testEnv struct {
	dir    string
	remote string
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// setupTests patches fatal exits, captures informative output and prepares a project
// directory with a local directory standing for the remote server
func setupTests(t *testing.T, answers ...string) (testEnv, func()) {
	exitMocks = NewExitMocks()
	logFatalf = exitMocks.Fatalf
	logFatalln = exitMocks.Fatalln
	osExit = exitMocks.Exit

	out := new(bytes.Buffer)
	infoLogger = log.New(out, "", 0)
	errOut := new(bytes.Buffer)
	errLogger = log.New(errOut, "", 0)

	scripted := wizard.NewScripted(answers...)
	savedPrompter := newPrompter
	newPrompter = func(*zap.Logger) wizard.Prompter { return scripted }

	base := t.TempDir()
	env := testEnv{
		dir:    filepath.Join(base, "demo"),
		remote: filepath.Join(base, "server"),
		out:    out,
		errOut: errOut,
	}
	require.NoError(t, os.MkdirAll(env.dir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(env.remote, "main"), 0o755))

	return env, func() {
		logFatalf = log.Fatalf
		logFatalln = log.Fatalln
		osExit = os.Exit
		infoLogger = log.New(os.Stdout, "", 0)
		errLogger = log.New(os.Stderr, "", 0)
		newPrompter = savedPrompter
	}
}

func (e testEnv) writeCredentials(t *testing.T) {
	content := fmt.Sprintf(`server = file://%s
username = tester
password = secret
main_bucket_path = main/packages
project_name = demo
`, e.remote)
	require.NoError(t, os.WriteFile(filepath.Join(e.dir, "cloud_credentials.txt"), []byte(content), 0o600))
}

func (e testEnv) writeArtifact(t *testing.T, name string) string {
	dir := filepath.Join(e.dir, "release")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("content of "+name), 0o600))
	return path
}

func runCmd(t *testing.T, env testEnv, args ...string) {
	env.out.Reset()
	rootCmd.SetArgs(append(args, "--dir", env.dir, "--loglevel", "none"))
	require.NoError(t, rootCmd.Execute())
}
