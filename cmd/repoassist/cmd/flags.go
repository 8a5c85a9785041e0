// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oneconcern/repoassist/pkg/cloud"
	"github.com/oneconcern/repoassist/pkg/config"
	"github.com/oneconcern/repoassist/pkg/dlogger"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/oneconcern/repoassist/pkg/release"
	"github.com/oneconcern/repoassist/pkg/storage/remote"
	"github.com/oneconcern/repoassist/pkg/vcs"
	"github.com/oneconcern/repoassist/pkg/wizard"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type flagsT struct {
	root struct {
		logLevel string
		dir      string
	}
	release struct {
		action         release.Action
		tag            string
		message        string
		push           bool
		force          bool
		noPrompt       bool
		skipTagCompare bool
	}
	cloud struct {
		file        string
		bucket      string
		destination string
		noPrompt    bool
		timeout     time.Duration
	}
	config struct {
		force bool
	}
}

var repoassistFlags = flagsT{}

// newPrompter is patched during tests
var newPrompter = func(l *zap.Logger) wizard.Prompter {
	return wizard.NewConsole(os.Stdin, os.Stdout, wizard.WithLogger(l))
}

func addLogLevel(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&repoassistFlags.root.logLevel, loglevel, "info", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return loglevel
}

func addProjectDirFlag(cmd *cobra.Command) string {
	dir := "dir"
	cmd.PersistentFlags().StringVar(&repoassistFlags.root.dir, dir, ".", "The project directory")
	return dir
}

func addActionFlag(cmd *cobra.Command) string {
	action := "action"
	repoassistFlags.release.action = release.ActionRegenerate
	cmd.Flags().Var(&repoassistFlags.release.action, action,
		`The release action when not prompting: "rel" makes a new release, "reg" regenerates the package of the latest release`)
	return action
}

func addTagFlag(cmd *cobra.Command) string {
	tag := "tag"
	cmd.Flags().StringVar(&repoassistFlags.release.tag, tag, "", "The new release tag, as a normalized semantic version (e.g. 1.2.0)")
	return tag
}

func addMessageFlag(cmd *cobra.Command) string {
	message := "message"
	cmd.Flags().StringVar(&repoassistFlags.release.message, message, "", "The release message")
	return message
}

func addPushFlag(cmd *cobra.Command) string {
	push := "push"
	cmd.Flags().BoolVar(&repoassistFlags.release.push, push, true, "Push the release commit and tag when a remote is configured")
	return push
}

func addForceFlag(cmd *cobra.Command) string {
	force := "force"
	cmd.Flags().BoolVar(&repoassistFlags.release.force, force, false, "Skip the work tree checks")
	return force
}

func addNoPromptFlag(cmd *cobra.Command) string {
	noPrompt := "no-prompt"
	cmd.Flags().BoolVar(&repoassistFlags.release.noPrompt, noPrompt, false, "Do not ask questions: use flag values")
	return noPrompt
}

func addSkipTagCompareFlag(cmd *cobra.Command) string {
	skip := "skip-tag-compare"
	cmd.Flags().BoolVar(&repoassistFlags.release.skipTagCompare, skip, false, "Accept a release tag which is not higher than the latest tag")
	return skip
}

func addFileFlag(cmd *cobra.Command) string {
	file := "file"
	cmd.Flags().StringVar(&repoassistFlags.cloud.file, file, "", "The file name")
	return file
}

func addBucketFlag(cmd *cobra.Command) string {
	bucket := "bucket"
	cmd.Flags().StringVar(&repoassistFlags.cloud.bucket, bucket, "", "The bucket name, as declared in the configuration")
	return bucket
}

func addDestinationFlag(cmd *cobra.Command) string {
	destination := "destination"
	cmd.Flags().StringVar(&repoassistFlags.cloud.destination, destination, "",
		"The local directory to download to. Defaults to the artifacts directory")
	return destination
}

func addCloudNoPromptFlag(cmd *cobra.Command) string {
	noPrompt := "no-prompt"
	cmd.Flags().BoolVar(&repoassistFlags.cloud.noPrompt, noPrompt, false, "Do not ask for confirmations")
	return noPrompt
}

func addTimeoutFlag(cmd *cobra.Command) string {
	timeout := "timeout"
	cmd.PersistentFlags().DurationVar(&repoassistFlags.cloud.timeout, timeout, 30*time.Second, "The timeout to connect to the remote server")
	return timeout
}

func addForceConfigFlag(cmd *cobra.Command) string {
	force := "force"
	cmd.Flags().BoolVar(&repoassistFlags.config.force, force, false, "Overwrite an existing config file")
	return force
}

type cliOptionInputs struct {
	project    *config.Project
	params     *flagsT
	onceLogger sync.Once
	logger     *zap.Logger
	loggerErr  error
}

func newCliOptionInputs(project *config.Project, params *flagsT) *cliOptionInputs {
	return &cliOptionInputs{
		project: project,
		params:  params,
	}
}

func (in *cliOptionInputs) getLogger() (*zap.Logger, error) {
	in.onceLogger.Do(func() {
		in.logger, in.loggerErr = dlogger.GetLogger(in.params.root.logLevel, dlogger.WithConsole(), dlogger.WithOutput("stderr"))
	})
	if in.loggerErr != nil {
		return nil, fmt.Errorf("failed to set log level: %v", in.loggerErr)
	}
	return in.logger, nil
}

func (in *cliOptionInputs) dir() string {
	if abs, err := filepath.Abs(in.params.root.dir); err == nil {
		return abs
	}
	return in.params.root.dir
}

func (in *cliOptionInputs) projectPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(in.dir(), p)
}

func (in *cliOptionInputs) coordinator() (*release.Coordinator, error) {
	if err := in.project.Validate(); err != nil {
		return nil, err
	}
	logger, err := in.getLogger()
	if err != nil {
		return nil, err
	}
	backend := vcs.Open(in.dir(), vcs.Logger(logger), vcs.Signature(in.project.Author, in.project.AuthorEmail))
	opts := []release.Option{
		release.WithLogger(logger),
		release.WithPrompter(newPrompter(logger)),
	}
	if !backend.IsRepository() {
		opts = append(opts, release.WithRoot(in.dir()))
	}
	return release.New(backend, *in.project, opts...), nil
}

func (in *cliOptionInputs) cloudManager(prompt bool) (*cloud.Manager, error) {
	logger, err := in.getLogger()
	if err != nil {
		return nil, err
	}
	creds, err := config.LoadCredentials(afero.NewOsFs(), in.project.CredentialsPath(in.dir()))
	if err != nil {
		return nil, err
	}
	open, err := remote.Opener(creds, remote.Logger(logger), remote.Timeout(in.params.cloud.timeout))
	if err != nil {
		return nil, err
	}
	opts := []cloud.Option{cloud.WithLogger(logger)}
	if prompt {
		opts = append(opts, cloud.WithConfirm(newPrompter(logger).Confirm))
	}
	return cloud.New(creds, in.project.Buckets, open, opts...), nil
}

func touchCredentials(in *cliOptionInputs) (string, bool, error) {
	return config.TouchCredentials(afero.NewOsFs(), in.project.CredentialsPath(in.dir()), model.Credentials{ProjectName: in.project.Name})
}

/** misc util */

// requireFlags sets a flag (local to the command or inherited) as required
func requireFlags(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		err := cmd.MarkFlagRequired(flag)
		if err != nil {
			err = cmd.MarkPersistentFlagRequired(flag)
		}
		if err != nil {
			wrapFatalln(fmt.Sprintf("error attempting to mark the required flag %q", flag), err)
			return
		}
	}
}
