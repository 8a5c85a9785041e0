package cmd

import (
	"context"

	"github.com/oneconcern/repoassist/pkg/release"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Prepare a source distribution package",
	Long: `Prepare a source distribution package.

A new release ("rel") updates the version marker, the changelog and the authors file,
commits them, tags the commit and pushes both to the remote. A failure to tag rolls the commit back.

Regenerating ("reg") builds the package of the latest release again. When HEAD is past the
latest tag, a development package is built.

The package built in the distribution directory is copied with a release suffix into the
artifacts directory, ready for upload.`,
	Example: `% repoassist release
% repoassist release --no-prompt --action rel --tag 1.2.0 --message "Upload verification"
% repoassist release --no-prompt --action reg`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		flags := repoassistFlags.release
		coordinator, err := newCliOptionInputs(projectConfig, &repoassistFlags).coordinator()
		if err != nil {
			wrapFatalln("prepare release", err)
			return
		}
		res, err := coordinator.Release(ctx, release.Request{
			Action:            flags.action,
			Tag:               flags.tag,
			Message:           flags.message,
			Prompt:            !flags.noPrompt,
			Push:              flags.push,
			Force:             flags.force,
			SkipTagComparison: flags.skipTagCompare,
		})
		if err != nil {
			releaseFatal("release", err)
			return
		}
		if res.Tag == "" {
			infoLogger.Printf("development package prepared: %s", res.ReleasePackage)
			return
		}
		infoLogger.Printf("release %s prepared: %s", res.Tag, res.ReleasePackage)
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the project",
	Long: `Install the project with the install command.

The installed version is the latest release when HEAD is tagged, a development version otherwise.`,
	Run: func(cmd *cobra.Command, args []string) {
		coordinator, err := newCliOptionInputs(projectConfig, &repoassistFlags).coordinator()
		if err != nil {
			wrapFatalln("prepare install", err)
			return
		}
		if err = coordinator.Install(context.Background(), repoassistFlags.release.force); err != nil {
			wrapFatalln("install", err)
			return
		}
	},
}

func init() {
	addActionFlag(releaseCmd)
	addTagFlag(releaseCmd)
	addMessageFlag(releaseCmd)
	addPushFlag(releaseCmd)
	addForceFlag(releaseCmd)
	addNoPromptFlag(releaseCmd)
	addSkipTagCompareFlag(releaseCmd)
	rootCmd.AddCommand(releaseCmd)

	addForceFlag(installCmd)
	rootCmd.AddCommand(installCmd)
}
