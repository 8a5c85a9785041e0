package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var cloudDownload = &cobra.Command{
	Use:   "download",
	Short: "Download a package",
	Long: `Download a package from the bucket matching its name.

An existing local file is not overwritten.`,
	Example: `% repoassist cloud download --file demo-1.0.0_release.tar.gz`,
	Run: func(cmd *cobra.Command, args []string) {
		in := newCliOptionInputs(projectConfig, &repoassistFlags)
		m, err := in.cloudManager(false)
		if err != nil {
			wrapFatalln("connect to the cloud", err)
			return
		}
		dest := repoassistFlags.cloud.destination
		if dest == "" {
			dest = projectConfig.ArtifactsDir
		}
		local, err := m.DownloadFile(context.Background(), repoassistFlags.cloud.file, in.projectPath(dest))
		if err != nil {
			wrapFatalln("download", err)
			return
		}
		infoLogger.Printf("downloaded %s", local)
	},
}

var cloudDelete = &cobra.Command{
	Use:   "delete",
	Short: "Delete a package",
	Long:  `Delete a package from the bucket matching its name.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := newCliOptionInputs(projectConfig, &repoassistFlags)
		m, err := in.cloudManager(false)
		if err != nil {
			wrapFatalln("connect to the cloud", err)
			return
		}
		if !repoassistFlags.cloud.noPrompt {
			logger, _ := in.getLogger()
			ok, err := newPrompter(logger).Confirm("Delete " + repoassistFlags.cloud.file + " from the cloud?")
			if err != nil || !ok {
				infoLogger.Println("nothing deleted")
				return
			}
		}
		remote, err := m.DeleteFile(context.Background(), repoassistFlags.cloud.file)
		if err != nil {
			wrapFatalln("delete", err)
			return
		}
		infoLogger.Printf("deleted %s", remote)
	},
}

func init() {
	requireFlags(cloudDownload, addFileFlag(cloudDownload))
	addDestinationFlag(cloudDownload)
	cloudCmd.AddCommand(cloudDownload)

	requireFlags(cloudDelete, addFileFlag(cloudDelete))
	addCloudNoPromptFlag(cloudDelete)
	cloudCmd.AddCommand(cloudDelete)
}
