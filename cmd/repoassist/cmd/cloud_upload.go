package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var cloudUpload = &cobra.Command{
	Use:   "upload",
	Short: "Upload the latest packages",
	Long: `Upload the latest packages from the artifacts directory to their buckets.

For each keyword of each bucket, the most recent file containing this keyword is uploaded.
Files already present in a bucket are not uploaded again.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := newCliOptionInputs(projectConfig, &repoassistFlags)
		m, err := in.cloudManager(!repoassistFlags.cloud.noPrompt)
		if err != nil {
			wrapFatalln("connect to the cloud", err)
			return
		}
		uploaded, err := m.UploadArtifacts(context.Background(), in.projectPath(projectConfig.ArtifactsDir))
		if err != nil {
			wrapFatalln("upload", err)
			return
		}
		for _, remote := range uploaded {
			infoLogger.Printf("uploaded %s", remote)
		}
	},
}

var cloudUploadFile = &cobra.Command{
	Use:     "upload-file",
	Short:   "Upload a file to a bucket",
	Long:    `Upload a file to a bucket. A file already present in the bucket is not uploaded again.`,
	Example: `% repoassist cloud upload-file --file dist/demo-1.0.0.tar.gz --bucket release`,
	Run: func(cmd *cobra.Command, args []string) {
		in := newCliOptionInputs(projectConfig, &repoassistFlags)
		m, err := in.cloudManager(!repoassistFlags.cloud.noPrompt)
		if err != nil {
			wrapFatalln("connect to the cloud", err)
			return
		}
		remote, err := m.UploadFile(context.Background(), in.projectPath(repoassistFlags.cloud.file), repoassistFlags.cloud.bucket)
		if err != nil {
			wrapFatalln("upload file", err)
			return
		}
		if remote != "" {
			infoLogger.Printf("uploaded %s", remote)
		}
	},
}

func init() {
	addCloudNoPromptFlag(cloudUpload)
	cloudCmd.AddCommand(cloudUpload)

	requireFlags(cloudUploadFile,
		addFileFlag(cloudUploadFile),
		addBucketFlag(cloudUploadFile),
	)
	addCloudNoPromptFlag(cloudUploadFile)
	cloudCmd.AddCommand(cloudUploadFile)
}
