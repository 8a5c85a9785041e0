package cmd

import (
	"github.com/spf13/cobra"
)

// cloudCmd represents the commands exchanging packages with the remote server
var cloudCmd = &cobra.Command{
	Use:   "cloud",
	Short: "Commands to exchange packages with the remote server",
	Long: `Commands to upload, download and list packages in buckets on the remote server.

Remote layout:
	/<main_bucket_path>/[<client_name>/][<project_name>/]<bucket_name>/<file_name>

The server and the bucket path are read from the credentials file (cloud_credentials.txt
by default). The first segment of main_bucket_path must exist on the server.

A package goes to the buckets whose keywords appear in its name.`,
}

func init() {
	addTimeoutFlag(cloudCmd)
	rootCmd.AddCommand(cloudCmd)
}
