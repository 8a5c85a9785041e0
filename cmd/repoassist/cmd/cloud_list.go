package cmd

import (
	"context"
	"fmt"

	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/oneconcern/repoassist/pkg/cloud"
	"github.com/oneconcern/repoassist/pkg/model"
	"github.com/spf13/cobra"
)

const listTimeLayout = "2006-01-02 15:04:05"

func listingTable(listing cloud.Listing, buckets model.Buckets) string {
	heading := color.New(color.FgGreen, color.Bold)
	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true

	for _, name := range buckets.Names() {
		files, ok := listing[name]
		if !ok {
			continue
		}
		table.AddRow(heading.Sprintf("%s/", name), fmt.Sprintf("%d file(s)", len(files)))
		for _, f := range files {
			table.AddRow("", f.Owner, units.HumanSize(float64(f.Size)), f.ModifiedAt.Format(listTimeLayout), f.Name)
		}
	}
	return table.String()
}

var cloudList = &cobra.Command{
	Use:   "list",
	Short: "List the packages in the buckets",
	Long:  `List the packages in each bucket, oldest first.`,
	Example: `% repoassist cloud list
release/   2 file(s)
           ftpuser   12.3kB   2024-05-01 10:00:00   demo-0.1.0_release.tar.gz
           ftpuser   12.4kB   2024-05-02 10:00:00   demo-0.2.0_release.tar.gz`,
	Run: func(cmd *cobra.Command, args []string) {
		in := newCliOptionInputs(projectConfig, &repoassistFlags)
		m, err := in.cloudManager(false)
		if err != nil {
			wrapFatalln("connect to the cloud", err)
			return
		}
		listing, err := m.ListBuckets(context.Background())
		if err != nil {
			wrapFatalln("list buckets", err)
			return
		}
		if listing == nil {
			infoLogger.Println("There are no buckets on the cloud server.")
			return
		}
		infoLogger.Println(listingTable(listing, m.Buckets()))
	},
}

var cloudInitCredentials = &cobra.Command{
	Use:   "init-credentials",
	Short: "Create the credentials file",
	Long: `Create a credentials file template in the project directory, to be completed.

The credentials file holds secrets: it must not be committed. An existing file is left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		in := newCliOptionInputs(projectConfig, &repoassistFlags)
		path, created, err := touchCredentials(in)
		if err != nil {
			wrapFatalln("create credentials file", err)
			return
		}
		if !created {
			infoLogger.Printf("credentials file %s already exists", path)
			return
		}
		infoLogger.Printf("credentials file %s created: complete it and make sure it is ignored by git", path)
	},
}

func init() {
	cloudCmd.AddCommand(cloudList)
	cloudCmd.AddCommand(cloudInitCredentials)
}
