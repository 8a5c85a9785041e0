// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "repoassist",
	Short: "repoassist automates the release chores of a project",
	Long: `repoassist automates the release chores of a single maintainer project.

It cuts releases from a git work tree (version marker, changelog, authors, commit, tag and push),
builds distribution packages with the project build tool, and synchronizes the packages
with buckets on a remote file server.

Project settings are read from a repoassist.yaml file, remote server credentials from a
local file which must never be committed.
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	addLogLevel(rootCmd)
	addProjectDirFlag(rootCmd)
	cobra.OnInitialize(initConfig)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.Reset()
	setProjectDefaults()
	if os.Getenv("REPOASSIST_CONFIG") != "" {
		// Use config file from the environment.
		viper.SetConfigFile(os.Getenv("REPOASSIST_CONFIG"))
	} else {
		viper.AddConfigPath(repoassistFlags.root.dir)
		viper.AddConfigPath("$HOME/.repoassist")
		viper.AddConfigPath("/etc/repoassist")
		viper.SetConfigName(configFileName)
	}

	viper.SetEnvPrefix("repoassist")
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
	var err error
	projectConfig, err = newProjectConfig()
	if err != nil {
		wrapFatalln("invalid configuration", err)
	}
}
