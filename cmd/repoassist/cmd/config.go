package cmd

import (
	"path/filepath"

	"github.com/oneconcern/repoassist/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFileName = config.ConfigFileName

var projectConfig *config.Project

// setProjectDefaults declares every configuration key, so environment variables
// such as REPOASSIST_DIST_DIR override them
func setProjectDefaults() {
	d := config.DefaultProject()
	if abs, err := filepath.Abs(repoassistFlags.root.dir); err == nil {
		d.Name = filepath.Base(abs)
	}
	viper.SetDefault("project_name", d.Name)
	viper.SetDefault("project_type", d.Type)
	viper.SetDefault("version_file", d.VersionFile)
	viper.SetDefault("changelog_type", d.ChangelogType)
	viper.SetDefault("authors_type", d.AuthorsType)
	viper.SetDefault("author", d.Author)
	viper.SetDefault("author_email", d.AuthorEmail)
	viper.SetDefault("dist_dir", d.DistDir)
	viper.SetDefault("artifacts_dir", d.ArtifactsDir)
	viper.SetDefault("package_pattern", d.PackagePattern)
	viper.SetDefault("build_command", d.BuildCommand)
	viper.SetDefault("install_command", d.InstallCommand)
	viper.SetDefault("version_env", d.VersionEnv)
	viper.SetDefault("credentials_file", d.CredentialsFile)
}

func newProjectConfig() (*config.Project, error) {
	project := config.DefaultProject()
	if err := viper.Unmarshal(&project); err != nil {
		return nil, err
	}
	if len(project.Buckets) == 0 {
		project.Buckets = config.DefaultProject().Buckets
	}
	return &project, nil
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the project configuration",
	Long: `Commands to manage the repoassist project configuration.

The configuration holds the project settings which do not change across runs: project layout,
build commands and buckets. It is read from repoassist.yaml in the project directory,
$HOME/.repoassist or /etc/repoassist, or from the file set in $REPOASSIST_CONFIG.
Any setting may be overridden by an environment variable, e.g. REPOASSIST_DIST_DIR.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
