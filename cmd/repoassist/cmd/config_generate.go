package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var configGen = &cobra.Command{
	Use:   "generate",
	Short: "Generate a config",
	Long: `Generate the project configuration file, with all defaults set.

The file is placed in the project directory as repoassist.yaml.`,
	Example: `% repoassist config generate --dir ./myproject`,
	Run: func(cmd *cobra.Command, args []string) {
		target := filepath.Join(repoassistFlags.root.dir, configFileName+".yaml")
		if _, err := os.Stat(target); err == nil && !repoassistFlags.config.force {
			wrapFatalln("config file "+target+" already exists: use --force to overwrite it", nil)
			return
		}
		o, err := yaml.Marshal(projectConfig)
		if err != nil {
			wrapFatalln("serialize config to yaml", err)
			return
		}
		if err = os.WriteFile(target, o, 0600); err != nil {
			wrapFatalln("write config file", err)
			return
		}
		infoLogger.Printf("config written to %s", target)
	},
}

func init() {
	addForceConfigFlag(configGen)
	configCmd.AddCommand(configGen)
}
