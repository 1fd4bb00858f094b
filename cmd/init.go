package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

var initForceFlag bool
var initSettingsFlag bool

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a default configuration document",
		Long: `Create configuration.xml with default settings in the given folder
(default: config.dir). With --settings a graderecorder.yaml holding the
current CLI defaults is written to the working directory as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configStore.Initialize(cmd.Context(), configDirArg(args), initForceFlag)
			if err != nil {
				return fmt.Errorf("failed to write configuration: %w", err)
			}

			cmd.Printf("Created %s\n", path)

			if !initSettingsFlag {
				return nil
			}

			targetPath := filepath.Join(configFolderPath, configFileName)
			if err := viper.SafeWriteConfigAs(targetPath); err != nil {
				return fmt.Errorf("failed to write settings file: %w", err)
			}

			cmd.Printf("Created %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&initForceFlag, forceFlagName, false, "overwrite an existing configuration document")
	cmd.Flags().BoolVar(&initSettingsFlag, settingsFlagName, false, "also write "+configFileName+" to the working directory")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
