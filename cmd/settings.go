package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"graderecorder.dev/pkg/graderecorder/internal/domain"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// configCmd groups the commands that inspect or edit configuration.xml.
var configCmd = newConfigCmd()

var settingsDirFlag string

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the configuration document",
		Long: `Inspect or edit the settings stored in configuration.xml.

Recognized settings: ` + strings.Join(domain.RecognizedSettings, ", ") + `.
Scoring policies: ` + strings.Join(domain.PolicyNames(), ", ") + `.`,
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [dir]",
		Short: "Print the settings of a configuration document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := configDirArg(args)

			cfg, err := loadConfiguration(cmd, dir)
			if err != nil {
				return err
			}

			newUI(cmd).DisplaySettings(cmd.Context(), cfg.ConfigFile(), cfg.Settings())

			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Change one setting of a configuration document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := m.Path(settingsDirFlag)
			if dir == "" {
				dir = m.Path(viper.GetString(configDirKey))
			}

			cfg, err := loadConfiguration(cmd, dir)
			if err != nil {
				return err
			}

			name, value := args[0], args[1]
			if err := cfg.Set(name, value); err != nil {
				return err
			}

			saved, err := configStore.Save(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("save configuration: %w", err)
			}

			if !saved {
				return fmt.Errorf("%w: %s has no recognized settings", m.ErrCorruptedConfig, cfg.ConfigFile())
			}

			cmd.Printf("%s = %s\n", name, value)

			return nil
		},
	}

	cmd.Flags().StringVar(&settingsDirFlag, dirFlagName, "", "configuration folder (default: config.dir)")

	return cmd
}

func configDirArg(args []string) m.Path {
	if len(args) == 1 {
		return m.Path(args[0])
	}

	return m.Path(viper.GetString(configDirKey))
}

func loadConfiguration(cmd *cobra.Command, dir m.Path) (*domain.Configuration, error) {
	cfg, err := configStore.Load(cmd.Context(), domain.Location{Dir: dir, FileName: domain.DefaultConfigFileName})
	if errors.Is(err, m.ErrFileNotFound) {
		return nil, fmt.Errorf("%w (run \"graderecorder init %s\" first)", err, dir)
	}

	return cfg, err
}

func init() {
	rootCmd.AddCommand(configCmd)
}
