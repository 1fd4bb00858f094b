// Package cmd provides the root command and CLI setup for graderecorder.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"graderecorder.dev/pkg/graderecorder/internal/adapter"
	"graderecorder.dev/pkg/graderecorder/internal/controller"
	"graderecorder.dev/pkg/graderecorder/internal/domain"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// Process exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitCancelled = 2
)

var fsAdapter adapter.FSAdapter
var gradeSource adapter.GradeSource
var resultSink adapter.ResultSink
var reportStore adapter.ReportStore
var configStore domain.ConfigStore
var pipeline domain.Pipeline
var ui controller.UI

var gradesFlag string
var reportFlag string
var logFileFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	ui = newUI(rootCmd)
	fsAdapter = adapter.NewLocalFSAdapter()
	gradeSource = adapter.NewLocalGradeSource(fsAdapter)
	resultSink = adapter.NewLocalResultSink(fsAdapter)
	reportStore = adapter.NewReportStore(fsAdapter)
	configStore = domain.NewConfigStore(fsAdapter, ui, m.Path(viper.GetString(configDirKey)))
	pipeline = domain.NewPipeline(
		configStore,
		gradeSource,
		domain.NewGpaComputer(),
		resultSink,
		reportStore,
		ui,
	)
}

const rootLongDescription = `Grade Recorder reads a table of student grades (.csv, .txt or .xlsx),
computes a GPA for every student and writes the results next to its
configuration document (configuration.xml).

Pass the configuration folder as an argument, or leave it out to pick one
interactively. Output name, format (.xlsx, .xml, .csv, .txt), folders and the
scoring policy are stored in the configuration document; see
"graderecorder config".`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "graderecorder [config-dir]",
		Short:         "Compute student GPAs from a grades file",
		Long:          rootLongDescription,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var hint m.Path
			if len(args) == 1 {
				hint = m.Path(args[0])
			}

			report := pipeline.Run(cmd.Context(), domain.RunArgs{
				ConfigHint: hint,
				GradesFile: m.Path(viper.GetString(gradesKey)),
				ReportFile: m.Path(viper.GetString(reportKey)),
			})
			if report.Err != nil {
				return reportedError{err: report.Err}
			}

			return nil
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&gradesFlag, gradesFlagName, "g", "", "grades file to read (skips the file prompt)")
	bindFlagToConfig(cmd.Flags().Lookup(gradesFlagName), gradesKey)

	cmd.Flags().StringVar(&reportFlag, reportFlagName, "", "write a YAML run report to this path")
	bindFlagToConfig(cmd.Flags().Lookup(reportFlagName), reportKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, "", "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func newUI(cmd *cobra.Command) controller.UI {
	return controller.NewUI(cmd, controller.IsTTY(os.Stdout))
}

// reportedError is a failure the UI has already shown to the user.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, m.ErrUserCancelled):
		return exitCancelled
	default:
		return exitFailure
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		rootCmd.PrintErrln("Error:", err)
	}

	os.Exit(exitCode(err))
}
