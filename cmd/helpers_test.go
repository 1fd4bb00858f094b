package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newTestRoot builds a root command with every subcommand, writing logs to
// a temporary file and output to the returned buffer.
func newTestRoot(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "test.log"))
	t.Cleanup(func() { viper.Set(logFilenameKey, defaultLogFilename) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd(), newConfigCmd(), newVersionCmd())

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	return cmd, output
}
