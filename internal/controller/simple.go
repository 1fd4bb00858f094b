package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// SimpleUI implements UI using cobra Command's input and output streams.
type SimpleUI struct {
	cmd    *cobra.Command
	reader *bufio.Reader
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// SelectPath prints a prompt and reads one line. An empty line cancels.
func (s *SimpleUI) SelectPath(ctx context.Context, req m.PathRequest) (m.Path, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.printf("%s\n", promptText(req))

	line, err := s.input().ReadString('\n')
	if err != nil && line == "" {
		// EOF without input counts as a cancelled selection.
		return "", false, nil
	}

	path := strings.TrimSpace(line)
	if path == "" {
		return "", false, nil
	}

	return m.Path(path), true, nil
}

// DisplayRowError prints a rejected row.
func (s *SimpleUI) DisplayRowError(ctx context.Context, rowErr m.RowError) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Skipped line %d (%s): %s\n", rowErr.Line, rowErr.StudentID, formatRowReason(rowErr))
}

// DisplayResults prints the computed GPAs as a table.
func (s *SimpleUI) DisplayResults(ctx context.Context, results []m.GpaResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderResultsTable(results))
}

// DisplaySettings prints the configuration settings as a table.
func (s *SimpleUI) DisplaySettings(ctx context.Context, file m.Path, settings []m.Setting) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Configuration: %s\n%s", file, renderSettingsTable(settings))
}

// DisplayOutcome prints the final result line.
func (s *SimpleUI) DisplayOutcome(_ context.Context, report m.RunReport) {
	if report.Err != nil && !report.Successful() {
		s.printf("Error: %v\n", report.Err)
	}

	if report.Successful() {
		s.printf("Wrote %d result(s) to %s\n", report.RowsWritten, report.OutputFile)
	}

	s.printf("Successful? %s\n", outcomeLabel(report))
}

// input returns the reader shared by every prompt.
func (s *SimpleUI) input() *bufio.Reader {
	if s.reader == nil {
		s.reader = bufio.NewReader(s.cmd.InOrStdin())
	}

	return s.reader
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func promptText(req m.PathRequest) string {
	var b strings.Builder

	b.WriteString(req.Title)

	if len(req.Extensions) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(req.Extensions, ", "))
	}

	if req.InitialDir != "" {
		fmt.Fprintf(&b, " (default folder: %s)", req.InitialDir)
	}

	b.WriteString(" - leave empty to cancel:")

	return b.String()
}

func formatRowReason(rowErr m.RowError) string {
	if rowErr.Field == "" {
		return rowErr.Reason
	}

	return fmt.Sprintf("%q %s", rowErr.Field, rowErr.Reason)
}

func renderResultsTable(results []m.GpaResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Student", "GPA"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, result := range results {
		table.Append([]string{result.StudentID, result.FormattedGPA()})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Students %d", len(results)), ""})

	table.Render()

	return tableBuffer.String()
}

func renderSettingsTable(settings []m.Setting) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Setting", "Value"})
	table.SetBorder(false)
	table.SetAutoFormatHeaders(false)

	for _, setting := range settings {
		table.Append([]string{setting.Name, setting.Value})
	}

	table.Render()

	return tableBuffer.String()
}
