package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	hintStyle    = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// TUI implements UI using Bubble Tea for interactive prompts.
type TUI struct {
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

// SelectPath runs an interactive text prompt. Esc or Ctrl+C cancels.
func (t *TUI) SelectPath(ctx context.Context, req m.PathRequest) (m.Path, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	program := tea.NewProgram(
		newPathPromptModel(req),
		tea.WithContext(ctx),
		tea.WithInput(t.cmd.InOrStdin()),
		tea.WithOutput(t.cmd.OutOrStdout()),
	)

	final, err := program.Run()
	if err != nil {
		return "", false, fmt.Errorf("path prompt: %w", err)
	}

	result, ok := final.(pathPromptModel)
	if !ok || result.cancelled {
		return "", false, nil
	}

	path := strings.TrimSpace(result.input.Value())
	if path == "" {
		return "", false, nil
	}

	return m.Path(path), true, nil
}

// DisplayRowError prints a rejected row.
func (t *TUI) DisplayRowError(ctx context.Context, rowErr m.RowError) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.printf("%s\n", warnStyle.Render(fmt.Sprintf("⚠ line %d (%s): %s", rowErr.Line, rowErr.StudentID, formatRowReason(rowErr))))
}

// DisplayResults prints the computed GPAs.
func (t *TUI) DisplayResults(ctx context.Context, results []m.GpaResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.printf("\n%s\n%s", titleStyle.Render("Computed GPAs"), renderResultsTable(results))
}

// DisplaySettings prints the configuration settings.
func (t *TUI) DisplaySettings(ctx context.Context, file m.Path, settings []m.Setting) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.printf("%s %s\n%s", titleStyle.Render("Configuration"), hintStyle.Render(string(file)), renderSettingsTable(settings))
}

// DisplayOutcome prints the final result line.
func (t *TUI) DisplayOutcome(_ context.Context, report m.RunReport) {
	if report.Successful() {
		t.printf("%s %s\n", hintStyle.Render(fmt.Sprintf("%d result(s) →", report.RowsWritten)), report.OutputFile)
		t.printf("Successful? %s\n", successStyle.Render(outcomeLabel(report)))

		return
	}

	if report.Err != nil {
		t.printf("%s\n", failureStyle.Render(report.Err.Error()))
	}

	t.printf("Successful? %s\n", failureStyle.Render(outcomeLabel(report)))
}

func (t *TUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(t.cmd.OutOrStdout(), format, args...)
}

// pathPromptModel is the Bubble Tea model for a single path prompt.
type pathPromptModel struct {
	req       m.PathRequest
	input     textinput.Model
	cancelled bool
	done      bool
}

func newPathPromptModel(req m.PathRequest) pathPromptModel {
	input := textinput.New()
	input.Placeholder = req.Kind.String() + " path"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Width = 60

	if req.InitialDir != "" {
		input.SetValue(string(req.InitialDir))
	}

	input.Focus()

	return pathPromptModel{req: req, input: input}
}

func (pm pathPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (pm pathPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // Only submit and cancel keys are handled here.
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			pm.cancelled = true
			return pm, tea.Quit
		case tea.KeyEnter:
			pm.done = true
			return pm, tea.Quit
		}
	}

	var cmd tea.Cmd

	pm.input, cmd = pm.input.Update(msg)

	return pm, cmd
}

func (pm pathPromptModel) View() string {
	if pm.done || pm.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(pm.req.Title))
	b.WriteString("\n")

	if len(pm.req.Extensions) > 0 {
		b.WriteString(hintStyle.Render("Accepted: " + strings.Join(pm.req.Extensions, ", ")))
		b.WriteString("\n")
	}

	b.WriteString(pm.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter to confirm • esc to cancel"))
	b.WriteString("\n")

	return b.String()
}
