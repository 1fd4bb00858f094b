package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"graderecorder.dev/pkg/graderecorder/internal/adapter"
	"graderecorder.dev/pkg/graderecorder/internal/controller"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// RunArgs holds the inputs of one pipeline run. Empty fields fall back to
// interactive selection or to the stored configuration.
type RunArgs struct {
	// ConfigHint is the configuration directory. Empty asks the user.
	ConfigHint m.Path
	// GradesFile skips the grades file prompt when set.
	GradesFile m.Path
	// ReportFile persists a YAML run report when set.
	ReportFile m.Path
}

// Pipeline runs the config → read → compute → write flow.
type Pipeline interface {
	// Run never panics and never returns an error; the outcome is in the
	// returned report.
	Run(ctx context.Context, args RunArgs) m.RunReport
}

type pipeline struct {
	ConfigStore
	adapter.GradeSource
	GpaComputer
	adapter.ResultSink
	adapter.ReportStore
	controller.UI

	now func() time.Time
}

// NewPipeline creates a Pipeline from its collaborators.
func NewPipeline(
	configStore ConfigStore,
	source adapter.GradeSource,
	computer GpaComputer,
	sink adapter.ResultSink,
	reports adapter.ReportStore,
	ui controller.UI,
) Pipeline {
	return &pipeline{
		ConfigStore: configStore,
		GradeSource: source,
		GpaComputer: computer,
		ResultSink:  sink,
		ReportStore: reports,
		UI:          ui,
		now:         time.Now,
	}
}

// run tracks the state of a single Run call.
type run struct {
	report m.RunReport
}

func (r *run) advance(state m.PipelineState) {
	slog.Debug("pipeline state", "from", r.report.State, "to", state)
	r.report.State = state
}

func (r *run) fail(err error) {
	if r.report.State == m.StateFailed {
		return
	}

	r.report.FailedIn = r.report.State
	r.report.State = m.StateFailed
	r.report.Err = err
	r.report.Message = err.Error()

	slog.Error("pipeline failed", "state", r.report.FailedIn, "error", err)
}

func (p *pipeline) Run(ctx context.Context, args RunArgs) (report m.RunReport) {
	r := &run{report: m.RunReport{State: m.StateIdle, StartedAt: p.now()}}

	defer func() {
		if recovered := recover(); recovered != nil {
			r.fail(fmt.Errorf("pipeline panic: %v", recovered))
		}

		r.report.FinishedAt = p.now()
		p.finish(ctx, args, &r.report)
		report = r.report
	}()

	session, err := p.ConfigStore.Open(ctx, args.ConfigHint)
	if err != nil {
		r.fail(fmt.Errorf("resolve configuration: %w", err))
		return r.report
	}

	defer func() {
		if closeErr := session.Close(ctx); closeErr != nil {
			r.fail(fmt.Errorf("save configuration: %w", closeErr))
		}
	}()

	cfg := session.Config()
	r.report.ConfigFile = cfg.ConfigFile()
	r.report.Policy = cfg.ScoringPolicy()
	r.advance(m.StateConfigResolved)

	if err := p.execute(ctx, r, cfg, args); err != nil {
		r.fail(err)
	}

	return r.report
}

func (p *pipeline) execute(ctx context.Context, r *run, cfg *Configuration, args RunArgs) error {
	policy, err := LookupPolicy(cfg.ScoringPolicy())
	if err != nil {
		return err
	}

	if !p.Supports(cfg.OutputFileExt()) {
		return fmt.Errorf("output extension %q: %w", cfg.OutputFileExt(), m.ErrUnsupportedFormat)
	}

	gradesFile, err := p.selectGrades(ctx, cfg, args.GradesFile)
	if err != nil {
		return err
	}

	r.report.GradesFile = gradesFile

	stream, err := p.GradeSource.Open(ctx, gradesFile)
	if err != nil {
		return fmt.Errorf("open grades: %w", err)
	}

	defer func() { _ = stream.Close() }()

	if err := cfg.SetGradesPath(m.Path(filepath.Dir(string(gradesFile)))); err != nil {
		slog.Warn("could not remember grades directory", "path", gradesFile, "error", err)
	}

	r.advance(m.StateSourceOpened)

	results, err := p.computeAll(ctx, r, stream, policy)
	if err != nil {
		return err
	}

	r.advance(m.StateComputed)

	outputFile := cfg.OutputFile()
	if err := p.Write(ctx, results, outputFile); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	r.report.OutputFile = outputFile
	r.report.RowsWritten = len(results)
	r.report.Results = results
	r.advance(m.StateWritten)

	p.DisplayResults(ctx, results)

	if err := stream.Close(); err != nil {
		return fmt.Errorf("close grades: %w", err)
	}

	r.advance(m.StateDone)

	slog.Info("pipeline finished", "grades", gradesFile, "output", outputFile, "rows", len(results))

	return nil
}

// selectGrades returns the grades file, prompting when none was given.
func (p *pipeline) selectGrades(ctx context.Context, cfg *Configuration, given m.Path) (m.Path, error) {
	path := given

	if path == "" {
		selected, ok, err := p.SelectPath(ctx, m.PathRequest{
			Kind:       m.PathKindFile,
			Title:      "Choose the file containing the grades",
			InitialDir: cfg.GradesPath(),
			Extensions: adapter.GradeFileExtensions,
		})
		if err != nil {
			return "", fmt.Errorf("select grades: %w", err)
		}

		if !ok {
			return "", fmt.Errorf("select grades: %w", m.ErrUserCancelled)
		}

		path = selected
	}

	return path, nil
}

func (p *pipeline) computeAll(
	ctx context.Context,
	r *run,
	stream adapter.RowStream,
	policy ScoringPolicy,
) ([]m.GpaResult, error) {
	var results []m.GpaResult

	for row, err := range stream.Rows(ctx) {
		if err != nil {
			return nil, fmt.Errorf("read grades: %w", err)
		}

		r.report.RowsRead++

		result, err := p.Compute(row, policy)
		if err != nil {
			if !IsGradeValueError(err) {
				return nil, err
			}

			rowErr := newRowError(row, err)
			r.report.RowErrors = append(r.report.RowErrors, rowErr)
			r.report.RowsSkipped++

			slog.Warn("skipping row", "line", row.Line, "student", rowErr.StudentID, "reason", rowErr.Reason)
			p.DisplayRowError(ctx, rowErr)

			continue
		}

		results = append(results, result)
	}

	r.report.RowsSkipped += stream.Skipped()

	return results, nil
}

// finish persists the run report and shows the outcome.
func (p *pipeline) finish(ctx context.Context, args RunArgs, report *m.RunReport) {
	if args.ReportFile != "" && p.ReportStore != nil {
		if err := p.SaveReport(args.ReportFile, *report); err != nil {
			slog.Error("failed to save run report", "path", args.ReportFile, "error", err)
		}
	}

	p.DisplayOutcome(ctx, *report)
}
