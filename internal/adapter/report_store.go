package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// ReportStore persists run reports.
type ReportStore interface {
	SaveReport(path m.Path, report m.RunReport) error
	LoadReport(path m.Path) (m.RunReport, error)
}

// YAMLReportStore stores run reports as YAML documents.
type YAMLReportStore struct {
	fsAdapter FSAdapter
}

// NewReportStore constructs a YAML report store backed by fsAdapter.
func NewReportStore(fsAdapter FSAdapter) *YAMLReportStore {
	return &YAMLReportStore{fsAdapter: fsAdapter}
}

// SaveReport writes report to path, replacing any previous report.
func (s *YAMLReportStore) SaveReport(path m.Path, report m.RunReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	return s.fsAdapter.WriteFile(path, data)
}

// LoadReport reads a report written by SaveReport.
func (s *YAMLReportStore) LoadReport(path m.Path) (m.RunReport, error) {
	data, err := s.fsAdapter.ReadFile(path)
	if err != nil {
		return m.RunReport{}, err
	}

	var report m.RunReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.RunReport{}, fmt.Errorf("unmarshal report %s: %w", path, err)
	}

	return report, nil
}
