package model

import (
	"github.com/shopspring/decimal"
)

// GradeRow is one data row of a grades file.
type GradeRow struct {
	Line   int // 1-based row number in the source file
	Fields []string
}

// StudentID returns the identifier column of the row.
func (r GradeRow) StudentID() string {
	if len(r.Fields) == 0 {
		return ""
	}

	return r.Fields[0]
}

// Grades returns the grade columns of the row.
func (r GradeRow) Grades() []string {
	if len(r.Fields) < 2 {
		return nil
	}

	return r.Fields[1:]
}

// GpaResult is the computed GPA for a single row.
type GpaResult struct {
	StudentID string
	GPA       decimal.Decimal
	Source    GradeRow
}

// FormattedGPA returns the GPA with two decimal places.
func (r GpaResult) FormattedGPA() string {
	return r.GPA.StringFixed(2)
}

// RowError records a row that was rejected while computing GPAs.
type RowError struct {
	Line      int    `yaml:"line"`
	StudentID string `yaml:"student_id"`
	Field     string `yaml:"field,omitempty"`
	Reason    string `yaml:"reason"`
}
