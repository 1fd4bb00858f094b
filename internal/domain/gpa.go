package domain

import (
	"errors"
	"fmt"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// GpaComputer turns grade rows into GPA results.
type GpaComputer interface {
	Compute(row m.GradeRow, policy ScoringPolicy) (m.GpaResult, error)
}

type gpaComputer struct{}

// NewGpaComputer constructs a GpaComputer.
func NewGpaComputer() GpaComputer {
	return gpaComputer{}
}

func (gpaComputer) Compute(row m.GradeRow, policy ScoringPolicy) (m.GpaResult, error) {
	if row.StudentID() == "" {
		return m.GpaResult{}, fmt.Errorf("row %d: %w", row.Line, &GradeValueError{Reason: "missing student identifier"})
	}

	grades := row.Grades()
	if len(grades) == 0 {
		return m.GpaResult{}, fmt.Errorf("row %d (%s): %w", row.Line, row.StudentID(),
			&GradeValueError{Reason: "row has no grade fields"})
	}

	gpa, err := policy.Score(grades)
	if err != nil {
		return m.GpaResult{}, fmt.Errorf("row %d (%s): %w", row.Line, row.StudentID(), err)
	}

	source := m.GradeRow{Line: row.Line, Fields: append([]string(nil), row.Fields...)}

	return m.GpaResult{StudentID: row.StudentID(), GPA: gpa, Source: source}, nil
}

// newRowError describes a row rejected by Compute.
func newRowError(row m.GradeRow, err error) m.RowError {
	rowErr := m.RowError{Line: row.Line, StudentID: row.StudentID(), Reason: err.Error()}

	var gradeErr *GradeValueError
	if errors.As(err, &gradeErr) {
		rowErr.Field = gradeErr.Field
		rowErr.Reason = gradeErr.Reason
	}

	return rowErr
}
