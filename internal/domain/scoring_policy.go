package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

// Names of the built-in scoring policies.
const (
	PolicyMean     = "mean"
	PolicyLetter   = "letter"
	PolicyWeighted = "weighted"
)

// gpaPlaces is the number of decimal places GPAs are rounded to.
const gpaPlaces = 2

// ScoringPolicy maps the grade fields of a row to a GPA.
type ScoringPolicy interface {
	Name() string
	// Score returns the GPA for grades. Unusable fields fail with an error
	// wrapping m.ErrInvalidGradeValue.
	Score(grades []string) (decimal.Decimal, error)
}

// GradeValueError describes why a grade field was rejected.
type GradeValueError struct {
	Field  string
	Reason string
}

func (e *GradeValueError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", m.ErrInvalidGradeValue, e.Reason)
	}

	return fmt.Sprintf("%s %q: %s", m.ErrInvalidGradeValue, e.Field, e.Reason)
}

func (e *GradeValueError) Unwrap() error {
	return m.ErrInvalidGradeValue
}

var policies = map[string]ScoringPolicy{
	PolicyMean:     meanPolicy{},
	PolicyLetter:   letterPolicy{},
	PolicyWeighted: weightedPolicy{},
}

// LookupPolicy returns the registered policy called name.
func LookupPolicy(name string) (ScoringPolicy, error) {
	policy, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("unknown scoring policy %q (available: %s)", name, strings.Join(PolicyNames(), ", "))
	}

	return policy, nil
}

// PolicyNames returns the registered policy names, sorted.
func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// letterPoints is the 4.0 scale used for letter grades.
var letterPoints = map[string]decimal.Decimal{
	"A+": decimal.RequireFromString("4.0"),
	"A":  decimal.RequireFromString("4.0"),
	"A-": decimal.RequireFromString("3.7"),
	"B+": decimal.RequireFromString("3.3"),
	"B":  decimal.RequireFromString("3.0"),
	"B-": decimal.RequireFromString("2.7"),
	"C+": decimal.RequireFromString("2.3"),
	"C":  decimal.RequireFromString("2.0"),
	"C-": decimal.RequireFromString("1.7"),
	"D+": decimal.RequireFromString("1.3"),
	"D":  decimal.RequireFromString("1.0"),
	"D-": decimal.RequireFromString("0.7"),
	"F":  decimal.Zero,
}

// percentBands converts a percentage to grade points, highest band first.
var percentBands = []struct {
	min    decimal.Decimal
	points decimal.Decimal
}{
	{decimal.NewFromInt(93), letterPoints["A"]},
	{decimal.NewFromInt(90), letterPoints["A-"]},
	{decimal.NewFromInt(87), letterPoints["B+"]},
	{decimal.NewFromInt(83), letterPoints["B"]},
	{decimal.NewFromInt(80), letterPoints["B-"]},
	{decimal.NewFromInt(77), letterPoints["C+"]},
	{decimal.NewFromInt(73), letterPoints["C"]},
	{decimal.NewFromInt(70), letterPoints["C-"]},
	{decimal.NewFromInt(67), letterPoints["D+"]},
	{decimal.NewFromInt(63), letterPoints["D"]},
	{decimal.NewFromInt(60), letterPoints["D-"]},
}

func lookupLetter(field string) (decimal.Decimal, bool) {
	points, ok := letterPoints[strings.ToUpper(strings.TrimSpace(field))]
	return points, ok
}

// parseNumber parses a non-negative numeric grade. ok is false when field is
// not a number at all.
func parseNumber(field string) (value decimal.Decimal, ok bool, err error) {
	value, parseErr := decimal.NewFromString(strings.TrimSpace(field))
	if parseErr != nil {
		return decimal.Zero, false, nil
	}

	if value.IsNegative() {
		return decimal.Zero, true, &GradeValueError{Field: field, Reason: "negative grade"}
	}

	return value, true, nil
}

func percentToPoints(percent decimal.Decimal) decimal.Decimal {
	for _, band := range percentBands {
		if percent.GreaterThanOrEqual(band.min) {
			return band.points
		}
	}

	return decimal.Zero
}

// gradePoints converts a letter grade or a percentage to grade points.
func gradePoints(field string) (decimal.Decimal, error) {
	if points, ok := lookupLetter(field); ok {
		return points, nil
	}

	value, ok, err := parseNumber(field)
	if err != nil {
		return decimal.Zero, err
	}

	if !ok {
		return decimal.Zero, &GradeValueError{Field: field, Reason: "neither numeric nor a letter grade"}
	}

	return percentToPoints(value), nil
}

func average(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Sum(values[0], values[1:]...)
	return sum.DivRound(decimal.NewFromInt(int64(len(values))), gpaPlaces)
}

// meanPolicy averages the numeric fields. Letter grades are accepted and
// left out of the average.
type meanPolicy struct{}

func (meanPolicy) Name() string { return PolicyMean }

func (meanPolicy) Score(grades []string) (decimal.Decimal, error) {
	values := make([]decimal.Decimal, 0, len(grades))

	for _, field := range grades {
		value, ok, err := parseNumber(field)
		if err != nil {
			return decimal.Zero, err
		}

		if ok {
			values = append(values, value)
			continue
		}

		if _, isLetter := lookupLetter(field); !isLetter {
			return decimal.Zero, &GradeValueError{Field: field, Reason: "neither numeric nor a letter grade"}
		}
	}

	if len(values) == 0 {
		return decimal.Zero, &GradeValueError{Reason: "no numeric grades"}
	}

	return average(values), nil
}

// letterPolicy averages grade points on a 4.0 scale.
type letterPolicy struct{}

func (letterPolicy) Name() string { return PolicyLetter }

func (letterPolicy) Score(grades []string) (decimal.Decimal, error) {
	if len(grades) == 0 {
		return decimal.Zero, &GradeValueError{Reason: "no grades"}
	}

	points := make([]decimal.Decimal, 0, len(grades))

	for _, field := range grades {
		p, err := gradePoints(field)
		if err != nil {
			return decimal.Zero, err
		}

		points = append(points, p)
	}

	return average(points), nil
}

// weightedPolicy reads (grade, credit hours) pairs and weights grade points
// by credit hours.
type weightedPolicy struct{}

func (weightedPolicy) Name() string { return PolicyWeighted }

var errOddPairs = &GradeValueError{Reason: "expected grade and credit-hour pairs"}

func (weightedPolicy) Score(grades []string) (decimal.Decimal, error) {
	if len(grades) == 0 || len(grades)%2 != 0 {
		return decimal.Zero, errOddPairs
	}

	total := decimal.Zero
	credits := decimal.Zero

	for i := 0; i < len(grades); i += 2 {
		points, err := gradePoints(grades[i])
		if err != nil {
			return decimal.Zero, err
		}

		hours, ok, err := parseNumber(grades[i+1])
		if err != nil {
			return decimal.Zero, err
		}

		if !ok {
			return decimal.Zero, &GradeValueError{Field: grades[i+1], Reason: "credit hours must be numeric"}
		}

		total = total.Add(points.Mul(hours))
		credits = credits.Add(hours)
	}

	if credits.IsZero() {
		return decimal.Zero, &GradeValueError{Reason: "no credit hours"}
	}

	return total.DivRound(credits, gpaPlaces), nil
}

// IsGradeValueError reports whether err was caused by a rejected grade.
func IsGradeValueError(err error) bool {
	return errors.Is(err, m.ErrInvalidGradeValue)
}
