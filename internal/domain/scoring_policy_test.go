package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graderecorder.dev/pkg/graderecorder/internal/domain"
	m "graderecorder.dev/pkg/graderecorder/internal/model"
)

func TestScoringPolicies(t *testing.T) {
	tests := []struct {
		policy  string
		grades  []string
		want    string
		wantErr bool
	}{
		{domain.PolicyMean, []string{"90", "80", "100"}, "90.00", false},
		{domain.PolicyMean, []string{"70", "75", "65"}, "70.00", false},
		{domain.PolicyMean, []string{"1", "2"}, "1.50", false},
		{domain.PolicyMean, []string{"2", "2", "3"}, "2.33", false},
		{domain.PolicyMean, []string{"1", "2", "2.015"}, "1.67", false},
		{domain.PolicyMean, []string{"0.125", "0.125"}, "0.13", false},
		{domain.PolicyMean, []string{"0.0149999999999999997"}, "0.01", false},
		{domain.PolicyMean, []string{"0.0149999999999999997", "0.0149999999999999997"}, "0.01", false},
		{domain.PolicyMean, []string{"90", "A", "70"}, "80.00", false},
		{domain.PolicyMean, []string{"90", "xyz"}, "", true},
		{domain.PolicyMean, []string{"A", "B"}, "", true},
		{domain.PolicyMean, []string{"-5", "90"}, "", true},
		{domain.PolicyLetter, []string{"A", "B"}, "3.50", false},
		{domain.PolicyLetter, []string{"a-", "b+", "F"}, "2.33", false},
		{domain.PolicyLetter, []string{"95", "85", "72"}, "2.90", false},
		{domain.PolicyLetter, []string{"A", "zz"}, "", true},
		{domain.PolicyWeighted, []string{"A", "3", "C", "1"}, "3.50", false},
		{domain.PolicyWeighted, []string{"B", "4"}, "3.00", false},
		{domain.PolicyWeighted, []string{"A", "3", "B"}, "", true},
		{domain.PolicyWeighted, []string{"A", "x"}, "", true},
		{domain.PolicyWeighted, []string{"A", "0"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			policy, err := domain.LookupPolicy(tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.policy, policy.Name())

			got, err := policy.Score(tt.grades)
			if tt.wantErr {
				require.ErrorIs(t, err, m.ErrInvalidGradeValue, "%v", tt.grades)
				assert.True(t, domain.IsGradeValueError(err))

				return
			}

			require.NoError(t, err, "%v", tt.grades)
			assert.Equal(t, tt.want, got.StringFixed(2), "%v", tt.grades)
		})
	}
}

func TestLookupPolicy_Unknown(t *testing.T) {
	_, err := domain.LookupPolicy("median")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "letter, mean, weighted")
}

func TestPolicyNames(t *testing.T) {
	assert.Equal(t, []string{"letter", "mean", "weighted"}, domain.PolicyNames())
}

func TestGradeValueError_Message(t *testing.T) {
	err := &domain.GradeValueError{Field: "xyz", Reason: "neither numeric nor a letter grade"}
	assert.Equal(t, `invalid grade value "xyz": neither numeric nor a letter grade`, err.Error())
}
