package sim

import (
	"testing"

	"MoneySmartz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchJobs_ScalesWithExperience(t *testing.T) {
	p := player(28, "0")
	p.Education = model.HighSchoolGraduate
	s := newSession(p, WithRand(&scripted{floats: []float64{0.5, 0.5, 0.5, 0.5}}))

	offers, err := s.SearchJobs()
	require.NoError(t, err)
	require.Len(t, offers, 4)
	assert.Equal(t, "Retail Associate", offers[0].Title)
	assert.True(t, offers[0].Salary.Equal(d("32500")), offers[0].Salary.String())
	assert.Equal(t, offers, s.Offers())
}

func TestSearchJobs_EmployedNeedsARaise(t *testing.T) {
	p := employed(28, "0", 32000)
	s := newSession(p, WithRand(&scripted{floats: []float64{0.5, 0.5, 0.5, 0.5}}))

	offers, err := s.SearchJobs()
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "Warehouse Worker", offers[0].Title)
	assert.True(t, offers[0].Salary.Equal(d("36400")))
	assert.Equal(t, "Office Clerk", offers[1].Title)
}

func TestHireChance(t *testing.T) {
	tests := []struct {
		msg       string
		age       int
		education model.Education
		want      float64
	}{
		{"fresh high school graduate", 18, model.HighSchoolGraduate, 0.70},
		{"trade school", 18, model.TradeSchool, 0.80},
		{"ten years experience", 28, model.HighSchoolGraduate, 0.80},
		{"experience bonus is capped", 58, model.HighSchoolGraduate, 0.90},
		{"overall cap", 45, model.CollegeGraduate, 0.95},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			p := player(tt.age, "0")
			p.Education = tt.education
			assert.InDelta(t, tt.want, newSession(p).HireChance(), 1e-9)
		})
	}
}

func TestApplyForJob(t *testing.T) {
	p := player(28, "0")
	p.Education = model.HighSchoolGraduate
	rng := &scripted{floats: []float64{0.5, 0.5, 0.5, 0.5, 0.9}}
	s := newSession(p, WithRand(rng))

	_, err := s.ApplyForJob("Retail Associate")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.SearchJobs()
	require.NoError(t, err)

	hired, err := s.ApplyForJob("Retail Associate")
	require.NoError(t, err)
	assert.False(t, hired)
	assert.Len(t, s.Offers(), 4)

	hired, err = s.ApplyForJob("Retail Associate")
	require.NoError(t, err)
	assert.True(t, hired)

	snap := s.Snapshot()
	require.NotNil(t, snap.Employment)
	assert.True(t, snap.Employment.AnnualSalary.Equal(d("32500")))
	assert.Equal(t, 655, snap.CreditScore)
	assert.Empty(t, s.Offers())
}
