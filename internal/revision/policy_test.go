package revision

import (
	"testing"
	"time"

	"github.com/revisehub/revisehub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPlan() models.RevisionPlan {
	return models.RevisionPlan{
		"level1": 1,
		"level2": 2,
		"level3": 3,
		"level4": 4,
		"level5": 5,
	}
}

func TestParseStep(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"R1", 1},
		{"R3", 3},
		{"R5", 5},
		{"3", 3},
		{" R2 ", 2},
		{"", 1},
		{"garbage", 1},
		{"R0", 1},
		{"R9", 5},
		{"-2", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseStep(tc.token), "token %q", tc.token)
	}
}

func TestFormatStep(t *testing.T) {
	assert.Equal(t, "R1", FormatStep(0))
	assert.Equal(t, "R2", FormatStep(2))
	assert.Equal(t, "R5", FormatStep(7))
}

func TestNext_NeverPrecedesToday(t *testing.T) {
	today := time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC)
	plan := defaultPlan()
	for confidence := MinConfidence; confidence <= MaxConfidence; confidence++ {
		out := Next("R1", confidence, plan, today)
		require.True(t, out.NextDate > today.Format(DateLayout),
			"confidence %d produced %s", confidence, out.NextDate)
	}
}

func TestNext_UsesPlanOffsets(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	plan := models.RevisionPlan{
		"level1": 1, "level2": 2, "level3": 3, "level4": 4, "level5": 5,
	}

	// Question at step R2, rated 4 on 2024-01-10.
	out := Next("R2", 4, plan, today)
	assert.Equal(t, "2024-01-14", out.NextDate)
	assert.Equal(t, "R3", out.NextStep)
}

func TestNext_MissingPlanKeyFallsBackToConfidence(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	plan := models.RevisionPlan{"level1": 10}

	out := Next("R1", 3, plan, today)
	assert.Equal(t, "2024-01-13", out.NextDate)
}

func TestNext_StepSaturatesAtFive(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	plan := defaultPlan()

	for confidence := MinConfidence; confidence <= MaxConfidence; confidence++ {
		out := Next("R5", confidence, plan, today)
		assert.Equal(t, "R5", out.NextStep)
	}
}

func TestNext_MalformedStepTreatedAsFirst(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	out := Next("not-a-step", 2, defaultPlan(), today)
	assert.Equal(t, "R2", out.NextStep)
}

func TestNext_StepIsMonotonic(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	plan := defaultPlan()

	token := "R1"
	for i := 0; i < 8; i++ {
		out := Next(token, 3, plan, today)
		require.GreaterOrEqual(t, ParseStep(out.NextStep), ParseStep(token))
		token = out.NextStep
	}
	assert.Equal(t, "R5", token)
}

func TestDueOn(t *testing.T) {
	today := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	assert.True(t, DueOn("2024-06-15", today), "due today is included")
	assert.True(t, DueOn("2024-06-01", today), "overdue is included")
	assert.False(t, DueOn("2024-06-16", today), "tomorrow is excluded")
	assert.False(t, DueOn("", today), "missing date is excluded")
}

func TestValidConfidence(t *testing.T) {
	assert.False(t, ValidConfidence(0))
	assert.True(t, ValidConfidence(1))
	assert.True(t, ValidConfidence(5))
	assert.False(t, ValidConfidence(6))
}
