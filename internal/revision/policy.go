// Package revision implements the scheduling policy for spaced revision:
// converting a confidence rating into the next due date and revision step,
// and deciding which questions are due on a given day.
package revision

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/revisehub/revisehub/internal/models"
)

// Step bounds for the revision cycle ordinal.
const (
	MinStep = 1
	MaxStep = 5
)

// Confidence rating bounds.
const (
	MinConfidence = 1
	MaxConfidence = 5
)

// DateLayout is the ISO calendar-date format used for due dates. Dates in
// this layout compare correctly as plain strings.
const DateLayout = "2006-01-02"

// Outcome carries the policy-computed fields to persist after a rating.
type Outcome struct {
	NextDate string // Next due date, YYYY-MM-DD.
	NextStep string // Next revision step token, R1..R5.
}

// ParseStep converts a stored step token ("R3", or a bare "3") to the bounded
// ordinal. Malformed or absent input degrades to MinStep rather than failing.
func ParseStep(token string) int {
	raw := strings.TrimPrefix(strings.TrimSpace(token), "R")
	step, errParse := strconv.Atoi(raw)
	if errParse != nil || step < MinStep {
		return MinStep
	}
	if step > MaxStep {
		return MaxStep
	}
	return step
}

// FormatStep renders a bounded ordinal as the stored token format.
func FormatStep(step int) string {
	if step < MinStep {
		step = MinStep
	}
	if step > MaxStep {
		step = MaxStep
	}
	return fmt.Sprintf("R%d", step)
}

// Next computes the outcome of rating a question. The day offset comes from
// the plan entry for the chosen confidence; when that key is absent the raw
// confidence value is used as the offset. The step advances by one and
// saturates at MaxStep.
func Next(stepToken string, confidence int, plan models.RevisionPlan, today time.Time) Outcome {
	days, ok := plan.Days(confidence)
	if !ok {
		days = confidence
	}

	step := ParseStep(stepToken)
	if step < MaxStep {
		step++
	}

	return Outcome{
		NextDate: today.AddDate(0, 0, days).Format(DateLayout),
		NextStep: FormatStep(step),
	}
}

// DueOn reports whether a question with the given next due date is due on
// the given day: a non-empty date on or before that day.
func DueOn(nextDate string, today time.Time) bool {
	if nextDate == "" {
		return false
	}
	return nextDate <= today.Format(DateLayout)
}

// ValidConfidence reports whether a rating is within bounds.
func ValidConfidence(confidence int) bool {
	return confidence >= MinConfidence && confidence <= MaxConfidence
}
