package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRevisionPlan marks plans rejected by Validate.
var ErrInvalidRevisionPlan = errors.New("invalid revision plan")

// RevisionPlan maps confidence level keys (level1..level5) to the number of
// days until the next review. Stored as a JSON object column.
type RevisionPlan map[string]int

// LevelKey returns the plan key for a confidence level, e.g. "level3".
func LevelKey(confidence int) string {
	return fmt.Sprintf("level%d", confidence)
}

// Days returns the day offset configured for a confidence level and whether
// the level key is present in the plan.
func (p RevisionPlan) Days(confidence int) (int, bool) {
	if p == nil {
		return 0, false
	}
	days, ok := p[LevelKey(confidence)]
	return days, ok
}

// Validate checks that all five level keys are present with positive values.
func (p RevisionPlan) Validate() error {
	for level := 1; level <= 5; level++ {
		key := LevelKey(level)
		days, ok := p[key]
		if !ok {
			return fmt.Errorf("%w: missing key %q", ErrInvalidRevisionPlan, key)
		}
		if days <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", ErrInvalidRevisionPlan, key)
		}
	}
	return nil
}

// Value implements driver.Valuer for database serialization.
func (p RevisionPlan) Value() (driver.Value, error) {
	data, errMarshal := json.Marshal(map[string]int(p))
	if errMarshal != nil {
		return nil, fmt.Errorf("revision plan marshal: %w", errMarshal)
	}
	return data, nil
}

// Scan implements sql.Scanner for database deserialization.
func (p *RevisionPlan) Scan(value any) error {
	if p == nil {
		return fmt.Errorf("revision plan scan: nil receiver")
	}
	if value == nil {
		*p = RevisionPlan{}
		return nil
	}

	switch typed := value.(type) {
	case []byte:
		return parseRevisionPlanFromBytes(p, typed)
	case string:
		return parseRevisionPlanFromBytes(p, []byte(typed))
	default:
		return fmt.Errorf("revision plan scan: unsupported type %T", value)
	}
}

func parseRevisionPlanFromBytes(target *RevisionPlan, data []byte) error {
	if len(data) == 0 {
		*target = RevisionPlan{}
		return nil
	}
	var plan map[string]int
	if errUnmarshal := json.Unmarshal(data, &plan); errUnmarshal != nil {
		return fmt.Errorf("revision plan scan: %w", errUnmarshal)
	}
	*target = RevisionPlan(plan)
	return nil
}
