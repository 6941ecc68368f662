// Package settings holds application-level setting keys and defaults.
package settings

import "github.com/revisehub/revisehub/internal/models"

// Default day offsets per confidence level, used until a user saves a plan.
const (
	DefaultLevel1Days = 1
	DefaultLevel2Days = 2
	DefaultLevel3Days = 3
	DefaultLevel4Days = 4
	DefaultLevel5Days = 5
)

// DefaultRevisionPlan returns a fresh copy of the default plan.
func DefaultRevisionPlan() models.RevisionPlan {
	return models.RevisionPlan{
		"level1": DefaultLevel1Days,
		"level2": DefaultLevel2Days,
		"level3": DefaultLevel3Days,
		"level4": DefaultLevel4Days,
		"level5": DefaultLevel5Days,
	}
}
