package domain

import (
	"time"

	"github.com/google/uuid"
)

type Run struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Code            string
	Description     string
	PickupHome      *time.Time
	PickupSchool    *time.Time
	DurationMinutes int
	Active          bool
}

// DefaultFor returns the run's recurring pickup time for the given leg,
// or nil when no default is recorded.
func (r Run) DefaultFor(leg Leg) *time.Time {
	switch leg {
	case LegHomeToSchool:
		return r.PickupHome
	case LegSchoolToHome:
		return r.PickupSchool
	default:
		return nil
	}
}
