package domain

import (
	"time"

	"github.com/google/uuid"
)

// Exception overrides a run/leg's pickup time for one calendar date.
// At most one exists per (run, date, leg); the schedule_exceptions unique
// constraint enforces this.
type Exception struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	RunID      uuid.UUID
	Date       time.Time
	Leg        Leg
	PickupTime time.Time
	Note       string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
}
