package domain

import "github.com/google/uuid"

type Allocation struct {
	RunID     uuid.UUID
	CompanyID uuid.UUID
	Weekday   Weekday
	Leg       Leg
	DriverID  *uuid.UUID
	EscortID  *uuid.UUID
	Active    bool
}
