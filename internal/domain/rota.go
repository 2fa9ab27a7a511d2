package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResolvedTime is the effective pickup time for one (run, leg, date) cell
// after applying override-over-default resolution. Time is nil when the run
// has no recorded default and no override for the leg; the caller renders a
// placeholder.
type ResolvedTime struct {
	Time       *time.Time
	Overridden bool
	Note       string
}

// RotaCell is one weekday/leg cell of the weekly grid.
type RotaCell struct {
	Weekday    Weekday
	Date       time.Time
	Leg        Leg
	Time       *time.Time
	Overridden bool
	Note       string
	DriverID   *uuid.UUID
	EscortID   *uuid.UUID
}

type RotaRow struct {
	Run   Run
	Cells []RotaCell
}

// UpcomingChange is one entry of the next-day banner.
type UpcomingChange struct {
	RunCode    string
	LegLabel   string
	PickupTime time.Time
	Note       string
}
