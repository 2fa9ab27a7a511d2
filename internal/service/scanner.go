package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

// ScanUpcoming selects the exceptions landing exactly one day after
// referenceDate, in the order the store listed them. Entries dated
// referenceDate itself, or two or more days out, are not surfaced; the
// banner is strictly next-day.
func ScanUpcoming(exceptions []domain.Exception, runsByID map[uuid.UUID]domain.Run, referenceDate time.Time) []domain.UpcomingChange {
	tomorrow := domain.DateOf(referenceDate).AddDate(0, 0, 1)

	changes := make([]domain.UpcomingChange, 0)
	for _, exc := range exceptions {
		if !domain.DateOf(exc.Date).Equal(tomorrow) {
			continue
		}
		var code string
		if run, ok := runsByID[exc.RunID]; ok {
			code = run.Code
		}
		changes = append(changes, domain.UpcomingChange{
			RunCode:    code,
			LegLabel:   exc.Leg.Label(),
			PickupTime: exc.PickupTime,
			Note:       exc.Note,
		})
	}
	return changes
}
