package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

// ExceptionKey identifies the one exception that may exist for a
// (run, date, leg) cell. Dates are keyed by their YYYY-MM-DD form so that
// lookups are insensitive to the timestamp's location.
type ExceptionKey struct {
	RunID uuid.UUID
	Date  string
	Leg   domain.Leg
}

type ExceptionIndex map[ExceptionKey]domain.Exception

func BuildExceptionIndex(exceptions []domain.Exception) ExceptionIndex {
	index := make(ExceptionIndex, len(exceptions))
	for _, exc := range exceptions {
		index[exceptionKey(exc.RunID, exc.Date, exc.Leg)] = exc
	}
	return index
}

func exceptionKey(runID uuid.UUID, date time.Time, leg domain.Leg) ExceptionKey {
	return ExceptionKey{
		RunID: runID,
		Date:  domain.DateOf(date).Format("2006-01-02"),
		Leg:   leg,
	}
}

// Resolve computes the effective pickup time for one (run, leg, date) cell.
// An exception for the exact key wins wholesale over the recurring default;
// there is no merging within a leg. With neither an exception nor a default
// the result carries a nil time, which is not an error.
//
// Resolve reads no clock and does no I/O: the target date and the exception
// index both come from the caller.
func Resolve(run domain.Run, leg domain.Leg, targetDate time.Time, index ExceptionIndex) domain.ResolvedTime {
	if exc, ok := index[exceptionKey(run.ID, targetDate, leg)]; ok {
		t := exc.PickupTime
		return domain.ResolvedTime{Time: &t, Overridden: true, Note: exc.Note}
	}

	if def := run.DefaultFor(leg); def != nil {
		t := *def
		return domain.ResolvedTime{Time: &t}
	}

	return domain.ResolvedTime{}
}

// DateOn returns the calendar date of the given service weekday within the
// Monday-anchored week containing reference. A Sunday reference belongs to
// the week that started the previous Monday.
func DateOn(weekday domain.Weekday, reference time.Time) time.Time {
	ref := domain.DateOf(reference)
	sinceMonday := int(ref.Weekday()) - 1
	if ref.Weekday() == time.Sunday {
		sinceMonday = 6
	}
	monday := ref.AddDate(0, 0, -sinceMonday)
	return monday.AddDate(0, 0, int(weekday)-1)
}
