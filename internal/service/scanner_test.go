package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

func TestScanUpcomingStrictNextDay(t *testing.T) {
	school := timeOfDay(15, 30)
	run := testRun("R7", nil, &school)
	runsByID := map[uuid.UUID]domain.Run{run.ID: run}

	exception := domain.Exception{
		ID:         uuid.New(),
		RunID:      run.ID,
		Date:       date(2024, time.March, 5),
		Leg:        domain.LegSchoolToHome,
		PickupTime: timeOfDay(14, 0),
		Note:       "Inset day",
	}

	// The day before: surfaced.
	changes := ScanUpcoming([]domain.Exception{exception}, runsByID, date(2024, time.March, 4))
	require.Len(t, changes, 1)
	assert.Equal(t, "R7", changes[0].RunCode)
	assert.Equal(t, "PM", changes[0].LegLabel)
	assert.Equal(t, timeOfDay(14, 0), changes[0].PickupTime)
	assert.Equal(t, "Inset day", changes[0].Note)

	// Two days before: not surfaced.
	assert.Empty(t, ScanUpcoming([]domain.Exception{exception}, runsByID, date(2024, time.March, 3)))

	// The day itself: not surfaced.
	assert.Empty(t, ScanUpcoming([]domain.Exception{exception}, runsByID, date(2024, time.March, 5)))

	// The day after: not surfaced.
	assert.Empty(t, ScanUpcoming([]domain.Exception{exception}, runsByID, date(2024, time.March, 6)))
}

func TestScanUpcomingKeepsStoreOrder(t *testing.T) {
	home := timeOfDay(8, 0)
	runA := testRun("R1", &home, nil)
	runB := testRun("R2", &home, nil)
	runsByID := map[uuid.UUID]domain.Run{runA.ID: runA, runB.ID: runB}

	tomorrow := date(2024, time.March, 5)
	exceptions := []domain.Exception{
		{ID: uuid.New(), RunID: runA.ID, Date: tomorrow, Leg: domain.LegHomeToSchool, PickupTime: timeOfDay(9, 0)},
		{ID: uuid.New(), RunID: runB.ID, Date: tomorrow, Leg: domain.LegSchoolToHome, PickupTime: timeOfDay(13, 0)},
		{ID: uuid.New(), RunID: runA.ID, Date: date(2024, time.March, 7), Leg: domain.LegSchoolToHome, PickupTime: timeOfDay(14, 0)},
	}

	changes := ScanUpcoming(exceptions, runsByID, date(2024, time.March, 4))
	require.Len(t, changes, 2)
	assert.Equal(t, "R1", changes[0].RunCode)
	assert.Equal(t, "R2", changes[1].RunCode)
}

func TestScanUpcomingIdempotent(t *testing.T) {
	school := timeOfDay(15, 30)
	run := testRun("R7", nil, &school)
	runsByID := map[uuid.UUID]domain.Run{run.ID: run}
	exceptions := []domain.Exception{{
		ID:         uuid.New(),
		RunID:      run.ID,
		Date:       date(2024, time.March, 5),
		Leg:        domain.LegSchoolToHome,
		PickupTime: timeOfDay(14, 0),
	}}

	first := ScanUpcoming(exceptions, runsByID, date(2024, time.March, 4))
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ScanUpcoming(exceptions, runsByID, date(2024, time.March, 4)))
	}
}

func TestScanUpcomingEmptyInput(t *testing.T) {
	changes := ScanUpcoming(nil, nil, date(2024, time.March, 4))
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}
