package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/repository"
)

// RotaService renders read views over the catalog and the exception store:
// the weekly grid and the next-day banner. All date anchoring starts from a
// caller-supplied reference date; nothing here reads the clock.
type RotaService struct {
	txManager repository.TxManager
}

func NewRotaService(txManager repository.TxManager) *RotaService {
	return &RotaService{txManager: txManager}
}

type allocationKey struct {
	RunID   uuid.UUID
	Weekday domain.Weekday
	Leg     domain.Leg
}

// WeekGrid resolves every (run, weekday, leg) cell of the calendar week
// containing referenceDate, applying override-over-default per cell and
// attaching the recurring staff allocation.
func (s *RotaService) WeekGrid(ctx context.Context, companyID uuid.UUID, referenceDate time.Time) ([]domain.RotaRow, error) {
	from := DateOn(domain.Monday, referenceDate)
	to := DateOn(domain.Friday, referenceDate)

	var grid []domain.RotaRow
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		runs, err := repos.Runs.ListActive(ctx, companyID)
		if err != nil {
			return err
		}
		allocations, err := repos.Allocations.ListActive(ctx, companyID)
		if err != nil {
			return err
		}
		exceptions, err := repos.Exceptions.List(ctx, companyID, repository.ExceptionFilter{From: &from, To: &to})
		if err != nil {
			return err
		}

		index := BuildExceptionIndex(exceptions)
		allocated := make(map[allocationKey]domain.Allocation, len(allocations))
		for _, alloc := range allocations {
			allocated[allocationKey{RunID: alloc.RunID, Weekday: alloc.Weekday, Leg: alloc.Leg}] = alloc
		}

		grid = make([]domain.RotaRow, 0, len(runs))
		for _, run := range runs {
			row := domain.RotaRow{Run: run}
			for weekday := domain.Monday; weekday <= domain.Friday; weekday++ {
				date := DateOn(weekday, referenceDate)
				for _, leg := range []domain.Leg{domain.LegHomeToSchool, domain.LegSchoolToHome} {
					resolved := Resolve(run, leg, date, index)
					cell := domain.RotaCell{
						Weekday:    weekday,
						Date:       date,
						Leg:        leg,
						Time:       resolved.Time,
						Overridden: resolved.Overridden,
						Note:       resolved.Note,
					}
					if alloc, ok := allocated[allocationKey{RunID: run.ID, Weekday: weekday, Leg: leg}]; ok {
						cell.DriverID = alloc.DriverID
						cell.EscortID = alloc.EscortID
					}
					row.Cells = append(row.Cells, cell)
				}
			}
			grid = append(grid, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return grid, nil
}

// UpcomingChanges lists the overrides taking effect the day after
// referenceDate, for the dashboard banner.
func (s *RotaService) UpcomingChanges(ctx context.Context, companyID uuid.UUID, referenceDate time.Time) ([]domain.UpcomingChange, error) {
	tomorrow := domain.DateOf(referenceDate).AddDate(0, 0, 1)

	var changes []domain.UpcomingChange
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		exceptions, err := repos.Exceptions.List(ctx, companyID, repository.ExceptionFilter{From: &tomorrow, To: &tomorrow})
		if err != nil {
			return err
		}
		if len(exceptions) == 0 {
			changes = []domain.UpcomingChange{}
			return nil
		}

		runs, err := repos.Runs.ListActive(ctx, companyID)
		if err != nil {
			return err
		}
		runsByID := make(map[uuid.UUID]domain.Run, len(runs))
		for _, run := range runs {
			runsByID[run.ID] = run
		}

		changes = ScanUpcoming(exceptions, runsByID, referenceDate)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return changes, nil
}
