package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

type AllocationRepository interface {
	ListActive(ctx context.Context, companyID uuid.UUID) ([]domain.Allocation, error)
	ListByRun(ctx context.Context, companyID, runID uuid.UUID) ([]domain.Allocation, error)
}

type AllocationPostgresRepository struct {
	execer Execer
}

func NewAllocationPostgresRepository(execer Execer) *AllocationPostgresRepository {
	return &AllocationPostgresRepository{execer: execer}
}

func (r *AllocationPostgresRepository) ListActive(ctx context.Context, companyID uuid.UUID) ([]domain.Allocation, error) {
	const query = `
SELECT run_id, company_id, day_of_week, leg, driver_id, escort_id, active
FROM rota.allocations
WHERE company_id = $1 AND active
ORDER BY run_id, day_of_week, leg
`

	rows, err := r.execer.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func (r *AllocationPostgresRepository) ListByRun(ctx context.Context, companyID, runID uuid.UUID) ([]domain.Allocation, error) {
	const query = `
SELECT run_id, company_id, day_of_week, leg, driver_id, escort_id, active
FROM rota.allocations
WHERE company_id = $1 AND run_id = $2 AND active
ORDER BY day_of_week, leg
`

	rows, err := r.execer.QueryContext(ctx, query, companyID, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func collectAllocations(rows *sql.Rows) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	for rows.Next() {
		var alloc domain.Allocation
		var driverID uuid.NullUUID
		var escortID uuid.NullUUID
		if err := rows.Scan(
			&alloc.RunID,
			&alloc.CompanyID,
			&alloc.Weekday,
			&alloc.Leg,
			&driverID,
			&escortID,
			&alloc.Active,
		); err != nil {
			return nil, err
		}
		if driverID.Valid {
			id := driverID.UUID
			alloc.DriverID = &id
		}
		if escortID.Valid {
			id := escortID.UUID
			alloc.EscortID = &id
		}
		allocations = append(allocations, alloc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allocations, nil
}
