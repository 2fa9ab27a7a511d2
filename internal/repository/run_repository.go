package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

type RunRepository interface {
	GetByID(ctx context.Context, companyID, runID uuid.UUID) (domain.Run, error)
	ListActive(ctx context.Context, companyID uuid.UUID) ([]domain.Run, error)
}

type RunPostgresRepository struct {
	execer Execer
}

func NewRunPostgresRepository(execer Execer) *RunPostgresRepository {
	return &RunPostgresRepository{execer: execer}
}

func (r *RunPostgresRepository) GetByID(ctx context.Context, companyID, runID uuid.UUID) (domain.Run, error) {
	const query = `
SELECT id, company_id, code, description, pickup_home, pickup_school, duration_minutes, active
FROM rota.runs
WHERE company_id = $1 AND id = $2
`

	row := r.execer.QueryRowContext(ctx, query, companyID, runID)
	return scanRun(row.Scan)
}

func (r *RunPostgresRepository) ListActive(ctx context.Context, companyID uuid.UUID) ([]domain.Run, error) {
	const query = `
SELECT id, company_id, code, description, pickup_home, pickup_school, duration_minutes, active
FROM rota.runs
WHERE company_id = $1 AND active
ORDER BY code ASC
`

	rows, err := r.execer.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

func scanRun(scan func(dest ...any) error) (domain.Run, error) {
	var run domain.Run
	var pickupHome sql.NullTime
	var pickupSchool sql.NullTime
	if err := scan(
		&run.ID,
		&run.CompanyID,
		&run.Code,
		&run.Description,
		&pickupHome,
		&pickupSchool,
		&run.DurationMinutes,
		&run.Active,
	); err != nil {
		return domain.Run{}, err
	}
	if pickupHome.Valid {
		t := pickupHome.Time
		run.PickupHome = &t
	}
	if pickupSchool.Valid {
		t := pickupSchool.Time
		run.PickupSchool = &t
	}
	return run, nil
}
