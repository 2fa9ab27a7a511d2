package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

// ErrDuplicateKey reports a violation of the unique constraint on
// (run_id, exception_date, affected_leg). The service layer maps it to
// ErrConflict; it must stay distinguishable from other storage failures.
var ErrDuplicateKey = errors.New("duplicate exception key")

type ExceptionFilter struct {
	RunID *uuid.UUID
	From  *time.Time
	To    *time.Time
}

type ExceptionRepository interface {
	Insert(ctx context.Context, exception domain.Exception) error
	GetByID(ctx context.Context, companyID, id uuid.UUID) (domain.Exception, error)
	Update(ctx context.Context, exception domain.Exception) error
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, filter ExceptionFilter) ([]domain.Exception, error)
}

type ExceptionPostgresRepository struct {
	execer Execer
}

func NewExceptionPostgresRepository(execer Execer) *ExceptionPostgresRepository {
	return &ExceptionPostgresRepository{execer: execer}
}

func (r *ExceptionPostgresRepository) Insert(ctx context.Context, exception domain.Exception) error {
	const query = `
INSERT INTO rota.schedule_exceptions (
	id,
	company_id,
	run_id,
	exception_date,
	affected_leg,
	pickup_time,
	note,
	created_by,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

	_, err := r.execer.ExecContext(
		ctx,
		query,
		exception.ID,
		exception.CompanyID,
		exception.RunID,
		exception.Date,
		exception.Leg,
		exception.PickupTime,
		exception.Note,
		exception.CreatedBy,
		exception.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *ExceptionPostgresRepository) GetByID(ctx context.Context, companyID, id uuid.UUID) (domain.Exception, error) {
	const query = `
SELECT id, company_id, run_id, exception_date, affected_leg, pickup_time, note, created_by, created_at
FROM rota.schedule_exceptions
WHERE company_id = $1 AND id = $2
`

	var exc domain.Exception
	if err := r.execer.QueryRowContext(ctx, query, companyID, id).Scan(
		&exc.ID,
		&exc.CompanyID,
		&exc.RunID,
		&exc.Date,
		&exc.Leg,
		&exc.PickupTime,
		&exc.Note,
		&exc.CreatedBy,
		&exc.CreatedAt,
	); err != nil {
		return domain.Exception{}, err
	}

	return exc, nil
}

func (r *ExceptionPostgresRepository) Update(ctx context.Context, exception domain.Exception) error {
	const query = `
UPDATE rota.schedule_exceptions
SET exception_date = $3,
	affected_leg = $4,
	pickup_time = $5,
	note = $6
WHERE company_id = $1 AND id = $2
`

	result, err := r.execer.ExecContext(
		ctx,
		query,
		exception.CompanyID,
		exception.ID,
		exception.Date,
		exception.Leg,
		exception.PickupTime,
		exception.Note,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ExceptionPostgresRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	const query = `
DELETE FROM rota.schedule_exceptions
WHERE company_id = $1 AND id = $2
`

	result, err := r.execer.ExecContext(ctx, query, companyID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ExceptionPostgresRepository) List(ctx context.Context, companyID uuid.UUID, filter ExceptionFilter) ([]domain.Exception, error) {
	query := `
SELECT id, company_id, run_id, exception_date, affected_leg, pickup_time, note, created_by, created_at
FROM rota.schedule_exceptions
WHERE company_id = $1
`
	args := []any{companyID}

	if filter.RunID != nil {
		args = append(args, *filter.RunID)
		query += ` AND run_id = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND exception_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND exception_date <= $` + strconv.Itoa(len(args))
	}
	query += `
ORDER BY exception_date ASC, id ASC`

	rows, err := r.execer.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exceptions []domain.Exception
	for rows.Next() {
		var exc domain.Exception
		if err := rows.Scan(
			&exc.ID,
			&exc.CompanyID,
			&exc.RunID,
			&exc.Date,
			&exc.Leg,
			&exc.PickupTime,
			&exc.Note,
			&exc.CreatedBy,
			&exc.CreatedAt,
		); err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exceptions, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
