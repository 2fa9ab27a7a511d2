package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/repository"
)

// In-memory repository doubles mirroring the Postgres behaviour the services
// depend on: sql.ErrNoRows for missing rows, ErrDuplicateKey for the unique
// constraint on (run, date, leg), and date-ascending list order.

type memStore struct {
	runs        map[uuid.UUID]domain.Run
	allocations []domain.Allocation
	exceptions  map[uuid.UUID]domain.Exception
}

func newMemStore() *memStore {
	return &memStore{
		runs:       make(map[uuid.UUID]domain.Run),
		exceptions: make(map[uuid.UUID]domain.Exception),
	}
}

type memTxManager struct {
	store *memStore
}

func (m *memTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	return fn(ctx, repository.TxRepositories{
		Runs:        &memRunRepository{store: m.store},
		Allocations: &memAllocationRepository{store: m.store},
		Exceptions:  &memExceptionRepository{store: m.store},
	})
}

type memRunRepository struct {
	store *memStore
}

func (r *memRunRepository) GetByID(_ context.Context, companyID, runID uuid.UUID) (domain.Run, error) {
	run, ok := r.store.runs[runID]
	if !ok || run.CompanyID != companyID {
		return domain.Run{}, sql.ErrNoRows
	}
	return run, nil
}

func (r *memRunRepository) ListActive(_ context.Context, companyID uuid.UUID) ([]domain.Run, error) {
	var runs []domain.Run
	for _, run := range r.store.runs {
		if run.CompanyID == companyID && run.Active {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Code < runs[j].Code })
	return runs, nil
}

type memAllocationRepository struct {
	store *memStore
}

func (r *memAllocationRepository) ListActive(_ context.Context, companyID uuid.UUID) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	for _, alloc := range r.store.allocations {
		if alloc.CompanyID == companyID && alloc.Active {
			allocations = append(allocations, alloc)
		}
	}
	return allocations, nil
}

func (r *memAllocationRepository) ListByRun(_ context.Context, companyID, runID uuid.UUID) ([]domain.Allocation, error) {
	var allocations []domain.Allocation
	for _, alloc := range r.store.allocations {
		if alloc.CompanyID == companyID && alloc.RunID == runID && alloc.Active {
			allocations = append(allocations, alloc)
		}
	}
	return allocations, nil
}

type memExceptionRepository struct {
	store *memStore
}

func (r *memExceptionRepository) Insert(_ context.Context, exception domain.Exception) error {
	for _, existing := range r.store.exceptions {
		if sameExceptionKey(existing, exception) {
			return repository.ErrDuplicateKey
		}
	}
	r.store.exceptions[exception.ID] = exception
	return nil
}

func (r *memExceptionRepository) GetByID(_ context.Context, companyID, id uuid.UUID) (domain.Exception, error) {
	exc, ok := r.store.exceptions[id]
	if !ok || exc.CompanyID != companyID {
		return domain.Exception{}, sql.ErrNoRows
	}
	return exc, nil
}

func (r *memExceptionRepository) Update(_ context.Context, exception domain.Exception) error {
	current, ok := r.store.exceptions[exception.ID]
	if !ok || current.CompanyID != exception.CompanyID {
		return sql.ErrNoRows
	}
	for id, existing := range r.store.exceptions {
		if id != exception.ID && sameExceptionKey(existing, exception) {
			return repository.ErrDuplicateKey
		}
	}
	r.store.exceptions[exception.ID] = exception
	return nil
}

func (r *memExceptionRepository) Delete(_ context.Context, companyID, id uuid.UUID) error {
	exc, ok := r.store.exceptions[id]
	if !ok || exc.CompanyID != companyID {
		return sql.ErrNoRows
	}
	delete(r.store.exceptions, id)
	return nil
}

func (r *memExceptionRepository) List(_ context.Context, companyID uuid.UUID, filter repository.ExceptionFilter) ([]domain.Exception, error) {
	var exceptions []domain.Exception
	for _, exc := range r.store.exceptions {
		if exc.CompanyID != companyID {
			continue
		}
		if filter.RunID != nil && exc.RunID != *filter.RunID {
			continue
		}
		if filter.From != nil && exc.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && exc.Date.After(*filter.To) {
			continue
		}
		exceptions = append(exceptions, exc)
	}
	sort.Slice(exceptions, func(i, j int) bool {
		if !exceptions[i].Date.Equal(exceptions[j].Date) {
			return exceptions[i].Date.Before(exceptions[j].Date)
		}
		return exceptions[i].ID.String() < exceptions[j].ID.String()
	})
	return exceptions, nil
}

func sameExceptionKey(a, b domain.Exception) bool {
	return a.RunID == b.RunID && a.Date.Equal(b.Date) && a.Leg == b.Leg
}

type stubIdentity struct {
	user IdentityUser
	err  error
}

func (s *stubIdentity) GetMe(context.Context, uuid.UUID) (IdentityUser, error) {
	if s.err != nil {
		return IdentityUser{}, s.err
	}
	return s.user, nil
}
