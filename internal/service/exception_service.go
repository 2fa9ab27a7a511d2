package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type IdentityClient interface {
	GetMe(ctx context.Context, userID uuid.UUID) (IdentityUser, error)
}

type IdentityUser struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Role      string
}

type CreateExceptionInput struct {
	RunID      uuid.UUID
	Date       time.Time
	Leg        domain.Leg
	PickupTime time.Time
	Note       string
}

// ExceptionPatch carries the fields an update may change; nil fields are
// left as they are. Last write wins, there is no version token.
type ExceptionPatch struct {
	Date       *time.Time
	Leg        *domain.Leg
	PickupTime *time.Time
	Note       *string
}

type ExceptionService struct {
	txManager repository.TxManager
	identity  IdentityClient
	clock     func() time.Time
}

func NewExceptionService(txManager repository.TxManager, identity IdentityClient) *ExceptionService {
	return &ExceptionService{
		txManager: txManager,
		identity:  identity,
		clock:     time.Now,
	}
}

func (s *ExceptionService) Create(ctx context.Context, actorID, companyID uuid.UUID, input CreateExceptionInput) (domain.Exception, error) {
	if input.RunID == uuid.Nil || input.Date.IsZero() || input.PickupTime.IsZero() || !input.Leg.Valid() {
		return domain.Exception{}, ErrInvalidInput
	}

	actor, err := s.requireManager(ctx, actorID, companyID)
	if err != nil {
		return domain.Exception{}, err
	}

	exception := domain.Exception{
		ID:         uuid.New(),
		CompanyID:  companyID,
		RunID:      input.RunID,
		Date:       domain.DateOf(input.Date),
		Leg:        input.Leg,
		PickupTime: asTimeOfDay(input.PickupTime),
		Note:       input.Note,
		CreatedBy:  actor.ID,
		CreatedAt:  s.clock().UTC(),
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if _, err := repos.Runs.GetByID(ctx, companyID, input.RunID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if err := repos.Exceptions.Insert(ctx, exception); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Exception{}, err
	}

	return exception, nil
}

func (s *ExceptionService) Update(ctx context.Context, actorID, companyID, id uuid.UUID, patch ExceptionPatch) (domain.Exception, error) {
	if patch.Date != nil && patch.Date.IsZero() {
		return domain.Exception{}, ErrInvalidInput
	}
	if patch.Leg != nil && !patch.Leg.Valid() {
		return domain.Exception{}, ErrInvalidInput
	}
	if patch.PickupTime != nil && patch.PickupTime.IsZero() {
		return domain.Exception{}, ErrInvalidInput
	}

	if _, err := s.requireManager(ctx, actorID, companyID); err != nil {
		return domain.Exception{}, err
	}

	var updated domain.Exception
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		exception, err := repos.Exceptions.GetByID(ctx, companyID, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}

		if patch.Date != nil {
			exception.Date = domain.DateOf(*patch.Date)
		}
		if patch.Leg != nil {
			exception.Leg = *patch.Leg
		}
		if patch.PickupTime != nil {
			exception.PickupTime = asTimeOfDay(*patch.PickupTime)
		}
		if patch.Note != nil {
			exception.Note = *patch.Note
		}

		if err := repos.Exceptions.Update(ctx, exception); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrConflict
			}
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		updated = exception
		return nil
	})
	if err != nil {
		return domain.Exception{}, err
	}

	return updated, nil
}

func (s *ExceptionService) Delete(ctx context.Context, actorID, companyID, id uuid.UUID) error {
	if _, err := s.requireManager(ctx, actorID, companyID); err != nil {
		return err
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := repos.Exceptions.Delete(ctx, companyID, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return nil
	})
}

func (s *ExceptionService) List(ctx context.Context, companyID uuid.UUID, filter repository.ExceptionFilter) ([]domain.Exception, error) {
	if filter.From != nil {
		from := domain.DateOf(*filter.From)
		filter.From = &from
	}
	if filter.To != nil {
		to := domain.DateOf(*filter.To)
		filter.To = &to
	}

	var exceptions []domain.Exception
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		exceptions, err = repos.Exceptions.List(ctx, companyID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	return exceptions, nil
}

func (s *ExceptionService) requireManager(ctx context.Context, actorID, companyID uuid.UUID) (IdentityUser, error) {
	user, err := s.identity.GetMe(ctx, actorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return IdentityUser{}, ErrNotFound
		}
		if errors.Is(err, ErrUnauthorized) {
			return IdentityUser{}, ErrUnauthorized
		}
		return IdentityUser{}, err
	}
	if user.Role != "manager" || user.CompanyID != companyID {
		return IdentityUser{}, ErrUnauthorized
	}
	return user, nil
}

// asTimeOfDay strips the calendar part so pickup times compare and store
// consistently as time-of-day values.
func asTimeOfDay(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}
