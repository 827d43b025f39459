package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=movement
type Repository interface {
	CreateMovement(ctx context.Context, m *Movement) error
	GetMovement(ctx context.Context, id, ownerID uuid.UUID) (*Movement, error)
	UpdateMovement(ctx context.Context, m *Movement) error
	DeleteMovement(ctx context.Context, id, ownerID uuid.UUID) error
	ListMovements(ctx context.Context, filter ListFilter) ([]*Movement, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	Category    Category
	Date        time.Time
	Notes       string
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, params CreateParams) (*Movement, error) {
	m := &Movement{
		OwnerID:     ownerID,
		Description: params.Description,
		Amount:      params.Amount,
		Category:    params.Category,
		Date:        params.Date,
		Notes:       params.Notes,
	}
	if err := validate(m, time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.CreateMovement(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Movement, error) {
	return s.repo.GetMovement(ctx, id, ownerID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Movement, error) {
	return s.repo.ListMovements(ctx, filter)
}

type UpdateParams struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *Category
	Date        *time.Time
	Notes       *string
}

// Update applies the non-nil fields of params to the stored movement and
// revalidates the merged result. The owner is reasserted, never changed.
func (s *Service) Update(ctx context.Context, ownerID, id uuid.UUID, params UpdateParams) (*Movement, error) {
	m, err := s.repo.GetMovement(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if params.Description != nil {
		m.Description = *params.Description
	}

	if params.Amount != nil {
		m.Amount = *params.Amount
	}

	if params.Category != nil {
		m.Category = *params.Category
	}

	if params.Date != nil {
		m.Date = *params.Date
	}

	if params.Notes != nil {
		m.Notes = *params.Notes
	}

	m.OwnerID = ownerID

	if err := validate(m, time.Now()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMovement(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteMovement(ctx, id, ownerID)
}
