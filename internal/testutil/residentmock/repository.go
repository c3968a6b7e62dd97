package residentmock

import (
	"context"

	domain "estate-access-service/internal/domain/resident"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, r *domain.Resident) error
	GetByIDFn         func(ctx context.Context, id uint64) (*domain.Resident, error)
	GetByNationalIDFn func(ctx context.Context, nationalID string) (*domain.Resident, error)
	ListFn            func(ctx context.Context) ([]domain.Resident, error)
	SaveFn            func(ctx context.Context, r *domain.Resident) error
}

func (m *Repo) Create(ctx context.Context, r *domain.Resident) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Resident, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByNationalID(ctx context.Context, nationalID string) (*domain.Resident, error) {
	if m.GetByNationalIDFn != nil {
		return m.GetByNationalIDFn(ctx, nationalID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context) ([]domain.Resident, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, r *domain.Resident) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
