package visitormock

import (
	"context"

	domain "estate-access-service/internal/domain/visitor"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                 func(ctx context.Context, p *domain.Pass) error
	GetByPassCodeFn          func(ctx context.Context, code string) (*domain.Pass, error)
	GetByPassCodeForUpdateFn func(ctx context.Context, code string) (*domain.Pass, error)
	ListByResidentFn         func(ctx context.Context, residentID uint64) ([]domain.Pass, error)
	ListFn                   func(ctx context.Context, status domain.Status) ([]domain.Pass, error)
	SaveFn                   func(ctx context.Context, p *domain.Pass) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Pass) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByPassCode(ctx context.Context, code string) (*domain.Pass, error) {
	if m.GetByPassCodeFn != nil {
		return m.GetByPassCodeFn(ctx, code)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByPassCodeForUpdate(ctx context.Context, code string) (*domain.Pass, error) {
	if m.GetByPassCodeForUpdateFn != nil {
		return m.GetByPassCodeForUpdateFn(ctx, code)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByResident(ctx context.Context, residentID uint64) ([]domain.Pass, error) {
	if m.ListByResidentFn != nil {
		return m.ListByResidentFn(ctx, residentID)
	}
	return nil, nil
}
func (m *Repo) List(ctx context.Context, status domain.Status) ([]domain.Pass, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Pass) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
