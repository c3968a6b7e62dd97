package membershipmock

import (
	"context"

	domain "estate-access-service/internal/domain/membership"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn                  func(ctx context.Context, r *domain.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*domain.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*domain.Request, error)
	GetOpenByNationalIDFn     func(ctx context.Context, nationalID string) (*domain.Request, error)
	ListFn                    func(ctx context.Context, status domain.Status) ([]domain.Request, error)
	ListUnsyncedFn            func(ctx context.Context) ([]domain.Request, error)
	CountFn                   func(ctx context.Context) (int64, error)
	SaveFn                    func(ctx context.Context, r *domain.Request) error
	ClaimStatusFn             func(ctx context.Context, requestID string, from, to domain.Status) (bool, error)
	ClaimRejectFn             func(ctx context.Context, requestID, reason string) (bool, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *Repo) GetByRequestID(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*domain.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetOpenByNationalID(ctx context.Context, nationalID string) (*domain.Request, error) {
	if m.GetOpenByNationalIDFn != nil {
		return m.GetOpenByNationalIDFn(ctx, nationalID)
	}
	return nil, context.Canceled
}
func (m *Repo) List(ctx context.Context, status domain.Status) ([]domain.Request, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, nil
}
func (m *Repo) ListUnsynced(ctx context.Context) ([]domain.Request, error) {
	if m.ListUnsyncedFn != nil {
		return m.ListUnsyncedFn(ctx)
	}
	return nil, nil
}
func (m *Repo) Count(ctx context.Context) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}
	return 0, nil
}
func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
func (m *Repo) ClaimStatus(ctx context.Context, requestID string, from, to domain.Status) (bool, error) {
	if m.ClaimStatusFn != nil {
		return m.ClaimStatusFn(ctx, requestID, from, to)
	}
	return false, nil
}
func (m *Repo) ClaimReject(ctx context.Context, requestID, reason string) (bool, error) {
	if m.ClaimRejectFn != nil {
		return m.ClaimRejectFn(ctx, requestID, reason)
	}
	return false, nil
}
