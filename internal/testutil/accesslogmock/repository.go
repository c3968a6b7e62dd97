package accesslogmock

import (
	"context"
	"time"

	domain "estate-access-service/internal/domain/accesslog"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	AppendFn         func(ctx context.Context, e *domain.Entry) error
	QueryFn          func(ctx context.Context, from, to time.Time, limit, offset int) ([]domain.Entry, int64, error)
	DailyCountsFn    func(ctx context.Context, from, to time.Time) ([]domain.DailyCount, error)
	AppendOverrideFn func(ctx context.Context, o *domain.GateOverride) error
	ListOverridesFn  func(ctx context.Context) ([]domain.GateOverride, error)
}

func (m *Repo) Append(ctx context.Context, e *domain.Entry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	return nil
}
func (m *Repo) Query(ctx context.Context, from, to time.Time, limit, offset int) ([]domain.Entry, int64, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, from, to, limit, offset)
	}
	return nil, 0, nil
}
func (m *Repo) DailyCounts(ctx context.Context, from, to time.Time) ([]domain.DailyCount, error) {
	if m.DailyCountsFn != nil {
		return m.DailyCountsFn(ctx, from, to)
	}
	return nil, nil
}
func (m *Repo) AppendOverride(ctx context.Context, o *domain.GateOverride) error {
	if m.AppendOverrideFn != nil {
		return m.AppendOverrideFn(ctx, o)
	}
	return nil
}
func (m *Repo) ListOverrides(ctx context.Context) ([]domain.GateOverride, error) {
	if m.ListOverridesFn != nil {
		return m.ListOverridesFn(ctx)
	}
	return nil, nil
}
