package accesslog

import (
	"context"
	"time"
)

type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// Query returns entries in [from, to] newest first, plus the total matched.
	Query(ctx context.Context, from, to time.Time, limit, offset int) ([]Entry, int64, error)
	// DailyCounts aggregates entries per day in [from, to], oldest first.
	DailyCounts(ctx context.Context, from, to time.Time) ([]DailyCount, error)
	AppendOverride(ctx context.Context, o *GateOverride) error
	ListOverrides(ctx context.Context) ([]GateOverride, error)
}
