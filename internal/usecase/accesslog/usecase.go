package accesslog

import (
	"context"
	"time"

	domainLog "estate-access-service/internal/domain/accesslog"
)

type RecordInput struct {
	UserID    *uint64 `json:"user_id"`
	Action    string  `json:"action" validate:"required"`
	Resource  string  `json:"resource"`
	IPAddress string  `json:"ip_address"`
	UserAgent string  `json:"user_agent"`
	Referrer  string  `json:"referrer"`
	Metadata  string  `json:"metadata"`
	LogType   string  `json:"log_type"`
}

type OverrideInput struct {
	GateID string `json:"gate_id" validate:"required"`
	Action string `json:"action" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type QueryResult struct {
	Logs  []domainLog.Entry `json:"logs"`
	Total int64             `json:"total"`
}

type Usecase struct {
	logs domainLog.Repository
}

func NewUsecase(logs domainLog.Repository) *Usecase { return &Usecase{logs: logs} }

// Record appends one entry and fails loudly; callers wanting best-effort
// semantics (gate side effects) log and swallow the error themselves.
func (u *Usecase) Record(ctx context.Context, in RecordInput) error {
	lt := domainLog.LogType(in.LogType)
	if lt == "" {
		lt = domainLog.LogTypeAccess
	}
	return u.logs.Append(ctx, &domainLog.Entry{
		TimestampUTC: time.Now().UTC(),
		UserID:       in.UserID,
		Action:       in.Action,
		Resource:     in.Resource,
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
		Referrer:     in.Referrer,
		Metadata:     in.Metadata,
		LogType:      lt,
	})
}

func (u *Usecase) Query(ctx context.Context, from, to time.Time, limit, offset int) (*QueryResult, error) {
	logs, total, err := u.logs.Query(ctx, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return &QueryResult{Logs: logs, Total: total}, nil
}

func (u *Usecase) DailyCounts(ctx context.Context, from, to time.Time) ([]domainLog.DailyCount, error) {
	return u.logs.DailyCounts(ctx, from, to)
}

func (u *Usecase) RecordOverride(ctx context.Context, userID uint64, in OverrideInput) (*domainLog.GateOverride, error) {
	o := &domainLog.GateOverride{
		GateID: in.GateID,
		Action: in.Action,
		Reason: in.Reason,
		UserID: userID,
	}
	if err := u.logs.AppendOverride(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (u *Usecase) ListOverrides(ctx context.Context) ([]domainLog.GateOverride, error) {
	return u.logs.ListOverrides(ctx)
}
