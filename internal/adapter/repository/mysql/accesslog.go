package mysql

import (
	"context"
	"time"

	logDomain "estate-access-service/internal/domain/accesslog"

	"gorm.io/gorm"
)

type AccessLogRepository struct{ db *gorm.DB }

func NewAccessLogRepository(db *gorm.DB) *AccessLogRepository { return &AccessLogRepository{db: db} }

func (r *AccessLogRepository) Append(ctx context.Context, e *logDomain.Entry) error {
	if e.TimestampUTC.IsZero() {
		e.TimestampUTC = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AccessLogRepository) Query(ctx context.Context, from, to time.Time, limit, offset int) ([]logDomain.Entry, int64, error) {
	q := r.db.WithContext(ctx).Model(&logDomain.Entry{})
	if !from.IsZero() {
		q = q.Where("timestamp_utc >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("timestamp_utc <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []logDomain.Entry
	q = q.Order("timestamp_utc DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	return out, total, q.Find(&out).Error
}

func (r *AccessLogRepository) DailyCounts(ctx context.Context, from, to time.Time) ([]logDomain.DailyCount, error) {
	q := r.db.WithContext(ctx).
		Model(&logDomain.Entry{}).
		Select("DATE(timestamp_utc) AS day, COUNT(*) AS count").
		Group("DATE(timestamp_utc)").
		Order("day ASC")
	if !from.IsZero() {
		q = q.Where("timestamp_utc >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("timestamp_utc <= ?", to)
	}
	var out []logDomain.DailyCount
	return out, q.Scan(&out).Error
}

func (r *AccessLogRepository) AppendOverride(ctx context.Context, o *logDomain.GateOverride) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *AccessLogRepository) ListOverrides(ctx context.Context) ([]logDomain.GateOverride, error) {
	var out []logDomain.GateOverride
	return out, r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
}
