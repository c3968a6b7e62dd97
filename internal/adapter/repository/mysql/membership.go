package mysql

import (
	"context"
	"time"

	membershipDomain "estate-access-service/internal/domain/membership"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *membershipDomain.Request) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MembershipRepository) Save(ctx context.Context, m *membershipDomain.Request) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MembershipRepository) GetByRequestID(ctx context.Context, requestID string) (*membershipDomain.Request, error) {
	var out membershipDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *MembershipRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*membershipDomain.Request, error) {
	var out membershipDomain.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("request_id = ?", requestID).
		First(&out)
	return &out, res.Error
}

func (r *MembershipRepository) GetOpenByNationalID(ctx context.Context, nationalID string) (*membershipDomain.Request, error) {
	var out membershipDomain.Request
	res := r.db.WithContext(ctx).
		Where("national_id = ? AND status <> ?", nationalID, membershipDomain.StatusRejected).
		Order("requested_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *MembershipRepository) List(ctx context.Context, status membershipDomain.Status) ([]membershipDomain.Request, error) {
	var out []membershipDomain.Request
	q := r.db.WithContext(ctx).Order("requested_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Find(&out).Error
}

func (r *MembershipRepository) ListUnsynced(ctx context.Context) ([]membershipDomain.Request, error) {
	var out []membershipDomain.Request
	res := r.db.WithContext(ctx).
		Where("status = ? AND record_id IS NULL", membershipDomain.StatusApproved).
		Order("requested_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *MembershipRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&membershipDomain.Request{}).Count(&n).Error
	return n, err
}

// ClaimStatus is the atomic claim primitive for shared state transitions:
// the conditional UPDATE either wins the row or affects nothing.
func (r *MembershipRepository) ClaimStatus(ctx context.Context, requestID string, from, to membershipDomain.Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&membershipDomain.Request{}).
		Where("request_id = ? AND status = ?", requestID, from).
		Updates(map[string]any{"status": to, "processed_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ClaimReject rejects a pending request and records the reason in one
// conditional UPDATE so the reason can never be lost between two writes.
func (r *MembershipRepository) ClaimReject(ctx context.Context, requestID, reason string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&membershipDomain.Request{}).
		Where("request_id = ? AND status = ?", requestID, membershipDomain.StatusPending).
		Updates(map[string]any{
			"status":        membershipDomain.StatusRejected,
			"reject_reason": reason,
			"processed_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
