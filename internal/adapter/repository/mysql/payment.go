package mysql

import (
	"context"
	"time"

	paymentDomain "estate-access-service/internal/domain/payment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		First(&out)
	return &out, res.Error
}

func (r *PaymentRepository) ListByResident(ctx context.Context, residentID uint64) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	res := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("payment_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *PaymentRepository) List(ctx context.Context) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	return out, r.db.WithContext(ctx).Order("payment_date DESC, id DESC").Find(&out).Error
}

// ClaimCallback settles the pending payment matched by the provider correlation
// id. A zero rows-affected result means the callback lost the race (or refers
// to an unknown push) and must be discarded by the caller.
func (r *PaymentRepository) ClaimCallback(ctx context.Context, checkoutRequestID string, to paymentDomain.Status, receipt, failReason string) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":       to,
		"payment_date": now,
	}
	if receipt != "" {
		updates["mpesa_receipt"] = receipt
	}
	if failReason != "" {
		updates["fail_reason"] = failReason
	}
	res := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, paymentDomain.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *PaymentRepository) CreateVerified(ctx context.Context, v *paymentDomain.VerifiedPayment) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PaymentRepository) GetVerifiedByPaymentID(ctx context.Context, paymentID string) (*paymentDomain.VerifiedPayment, error) {
	var out paymentDomain.VerifiedPayment
	res := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&out)
	return &out, res.Error
}

// Balances recomputes totals fresh from verified money only: payments still in
// status verified, plus the verified_payments rows left behind by archiving.
// Pending and failed rows never count; archived payments count exactly once,
// through their verified_payments copy.
func (r *PaymentRepository) Balances(ctx context.Context, residentID uint64) ([]paymentDomain.Balance, error) {
	const verifiedAmounts = `SELECT resident_id, amount FROM payments WHERE status = 'verified' AND deleted_at IS NULL
		UNION ALL SELECT resident_id, amount FROM verified_payments`

	var out []paymentDomain.Balance
	q := r.db.WithContext(ctx).
		Table("residents").
		Select(`residents.id AS resident_id,
			COALESCE(SUM(vp.amount), 0) AS total_paid,
			residents.total_due AS total_due,
			residents.total_due - COALESCE(SUM(vp.amount), 0) AS balance`).
		Joins("LEFT JOIN (" + verifiedAmounts + ") vp ON vp.resident_id = residents.id").
		Where("residents.deleted_at IS NULL").
		Group("residents.id, residents.total_due").
		Order("residents.id ASC")
	if residentID != 0 {
		q = q.Where("residents.id = ?", residentID)
	}
	return out, q.Scan(&out).Error
}
