package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)
	ListByResident(ctx context.Context, residentID uint64) ([]Payment, error)
	List(ctx context.Context) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
	// ClaimCallback atomically settles the pending payment matched by the
	// provider correlation id. Reports false when no pending row matched,
	// which is how duplicate or unknown callbacks are discarded.
	ClaimCallback(ctx context.Context, checkoutRequestID string, to Status, receipt, failReason string) (bool, error)
	CreateVerified(ctx context.Context, v *VerifiedPayment) error
	GetVerifiedByPaymentID(ctx context.Context, paymentID string) (*VerifiedPayment, error)
	// Balances aggregates verified payments per resident. residentID == 0 means all residents.
	Balances(ctx context.Context, residentID uint64) ([]Balance, error)
}
