package paymentmock

import (
	"context"

	domain "estate-access-service/internal/domain/payment"
	"estate-access-service/internal/infrastructure/mpesa"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByResidentFn          func(ctx context.Context, residentID uint64) ([]domain.Payment, error)
	ListFn                    func(ctx context.Context) ([]domain.Payment, error)
	SaveFn                    func(ctx context.Context, p *domain.Payment) error
	ClaimCallbackFn           func(ctx context.Context, checkoutRequestID string, to domain.Status, receipt, failReason string) (bool, error)
	CreateVerifiedFn          func(ctx context.Context, v *domain.VerifiedPayment) error
	GetVerifiedByPaymentIDFn  func(ctx context.Context, paymentID string) (*domain.VerifiedPayment, error)
	BalancesFn                func(ctx context.Context, residentID uint64) ([]domain.Balance, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByResident(ctx context.Context, residentID uint64) ([]domain.Payment, error) {
	if m.ListByResidentFn != nil {
		return m.ListByResidentFn(ctx, residentID)
	}
	return nil, nil
}
func (m *Repo) List(ctx context.Context) ([]domain.Payment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) ClaimCallback(ctx context.Context, checkoutRequestID string, to domain.Status, receipt, failReason string) (bool, error) {
	if m.ClaimCallbackFn != nil {
		return m.ClaimCallbackFn(ctx, checkoutRequestID, to, receipt, failReason)
	}
	return false, nil
}
func (m *Repo) CreateVerified(ctx context.Context, v *domain.VerifiedPayment) error {
	if m.CreateVerifiedFn != nil {
		return m.CreateVerifiedFn(ctx, v)
	}
	return nil
}
func (m *Repo) GetVerifiedByPaymentID(ctx context.Context, paymentID string) (*domain.VerifiedPayment, error) {
	if m.GetVerifiedByPaymentIDFn != nil {
		return m.GetVerifiedByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) Balances(ctx context.Context, residentID uint64) ([]domain.Balance, error) {
	if m.BalancesFn != nil {
		return m.BalancesFn(ctx, residentID)
	}
	return nil, nil
}

// Pusher is a function-backed STK push provider for usecase tests.
type Pusher struct {
	STKPushFn func(ctx context.Context, phone string, amount float64, reference, description string) (*mpesa.STKPushResponse, error)
}

func (m *Pusher) STKPush(ctx context.Context, phone string, amount float64, reference, description string) (*mpesa.STKPushResponse, error) {
	if m.STKPushFn != nil {
		return m.STKPushFn(ctx, phone, amount, reference, description)
	}
	return &mpesa.STKPushResponse{CheckoutRequestID: "ws_CO_TEST", ResponseCode: "0"}, nil
}
