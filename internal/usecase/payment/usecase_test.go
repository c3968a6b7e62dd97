package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	domainPayment "estate-access-service/internal/domain/payment"
	domainResident "estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/uow"
	"estate-access-service/internal/infrastructure/mpesa"
	"estate-access-service/internal/testutil/paymentmock"
	"estate-access-service/internal/testutil/residentmock"
	"estate-access-service/internal/testutil/uowmock"

	"gorm.io/gorm"
)

func knownResident() *residentmock.Repo {
	return &residentmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domainResident.Resident, error) {
			return &domainResident.Resident{ID: id, ResidentName: "Jane Wanjiku"}, nil
		},
	}
}

func TestInitiate_Success(t *testing.T) {
	var created *domainPayment.Payment
	payments := &paymentmock.Repo{
		CreateFn: func(ctx context.Context, p *domainPayment.Payment) error {
			created = p
			return nil
		},
	}
	pusher := &paymentmock.Pusher{
		STKPushFn: func(ctx context.Context, phone string, amount float64, reference, description string) (*mpesa.STKPushResponse, error) {
			if phone != "254712345678" || amount != 1500 {
				t.Fatalf("push args: phone=%s amount=%v", phone, amount)
			}
			return &mpesa.STKPushResponse{CheckoutRequestID: "ws_CO_1", ResponseCode: "0"}, nil
		},
	}
	uc := NewUsecase(payments, knownResident(), uowmock.New(), pusher)

	res, err := uc.Initiate(context.Background(), InitiateInput{
		ResidentID: 7,
		Amount:     1500,
		Phone:      "254712345678",
	})
	if err != nil {
		t.Fatalf("Initiate err: %v", err)
	}
	if len(res.PaymentID) != 32 {
		t.Fatalf("PaymentID length: %d", len(res.PaymentID))
	}
	if created == nil {
		t.Fatalf("payment row not created")
	}
	if created.Status != domainPayment.StatusPending {
		t.Fatalf("status=%s", created.Status)
	}
	if created.CheckoutRequestID != "ws_CO_1" {
		t.Fatalf("checkout id not stored: %q", created.CheckoutRequestID)
	}
	if created.Reference == "" {
		t.Fatalf("reference not defaulted")
	}
}

func TestInitiate_ProviderFailure_WritesNothing(t *testing.T) {
	payments := &paymentmock.Repo{
		CreateFn: func(ctx context.Context, p *domainPayment.Payment) error {
			t.Fatalf("Create must not be called when the push fails")
			return nil
		},
	}
	pusher := &paymentmock.Pusher{
		STKPushFn: func(ctx context.Context, phone string, amount float64, reference, description string) (*mpesa.STKPushResponse, error) {
			return nil, mpesa.ErrProvider
		},
	}
	uc := NewUsecase(payments, knownResident(), uowmock.New(), pusher)

	_, err := uc.Initiate(context.Background(), InitiateInput{ResidentID: 7, Amount: 100, Phone: "254712345678"})
	if !errors.Is(err, mpesa.ErrProvider) {
		t.Fatalf("want ErrProvider, got %v", err)
	}
}

func TestInitiate_UnknownResident(t *testing.T) {
	residents := &residentmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*domainResident.Resident, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(&paymentmock.Repo{}, residents, uowmock.New(), &paymentmock.Pusher{})

	_, err := uc.Initiate(context.Background(), InitiateInput{ResidentID: 99, Amount: 100, Phone: "254712345678"})
	if !errors.Is(err, domainResident.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func callbackFor(checkoutID string, resultCode int, receipt string) *CallbackPayload {
	var p CallbackPayload
	p.Body.StkCallback.CheckoutRequestID = checkoutID
	p.Body.StkCallback.ResultCode = resultCode
	p.Body.StkCallback.ResultDesc = "desc"
	if receipt != "" {
		p.Body.StkCallback.CallbackMetadata.Item = []CallbackItem{
			{Name: "Amount", Value: 1500.0},
			{Name: "MpesaReceiptNumber", Value: receipt},
		}
	}
	return &p
}

func TestHandleCallback(t *testing.T) {
	tests := []struct {
		name       string
		resultCode int
		wantStatus domainPayment.Status
		wantRcpt   string
		wantReason string
	}{
		{name: "success settles to verified", resultCode: 0, wantStatus: domainPayment.StatusVerified, wantRcpt: "SGR7TKIXA1"},
		{name: "failure settles to failed", resultCode: 1032, wantStatus: domainPayment.StatusFailed, wantReason: "desc"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claimed := false
			payments := &paymentmock.Repo{
				ClaimCallbackFn: func(ctx context.Context, checkoutRequestID string, to domainPayment.Status, receipt, failReason string) (bool, error) {
					claimed = true
					if checkoutRequestID != "ws_CO_1" {
						t.Fatalf("checkout id: %q", checkoutRequestID)
					}
					if to != tc.wantStatus {
						t.Fatalf("target status: want %s, got %s", tc.wantStatus, to)
					}
					if receipt != tc.wantRcpt {
						t.Fatalf("receipt: want %q, got %q", tc.wantRcpt, receipt)
					}
					if failReason != tc.wantReason {
						t.Fatalf("fail reason: want %q, got %q", tc.wantReason, failReason)
					}
					return true, nil
				},
			}
			uc := NewUsecase(payments, &residentmock.Repo{}, uowmock.New(), &paymentmock.Pusher{})

			uc.HandleCallback(context.Background(), callbackFor("ws_CO_1", tc.resultCode, tc.wantRcpt))
			if !claimed {
				t.Fatalf("claim not attempted")
			}
		})
	}
}

func TestHandleCallback_LostClaimIsSilent(t *testing.T) {
	payments := &paymentmock.Repo{
		ClaimCallbackFn: func(ctx context.Context, checkoutRequestID string, to domainPayment.Status, receipt, failReason string) (bool, error) {
			return false, nil
		},
		SaveFn: func(ctx context.Context, p *domainPayment.Payment) error {
			t.Fatalf("Save must not be called for a lost claim")
			return nil
		},
	}
	uc := NewUsecase(payments, &residentmock.Repo{}, uowmock.New(), &paymentmock.Pusher{})

	// Unknown or duplicate callbacks are simply discarded.
	uc.HandleCallback(context.Background(), callbackFor("ws_CO_unknown", 0, "SGR7TKIXA1"))
}

func TestVerifyAndArchive(t *testing.T) {
	const payID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	pendingPayment := func() *domainPayment.Payment {
		return &domainPayment.Payment{
			ID:         1,
			PaymentID:  payID,
			ResidentID: 7,
			Amount:     1500,
			Status:     domainPayment.StatusPending,
		}
	}

	t.Run("pending payment is verified, copied and archived", func(t *testing.T) {
		var copied *domainPayment.VerifiedPayment
		var saved *domainPayment.Payment
		payments := &paymentmock.Repo{
			GetByPaymentIDForUpdateFn: func(ctx context.Context, paymentID string) (*domainPayment.Payment, error) {
				return pendingPayment(), nil
			},
			GetVerifiedByPaymentIDFn: func(ctx context.Context, paymentID string) (*domainPayment.VerifiedPayment, error) {
				return nil, gorm.ErrRecordNotFound
			},
			CreateVerifiedFn: func(ctx context.Context, v *domainPayment.VerifiedPayment) error {
				copied = v
				return nil
			},
			SaveFn: func(ctx context.Context, p *domainPayment.Payment) error {
				saved = p
				return nil
			},
		}
		residents := knownResident()
		tx := uowmock.Passthrough(uow.Repos{Payments: payments, Residents: residents})
		uc := NewUsecase(payments, residents, tx, &paymentmock.Pusher{})

		if err := uc.VerifyAndArchive(context.Background(), payID, "admin@estate.co.ke"); err != nil {
			t.Fatalf("VerifyAndArchive err: %v", err)
		}
		if copied == nil {
			t.Fatalf("verified copy not created")
		}
		if copied.ResidentName != "Jane Wanjiku" {
			t.Fatalf("resident name not denormalized: %q", copied.ResidentName)
		}
		if copied.VerifiedBy != "admin@estate.co.ke" {
			t.Fatalf("verifier not stamped: %q", copied.VerifiedBy)
		}
		if saved == nil || saved.Status != domainPayment.StatusArchived {
			t.Fatalf("payment not archived: %+v", saved)
		}
	})

	t.Run("already verified by callback still gets its copy", func(t *testing.T) {
		now := time.Now().UTC()
		var copied *domainPayment.VerifiedPayment
		payments := &paymentmock.Repo{
			GetByPaymentIDForUpdateFn: func(ctx context.Context, paymentID string) (*domainPayment.Payment, error) {
				p := pendingPayment()
				p.Status = domainPayment.StatusVerified
				p.MpesaReceipt = "SGR7TKIXA1"
				p.VerifiedDate = &now
				return p, nil
			},
			GetVerifiedByPaymentIDFn: func(ctx context.Context, paymentID string) (*domainPayment.VerifiedPayment, error) {
				return nil, gorm.ErrRecordNotFound
			},
			CreateVerifiedFn: func(ctx context.Context, v *domainPayment.VerifiedPayment) error {
				copied = v
				return nil
			},
		}
		residents := knownResident()
		tx := uowmock.Passthrough(uow.Repos{Payments: payments, Residents: residents})
		uc := NewUsecase(payments, residents, tx, &paymentmock.Pusher{})

		if err := uc.VerifyAndArchive(context.Background(), payID, "admin@estate.co.ke"); err != nil {
			t.Fatalf("VerifyAndArchive err: %v", err)
		}
		if copied == nil || copied.MpesaReceipt != "SGR7TKIXA1" {
			t.Fatalf("verified copy missing receipt: %+v", copied)
		}
	})

	t.Run("archived payment is a no-op", func(t *testing.T) {
		payments := &paymentmock.Repo{
			GetByPaymentIDForUpdateFn: func(ctx context.Context, paymentID string) (*domainPayment.Payment, error) {
				p := pendingPayment()
				p.Status = domainPayment.StatusArchived
				return p, nil
			},
			CreateVerifiedFn: func(ctx context.Context, v *domainPayment.VerifiedPayment) error {
				t.Fatalf("CreateVerified must not be called twice")
				return nil
			},
		}
		tx := uowmock.Passthrough(uow.Repos{Payments: payments, Residents: knownResident()})
		uc := NewUsecase(payments, knownResident(), tx, &paymentmock.Pusher{})

		if err := uc.VerifyAndArchive(context.Background(), payID, "admin@estate.co.ke"); err != nil {
			t.Fatalf("second verify should be a no-op, got %v", err)
		}
	})

	t.Run("failed payment conflicts", func(t *testing.T) {
		payments := &paymentmock.Repo{
			GetByPaymentIDForUpdateFn: func(ctx context.Context, paymentID string) (*domainPayment.Payment, error) {
				p := pendingPayment()
				p.Status = domainPayment.StatusFailed
				return p, nil
			},
		}
		tx := uowmock.Passthrough(uow.Repos{Payments: payments, Residents: knownResident()})
		uc := NewUsecase(payments, knownResident(), tx, &paymentmock.Pusher{})

		err := uc.VerifyAndArchive(context.Background(), payID, "admin@estate.co.ke")
		if !errors.Is(err, domainPayment.ErrAlreadyFailed) {
			t.Fatalf("want ErrAlreadyFailed, got %v", err)
		}
	})

	t.Run("missing payment is a no-op", func(t *testing.T) {
		payments := &paymentmock.Repo{
			GetByPaymentIDForUpdateFn: func(ctx context.Context, paymentID string) (*domainPayment.Payment, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		tx := uowmock.Passthrough(uow.Repos{Payments: payments, Residents: knownResident()})
		uc := NewUsecase(payments, knownResident(), tx, &paymentmock.Pusher{})

		if err := uc.VerifyAndArchive(context.Background(), payID, "admin@estate.co.ke"); err != nil {
			t.Fatalf("missing payment should be a no-op, got %v", err)
		}
	})
}

func TestCallbackPayload_Receipt(t *testing.T) {
	p := callbackFor("ws_CO_1", 0, "SGR7TKIXA1")
	if got := p.Receipt(); got != "SGR7TKIXA1" {
		t.Fatalf("Receipt: %q", got)
	}
	empty := callbackFor("ws_CO_1", 1032, "")
	if got := empty.Receipt(); got != "" {
		t.Fatalf("Receipt on failure payload: %q", got)
	}
}
