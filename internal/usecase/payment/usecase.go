package payment

import (
	"context"
	"errors"
	"log"
	"time"

	domainPayment "estate-access-service/internal/domain/payment"
	domainResident "estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/uow"
	"estate-access-service/internal/infrastructure/mpesa"
	"estate-access-service/pkg/id"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// STKPusher is the slice of the provider client this usecase needs.
type STKPusher interface {
	STKPush(ctx context.Context, phone string, amount float64, reference, description string) (*mpesa.STKPushResponse, error)
}

type Usecase struct {
	payments  domainPayment.Repository
	residents domainResident.Repository
	uow       uow.UnitOfWork
	provider  STKPusher
}

func NewUsecase(payments domainPayment.Repository, residents domainResident.Repository, tx uow.UnitOfWork, provider STKPusher) *Usecase {
	return &Usecase{payments: payments, residents: residents, uow: tx, provider: provider}
}

// Initiate pushes a payment prompt to the payer's phone and records the
// pending payment. Provider failure writes nothing.
func (u *Usecase) Initiate(ctx context.Context, in InitiateInput) (*InitiateResult, error) {
	if _, err := u.residents.GetByID(ctx, in.ResidentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainResident.ErrNotFound
		}
		return nil, err
	}

	ref := in.Reference
	if ref == "" {
		ref = uuid.NewString()
	}

	stk, err := u.provider.STKPush(ctx, in.Phone, in.Amount, ref, "estate service charge")
	if err != nil {
		return nil, err
	}

	p := &domainPayment.Payment{
		PaymentID:         id.NewID32(),
		ResidentID:        in.ResidentID,
		Amount:            in.Amount,
		Method:            "mpesa",
		Reference:         ref,
		CheckoutRequestID: stk.CheckoutRequestID,
		PhoneNumber:       in.Phone,
		Status:            domainPayment.StatusPending,
		PaymentDate:       time.Now().UTC(),
	}
	if err := u.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return &InitiateResult{PaymentID: p.PaymentID, STKResponse: stk}, nil
}

// HandleCallback settles the pending payment the provider is reporting on.
// First writer wins: duplicate callbacks, callbacks racing an admin verify,
// and callbacks for unknown pushes all lose the conditional update and are
// logged then discarded. The HTTP layer acknowledges 200 regardless.
func (u *Usecase) HandleCallback(ctx context.Context, payload *CallbackPayload) {
	cb := payload.Body.StkCallback
	to := domainPayment.StatusVerified
	failReason := ""
	if cb.ResultCode != 0 {
		to = domainPayment.StatusFailed
		failReason = cb.ResultDesc
	}

	won, err := u.payments.ClaimCallback(ctx, cb.CheckoutRequestID, to, payload.Receipt(), failReason)
	if err != nil {
		log.Printf("mpesa callback: claim failed for %s: %v", cb.CheckoutRequestID, err)
		return
	}
	if !won {
		log.Printf("mpesa callback: discarded signal for %s (result %d)", cb.CheckoutRequestID, cb.ResultCode)
	}
}

// VerifyAndArchive verifies a payment and copies it into the reporting table,
// then marks it archived, all in one transaction. Idempotent: an archived or
// missing payment is a no-op success; a provider-failed payment conflicts.
func (u *Usecase) VerifyAndArchive(ctx context.Context, paymentID, verifier string) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		switch p.Status {
		case domainPayment.StatusArchived:
			return nil
		case domainPayment.StatusFailed:
			return domainPayment.ErrAlreadyFailed
		}

		now := time.Now().UTC()
		if p.Status == domainPayment.StatusPending {
			p.Status = domainPayment.StatusVerified
			p.VerifiedBy = verifier
			p.VerifiedDate = &now
		}
		if p.VerifiedBy == "" {
			p.VerifiedBy = verifier
		}
		if p.VerifiedDate == nil {
			p.VerifiedDate = &now
		}

		res, err := r.Residents.GetByID(ctx, p.ResidentID)
		if err != nil {
			return err
		}

		// Exactly one reporting row per payment, even across retries.
		if _, err := r.Payments.GetVerifiedByPaymentID(ctx, p.PaymentID); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			v := &domainPayment.VerifiedPayment{
				PaymentID:    p.PaymentID,
				ResidentID:   p.ResidentID,
				ResidentName: res.ResidentName,
				Amount:       p.Amount,
				Reference:    p.Reference,
				MpesaReceipt: p.MpesaReceipt,
				VerifiedBy:   p.VerifiedBy,
				VerifiedDate: *p.VerifiedDate,
			}
			if err := r.Payments.CreateVerified(ctx, v); err != nil {
				return err
			}
		}

		p.Status = domainPayment.StatusArchived
		return r.Payments.Save(ctx, p)
	})
}

// Balances returns per-resident verified totals. residentID == 0 means all.
func (u *Usecase) Balances(ctx context.Context, residentID uint64) ([]domainPayment.Balance, error) {
	return u.payments.Balances(ctx, residentID)
}

func (u *Usecase) ListByResident(ctx context.Context, residentID uint64) ([]PaymentDTO, error) {
	rows, err := u.payments.ListByResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func (u *Usecase) List(ctx context.Context) ([]PaymentDTO, error) {
	rows, err := u.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

func toDTOs(rows []domainPayment.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(rows))
	for i := range rows {
		p := &rows[i]
		out = append(out, PaymentDTO{
			PaymentID:    p.PaymentID,
			ResidentID:   p.ResidentID,
			Amount:       p.Amount,
			Method:       p.Method,
			Reference:    p.Reference,
			MpesaReceipt: p.MpesaReceipt,
			PhoneNumber:  p.PhoneNumber,
			Status:       string(p.Status),
			PaymentDate:  p.PaymentDate,
			VerifiedBy:   p.VerifiedBy,
			VerifiedDate: p.VerifiedDate,
		})
	}
	return out
}
