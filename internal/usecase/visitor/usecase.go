package visitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domainLog "estate-access-service/internal/domain/accesslog"
	"estate-access-service/internal/domain/uow"
	domainVisitor "estate-access-service/internal/domain/visitor"
	"estate-access-service/pkg/id"

	"gorm.io/gorm"
)

type RegisterInput struct {
	VisitorName string `json:"visitor_name" validate:"required"`
	NationalID  string `json:"national_id" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type Usecase struct {
	passes domainVisitor.Repository
	uow    uow.UnitOfWork
}

func NewUsecase(passes domainVisitor.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{passes: passes, uow: tx}
}

// Register creates a pending pass tied to the hosting resident. The returned
// pass code is the only identifier callers ever use for it.
func (u *Usecase) Register(ctx context.Context, residentID uint64, in RegisterInput) (*domainVisitor.Pass, error) {
	p := &domainVisitor.Pass{
		PassCode:    id.NewPassCode(),
		VisitorName: in.VisitorName,
		NationalID:  in.NationalID,
		PhoneNumber: in.PhoneNumber,
		ResidentID:  residentID,
		Status:      domainVisitor.StatusPending,
	}
	if err := u.passes.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Get(ctx context.Context, code string) (*domainVisitor.Pass, error) {
	p, err := u.passes.GetByPassCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainVisitor.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (u *Usecase) Approve(ctx context.Context, code string) error {
	return u.transition(ctx, code, func(p *domainVisitor.Pass) error {
		if p.Status != domainVisitor.StatusPending {
			return domainVisitor.ErrInvalidTransition
		}
		p.Status = domainVisitor.StatusApproved
		return nil
	}, nil)
}

func (u *Usecase) Reject(ctx context.Context, code string) error {
	return u.transition(ctx, code, func(p *domainVisitor.Pass) error {
		if p.Status != domainVisitor.StatusPending {
			return domainVisitor.ErrInvalidTransition
		}
		p.Status = domainVisitor.StatusRejected
		return nil
	}, nil)
}

// L2Approve is the security-level approval required before the gate honours
// the pass. Independent of the admin approve/reject decision.
func (u *Usecase) L2Approve(ctx context.Context, code string) error {
	return u.transition(ctx, code, func(p *domainVisitor.Pass) error {
		if p.Status == domainVisitor.StatusRejected {
			return domainVisitor.ErrInvalidTransition
		}
		p.L2Approved = true
		return nil
	}, nil)
}

// CheckIn admits an approved, security-cleared pass. Anything else conflicts;
// there is no silent overwrite of an already-admitted pass.
func (u *Usecase) CheckIn(ctx context.Context, code string, actorID uint64) error {
	return u.transition(ctx, code, func(p *domainVisitor.Pass) error {
		if p.Status != domainVisitor.StatusApproved {
			return domainVisitor.ErrInvalidTransition
		}
		if !p.L2Approved {
			return domainVisitor.ErrNotL2Approved
		}
		now := time.Now().UTC()
		p.Status = domainVisitor.StatusCheckedIn
		p.CheckedInAt = &now
		return nil
	}, gateEntry(code, "visitor_checkin", actorID))
}

func (u *Usecase) CheckOut(ctx context.Context, code string, actorID uint64) error {
	return u.transition(ctx, code, func(p *domainVisitor.Pass) error {
		if p.Status != domainVisitor.StatusCheckedIn {
			return domainVisitor.ErrInvalidTransition
		}
		now := time.Now().UTC()
		p.Status = domainVisitor.StatusCheckedOut
		p.CheckedOutAt = &now
		return nil
	}, gateEntry(code, "visitor_checkout", actorID))
}

func (u *Usecase) ListByResident(ctx context.Context, residentID uint64) ([]domainVisitor.Pass, error) {
	return u.passes.ListByResident(ctx, residentID)
}

func (u *Usecase) List(ctx context.Context, status string) ([]domainVisitor.Pass, error) {
	return u.passes.List(ctx, domainVisitor.Status(status))
}

// transition locks the pass, applies mutate, and saves. logEntry, when given,
// is appended best-effort inside the same transaction; a failed append is
// logged but never fails the gate action.
func (u *Usecase) transition(ctx context.Context, code string, mutate func(*domainVisitor.Pass) error, logEntry *domainLog.Entry) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Visitors.GetByPassCodeForUpdate(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainVisitor.ErrNotFound
			}
			return err
		}
		if err := mutate(p); err != nil {
			return err
		}
		if err := r.Visitors.Save(ctx, p); err != nil {
			return err
		}
		if logEntry != nil {
			logEntry.Metadata = fmt.Sprintf(`{"resident_id":%d,"visitor":%q}`, p.ResidentID, p.VisitorName)
			if err := r.AccessLogs.Append(ctx, logEntry); err != nil {
				log.Printf("visitor %s: access log append failed: %v", code, err)
			}
		}
		return nil
	})
}

func gateEntry(code, action string, actorID uint64) *domainLog.Entry {
	e := &domainLog.Entry{
		Action:   action,
		Resource: "visitor_pass:" + code,
		LogType:  domainLog.LogTypeVisitor,
	}
	if actorID != 0 {
		e.UserID = &actorID
	}
	return e
}
