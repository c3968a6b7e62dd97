package membership

import (
	"context"
	"errors"
	"time"

	domainMembership "estate-access-service/internal/domain/membership"
	domainResident "estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/uow"
	"estate-access-service/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	requests  domainMembership.Repository
	residents domainResident.Repository
	uow       uow.UnitOfWork
}

func NewUsecase(requests domainMembership.Repository, residents domainResident.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{requests: requests, residents: residents, uow: tx}
}

// Submit records a pending membership request. The request table is the single
// source of truth; reporting reads derive from it.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*RequestDTO, error) {
	// An open (non-rejected) request for the same national id is a conflict.
	if _, err := u.requests.GetOpenByNationalID(ctx, in.NationalID); err == nil {
		return nil, domainMembership.ErrDuplicateNational
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := &domainMembership.Request{
		RequestID:    id.NewID32(),
		ResidentName: in.ResidentName,
		NationalID:   in.NationalID,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		HouseNumber:  in.HouseNumber,
		CourtName:    in.CourtName,
		RoleName:     in.RoleName,
		Status:       domainMembership.StatusPending,
		RequestedAt:  time.Now().UTC(),
	}
	if err := u.requests.Create(ctx, m); err != nil {
		return nil, err
	}
	return toDTO(m), nil
}

func (u *Usecase) Get(ctx context.Context, requestID string) (*RequestDTO, error) {
	m, err := u.requests.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainMembership.ErrNotFound
		}
		return nil, err
	}
	return toDTO(m), nil
}

func (u *Usecase) List(ctx context.Context, status string) ([]RequestDTO, error) {
	rows, err := u.requests.List(ctx, domainMembership.Status(status))
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) Count(ctx context.Context) (int64, error) {
	return u.requests.Count(ctx)
}

// Approve claims the pending request; a lost claim means the row was never
// pending (or another admin got there first) and surfaces as not found.
func (u *Usecase) Approve(ctx context.Context, requestID string) error {
	won, err := u.requests.ClaimStatus(ctx, requestID,
		domainMembership.StatusPending, domainMembership.StatusApproved)
	if err != nil {
		return err
	}
	if !won {
		return domainMembership.ErrNotFound
	}
	return nil
}

// Reject claims the pending request and writes the reason atomically; a lost
// claim surfaces as not found, same as Approve.
func (u *Usecase) Reject(ctx context.Context, requestID, reason string) error {
	won, err := u.requests.ClaimReject(ctx, requestID, reason)
	if err != nil {
		return err
	}
	if !won {
		return domainMembership.ErrNotFound
	}
	return nil
}

// Promote turns an approved request into a resident row inside one
// transaction. Safe to call twice: the second call reuses the recorded
// resident id. A resident already holding the same national id is merged into
// rather than duplicated.
func (u *Usecase) Promote(ctx context.Context, requestID string) (*PromoteResult, error) {
	var result *PromoteResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Memberships.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainMembership.ErrNotFound
			}
			return err
		}
		res, err := promoteLocked(ctx, r, m)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SyncAll promotes every approved request with no resident record, in one
// transaction, and reports how many were synced.
func (u *Usecase) SyncAll(ctx context.Context) (*SyncAllResult, error) {
	var synced int
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Memberships.ListUnsynced(ctx)
		if err != nil {
			return err
		}
		for i := range rows {
			m, err := r.Memberships.GetByRequestIDForUpdate(ctx, rows[i].RequestID)
			if err != nil {
				return err
			}
			if _, err := promoteLocked(ctx, r, m); err != nil {
				return err
			}
			synced++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SyncAllResult{SyncedCount: synced}, nil
}

// promoteLocked runs with the request row already locked by the caller's
// transaction.
func promoteLocked(ctx context.Context, r uow.Repos, m *domainMembership.Request) (*PromoteResult, error) {
	// Idempotency guard: already synced means the work is done.
	if m.Status == domainMembership.StatusSynced {
		if m.RecordID == nil {
			return nil, domainMembership.ErrInvalidTransition
		}
		return &PromoteResult{RequestID: m.RequestID, ResidentID: *m.RecordID, Reused: true}, nil
	}
	if m.Status != domainMembership.StatusApproved {
		return nil, domainMembership.ErrInvalidTransition
	}

	// Merge into an existing resident with the same national id if one exists.
	var residentID uint64
	reused := false
	existing, err := r.Residents.GetByNationalID(ctx, m.NationalID)
	switch {
	case err == nil:
		residentID = existing.ID
		reused = true
	case errors.Is(err, gorm.ErrRecordNotFound):
		res := &domainResident.Resident{
			ResidentName: m.ResidentName,
			NationalID:   m.NationalID,
			PhoneNumber:  m.PhoneNumber,
			Email:        m.Email,
			HouseNumber:  m.HouseNumber,
			CourtName:    m.CourtName,
			RoleName:     m.RoleName,
			DateJoined:   time.Now().UTC(),
			Status:       domainResident.StatusActive,
		}
		if err := r.Residents.Create(ctx, res); err != nil {
			return nil, err
		}
		residentID = res.ID
	default:
		return nil, err
	}

	now := time.Now().UTC()
	m.Status = domainMembership.StatusSynced
	m.RecordID = &residentID
	m.ProcessedAt = &now
	if err := r.Memberships.Save(ctx, m); err != nil {
		return nil, err
	}
	return &PromoteResult{RequestID: m.RequestID, ResidentID: residentID, Reused: reused}, nil
}

func toDTO(m *domainMembership.Request) *RequestDTO {
	return &RequestDTO{
		RequestID:    m.RequestID,
		ResidentName: m.ResidentName,
		NationalID:   m.NationalID,
		PhoneNumber:  m.PhoneNumber,
		Email:        m.Email,
		HouseNumber:  m.HouseNumber,
		CourtName:    m.CourtName,
		RoleName:     m.RoleName,
		Status:       string(m.Status),
		RequestedAt:  m.RequestedAt,
		ProcessedAt:  m.ProcessedAt,
		ResidentID:   m.RecordID,
	}
}
