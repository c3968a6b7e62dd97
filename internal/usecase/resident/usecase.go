package resident

import (
	"context"
	"errors"

	domainResident "estate-access-service/internal/domain/resident"

	"gorm.io/gorm"
)

type Usecase struct {
	residents domainResident.Repository
}

func NewUsecase(residents domainResident.Repository) *Usecase {
	return &Usecase{residents: residents}
}

func (u *Usecase) Profile(ctx context.Context, residentID uint64) (*domainResident.Resident, error) {
	r, err := u.residents.GetByID(ctx, residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainResident.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (u *Usecase) List(ctx context.Context) ([]domainResident.Resident, error) {
	return u.residents.List(ctx)
}

// SetTotalDue updates the standing amount a resident owes; balances are
// recomputed against it on every read.
func (u *Usecase) SetTotalDue(ctx context.Context, residentID uint64, totalDue float64) error {
	r, err := u.residents.GetByID(ctx, residentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainResident.ErrNotFound
		}
		return err
	}
	r.TotalDue = totalDue
	return u.residents.Save(ctx, r)
}
