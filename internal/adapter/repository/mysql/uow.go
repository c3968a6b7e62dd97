package mysql

import (
	"context"

	"estate-access-service/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Memberships: &MembershipRepository{db: tx},
			Residents:   &ResidentRepository{db: tx},
			Payments:    &PaymentRepository{db: tx},
			Visitors:    &VisitorRepository{db: tx},
			AccessLogs:  &AccessLogRepository{db: tx},
		}
		return fn(r)
	})
}
