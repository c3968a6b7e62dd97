package mysql

import (
	"context"

	residentDomain "estate-access-service/internal/domain/resident"

	"gorm.io/gorm"
)

type ResidentRepository struct{ db *gorm.DB }

func NewResidentRepository(db *gorm.DB) *ResidentRepository { return &ResidentRepository{db: db} }

func (r *ResidentRepository) Create(ctx context.Context, res *residentDomain.Resident) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResidentRepository) Save(ctx context.Context, res *residentDomain.Resident) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ResidentRepository) GetByID(ctx context.Context, id uint64) (*residentDomain.Resident, error) {
	var out residentDomain.Resident
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ResidentRepository) GetByNationalID(ctx context.Context, nationalID string) (*residentDomain.Resident, error) {
	var out residentDomain.Resident
	res := r.db.WithContext(ctx).Where("national_id = ?", nationalID).First(&out)
	return &out, res.Error
}

func (r *ResidentRepository) List(ctx context.Context) ([]residentDomain.Resident, error) {
	var out []residentDomain.Resident
	return out, r.db.WithContext(ctx).Order("id ASC").Find(&out).Error
}
