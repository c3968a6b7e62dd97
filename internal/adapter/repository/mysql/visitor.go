package mysql

import (
	"context"

	visitorDomain "estate-access-service/internal/domain/visitor"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitorRepository struct{ db *gorm.DB }

func NewVisitorRepository(db *gorm.DB) *VisitorRepository { return &VisitorRepository{db: db} }

func (r *VisitorRepository) Create(ctx context.Context, p *visitorDomain.Pass) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *VisitorRepository) Save(ctx context.Context, p *visitorDomain.Pass) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *VisitorRepository) GetByPassCode(ctx context.Context, code string) (*visitorDomain.Pass, error) {
	var out visitorDomain.Pass
	res := r.db.WithContext(ctx).Where("pass_code = ?", code).First(&out)
	return &out, res.Error
}

func (r *VisitorRepository) GetByPassCodeForUpdate(ctx context.Context, code string) (*visitorDomain.Pass, error) {
	var out visitorDomain.Pass
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("pass_code = ?", code).
		First(&out)
	return &out, res.Error
}

func (r *VisitorRepository) ListByResident(ctx context.Context, residentID uint64) ([]visitorDomain.Pass, error) {
	var out []visitorDomain.Pass
	res := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *VisitorRepository) List(ctx context.Context, status visitorDomain.Status) ([]visitorDomain.Pass, error) {
	var out []visitorDomain.Pass
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Find(&out).Error
}
