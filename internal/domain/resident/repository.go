package resident

import "context"

type Repository interface {
	Create(ctx context.Context, r *Resident) error
	GetByID(ctx context.Context, id uint64) (*Resident, error)
	GetByNationalID(ctx context.Context, nationalID string) (*Resident, error)
	List(ctx context.Context) ([]Resident, error)
	Save(ctx context.Context, r *Resident) error
}
