package visitor

import "context"

type Repository interface {
	Create(ctx context.Context, p *Pass) error
	GetByPassCode(ctx context.Context, code string) (*Pass, error)
	GetByPassCodeForUpdate(ctx context.Context, code string) (*Pass, error)
	ListByResident(ctx context.Context, residentID uint64) ([]Pass, error)
	List(ctx context.Context, status Status) ([]Pass, error)
	Save(ctx context.Context, p *Pass) error
}
