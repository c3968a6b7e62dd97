package uow

import (
	"context"

	"estate-access-service/internal/domain/accesslog"
	"estate-access-service/internal/domain/membership"
	"estate-access-service/internal/domain/payment"
	"estate-access-service/internal/domain/resident"
	"estate-access-service/internal/domain/visitor"
)

type Repos struct {
	Memberships membership.Repository
	Residents   resident.Repository
	Payments    payment.Repository
	Visitors    visitor.Repository
	AccessLogs  accesslog.Repository
}

// UnitOfWork binds every repository to one database transaction; fn returning
// an error rolls the whole transaction back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
