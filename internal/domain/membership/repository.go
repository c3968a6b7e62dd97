package membership

import "context"

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	// GetOpenByNationalID returns a non-rejected request with the given national id, if any.
	GetOpenByNationalID(ctx context.Context, nationalID string) (*Request, error)
	List(ctx context.Context, status Status) ([]Request, error)
	// ListUnsynced returns approved requests that have no resident record yet.
	ListUnsynced(ctx context.Context) ([]Request, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, r *Request) error
	// ClaimStatus atomically moves the request from one status to another and
	// reports whether this caller won the transition (rows affected == 1).
	ClaimStatus(ctx context.Context, requestID string, from, to Status) (bool, error)
	// ClaimReject claims a pending request as rejected, writing the reason in
	// the same statement so the row is never rejected without it.
	ClaimReject(ctx context.Context, requestID, reason string) (bool, error)
}
