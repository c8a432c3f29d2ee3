package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	SaveRequest(ctx context.Context, r *Request) error
	SaveResult(ctx context.Context, res *Result) error
	Get(ctx context.Context, id RequestID) (*Record, error)
	ListByUser(ctx context.Context, userUUID string, limit int) ([]*Record, error)
}

// Loader port (interface untuk document extraction)
type Loader interface {
	Load(path string) (string, error)
}
