package repository

import "context"

// Tx defines the interface for transactional operations.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
