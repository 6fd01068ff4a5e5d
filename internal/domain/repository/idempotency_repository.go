package repository

import (
	"context"
	"time"

	"github.com/sangkips/billing-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses keyed by client key
type IdempotencyRepository interface {
	// GetByKey returns the record for key and staff member, or nil
	GetByKey(ctx context.Context, key, staffID string) (*entity.IdempotencyKey, error)
	// Reserve inserts ikey as an in-flight record. It reports false when the staff
	// member already holds the key.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete stores the response on a reserved record
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a reservation whose request did not succeed
	Release(ctx context.Context, key, staffID string) error
	// DeleteExpired removes records that expired before now
	DeleteExpired(ctx context.Context, now time.Time) error
}
