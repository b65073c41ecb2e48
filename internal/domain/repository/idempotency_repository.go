package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
)

// IdempotencyRepository persists request outcomes for replay detection.
type IdempotencyRepository interface {
	// GetByKey returns the stored outcome for (key, user), or nil when
	// the key has never been used.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
