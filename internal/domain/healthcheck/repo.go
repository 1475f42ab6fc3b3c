package healthcheck

import (
	"context"

	"github.com/google/uuid"
)

type HealthCheckRepository interface {
	Create(ctx context.Context, hc *HealthCheck) error
	// GetByID is deliberately not owner-scoped: the service distinguishes
	// an absent record from a foreign-owned one.
	GetByID(ctx context.Context, id uuid.UUID) (*HealthCheck, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*HealthCheck, int, error)
	Update(ctx context.Context, hc *HealthCheck) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
