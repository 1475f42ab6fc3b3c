package medicine

import (
	"context"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, m *Medicine) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*Medicine, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Medicine, int, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd Update) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
}
