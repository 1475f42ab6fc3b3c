package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

type ScheduleRepository interface {
	// Create inserts one schedule row. A unique-index collision on
	// (medicine_id, tanggal, waktu_minum) surfaces as db.ErrConflict.
	Create(ctx context.Context, s *Schedule) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*Schedule, error)
	ListByUser(ctx context.Context, userID uuid.UUID, date *dateonly.Date, limit, offset int) ([]*Schedule, int, error)
	Update(ctx context.Context, id, userID uuid.UUID, upd Update) (int64, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status statusflag.Flag) (int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)
	DeleteByMedicine(ctx context.Context, medicineID, userID uuid.UUID) (int64, error)
}
