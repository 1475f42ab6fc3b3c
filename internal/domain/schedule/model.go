package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

// Schedule maps to the schedules table: one planned dose of a medicine at a
// specific date and time-of-day. nama_obat and dosis are snapshots taken at
// creation time and are intentionally never synced with later medicine
// edits.
type Schedule struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	UserID       uuid.UUID       `db:"user_id" json:"user_id"`
	MedicineID   uuid.UUID       `db:"medicine_id" json:"medicine_id"`
	MedicineName string          `db:"nama_obat" json:"nama_obat"`
	Dosage       string          `db:"dosis" json:"dosis"`
	Date         dateonly.Date   `db:"tanggal" json:"tanggal"`
	Time         string          `db:"waktu_minum" json:"waktu_minum"`
	Status       statusflag.Flag `db:"status" json:"status"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Update carries a partial schedule update. Nil fields are left unchanged.
type Update struct {
	Status *statusflag.Flag
	Time   *string
}

func (u Update) Empty() bool {
	return u.Status == nil && u.Time == nil
}
