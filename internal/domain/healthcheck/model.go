package healthcheck

import (
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

// HealthCheck maps to the health_checks table: one medical examination
// (lab test, blood pressure reading, checkup) recorded by a user.
type HealthCheck struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	TestName  string          `db:"nama_tes" json:"nama_tes"`
	Note      string          `db:"catatan" json:"catatan"`
	Date      dateonly.Date   `db:"tanggal" json:"tanggal"`
	Time      string          `db:"waktu_pemeriksaan" json:"waktu_pemeriksaan"`
	Status    statusflag.Flag `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
