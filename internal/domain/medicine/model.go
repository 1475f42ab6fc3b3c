package medicine

import (
	"time"

	"github.com/google/uuid"
)

// Medicine maps to the medicines table. The wire names follow the mobile
// client's field vocabulary (nama_obat, dosis, catatan).
type Medicine struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"nama_obat" json:"nama_obat"`
	Dosage    string    `db:"dosis" json:"dosis"`
	Note      string    `db:"catatan" json:"catatan"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Update carries a partial medicine update. Nil fields are left unchanged.
type Update struct {
	Name   *string
	Dosage *string
	Note   *string
}

// Empty reports whether the update changes nothing.
func (u Update) Empty() bool {
	return u.Name == nil && u.Dosage == nil && u.Note == nil
}
