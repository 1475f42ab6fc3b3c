package medicine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type medicineRepoPG struct{ pool *pgxpool.Pool }

func NewMedicineRepoPG(pool *pgxpool.Pool) MedicineRepository {
	return &medicineRepoPG{pool: pool}
}

func (r *medicineRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medicineCols = `id, user_id, nama_obat, dosis, catatan, created_at, updated_at`

func (r *medicineRepoPG) scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Note, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	return &m, nil
}

func (r *medicineRepoPG) Create(ctx context.Context, m *Medicine) error {
	m.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medicines (id, user_id, nama_obat, dosis, catatan)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		m.ID, m.UserID, m.Name, m.Dosage, m.Note).Scan(&m.CreatedAt, &m.UpdatedAt)
	return db.TranslateError(err)
}

func (r *medicineRepoPG) GetOwned(ctx context.Context, id, userID uuid.UUID) (*Medicine, error) {
	return r.scanMedicine(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicineCols+` FROM medicines WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *medicineRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Medicine, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM medicines WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medicineCols+` FROM medicines
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Medicine
	for rows.Next() {
		m, err := r.scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *medicineRepoPG) Update(ctx context.Context, id, userID uuid.UUID, upd Update) (int64, error) {
	sets := []string{}
	args := []interface{}{id, userID}
	n := 3

	if upd.Name != nil {
		sets = append(sets, fmt.Sprintf("nama_obat = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Dosage != nil {
		sets = append(sets, fmt.Sprintf("dosis = $%d", n))
		args = append(args, *upd.Dosage)
		n++
	}
	if upd.Note != nil {
		sets = append(sets, fmt.Sprintf("catatan = $%d", n))
		args = append(args, *upd.Note)
		n++
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = NOW()")

	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE medicines SET `+strings.Join(sets, ", ")+` WHERE id = $1 AND user_id = $2`, args...)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *medicineRepoPG) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM medicines WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}
