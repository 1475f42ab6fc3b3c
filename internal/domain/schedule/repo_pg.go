package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type scheduleRepoPG struct{ pool *pgxpool.Pool }

func NewScheduleRepoPG(pool *pgxpool.Pool) ScheduleRepository {
	return &scheduleRepoPG{pool: pool}
}

func (r *scheduleRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const scheduleCols = `id, user_id, medicine_id, nama_obat, dosis, tanggal, waktu_minum, status, updated_at`

func (r *scheduleRepoPG) scanSchedule(row pgx.Row) (*Schedule, error) {
	var (
		s       Schedule
		tanggal time.Time
		status  string
	)
	err := row.Scan(&s.ID, &s.UserID, &s.MedicineID, &s.MedicineName, &s.Dosage,
		&tanggal, &s.Time, &status, &s.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	s.Date = dateonly.Date{Time: tanggal}
	s.Status = statusflag.Flag(status)
	return &s, nil
}

func (r *scheduleRepoPG) Create(ctx context.Context, s *Schedule) error {
	s.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO schedules (id, user_id, medicine_id, nama_obat, dosis, tanggal, waktu_minum, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING updated_at`,
		s.ID, s.UserID, s.MedicineID, s.MedicineName, s.Dosage,
		s.Date.Time, s.Time, string(s.Status)).Scan(&s.UpdatedAt)
	return db.TranslateError(err)
}

func (r *scheduleRepoPG) GetOwned(ctx context.Context, id, userID uuid.UUID) (*Schedule, error) {
	return r.scanSchedule(r.conn(ctx).QueryRow(ctx,
		`SELECT `+scheduleCols+` FROM schedules WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *scheduleRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, date *dateonly.Date, limit, offset int) ([]*Schedule, int, error) {
	where := `WHERE user_id = $1`
	countArgs := []interface{}{userID}
	if date != nil {
		where += ` AND tanggal = $2`
		countArgs = append(countArgs, date.Time)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM schedules `+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args := append(countArgs, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM schedules %s ORDER BY waktu_minum ASC LIMIT $%d OFFSET $%d`,
		scheduleCols, where, len(countArgs)+1, len(countArgs)+2)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Schedule
	for rows.Next() {
		s, err := r.scanSchedule(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *scheduleRepoPG) Update(ctx context.Context, id, userID uuid.UUID, upd Update) (int64, error) {
	sets := []string{}
	args := []interface{}{id, userID}
	n := 3

	if upd.Status != nil {
		sets = append(sets, fmt.Sprintf("status = $%d", n))
		args = append(args, string(*upd.Status))
		n++
	}
	if upd.Time != nil {
		sets = append(sets, fmt.Sprintf("waktu_minum = $%d", n))
		args = append(args, *upd.Time)
		n++
	}
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = NOW()")

	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE schedules SET `+strings.Join(sets, ", ")+` WHERE id = $1 AND user_id = $2`, args...)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *scheduleRepoPG) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status statusflag.Flag) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE schedules SET status = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, string(status))
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *scheduleRepoPG) Delete(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM schedules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *scheduleRepoPG) DeleteByMedicine(ctx context.Context, medicineID, userID uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM schedules WHERE medicine_id = $1 AND user_id = $2`, medicineID, userID)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}
