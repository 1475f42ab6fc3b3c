package healthcheck

import (
	"context"
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

type healthCheckRepoPG struct{ pool *pgxpool.Pool }

func NewHealthCheckRepoPG(pool *pgxpool.Pool) HealthCheckRepository {
	return &healthCheckRepoPG{pool: pool}
}

func (r *healthCheckRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const healthCheckCols = `id, user_id, nama_tes, catatan, tanggal, waktu_pemeriksaan, status, created_at, updated_at`

func scanHealthCheck(row pgx.Row) (*HealthCheck, error) {
	var (
		hc      HealthCheck
		tanggal time.Time
		status  string
	)
	err := row.Scan(&hc.ID, &hc.UserID, &hc.TestName, &hc.Note,
		&tanggal, &hc.Time, &status, &hc.CreatedAt, &hc.UpdatedAt)
	if err != nil {
		return nil, db.TranslateError(err)
	}
	hc.Date = dateonly.Date{Time: tanggal}
	hc.Status = statusflag.Flag(status)
	return &hc, nil
}

func (r *healthCheckRepoPG) Create(ctx context.Context, hc *HealthCheck) error {
	hc.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO health_checks (id, user_id, nama_tes, catatan, tanggal, waktu_pemeriksaan, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		hc.ID, hc.UserID, hc.TestName, hc.Note, hc.Date.Time, hc.Time, string(hc.Status)).
		Scan(&hc.CreatedAt, &hc.UpdatedAt)
	return db.TranslateError(err)
}

func (r *healthCheckRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*HealthCheck, error) {
	return scanHealthCheck(r.conn(ctx).QueryRow(ctx,
		`SELECT `+healthCheckCols+` FROM health_checks WHERE id = $1`, id))
}

func (r *healthCheckRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*HealthCheck, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM health_checks WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+healthCheckCols+`
		FROM health_checks
		WHERE user_id = $1
		ORDER BY tanggal DESC, waktu_pemeriksaan DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*HealthCheck
	for rows.Next() {
		hc, err := scanHealthCheck(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, hc)
	}
	return items, total, rows.Err()
}

func (r *healthCheckRepoPG) Update(ctx context.Context, hc *HealthCheck) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE health_checks
		SET nama_tes = $2, catatan = $3, tanggal = $4, waktu_pemeriksaan = $5, status = $6, updated_at = NOW()
		WHERE id = $1`,
		hc.ID, hc.TestName, hc.Note, hc.Date.Time, hc.Time, string(hc.Status))
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *healthCheckRepoPG) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM health_checks WHERE id = $1`, id)
	if err != nil {
		return 0, db.TranslateError(err)
	}
	return tag.RowsAffected(), nil
}
