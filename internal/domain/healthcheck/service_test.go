package healthcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

// -- Mocks --

type mockHealthCheckRepo struct {
	rows map[uuid.UUID]*HealthCheck
}

func newMockHealthCheckRepo() *mockHealthCheckRepo {
	return &mockHealthCheckRepo{rows: make(map[uuid.UUID]*HealthCheck)}
}

func (m *mockHealthCheckRepo) Create(_ context.Context, hc *HealthCheck) error {
	hc.ID = uuid.New()
	hc.CreatedAt = time.Now()
	hc.UpdatedAt = time.Now()
	m.rows[hc.ID] = hc
	return nil
}

func (m *mockHealthCheckRepo) GetByID(_ context.Context, id uuid.UUID) (*HealthCheck, error) {
	hc, ok := m.rows[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return hc, nil
}

func (m *mockHealthCheckRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*HealthCheck, int, error) {
	var result []*HealthCheck
	for _, hc := range m.rows {
		if hc.UserID == userID {
			result = append(result, hc)
		}
	}
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockHealthCheckRepo) Update(_ context.Context, hc *HealthCheck) (int64, error) {
	if _, ok := m.rows[hc.ID]; !ok {
		return 0, nil
	}
	hc.UpdatedAt = time.Now()
	m.rows[hc.ID] = hc
	return 1, nil
}

func (m *mockHealthCheckRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

type mockUserDirectory struct {
	ids map[uuid.UUID]bool
}

func (m *mockUserDirectory) UserExists(_ context.Context, id uuid.UUID) (bool, error) {
	return m.ids[id], nil
}

type fixture struct {
	svc    *Service
	repo   *mockHealthCheckRepo
	users  *mockUserDirectory
	userID uuid.UUID
}

func newFixture() *fixture {
	repo := newMockHealthCheckRepo()
	users := &mockUserDirectory{ids: map[uuid.UUID]bool{}}
	userID := uuid.New()
	users.ids[userID] = true
	return &fixture{svc: NewService(repo, users), repo: repo, users: users, userID: userID}
}

func validInput(userID uuid.UUID) Input {
	date := dateonly.New(2026, time.April, 1)
	return Input{
		UserID:   userID,
		TestName: "Blood pressure",
		Note:     "morning reading",
		Date:     &date,
		Time:     "07:30",
		Status:   "belum",
	}
}

// -- Tests --

func TestService_Create(t *testing.T) {
	f := newFixture()

	hc, err := f.svc.Create(context.Background(), validInput(f.userID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hc.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if hc.Status != statusflag.NotDone {
		t.Errorf("status %q must normalize to N, got %q", "belum", hc.Status)
	}
}

func TestService_Create_AllFieldsRequired(t *testing.T) {
	f := newFixture()

	mutations := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"user_id", func(in *Input) { in.UserID = uuid.Nil }, "user_id"},
		{"nama_tes", func(in *Input) { in.TestName = " " }, "nama_tes"},
		{"catatan", func(in *Input) { in.Note = "" }, "catatan"},
		{"tanggal", func(in *Input) { in.Date = nil }, "tanggal"},
		{"waktu_pemeriksaan", func(in *Input) { in.Time = "" }, "waktu_pemeriksaan"},
		{"status", func(in *Input) { in.Status = "" }, "status"},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(f.userID)
			tt.mutate(&in)
			_, err := f.svc.Create(context.Background(), in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}
}

func TestService_Create_UnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), validInput(uuid.New()))
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestService_Update(t *testing.T) {
	f := newFixture()

	hc, _ := f.svc.Create(context.Background(), validInput(f.userID))

	in := validInput(f.userID)
	in.TestName = "Cholesterol panel"
	in.Status = "sudah"
	updated, err := f.svc.Update(context.Background(), hc.ID, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TestName != "Cholesterol panel" {
		t.Errorf("test name not updated: %q", updated.TestName)
	}
	if updated.Status != statusflag.Done {
		t.Errorf("expected normalized Y, got %q", updated.Status)
	}
}

func TestService_Update_NotFoundVsForbidden(t *testing.T) {
	f := newFixture()

	hc, _ := f.svc.Create(context.Background(), validInput(f.userID))

	if _, err := f.svc.Update(context.Background(), uuid.New(), validInput(f.userID)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("absent record: expected ErrNotFound, got %v", err)
	}

	other := uuid.New()
	f.users.ids[other] = true
	if _, err := f.svc.Update(context.Background(), hc.ID, validInput(other)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign record: expected ErrForbidden, got %v", err)
	}
}

func TestService_Delete_NotFoundVsForbidden(t *testing.T) {
	f := newFixture()

	hc, _ := f.svc.Create(context.Background(), validInput(f.userID))

	if err := f.svc.Delete(context.Background(), uuid.New(), f.userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("absent record: expected ErrNotFound, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), hc.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign record: expected ErrForbidden, got %v", err)
	}
	if _, ok := f.repo.rows[hc.ID]; !ok {
		t.Error("failed guards must not remove the row")
	}

	if err := f.svc.Delete(context.Background(), hc.ID, f.userID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(f.repo.rows) != 0 {
		t.Error("row still present after delete")
	}
}

func TestService_List_ScopedToUser(t *testing.T) {
	f := newFixture()

	other := uuid.New()
	f.users.ids[other] = true
	f.svc.Create(context.Background(), validInput(f.userID))
	f.svc.Create(context.Background(), validInput(f.userID))
	f.svc.Create(context.Background(), validInput(other))

	items, total, err := f.svc.List(context.Background(), f.userID, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 rows for the owner, got total=%d len=%d", total, len(items))
	}
}
