package medicine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/internal/platform/db"
)

var (
	ErrNotFound     = errors.New("medicine not found or not owned by user")
	ErrUserNotFound = errors.New("user not found")
	ErrNoFields     = errors.New("no fields to update")
)

// ValidationError names the required field that is missing or empty.
type ValidationError struct{ Field string }

func (e *ValidationError) Error() string { return fmt.Sprintf("%s is required", e.Field) }

// UserDirectory answers whether a user id is registered. Satisfied by the
// identity service.
type UserDirectory interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// ScheduleRemover deletes every schedule referencing a medicine. Satisfied
// by the schedule repository; called inside the delete transaction.
type ScheduleRemover interface {
	DeleteByMedicine(ctx context.Context, medicineID, userID uuid.UUID) (int64, error)
}

// TxRunner executes fn inside a storage transaction. In production this is
// db.WithTx bound to the shared pool.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	medicines MedicineRepository
	users     UserDirectory
	schedules ScheduleRemover
	runTx     TxRunner
}

func NewService(medicines MedicineRepository, users UserDirectory, schedules ScheduleRemover, runTx TxRunner) *Service {
	return &Service{medicines: medicines, users: users, schedules: schedules, runTx: runTx}
}

func (s *Service) Create(ctx context.Context, m *Medicine) error {
	if m.UserID == uuid.Nil {
		return &ValidationError{Field: "user_id"}
	}
	if strings.TrimSpace(m.Name) == "" {
		return &ValidationError{Field: "nama_obat"}
	}
	if strings.TrimSpace(m.Dosage) == "" {
		return &ValidationError{Field: "dosis"}
	}

	exists, err := s.users.UserExists(ctx, m.UserID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}

	return s.medicines.Create(ctx, m)
}

// GetOwned resolves a medicine scoped to its owner. Other domains use this
// as the ownership guard before referencing a medicine.
func (s *Service) GetOwned(ctx context.Context, id, userID uuid.UUID) (*Medicine, error) {
	m, err := s.medicines.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Medicine, int, error) {
	if userID == uuid.Nil {
		return nil, 0, &ValidationError{Field: "user_id"}
	}
	return s.medicines.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, upd Update) error {
	if id == uuid.Nil {
		return &ValidationError{Field: "id"}
	}
	if userID == uuid.Nil {
		return &ValidationError{Field: "user_id"}
	}
	if upd.Empty() {
		return ErrNoFields
	}

	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}

	affected, err := s.medicines.Update(ctx, id, userID, upd)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a medicine and its schedules in one transaction. The
// transaction commits only if the medicine row itself was removed; the
// schedules-then-medicine order keeps no orphaned schedule behind on any
// failure path.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) (schedulesDeleted, medicinesDeleted int64, err error) {
	if id == uuid.Nil {
		return 0, 0, &ValidationError{Field: "id"}
	}
	if userID == uuid.Nil {
		return 0, 0, &ValidationError{Field: "user_id"}
	}

	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return 0, 0, err
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		var txErr error
		schedulesDeleted, txErr = s.schedules.DeleteByMedicine(txCtx, id, userID)
		if txErr != nil {
			return txErr
		}
		medicinesDeleted, txErr = s.medicines.Delete(txCtx, id, userID)
		if txErr != nil {
			return txErr
		}
		if medicinesDeleted == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return schedulesDeleted, medicinesDeleted, nil
}
