package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medtrack/medtrack/internal/domain/medicine"
	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

var (
	ErrNotFound          = errors.New("schedule not found or not owned by user")
	ErrMedicineNotOwned  = errors.New("medicine not found or not owned by user")
	ErrNoFields          = errors.New("no fields to update")
	ErrDuplicateSchedule = errors.New("schedule already exists for that medicine, date and time")
)

// ValidationError names the required field that is missing or empty.
type ValidationError struct{ Field string }

func (e *ValidationError) Error() string { return fmt.Sprintf("%s is required", e.Field) }

// MedicineDirectory resolves a medicine scoped to its owner. Satisfied by
// the medicine service; a miss means the caller may not reference the
// medicine at all.
type MedicineDirectory interface {
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*medicine.Medicine, error)
}

type Service struct {
	schedules ScheduleRepository
	medicines MedicineDirectory
	now       func() time.Time
}

func NewService(schedules ScheduleRepository, medicines MedicineDirectory) *Service {
	return &Service{schedules: schedules, medicines: medicines, now: time.Now}
}

// CreateInput is one schedule entry to be recorded as-is.
type CreateInput struct {
	UserID     uuid.UUID
	MedicineID uuid.UUID
	Time       string
	Date       *dateonly.Date
	Status     string
}

// Create records a single dose entry. The medicine name and dosage are
// snapshotted from the owned medicine at this moment and never synced with
// later medicine edits. A missing date defaults to today.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Schedule, error) {
	if in.UserID == uuid.Nil {
		return nil, &ValidationError{Field: "user_id"}
	}
	if in.MedicineID == uuid.Nil {
		return nil, &ValidationError{Field: "medicine_id"}
	}
	if strings.TrimSpace(in.Time) == "" {
		return nil, &ValidationError{Field: "waktu_minum"}
	}

	med, err := s.medicines.GetOwned(ctx, in.MedicineID, in.UserID)
	if err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			return nil, ErrMedicineNotOwned
		}
		return nil, err
	}

	date := dateonly.Today(s.now)
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}

	sched := &Schedule{
		UserID:       in.UserID,
		MedicineID:   in.MedicineID,
		MedicineName: med.Name,
		Dosage:       med.Dosage,
		Date:         date,
		Time:         in.Time,
		Status:       statusflag.Normalize(in.Status),
	}
	if err := s.schedules.Create(ctx, sched); err != nil {
		if errors.Is(err, db.ErrConflict) {
			return nil, ErrDuplicateSchedule
		}
		return nil, err
	}
	return sched, nil
}

// RepeatInput describes a batch of dose entries generated from one repeat
// policy.
type RepeatInput struct {
	UserID     uuid.UUID
	MedicineID uuid.UUID
	Time       string
	Start      *dateonly.Date
	RepeatType string
	Days       int
	Weekdays   []int
}

// Repeat expands a repeat request into dated entries and inserts them one
// by one. The loop is deliberately not transactional: entries inserted
// before a failure stay. On the weekly policy a unique-index collision is
// skipped rather than treated as an error, so re-running the same request
// tops up missing days without duplicating existing ones.
func (s *Service) Repeat(ctx context.Context, in RepeatInput) (int, []uuid.UUID, error) {
	if in.UserID == uuid.Nil {
		return 0, nil, &ValidationError{Field: "user_id"}
	}
	if in.MedicineID == uuid.Nil {
		return 0, nil, &ValidationError{Field: "medicine_id"}
	}
	if strings.TrimSpace(in.Time) == "" {
		return 0, nil, &ValidationError{Field: "waktu_minum"}
	}
	if in.Start == nil || in.Start.IsZero() {
		return 0, nil, &ValidationError{Field: "tanggal_mulai"}
	}
	repeatType, err := ParseRepeatType(in.RepeatType)
	if err != nil {
		return 0, nil, err
	}

	med, err := s.medicines.GetOwned(ctx, in.MedicineID, in.UserID)
	if err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			return 0, nil, ErrMedicineNotOwned
		}
		return 0, nil, err
	}

	dates := Expand(Expansion{
		Start:    *in.Start,
		Type:     repeatType,
		Days:     in.Days,
		Weekdays: in.Weekdays,
	})

	var created []uuid.UUID
	for _, date := range dates {
		sched := &Schedule{
			UserID:       in.UserID,
			MedicineID:   in.MedicineID,
			MedicineName: med.Name,
			Dosage:       med.Dosage,
			Date:         date,
			Time:         in.Time,
			Status:       statusflag.NotDone,
		}
		if err := s.schedules.Create(ctx, sched); err != nil {
			if repeatType == RepeatWeekly && errors.Is(err, db.ErrConflict) {
				log.Ctx(ctx).Debug().
					Str("medicine_id", in.MedicineID.String()).
					Str("tanggal", date.String()).
					Str("waktu_minum", in.Time).
					Msg("skipping duplicate schedule entry")
				continue
			}
			return len(created), created, err
		}
		created = append(created, sched.ID)
	}
	return len(created), created, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, date *dateonly.Date, limit, offset int) ([]*Schedule, int, error) {
	if userID == uuid.Nil {
		return nil, 0, &ValidationError{Field: "user_id"}
	}
	return s.schedules.ListByUser(ctx, userID, date, limit, offset)
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

	affected, err := s.schedules.Update(ctx, id, userID, upd)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus normalizes the caller-supplied status and writes it. The
// normalized flag is returned so the caller can echo it back.
func (s *Service) SetStatus(ctx context.Context, id, userID uuid.UUID, status string) (statusflag.Flag, error) {
	if id == uuid.Nil {
		return "", &ValidationError{Field: "id"}
	}
	if userID == uuid.Nil {
		return "", &ValidationError{Field: "user_id"}
	}

	flag := statusflag.Normalize(status)
	affected, err := s.schedules.UpdateStatus(ctx, id, userID, flag)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", ErrNotFound
	}
	return flag, nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil {
		return &ValidationError{Field: "id"}
	}
	if userID == uuid.Nil {
		return &ValidationError{Field: "user_id"}
	}

	affected, err := s.schedules.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByMedicine removes every schedule entry for one owned medicine and
// reports how many rows went away. Zero is a valid outcome.
func (s *Service) DeleteByMedicine(ctx context.Context, medicineID, userID uuid.UUID) (int64, error) {
	if medicineID == uuid.Nil {
		return 0, &ValidationError{Field: "medicine_id"}
	}
	if userID == uuid.Nil {
		return 0, &ValidationError{Field: "user_id"}
	}

	if _, err := s.medicines.GetOwned(ctx, medicineID, userID); err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			return 0, ErrMedicineNotOwned
		}
		return 0, err
	}
	return s.schedules.DeleteByMedicine(ctx, medicineID, userID)
}
