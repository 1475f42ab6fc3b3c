package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/pkg/dateonly"
	"github.com/medtrack/medtrack/pkg/statusflag"
)

var (
	ErrNotFound    = errors.New("health check not found")
	ErrForbidden   = errors.New("health check belongs to another user")
	ErrUnknownUser = errors.New("user not found")
)

// ValidationError names the required field that is missing or empty.
type ValidationError struct{ Field string }

func (e *ValidationError) Error() string { return fmt.Sprintf("%s is required", e.Field) }

// UserDirectory answers whether a user id is registered. Satisfied by the
// identity service.
type UserDirectory interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	checks HealthCheckRepository
	users  UserDirectory
}

func NewService(checks HealthCheckRepository, users UserDirectory) *Service {
	return &Service{checks: checks, users: users}
}

// Input carries the full field set of a health check. Every field is
// required, on update as well as create.
type Input struct {
	UserID   uuid.UUID
	TestName string
	Note     string
	Date     *dateonly.Date
	Time     string
	Status   string
}

func (in Input) validate() error {
	if in.UserID == uuid.Nil {
		return &ValidationError{Field: "user_id"}
	}
	if strings.TrimSpace(in.TestName) == "" {
		return &ValidationError{Field: "nama_tes"}
	}
	if strings.TrimSpace(in.Note) == "" {
		return &ValidationError{Field: "catatan"}
	}
	if in.Date == nil || in.Date.IsZero() {
		return &ValidationError{Field: "tanggal"}
	}
	if strings.TrimSpace(in.Time) == "" {
		return &ValidationError{Field: "waktu_pemeriksaan"}
	}
	if strings.TrimSpace(in.Status) == "" {
		return &ValidationError{Field: "status"}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, in Input) (*HealthCheck, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.UserExists(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownUser
	}

	hc := &HealthCheck{
		UserID:   in.UserID,
		TestName: in.TestName,
		Note:     in.Note,
		Date:     *in.Date,
		Time:     in.Time,
		Status:   statusflag.Normalize(in.Status),
	}
	if err := s.checks.Create(ctx, hc); err != nil {
		return nil, err
	}
	return hc, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*HealthCheck, int, error) {
	if userID == uuid.Nil {
		return nil, 0, &ValidationError{Field: "user_id"}
	}
	return s.checks.ListByUser(ctx, userID, limit, offset)
}

// guard resolves a health check and distinguishes an absent record from a
// foreign-owned one, so callers can answer 404 and 403 differently.
func (s *Service) guard(ctx context.Context, id, userID uuid.UUID) (*HealthCheck, error) {
	hc, err := s.checks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if hc.UserID != userID {
		return nil, ErrForbidden
	}
	return hc, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*HealthCheck, error) {
	if id == uuid.Nil {
		return nil, &ValidationError{Field: "id"}
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	hc, err := s.guard(ctx, id, in.UserID)
	if err != nil {
		return nil, err
	}

	hc.TestName = in.TestName
	hc.Note = in.Note
	hc.Date = *in.Date
	hc.Time = in.Time
	hc.Status = statusflag.Normalize(in.Status)

	affected, err := s.checks.Update(ctx, hc)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return hc, nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if id == uuid.Nil {
		return &ValidationError{Field: "id"}
	}
	if userID == uuid.Nil {
		return &ValidationError{Field: "user_id"}
	}

	if _, err := s.guard(ctx, id, userID); err != nil {
		return err
	}

	affected, err := s.checks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
