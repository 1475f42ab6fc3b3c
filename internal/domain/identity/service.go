package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medtrack/medtrack/internal/platform/db"
	"github.com/medtrack/medtrack/internal/platform/storage"
)

var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrUnknownEmail     = errors.New("email is not registered")
	ErrWrongPassword    = errors.New("wrong password")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoProfilePicture = errors.New("profile picture not found")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Service struct {
	users      UserRepository
	pictures   storage.ImageStore
	bcryptCost int
}

func NewService(users UserRepository, pictures storage.ImageStore, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, pictures: pictures, bcryptCost: bcryptCost}
}

// Register creates a new account. The email must be unique and well formed;
// the password is stored bcrypt-hashed.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, db.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &User{Name: name, Email: email, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		// A concurrent registration can still win the unique index.
		if errors.Is(err, db.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the matching user. No token is
// issued; the caller receives an identity payload only.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}
	return u, nil
}

// UserExists reports whether a user id is registered. Other domains consult
// this before accepting a user-scoped write.
func (s *Service) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.users.UserExists(ctx, id)
}

// SavePicture validates and stores a new profile picture, updates the user
// record, and then removes the previous file. The old file is deleted only
// after the record points at the new one.
func (s *Service) SavePicture(ctx context.Context, userID uuid.UUID, content io.Reader) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	name, err := s.pictures.Save(ctx, userID, content)
	if err != nil {
		return "", err
	}

	if err := s.users.UpdateProfilePicture(ctx, userID, name); err != nil {
		return "", err
	}

	if u.ProfilePicture != nil && *u.ProfilePicture != "" {
		_ = s.pictures.Remove(ctx, *u.ProfilePicture)
	}
	return name, nil
}

// Picture returns the stored profile picture for a user along with its
// MIME type.
func (s *Service) Picture(ctx context.Context, userID uuid.UUID) (io.ReadCloser, string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}
	if u.ProfilePicture == nil || *u.ProfilePicture == "" {
		return nil, "", ErrNoProfilePicture
	}

	rc, mime, err := s.pictures.Open(ctx, *u.ProfilePicture)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, "", ErrNoProfilePicture
		}
		return nil, "", err
	}
	return rc, mime, nil
}
