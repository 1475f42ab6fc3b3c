package identity

import (
	"context"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, fileName string) error
}
