package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create returns ErrDuplicate when the email is already registered.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	// ListByRole returns users of the role ordered by name.
	ListByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
}
