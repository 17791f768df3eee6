package application

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	repo "github.com/oksasatya/classroom-activities/internal/domain/repository"
)

type UserService struct {
	Users repo.UserRepository
}

func NewUserService(users repo.UserRepository) *UserService {
	return &UserService{Users: users}
}

// Profile returns the caller's public record.
func (s *UserService) Profile(ctx context.Context, userID string) (*entity.PublicUser, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p := u.Public()
	return &p, nil
}

// StudentSummary is the roster entry shown to teachers.
type StudentSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListStudents returns every student ordered by name.
func (s *UserService) ListStudents(ctx context.Context) ([]StudentSummary, error) {
	users, err := s.Users.ListByRole(ctx, entity.RoleStudent)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u entity.User, _ int) StudentSummary {
		return StudentSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}), nil
}
