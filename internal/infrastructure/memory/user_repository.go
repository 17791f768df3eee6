package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/internal/domain/repository"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	for _, row := range r.db.users {
		if row.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	seq, now := r.db.next()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.db.users[u.ID] = &userRow{User: *u, seq: seq}
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if row, ok := r.db.users[id]; ok {
		u := row.User
		return &u, nil
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	for _, row := range r.db.users {
		if row.Email == email {
			u := row.User
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []string) ([]entity.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	out := make([]entity.User, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if row, ok := r.db.users[id]; ok {
			out = append(out, row.User)
		}
	}
	return out, nil
}

func (r *UserRepository) ListByRole(_ context.Context, role entity.Role) ([]entity.User, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	out := make([]entity.User, 0)
	for _, row := range r.db.users {
		if row.Role == role {
			out = append(out, row.User)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
