package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/internal/infrastructure/memory"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
	"github.com/oksasatya/classroom-activities/pkg/mailer"
)

type fixture struct {
	auth       *AuthService
	users      *UserService
	activities *ActivityService
	pub        *fakePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memory.Open()
	userRepo := memory.NewUserRepository(db)
	activityRepo := memory.NewActivityRepository(db)
	logger := helpers.NewDiscardLogger()
	pub := &fakePublisher{}
	return &fixture{
		auth:       NewAuthService(userRepo, helpers.NewJWTManager("test-secret", time.Hour), logger),
		users:      NewUserService(userRepo),
		activities: NewActivityService(activityRepo, userRepo, logger).WithNotifications(pub, "Classroom"),
		pub:        pub,
	}
}

func (f *fixture) register(t *testing.T, name, email string, role entity.Role) entity.PublicUser {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "senha123", Role: role})
	require.NoError(t, err)
	return res.User
}

type fakePublisher struct {
	mu   sync.Mutex
	jobs []mailer.EmailJob
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	if job, ok := body.(mailer.EmailJob); ok {
		p.jobs = append(p.jobs, job)
	}
	return nil
}

func (p *fakePublisher) sent() []mailer.EmailJob {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]mailer.EmailJob(nil), p.jobs...)
}

type fakeStore struct {
	paths []string
	err   error
}

func (s *fakeStore) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	s.paths = append(s.paths, objectPath)
	return "https://files.test/" + objectPath, nil
}

var errBoom = errors.New("boom")
