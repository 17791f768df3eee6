// Package seed loads the demo classroom: one teacher, one student, and a
// sample activity assigned to the student. Running it twice is a no-op.
package seed

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	repo "github.com/oksasatya/classroom-activities/internal/domain/repository"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
)

const (
	TeacherEmail = "professor@escola.com"
	StudentEmail = "aluno@escola.com"
	Password     = "senha123"
)

// Result reports the seeded ids.
type Result struct {
	TeacherID  string
	StudentID  string
	ActivityID string
}

// Run ensures the demo data exists.
func Run(ctx context.Context, users repo.UserRepository, activities repo.ActivityRepository, logger *logrus.Logger) (*Result, error) {
	teacher, err := ensureUser(ctx, users, "Professor Carlos", TeacherEmail, entity.RoleTeacher)
	if err != nil {
		return nil, err
	}
	student, err := ensureUser(ctx, users, "Aluno Maria", StudentEmail, entity.RoleStudent)
	if err != nil {
		return nil, err
	}

	owned, err := activities.ListByTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list seeded activities")
	}
	var activityID string
	if len(owned) > 0 {
		activityID = owned[len(owned)-1].ID
	} else {
		desc := "Exercícios básicos de adição e subtração"
		a := &entity.Activity{
			Title:       "Atividade de Matemática",
			Description: &desc,
			Content:     "Resolva: 2+2=?, 5-3=?",
			TeacherID:   teacher.ID,
		}
		if err := activities.Create(ctx, a); err != nil {
			return nil, pkgerrors.Wrap(err, "seed activity")
		}
		activityID = a.ID
	}

	created, err := activities.CreateAssignments(ctx, activityID, []string{student.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "seed assignment")
	}

	helpers.LogInfo(logger, "seed complete", logrus.Fields{
		"teacher_id":          teacher.ID,
		"student_id":          student.ID,
		"activity_id":         activityID,
		"assignments_created": len(created),
	})
	return &Result{TeacherID: teacher.ID, StudentID: student.ID, ActivityID: activityID}, nil
}

func ensureUser(ctx context.Context, users repo.UserRepository, name, email string, role entity.Role) (*entity.User, error) {
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, pkgerrors.Wrapf(err, "lookup %s", email)
	}
	hash, err := helpers.HashPassword(Password)
	if err != nil {
		return nil, err
	}
	u = &entity.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return users.GetByEmail(ctx, email)
		}
		return nil, pkgerrors.Wrapf(err, "create %s", email)
	}
	return u, nil
}
