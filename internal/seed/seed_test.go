package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/internal/infrastructure/memory"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
)

func TestRunIsIdempotent(t *testing.T) {
	db := memory.Open()
	users := memory.NewUserRepository(db)
	activities := memory.NewActivityRepository(db)
	ctx := context.Background()
	logger := helpers.NewDiscardLogger()

	first, err := Run(ctx, users, activities, logger)
	require.NoError(t, err)
	second, err := Run(ctx, users, activities, logger)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	teacher, err := users.GetByEmail(ctx, TeacherEmail)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTeacher, teacher.Role)
	assert.True(t, helpers.CompareHashAndPassword(teacher.PasswordHash, Password))

	owned, err := activities.ListByTeacher(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	require.Len(t, owned[0].Assignments, 1)
	assert.Equal(t, entity.StatusPending, owned[0].Assignments[0].Status)
	assert.Equal(t, first.StudentID, owned[0].Assignments[0].StudentID)
}
