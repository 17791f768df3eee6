package repository

import (
	"context"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
)

// ActivityRepository persists activities and their assignments.
// Listings are ordered newest first.
type ActivityRepository interface {
	Create(ctx context.Context, a *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	SetAttachment(ctx context.Context, id, url string) error
	ListByTeacher(ctx context.Context, teacherID string) ([]entity.ActivityWithAssignments, error)

	// CreateAssignments inserts one PENDING assignment per student in a single
	// call, skipping pairs that already exist. Only new rows are returned.
	CreateAssignments(ctx context.Context, activityID string, studentIDs []string) ([]entity.Assignment, error)
	GetAssignment(ctx context.Context, id string) (*entity.Assignment, error)
	// Submit stores the submission text and moves the assignment to SUBMITTED.
	Submit(ctx context.Context, id, submission string) (*entity.Assignment, error)
	ListByStudent(ctx context.Context, studentID string) ([]entity.AssignmentWithActivity, error)
}
