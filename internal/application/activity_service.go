package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	repo "github.com/oksasatya/classroom-activities/internal/domain/repository"
)

// ObjectStore uploads attachment bytes and returns a public URL.
// *helpers.GCSStore satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// ActivityService implements the teacher/student activity workflow.
// Every call is a self-contained read-modify-write against the repositories.
type ActivityService struct {
	Activities repo.ActivityRepository
	Users      repo.UserRepository
	Logger     *logrus.Logger

	ES                *elasticsearch.Client
	ESActivitiesIndex string
	Attachments       ObjectStore

	notify *notifier
}

func NewActivityService(activities repo.ActivityRepository, users repo.UserRepository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Activities: activities, Users: users, Logger: logger}
}

// WithNotifications enables assignment and submission emails through pub.
func (s *ActivityService) WithNotifications(pub Publisher, appName string) *ActivityService {
	if pub != nil {
		s.notify = &notifier{pub: pub, appName: appName, logger: s.Logger}
	}
	return s
}

// WithSearch enables indexing and searching activities in Elasticsearch.
func (s *ActivityService) WithSearch(es *elasticsearch.Client, index string) *ActivityService {
	s.ES = es
	s.ESActivitiesIndex = index
	return s
}

// WithAttachments enables activity attachment uploads.
func (s *ActivityService) WithAttachments(store ObjectStore) *ActivityService {
	s.Attachments = store
	return s
}

// Create persists a new activity owned by teacherID.
func (s *ActivityService) Create(ctx context.Context, teacherID string, in CreateActivityInput) (*entity.Activity, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	a := &entity.Activity{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		TeacherID:   teacherID,
	}
	if err := s.Activities.Create(ctx, a); err != nil {
		return nil, err
	}
	metricActivitiesCreated.Add(1)
	_ = s.indexActivity(ctx, a)
	return a, nil
}

// ListOwned returns the teacher's activities with their assignments, newest first.
func (s *ActivityService) ListOwned(ctx context.Context, teacherID string) ([]entity.ActivityWithAssignments, error) {
	return s.Activities.ListByTeacher(ctx, teacherID)
}

// ListAssigned returns the student's assignments with their activity, newest first.
func (s *ActivityService) ListAssigned(ctx context.Context, studentID string) ([]entity.AssignmentWithActivity, error) {
	return s.Activities.ListByStudent(ctx, studentID)
}

// ownedActivity loads the activity and collapses "missing" and "not yours" into ErrNotFound.
func (s *ActivityService) ownedActivity(ctx context.Context, teacherID, activityID string) (*entity.Activity, error) {
	if _, err := uuid.Parse(activityID); err != nil {
		return nil, ErrNotFound
	}
	a, err := s.Activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.TeacherID != teacherID {
		return nil, ErrNotFound
	}
	return a, nil
}

// Assign gives the activity to each student, skipping pairs that already exist.
// Only newly created assignments are returned.
func (s *ActivityService) Assign(ctx context.Context, teacherID, activityID string, in AssignInput) ([]entity.Assignment, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	activity, err := s.ownedActivity(ctx, teacherID, activityID)
	if err != nil {
		return nil, err
	}

	ids := lo.Uniq(lo.Map(in.StudentIDs, func(id string, _ int) string { return strings.ToLower(id) }))
	students, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := lo.Filter(students, func(u entity.User, _ int) bool { return u.Role == entity.RoleStudent })
	if len(known) != len(ids) {
		return nil, newValidationError("studentIds must reference existing students")
	}

	created, err := s.Activities.CreateAssignments(ctx, activity.ID, ids)
	if err != nil {
		return nil, err
	}
	metricAssignmentsCreated.Add(int64(len(created)))

	if s.notify.enabled() && len(created) > 0 {
		fresh := lo.SliceToMap(created, func(a entity.Assignment) (string, struct{}) { return a.StudentID, struct{}{} })
		recipients := lo.Filter(known, func(u entity.User, _ int) bool {
			_, ok := fresh[u.ID]
			return ok
		})
		teacher, _ := s.Users.GetByID(ctx, teacherID)
		s.notify.activityAssigned(ctx, teacher, activity, recipients)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"activity_id": activity.ID,
			"requested":   len(ids),
			"created":     len(created),
		}).Info("activity assigned")
	}
	return created, nil
}

// Submit stores the student's answer and marks the assignment SUBMITTED.
// A second submission overwrites the first.
func (s *ActivityService) Submit(ctx context.Context, studentID, assignmentID string, in SubmitInput) (*entity.Assignment, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(assignmentID); err != nil {
		return nil, ErrNotFound
	}
	current, err := s.Activities.GetAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if current.StudentID != studentID {
		return nil, ErrNotFound
	}

	updated, err := s.Activities.Submit(ctx, assignmentID, in.Submission)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	metricSubmissions.Add(1)

	if s.notify.enabled() {
		if activity, aErr := s.Activities.GetByID(ctx, updated.ActivityID); aErr == nil {
			teacher, _ := s.Users.GetByID(ctx, activity.TeacherID)
			student, _ := s.Users.GetByID(ctx, studentID)
			s.notify.submissionReceived(ctx, teacher, student, activity, in.Submission)
		}
	}
	return updated, nil
}

// UploadAttachment stores a file for the teacher's activity and records its URL.
func (s *ActivityService) UploadAttachment(ctx context.Context, teacherID, activityID string, r io.Reader, filename, contentType string) (*entity.Activity, error) {
	activity, err := s.ownedActivity(ctx, teacherID, activityID)
	if err != nil {
		return nil, err
	}
	if s.Attachments == nil {
		return nil, ErrStorageUnavailable
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("activities", activity.ID, uuid.NewString()+ext))
	url, err := s.Attachments.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	if err := s.Activities.SetAttachment(ctx, activity.ID, url); err != nil {
		return nil, err
	}
	activity.AttachmentURL = &url
	_ = s.indexActivity(ctx, activity)
	return activity, nil
}
