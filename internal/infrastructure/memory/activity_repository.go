package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/internal/domain/repository"
)

type ActivityRepository struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(_ context.Context, a *entity.Activity) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.users[a.TeacherID]; !ok {
		return repository.ErrNotFound
	}
	seq, now := r.db.next()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	r.db.activities[a.ID] = &activityRow{Activity: *a, seq: seq}
	return nil
}

func (r *ActivityRepository) GetByID(_ context.Context, id string) (*entity.Activity, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if row, ok := r.db.activities[id]; ok {
		a := row.Activity
		return &a, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ActivityRepository) SetAttachment(_ context.Context, id, url string) error {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	row, ok := r.db.activities[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.AttachmentURL = &url
	return nil
}

func (r *ActivityRepository) ListByTeacher(_ context.Context, teacherID string) ([]entity.ActivityWithAssignments, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	rows := make([]*activityRow, 0)
	for _, row := range r.db.activities {
		if row.TeacherID == teacherID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	out := make([]entity.ActivityWithAssignments, 0, len(rows))
	for _, row := range rows {
		item := entity.ActivityWithAssignments{Activity: row.Activity, Assignments: []entity.AssignmentWithStudent{}}
		for _, as := range r.sortedAssignments(func(s *assignmentRow) bool { return s.ActivityID == row.ID }) {
			student := entity.PublicUser{ID: as.StudentID}
			if u, ok := r.db.users[as.StudentID]; ok {
				student = u.Public()
			}
			item.Assignments = append(item.Assignments, entity.AssignmentWithStudent{Assignment: as.Assignment, Student: student})
		}
		out = append(out, item)
	}
	return out, nil
}

// sortedAssignments must be called with the lock held.
func (r *ActivityRepository) sortedAssignments(match func(*assignmentRow) bool) []*assignmentRow {
	rows := make([]*assignmentRow, 0)
	for _, row := range r.db.assignments {
		if match(row) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	return rows
}

func (r *ActivityRepository) CreateAssignments(_ context.Context, activityID string, studentIDs []string) ([]entity.Assignment, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	if _, ok := r.db.activities[activityID]; !ok {
		return nil, repository.ErrNotFound
	}
	for _, sid := range studentIDs {
		if _, ok := r.db.users[sid]; !ok {
			return nil, repository.ErrNotFound
		}
	}

	existing := make(map[string]struct{})
	for _, row := range r.db.assignments {
		if row.ActivityID == activityID {
			existing[row.StudentID] = struct{}{}
		}
	}

	out := make([]entity.Assignment, 0, len(studentIDs))
	for _, sid := range studentIDs {
		if _, dup := existing[sid]; dup {
			continue
		}
		existing[sid] = struct{}{}
		seq, now := r.db.next()
		s := entity.Assignment{
			ID:         uuid.NewString(),
			StudentID:  sid,
			ActivityID: activityID,
			Status:     entity.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		r.db.assignments[s.ID] = &assignmentRow{Assignment: s, seq: seq}
		out = append(out, s)
	}
	return out, nil
}

func (r *ActivityRepository) GetAssignment(_ context.Context, id string) (*entity.Assignment, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	if row, ok := r.db.assignments[id]; ok {
		s := row.Assignment
		return &s, nil
	}
	return nil, repository.ErrNotFound
}

func (r *ActivityRepository) Submit(_ context.Context, id, submission string) (*entity.Assignment, error) {
	r.db.mutex.Lock()
	defer r.db.mutex.Unlock()

	row, ok := r.db.assignments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	_, now := r.db.next()
	row.Submission = &submission
	row.Status = entity.StatusSubmitted
	row.UpdatedAt = now
	s := row.Assignment
	return &s, nil
}

func (r *ActivityRepository) ListByStudent(_ context.Context, studentID string) ([]entity.AssignmentWithActivity, error) {
	r.db.mutex.RLock()
	defer r.db.mutex.RUnlock()

	rows := r.sortedAssignments(func(s *assignmentRow) bool { return s.StudentID == studentID })
	out := make([]entity.AssignmentWithActivity, 0, len(rows))
	for _, row := range rows {
		item := entity.AssignmentWithActivity{Assignment: row.Assignment}
		if a, ok := r.db.activities[row.ActivityID]; ok {
			item.Activity = a.Activity
		}
		out = append(out, item)
	}
	return out, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
