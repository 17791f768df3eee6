package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/internal/domain/repository"
)

const (
	activityColumns   = `id, title, description, content, attachment_url, teacher_id, created_at`
	assignmentColumns = `id, student_id, activity_id, status, submission, created_at, updated_at`
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	a := &entity.Activity{}
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.Content, &a.AttachmentURL, &a.TeacherID, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func scanAssignment(row pgx.Row) (*entity.Assignment, error) {
	s := &entity.Assignment{}
	if err := row.Scan(&s.ID, &s.StudentID, &s.ActivityID, &s.Status, &s.Submission, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *entity.Activity) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (title, description, content, teacher_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.Title, a.Description, a.Content, a.TeacherID)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return pkgerrors.Wrap(err, "insert activity")
	}
	return nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := scanActivity(r.pool.QueryRow(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, pkgerrors.Wrap(err, "select activity")
	}
	return a, nil
}

func (r *ActivityRepository) SetAttachment(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `UPDATE activities SET attachment_url = $1 WHERE id = $2`, url, id)
	if err != nil {
		return pkgerrors.Wrap(err, "update activity attachment")
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ActivityRepository) ListByTeacher(ctx context.Context, teacherID string) ([]entity.ActivityWithAssignments, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE teacher_id = $1
		ORDER BY created_at DESC
	`, teacherID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select teacher activities")
	}
	out := make([]entity.ActivityWithAssignments, 0)
	index := make(map[string]int)
	ids := make([]string, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			rows.Close()
			return nil, pkgerrors.Wrap(err, "scan activity")
		}
		index[a.ID] = len(out)
		ids = append(ids, a.ID)
		out = append(out, entity.ActivityWithAssignments{Activity: *a, Assignments: []entity.AssignmentWithStudent{}})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate activities")
	}
	if len(ids) == 0 {
		return out, nil
	}

	arows, err := r.pool.Query(ctx, `
		SELECT sa.id, sa.student_id, sa.activity_id, sa.status, sa.submission, sa.created_at, sa.updated_at,
		       u.id, u.name, u.email, u.role
		FROM student_activities sa
		JOIN users u ON u.id = sa.student_id
		WHERE sa.activity_id = ANY($1::uuid[])
		ORDER BY sa.created_at DESC
	`, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select activity assignments")
	}
	defer arows.Close()
	for arows.Next() {
		var s entity.AssignmentWithStudent
		if err := arows.Scan(&s.ID, &s.StudentID, &s.ActivityID, &s.Status, &s.Submission, &s.CreatedAt, &s.UpdatedAt,
			&s.Student.ID, &s.Student.Name, &s.Student.Email, &s.Student.Role); err != nil {
			return nil, pkgerrors.Wrap(err, "scan activity assignment")
		}
		i := index[s.ActivityID]
		out[i].Assignments = append(out[i].Assignments, s)
	}
	if err := arows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate activity assignments")
	}
	return out, nil
}

func (r *ActivityRepository) CreateAssignments(ctx context.Context, activityID string, studentIDs []string) ([]entity.Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		INSERT INTO student_activities (student_id, activity_id)
		SELECT sid, $2::uuid FROM unnest($1::uuid[]) AS sid
		ON CONFLICT (student_id, activity_id) DO NOTHING
		RETURNING `+assignmentColumns, studentIDs, activityID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "insert assignments")
	}
	defer rows.Close()
	out := make([]entity.Assignment, 0, len(studentIDs))
	for rows.Next() {
		s, err := scanAssignment(rows)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "scan assignment")
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "insert assignments")
	}
	return out, nil
}

func (r *ActivityRepository) GetAssignment(ctx context.Context, id string) (*entity.Assignment, error) {
	s, err := scanAssignment(r.pool.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM student_activities WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, pkgerrors.Wrap(err, "select assignment")
	}
	return s, nil
}

func (r *ActivityRepository) Submit(ctx context.Context, id, submission string) (*entity.Assignment, error) {
	s, err := scanAssignment(r.pool.QueryRow(ctx, `
		UPDATE student_activities
		SET submission = $1, status = $2, updated_at = now()
		WHERE id = $3
		RETURNING `+assignmentColumns, submission, entity.StatusSubmitted, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, pkgerrors.Wrap(err, "update assignment submission")
	}
	return s, nil
}

func (r *ActivityRepository) ListByStudent(ctx context.Context, studentID string) ([]entity.AssignmentWithActivity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sa.id, sa.student_id, sa.activity_id, sa.status, sa.submission, sa.created_at, sa.updated_at,
		       a.id, a.title, a.description, a.content, a.attachment_url, a.teacher_id, a.created_at
		FROM student_activities sa
		JOIN activities a ON a.id = sa.activity_id
		WHERE sa.student_id = $1
		ORDER BY sa.created_at DESC
	`, studentID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "select student assignments")
	}
	defer rows.Close()
	out := make([]entity.AssignmentWithActivity, 0)
	for rows.Next() {
		var s entity.AssignmentWithActivity
		if err := rows.Scan(&s.ID, &s.StudentID, &s.ActivityID, &s.Status, &s.Submission, &s.CreatedAt, &s.UpdatedAt,
			&s.Activity.ID, &s.Activity.Title, &s.Activity.Description, &s.Activity.Content,
			&s.Activity.AttachmentURL, &s.Activity.TeacherID, &s.Activity.CreatedAt); err != nil {
			return nil, pkgerrors.Wrap(err, "scan student assignment")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "iterate student assignments")
	}
	return out, nil
}

var _ repository.ActivityRepository = (*ActivityRepository)(nil)
