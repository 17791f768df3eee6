package application

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	tpl "github.com/oksasatya/classroom-activities/pkg/mailer/templates"
)

func TestCreateActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.register(t, "Prof", "p@x.io", entity.RoleTeacher)

	a, err := f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "Soma", Content: "2+2=?"})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, teacher.ID, a.TeacherID)
	assert.Nil(t, a.Description)

	_, err = f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "ab", Content: ""})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "title must be at least 3 characters long, content is required", err.Error())
}

func TestAssignIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.register(t, "Prof", "p@x.io", entity.RoleTeacher)
	ana := f.register(t, "Ana", "a@x.io", entity.RoleStudent)
	bia := f.register(t, "Bia", "b@x.io", entity.RoleStudent)
	a, err := f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "Soma", Content: "2+2=?"})
	require.NoError(t, err)

	created, err := f.activities.Assign(ctx, teacher.ID, a.ID, AssignInput{StudentIDs: []string{ana.ID, ana.ID}})
	require.NoError(t, err)
	assert.Len(t, created, 1)

	created, err = f.activities.Assign(ctx, teacher.ID, a.ID, AssignInput{StudentIDs: []string{ana.ID, bia.ID}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, bia.ID, created[0].StudentID)

	owned, err := f.activities.ListOwned(ctx, teacher.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Len(t, owned[0].Assignments, 2)

	// one email per newly assigned student
	jobs := f.pub.sent()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a@x.io", jobs[0].To)
	assert.Equal(t, "b@x.io", jobs[1].To)
	assert.Equal(t, tpl.ActivityAssigned, jobs[1].Template)
	assert.Equal(t, "Soma", jobs[1].Data["ActivityTitle"])
	assert.Equal(t, "Prof", jobs[1].Data["TeacherName"])
}

func TestAssignRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.register(t, "Prof", "p@x.io", entity.RoleTeacher)
	other := f.register(t, "Other", "o@x.io", entity.RoleTeacher)
	ana := f.register(t, "Ana", "a@x.io", entity.RoleStudent)
	a, err := f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "Soma", Content: "2+2=?"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		teacherID  string
		activityID string
		ids        []string
		notFound   bool
	}{
		{"not owner", other.ID, a.ID, []string{ana.ID}, true},
		{"missing activity", teacher.ID, uuid.NewString(), []string{ana.ID}, true},
		{"malformed activity id", teacher.ID, "abc", []string{ana.ID}, true},
		{"empty list", teacher.ID, a.ID, []string{}, false},
		{"not a uuid", teacher.ID, a.ID, []string{"abc"}, false},
		{"unknown student", teacher.ID, a.ID, []string{uuid.NewString()}, false},
		{"teacher as student", teacher.ID, a.ID, []string{other.ID}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.activities.Assign(ctx, tt.teacherID, tt.activityID, AssignInput{StudentIDs: tt.ids})
			if tt.notFound {
				assert.ErrorIs(t, err, ErrNotFound)
			} else {
				assert.True(t, IsValidation(err), "got %v", err)
			}
		})
	}

	assigned, err := f.activities.ListAssigned(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestSubmitFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.register(t, "Prof", "p@x.io", entity.RoleTeacher)
	ana := f.register(t, "Ana", "a@x.io", entity.RoleStudent)
	bia := f.register(t, "Bia", "b@x.io", entity.RoleStudent)
	a, err := f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "Soma", Content: "2+2=?"})
	require.NoError(t, err)
	created, err := f.activities.Assign(ctx, teacher.ID, a.ID, AssignInput{StudentIDs: []string{ana.ID}})
	require.NoError(t, err)
	assignmentID := created[0].ID

	// another student cannot touch it
	_, err = f.activities.Submit(ctx, bia.ID, assignmentID, SubmitInput{Submission: "5"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.activities.Submit(ctx, ana.ID, "nope", SubmitInput{Submission: "5"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.activities.Submit(ctx, ana.ID, assignmentID, SubmitInput{})
	assert.True(t, IsValidation(err))

	list, err := f.activities.ListAssigned(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.StatusPending, list[0].Status)
	assert.Nil(t, list[0].Submission)

	updated, err := f.activities.Submit(ctx, ana.ID, assignmentID, SubmitInput{Submission: "4"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSubmitted, updated.Status)

	list, err = f.activities.ListAssigned(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.StatusSubmitted, list[0].Status)
	require.NotNil(t, list[0].Submission)
	assert.Equal(t, "4", *list[0].Submission)
	assert.Equal(t, "Soma", list[0].Activity.Title)

	jobs := f.pub.sent()
	last := jobs[len(jobs)-1]
	assert.Equal(t, "p@x.io", last.To)
	assert.Equal(t, tpl.SubmissionReceived, last.Template)
	assert.Equal(t, "Ana", last.Data["StudentName"])
}

func TestNotificationFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.pub.err = errBoom
	ctx := context.Background()
	teacher := f.register(t, "Prof", "p@x.io", entity.RoleTeacher)
	ana := f.register(t, "Ana", "a@x.io", entity.RoleStudent)
	a, err := f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "Soma", Content: "2+2=?"})
	require.NoError(t, err)

	created, err := f.activities.Assign(ctx, teacher.ID, a.ID, AssignInput{StudentIDs: []string{ana.ID}})
	require.NoError(t, err)
	_, err = f.activities.Submit(ctx, ana.ID, created[0].ID, SubmitInput{Submission: "4"})
	require.NoError(t, err)
}

func TestUploadAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	teacher := f.register(t, "Prof", "p@x.io", entity.RoleTeacher)
	other := f.register(t, "Other", "o@x.io", entity.RoleTeacher)
	a, err := f.activities.Create(ctx, teacher.ID, CreateActivityInput{Title: "Soma", Content: "2+2=?"})
	require.NoError(t, err)

	_, err = f.activities.UploadAttachment(ctx, teacher.ID, a.ID, strings.NewReader("x"), "sheet.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	store := &fakeStore{}
	f.activities.WithAttachments(store)

	_, err = f.activities.UploadAttachment(ctx, other.ID, a.ID, strings.NewReader("x"), "sheet.pdf", "application/pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := f.activities.UploadAttachment(ctx, teacher.ID, a.ID, strings.NewReader("%PDF"), "Sheet.PDF", "application/pdf")
	require.NoError(t, err)
	require.Len(t, store.paths, 1)
	assert.True(t, strings.HasPrefix(store.paths[0], "activities/"+a.ID+"/"))
	assert.True(t, strings.HasSuffix(store.paths[0], ".pdf"))
	require.NotNil(t, got.AttachmentURL)
	assert.Equal(t, "https://files.test/"+store.paths[0], *got.AttachmentURL)

	owned, err := f.activities.ListOwned(ctx, teacher.ID)
	require.NoError(t, err)
	require.NotNil(t, owned[0].AttachmentURL)

	store.err = errBoom
	_, err = f.activities.UploadAttachment(ctx, teacher.ID, a.ID, strings.NewReader("x"), "b.txt", "text/plain")
	assert.ErrorIs(t, err, errBoom)
}

func TestSearchWithoutBackendIsEmpty(t *testing.T) {
	f := newFixture(t)
	list, err := f.activities.Search(context.Background(), uuid.NewString(), "soma")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
