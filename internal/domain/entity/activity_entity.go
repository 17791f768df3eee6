package entity

import "time"

// Activity is a unit of work authored by exactly one teacher.
type Activity struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	Content       string    `json:"content"`
	AttachmentURL *string   `json:"attachmentUrl,omitempty"`
	TeacherID     string    `json:"teacherId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ActivityWithAssignments is the teacher's view of an activity.
type ActivityWithAssignments struct {
	Activity
	Assignments []AssignmentWithStudent `json:"assignments"`
}
