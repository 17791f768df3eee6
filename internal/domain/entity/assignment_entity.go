package entity

import "time"

type AssignmentStatus string

const (
	StatusPending   AssignmentStatus = "PENDING"
	StatusSubmitted AssignmentStatus = "SUBMITTED"
	// StatusCompleted is only reachable through grading, which lives outside this service.
	StatusCompleted AssignmentStatus = "COMPLETED"
)

// Assignment links one activity to one student and carries progress.
type Assignment struct {
	ID         string           `json:"id"`
	StudentID  string           `json:"studentId"`
	ActivityID string           `json:"activityId"`
	Status     AssignmentStatus `json:"status"`
	Submission *string          `json:"submission"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type AssignmentWithStudent struct {
	Assignment
	Student PublicUser `json:"student"`
}

type AssignmentWithActivity struct {
	Assignment
	Activity Activity `json:"activity"`
}
