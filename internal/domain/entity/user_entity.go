package entity

import (
	"time"
)

// Role is the coarse capability class of a user.
// Wire values match the web client.
type Role string

const (
	RoleTeacher Role = "DOCENTE"
	RoleStudent Role = "ALUNO"
)

func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// User is the aggregate root for identity.
// PasswordHash holds a bcrypt digest and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the user shape returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
