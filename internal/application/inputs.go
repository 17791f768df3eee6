package application

import (
	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/pkg/validation"
)

// Inputs double as request bodies; the binding tags are checked both by gin
// and again by the services.

type RegisterInput struct {
	Name     string      `json:"name" binding:"required,min=3"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,pwd"`
	Role     entity.Role `json:"role" binding:"required,role"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateActivityInput struct {
	Title       string  `json:"title" binding:"required,min=3"`
	Description *string `json:"description"`
	Content     string  `json:"content" binding:"required"`
}

type AssignInput struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1,dive,uuid"`
}

type SubmitInput struct {
	Submission string `json:"submission" binding:"required"`
}

func validate(in any) error {
	if err := validation.Struct(in); err != nil {
		return newValidationError(validation.Message(err))
	}
	return nil
}
