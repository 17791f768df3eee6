package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"required,role"`
}

type assign struct {
	StudentIDs []string `json:"studentIds" binding:"required,min=1,dive,uuid"`
}

func TestMessageJoinsFieldErrors(t *testing.T) {
	err := Struct(signup{Name: "Al", Email: "nope", Password: "123", Role: "ADMIN"})
	require.Error(t, err)
	assert.Equal(t,
		"name must be at least 3 characters long, email must be a valid email, password must be at least 6 characters long, role must be one of: DOCENTE, ALUNO",
		Message(err))
}

func TestStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, Struct(signup{Name: "Ana", Email: "ana@x.io", Password: "123456", Role: "ALUNO"}))
	assert.NoError(t, Struct(assign{StudentIDs: []string{"7f1c9a52-1c1e-4d1b-9f51-3c2d3b1c8e10"}}))
}

func TestSliceRules(t *testing.T) {
	assert.Equal(t, "studentIds is required", Message(Struct(assign{})))
	assert.Equal(t, "studentIds must contain at least 1 item(s)", Message(Struct(assign{StudentIDs: []string{}})))
	assert.Equal(t, "studentIds[0] must be a valid UUID", Message(Struct(assign{StudentIDs: []string{"x"}})))
}

func TestMessageDecodeErrors(t *testing.T) {
	var dst signup
	err := json.Unmarshal([]byte(`{"name": 12}`), &dst)
	assert.Equal(t, "name has an invalid type", Message(err))

	err = json.Unmarshal([]byte(`{`), &dst)
	assert.Equal(t, "invalid json", Message(err))

	assert.Equal(t, "", Message(nil))
}
