package templates

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSubmissionReceived(t *testing.T) {
	data := ToMap(NotificationData{
		RecipientName: "Carlos",
		StudentName:   "Maria",
		ActivityTitle: "Frações",
		Submission:    "1/2 + 1/4 = 3/4",
	})
	subject, text, html, err := Render(SubmissionReceived, data)
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Equal(t, strings.TrimSpace(subject), subject)
	assert.Contains(t, text, "Maria")
	assert.Contains(t, html, "Frações")
}

func TestRenderUnknown(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "x", orDefault("x", nil))
	assert.Equal(t, "x", orDefault("x", "  "))
	assert.Equal(t, "y", orDefault("x", "y"))
	assert.Equal(t, 0, orDefault("x", 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate(3, "abc"))
	assert.Equal(t, "ab…", truncate(2, "abc"))
}
