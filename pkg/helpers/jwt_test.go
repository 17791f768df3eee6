package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateAccessToken("u-1", "DOCENTE")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "DOCENTE", claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	valid, _, err := m.GenerateAccessToken("u-1", "ALUNO")
	require.NoError(t, err)

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateAccessToken("u-1", "ALUNO")
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		mgr   *JWTManager
		token string
	}{
		{"wrong secret", NewJWTManager("other", time.Hour), valid},
		{"expired", m, old},
		{"malformed", m, "not-a-token"},
		{"empty", m, ""},
		{"alg none", m, noneAlg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mgr.ParseAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret", 7*24*time.Hour)
	m.now = func() time.Time { return issued }

	token, exp, err := m.GenerateAccessToken("u-1", "ALUNO")
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), exp)

	m.now = func() time.Time { return exp.Add(-time.Second) }
	_, err = m.ParseAccessToken(token)
	assert.NoError(t, err)

	m.now = func() time.Time { return exp.Add(time.Second) }
	_, err = m.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
