package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newEngine(jwt *helpers.JWTManager, roles ...entity.Role) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	handlers := []gin.HandlerFunc{Auth(jwt)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "role": id.Role})
	})
	r.GET("/x", handlers...)
	return r
}

func do(r http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestAuthGate(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jwt.GenerateAccessToken("u-1", string(entity.RoleStudent))
	require.NoError(t, err)
	foreign, _, err := helpers.NewJWTManager("other", time.Hour).GenerateAccessToken("u-1", "ALUNO")
	require.NoError(t, err)

	r := newEngine(jwt)
	tests := []struct {
		name   string
		header string
		status int
		msg    string
	}{
		{"missing", "", http.StatusUnauthorized, "missing token"},
		{"no scheme", token, http.StatusUnauthorized, "malformed token"},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, "malformed token"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "malformed token"},
		{"bad signature", "Bearer " + foreign, http.StatusUnauthorized, "invalid or expired token"},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized, "invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.msg, message(t, w))
		})
	}

	w := do(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u-1","role":"ALUNO"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	student, _, err := jwt.GenerateAccessToken("s-1", string(entity.RoleStudent))
	require.NoError(t, err)
	teacher, _, err := jwt.GenerateAccessToken("t-1", string(entity.RoleTeacher))
	require.NoError(t, err)

	r := newEngine(jwt, entity.RoleTeacher)

	w := do(r, "Bearer "+student)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "access denied", message(t, w))

	w = do(r, "Bearer "+teacher)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/x", RequireRole(entity.RoleTeacher), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := newEngine(helpers.NewJWTManager("secret", time.Hour))

	w := do(r, "")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
}

func TestRateLimitWithoutRedisIsNoop(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(r, "").Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"192.168.0.9", true},
		{"8.8.8.8", false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(realIPKey, tt.ip)
		assert.Equal(t, tt.want, allow(c), tt.ip)
	}
}

func TestRecoveryAnswers500(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), Recovery(helpers.NewDiscardLogger()))
	r.GET("/x", func(c *gin.Context) { panic("boom") })

	w := do(r, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", message(t, w))
}
