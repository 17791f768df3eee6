package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
	"github.com/oksasatya/classroom-activities/pkg/response"
)

// Identity is the authenticated caller decoded from the bearer token.
type Identity struct {
	UserID string
	Role   entity.Role
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the identity attached by Auth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.UserID != ""
}

// CurrentIdentity is IdentityFrom for a gin request.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	return IdentityFrom(c.Request.Context())
}

// Auth validates the "Authorization: Bearer <token>" header and attaches the
// caller's Identity to the request context. It does not consult the user store.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "missing token")
			return
		}
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
			response.Error(c, http.StatusUnauthorized, "malformed token")
			return
		}
		claims, err := jwt.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		id := Identity{UserID: claims.UserID, Role: entity.Role(claims.Role)}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Set(userIDKey, id.UserID) // read by rate limit keys and access log
		c.Next()
	}
}
