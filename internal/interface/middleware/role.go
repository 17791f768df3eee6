package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	"github.com/oksasatya/classroom-activities/pkg/response"
)

// RequireRole lets the request through only when the caller's role is one of roles.
// It must run after Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "user not authenticated")
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			response.Error(c, http.StatusForbidden, "access denied")
			return
		}
		c.Next()
	}
}
