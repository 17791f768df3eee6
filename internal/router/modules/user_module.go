package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/classroom-activities/internal/domain/entity"
	handlers "github.com/oksasatya/classroom-activities/internal/interface/http"
	"github.com/oksasatya/classroom-activities/internal/interface/middleware"
	"github.com/oksasatya/classroom-activities/pkg/helpers"
)

// UserModule: GET /users/me (any role), GET /users/students (teachers)
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(
		middleware.Auth(m.JWT),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	users.GET("/me", m.Handler.Me)
	users.GET("/students", middleware.RequireRole(entity.RoleTeacher), m.Handler.Students)
}
