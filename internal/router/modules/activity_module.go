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

// ActivityModule wires the teacher and student workflow routes under /activities.
type ActivityModule struct {
	Handler *handlers.ActivityHandler
	JWT     *helpers.JWTManager
	RDB     *redis.Client
}

func NewActivityModule(h *handlers.ActivityHandler, jwt *helpers.JWTManager, rdb *redis.Client) *ActivityModule {
	return &ActivityModule{Handler: h, JWT: jwt, RDB: rdb}
}

func (m *ActivityModule) Register(rg *gin.RouterGroup) {
	activities := rg.Group("/activities")
	activities.Use(
		middleware.Auth(m.JWT),
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)

	teacher := middleware.RequireRole(entity.RoleTeacher)
	student := middleware.RequireRole(entity.RoleStudent)
	uploadLimiter := middleware.RateLimit(m.RDB, 20, time.Minute, middleware.KeyByUserID(), nil)

	activities.POST("", teacher, m.Handler.Create)
	activities.GET("/mine", teacher, m.Handler.Mine)
	activities.GET("/search", teacher, m.Handler.Search)
	activities.POST("/:id/assign", teacher, m.Handler.Assign)
	activities.POST("/:id/attachment", teacher, uploadLimiter, m.Handler.UploadAttachment)

	activities.GET("/student", student, m.Handler.Student)
	activities.POST("/assignment/:assignmentId/submit", student, m.Handler.Submit)
}
