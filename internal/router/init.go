package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/classroom-activities/internal/application"
	"github.com/oksasatya/classroom-activities/internal/container"
	handlers "github.com/oksasatya/classroom-activities/internal/interface/http"
	"github.com/oksasatya/classroom-activities/internal/interface/middleware"
	"github.com/oksasatya/classroom-activities/internal/router/modules"
	"github.com/oksasatya/classroom-activities/pkg/validation"
)

// New builds the gin engine with global middleware and every module.
func New(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	r.Use(middleware.Recovery(c.Logger))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins()),
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}

	reg := NewRegistry(r, cfg.APIPrefix)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// InitModules builds services and handlers from the container and registers their modules.
func InitModules(r *Registry, c *container.Container) {
	authSvc := application.NewAuthService(c.Users, c.JWT, c.Logger)
	userSvc := application.NewUserService(c.Users)

	activitySvc := application.NewActivityService(c.Activities, c.Users, c.Logger)
	if c.Publisher != nil {
		activitySvc.WithNotifications(c.Publisher, c.Config.AppName)
	}
	if c.ES != nil {
		activitySvc.WithSearch(c.ES, c.Config.ESActivitiesIndex)
	}
	if c.Attachments != nil {
		activitySvc.WithAttachments(c.Attachments)
	}

	r.Add(
		modules.NewHealthModule(),
		modules.NewAuthModule(handlers.NewAuthHandler(authSvc, c.Logger), c.Redis),
		modules.NewUserModule(handlers.NewUserHandler(userSvc, c.Logger), c.JWT, c.Redis),
		modules.NewActivityModule(
			handlers.NewActivityHandler(activitySvc, c.Logger, c.Config.AttachmentMaxBytes),
			c.JWT,
			c.Redis,
		),
	)
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
