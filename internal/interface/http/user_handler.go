package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/application"
	"github.com/oksasatya/classroom-activities/pkg/response"
)

type UserHandler struct {
	Service *application.UserService
	Logger  *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

// Me GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Service.Profile(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// Students GET /users/students
func (h *UserHandler) Students(c *gin.Context) {
	list, err := h.Service.ListStudents(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}
