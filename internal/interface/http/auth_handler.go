package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/application"
	"github.com/oksasatya/classroom-activities/pkg/response"
)

type AuthHandler struct {
	Service *application.AuthService
	Logger  *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Logger: logger}
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}
