package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/application"
	"github.com/oksasatya/classroom-activities/pkg/response"
)

type ActivityHandler struct {
	Service        *application.ActivityService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewActivityHandler(svc *application.ActivityService, logger *logrus.Logger, maxUploadBytes int64) *ActivityHandler {
	return &ActivityHandler{Service: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// Create POST /activities
func (h *ActivityHandler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req application.CreateActivityInput
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.Service.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, a)
}

// Mine GET /activities/mine
func (h *ActivityHandler) Mine(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Service.ListOwned(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Student GET /activities/student
func (h *ActivityHandler) Student(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Service.ListAssigned(c.Request.Context(), id.UserID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// Assign POST /activities/:id/assign
func (h *ActivityHandler) Assign(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req application.AssignInput
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Service.Assign(c.Request.Context(), id.UserID, c.Param("id"), req); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusCreated, "activity assigned successfully")
}

// Submit POST /activities/assignment/:assignmentId/submit
func (h *ActivityHandler) Submit(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	var req application.SubmitInput
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Service.Submit(c.Request.Context(), id.UserID, c.Param("assignmentId"), req); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "activity submitted successfully")
}

// Search GET /activities/search?q=
func (h *ActivityHandler) Search(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Service.Search(c.Request.Context(), id.UserID, c.Query("q"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// UploadAttachment POST /activities/:id/attachment (multipart field "file")
func (h *ActivityHandler) UploadAttachment(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is unreadable")
		return
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	a, err := h.Service.UploadAttachment(c.Request.Context(), id.UserID, c.Param("id"), f, fh.Filename, contentType)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}
