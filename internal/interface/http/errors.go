package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-activities/internal/application"
	"github.com/oksasatya/classroom-activities/internal/interface/middleware"
	"github.com/oksasatya/classroom-activities/pkg/response"
	"github.com/oksasatya/classroom-activities/pkg/validation"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are logged
// and answered with a generic 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *application.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusBadRequest, application.ErrInvalidCredentials.Error())
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, application.ErrEmailTaken.Error())
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, application.ErrNotFound.Error())
	case errors.Is(err, application.ErrStorageUnavailable):
		response.Error(c, http.StatusServiceUnavailable, application.ErrStorageUnavailable.Error())
	default:
		if logger != nil {
			fields := logrus.Fields{
				"request_id": middleware.RequestID(c),
				"route":      c.FullPath(),
				"error":      err.Error(),
			}
			if id, ok := middleware.CurrentIdentity(c); ok {
				fields["user_id"] = id.UserID
			}
			logger.WithFields(fields).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindJSON decodes the body into dst and answers 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return false
	}
	return true
}

// identity returns the caller attached by the auth gate; routes using it are
// always mounted behind middleware.Auth.
func identity(c *gin.Context) (middleware.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
	}
	return id, ok
}
