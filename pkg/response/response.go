package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the only error shape clients see: a short human-readable message.
type ErrorBody struct {
	Message string `json:"message"`
}

// MessageBody acknowledges operations that return no resource.
type MessageBody struct {
	Message string `json:"message"`
}

// Success writes data as the JSON body.
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Message writes a {message} acknowledgement.
func Message(ctx *gin.Context, status int, message string) {
	Success(ctx, status, MessageBody{Message: message})
}

// Error aborts the chain and writes an ErrorBody.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Message: message})
}
