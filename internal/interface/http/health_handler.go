package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/classroom-activities/pkg/response"
)

// Health GET /health
func Health(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
