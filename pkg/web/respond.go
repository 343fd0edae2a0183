package web

import (
	"net/http"

	"github.com/PancyStudios/PancyDashGo/pkg/errors"
	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: {success, data} on
// success, {success, error} on failure. List endpoints may add a total.

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondList(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"total":   total,
	})
}

func respondError(c *gin.Context, status int, message string) {
	// Unexpected server-side failures feed the error-storm counter.
	// 503 (bot offline) is an expected state and stays out of it.
	if status == http.StatusInternalServerError {
		if h := errors.Get(); h != nil {
			h.IncrementError()
		}
	}

	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
