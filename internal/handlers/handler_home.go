package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Fibu Backend API v1"})
}

func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// registerHomeRoutes registers the root and health check routes.
func registerHomeRoutes(r *gin.Engine) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
}
