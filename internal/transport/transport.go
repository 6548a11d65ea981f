package transport

import (
	"github.com/gin-gonic/gin"

	"github.com/ds124wfegd/iconify/internal/transport/middleware"
)

const requestIDKey = middleware.RequestIDKey

func InitRoutes(composeHandler *ComposeHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/compose", composeHandler.Compose)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "iconify",
		})
	})
	return router
}
