package server

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the handler into a gin engine.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(RequestIDMiddleware())

	api := router.Group("/api/v1")
	{
		api.POST("/analyze", handler.Analyze)
		api.POST("/rates/convert", handler.ConvertRate)
		api.POST("/compare/deposit", handler.CompareDeposit)
		api.GET("/etf/comparison", handler.ETFComparison)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
