package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/cities", handler.GetCities)
		api.GET("/summary", handler.GetSummary)
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/charts/:id", handler.GetChart)
		api.GET("/charts/:id/png", handler.GetChartPNG)
		api.GET("/properties", handler.GetProperties)
	}
}
