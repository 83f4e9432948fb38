package handlers

import (
	"MenuMate/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterStatusRoutes(router *gin.RouterGroup, statusController *controllers.StatusController) {
	statusGroup := router.Group("/status")
	{
		statusGroup.GET("", statusController.GetStatus)
		statusGroup.GET("/report", statusController.GetReport)
	}
}
