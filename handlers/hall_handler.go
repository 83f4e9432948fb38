package handlers

import (
	"MenuMate/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterHallRoutes(router *gin.RouterGroup, hallController *controllers.HallController) {
	router.GET("/halls", hallController.GetHalls)
}
