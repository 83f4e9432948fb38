package handlers

import (
	"MenuMate/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterMenuRoutes sets up the menu routes
func RegisterMenuRoutes(router *gin.RouterGroup, menuController *controllers.MenuController) {
	menuGroup := router.Group("/menus")
	{
		menuGroup.GET("", menuController.GetMenu)
		menuGroup.GET("/", menuController.GetMenu)
		menuGroup.GET("/full", menuController.GetFullMenu)
		menuGroup.POST("/refresh", menuController.RefreshMenu)
	}
}
