package handlers

import (
	"MenuMate/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterPreferenceRoutes(router *gin.RouterGroup, preferenceController *controllers.PreferenceController) {
	preferenceGroup := router.Group("/preferences")
	{
		preferenceGroup.GET("", preferenceController.GetPreferences)
		preferenceGroup.POST("", preferenceController.SavePreferences)
		preferenceGroup.POST("/defaults", preferenceController.InitPreferences)
	}
}
