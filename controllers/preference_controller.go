package controllers

import (
	"net/http"

	"MenuMate/models"
	"MenuMate/services"
	"MenuMate/utils"

	"github.com/gin-gonic/gin"
)

type PreferenceController struct {
	PreferenceService *services.PreferenceService
}

func NewPreferenceController(prefs *services.PreferenceService) *PreferenceController {
	return &PreferenceController{PreferenceService: prefs}
}

func (p *PreferenceController) GetPreferences(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UserId is required")
		return
	}

	prefs, err := p.PreferenceService.Get(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	if prefs == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "User ID not found")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Preferences fetched successfully", prefs)
}

// InitPreferences stores the default profile for a new user and returns
// whatever is stored.
func (p *PreferenceController) InitPreferences(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UserId is required")
		return
	}

	prefs, err := p.PreferenceService.EnsureDefaults(c, id)
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Preferences initialized", prefs)
}

func (p *PreferenceController) SavePreferences(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "UserId is required")
		return
	}

	var req models.Preferences
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := p.PreferenceService.Save(c, id, req); err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Preferences saved successfully", req)
}
