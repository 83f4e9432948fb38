package controllers

import (
	"net/http"

	"MenuMate/models"
	"MenuMate/services"
	"MenuMate/utils"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	QueryService       *services.MenuQueryService
	AcquisitionService *services.AcquisitionService
	PreferenceService  *services.PreferenceService
}

func NewMenuController(query *services.MenuQueryService, acquisition *services.AcquisitionService, prefs *services.PreferenceService) *MenuController {
	return &MenuController{QueryService: query, AcquisitionService: acquisition, PreferenceService: prefs}
}

// GetMenu returns the caller's filtered menus, nearest hall first when a
// location is given.
func (m *MenuController) GetMenu(c *gin.Context) {
	date, err := dateParam(c, m.QueryService.Today)
	if err != nil {
		c.Error(err)
		return
	}
	loc, err := locationParam(c)
	if err != nil {
		c.Error(err)
		return
	}

	var prefs *models.Preferences
	if id, ok := userID(c); ok {
		prefs, err = m.PreferenceService.Get(c, id)
		if err != nil {
			c.Error(err)
			return
		}
	}

	menus, err := m.QueryService.GetUserMenu(c, prefs, loc, date)
	if err != nil {
		c.Error(err)
		return
	}
	if len(menus) == 0 {
		utils.SuccessResponse(c, http.StatusOK, "No dining hall information available", menus)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Menus fetched successfully", menus)
}

// GetFullMenu returns every hall's menu without filtering.
func (m *MenuController) GetFullMenu(c *gin.Context) {
	date, err := dateParam(c, m.QueryService.Today)
	if err != nil {
		c.Error(err)
		return
	}

	menus, err := m.QueryService.GetMenu(c, date)
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Menus fetched successfully", menus)
}

// RefreshMenu re-fetches every hall for the date.
func (m *MenuController) RefreshMenu(c *gin.Context) {
	date, err := dateParam(c, m.QueryService.Today)
	if err != nil {
		c.Error(err)
		return
	}

	menus, err := m.AcquisitionService.GetDiningHallInfo(c, date, true)
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Menus refreshed", menus)
}
