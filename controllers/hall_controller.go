package controllers

import (
	"net/http"

	"MenuMate/services"
	"MenuMate/utils"

	"github.com/gin-gonic/gin"
)

type HallController struct{}

func NewHallController() *HallController {
	return &HallController{}
}

func (h *HallController) GetHalls(c *gin.Context) {
	loc, err := locationParam(c)
	if err != nil {
		c.Error(err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Dining halls fetched successfully", services.HallCatalog(loc))
}
