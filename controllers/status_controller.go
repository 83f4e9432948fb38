package controllers

import (
	"net/http"
	"time"

	"MenuMate/services"
	"MenuMate/utils"

	"github.com/gin-gonic/gin"
)

type StatusController struct {
	Schedule *services.ScheduleEvaluator
	Now      func() time.Time
}

func NewStatusController(schedule *services.ScheduleEvaluator) *StatusController {
	return &StatusController{Schedule: schedule, Now: time.Now}
}

func (s *StatusController) GetStatus(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Serving status fetched successfully", s.Schedule.CurrentStatus(s.Now()))
}

func (s *StatusController) GetReport(c *gin.Context) {
	c.String(http.StatusOK, s.Schedule.Report(s.Now()))
}
