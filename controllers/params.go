package controllers

import (
	"strconv"

	"MenuMate/models"
	"MenuMate/utils"

	"github.com/gin-gonic/gin"
)

// dateParam reads ?date=YYYY-MM-DD, defaulting to today.
func dateParam(c *gin.Context, today func() string) (string, error) {
	date := c.Query("date")
	if date == "" {
		return today(), nil
	}
	if err := utils.ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// locationParam reads ?latitude=&longitude=. Both absent means no location.
func locationParam(c *gin.Context) (*models.GeoLocation, error) {
	latitudeStr := c.Query("latitude")
	longitudeStr := c.Query("longitude")
	if latitudeStr == "" && longitudeStr == "" {
		return nil, nil
	}

	latitude, err := strconv.ParseFloat(latitudeStr, 64)
	if err != nil || latitude < -90 || latitude > 90 {
		return nil, utils.BadRequest("Invalid latitude")
	}
	longitude, err := strconv.ParseFloat(longitudeStr, 64)
	if err != nil || longitude < -180 || longitude > 180 {
		return nil, utils.BadRequest("Invalid longitude")
	}
	return &models.GeoLocation{Latitude: latitude, Longitude: longitude}, nil
}

func userID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userId")
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
