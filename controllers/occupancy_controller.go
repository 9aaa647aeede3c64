package controllers

import (
	"rentledger/dto"
	"rentledger/response"
	"rentledger/services"

	"github.com/gin-gonic/gin"
)

type OccupancyController struct {
	Occupancy *services.OccupancyService
}

func NewOccupancyController(occupancy *services.OccupancyService) OccupancyController {
	return OccupancyController{Occupancy: occupancy}
}

// GetVacancy GET /occupancy/vacancy?days=
func (o OccupancyController) GetVacancy(c *gin.Context) {
	var q dto.VacancyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "Tham số không hợp lệ: "+err.Error())
		return
	}
	snap, err := o.Occupancy.Snapshot(c.Request.Context(), q.Days)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, snap)
}
