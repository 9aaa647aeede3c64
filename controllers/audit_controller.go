package controllers

import (
	"rentledger/dto"
	"rentledger/response"
	"rentledger/services"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	Audit *services.AuditService
}

func NewAuditController(audit *services.AuditService) AuditController {
	return AuditController{Audit: audit}
}

// RecentEntries GET /audit?limit=&entity=
func (a AuditController) RecentEntries(c *gin.Context) {
	var q dto.AuditQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "Tham số không hợp lệ: "+err.Error())
		return
	}
	entries, err := a.Audit.Recent(c.Request.Context(), q.Limit, q.Entity)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.ToAuditEntryResponses(entries), len(entries))
}
