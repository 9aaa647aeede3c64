package controllers

import (
	"strconv"

	"rentledger/middleware"
	"rentledger/response"
	"rentledger/types"

	"github.com/gin-gonic/gin"
)

// parseID đọc tham số :id, trả về false và response 400 nếu sai
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

func currentActor(c *gin.Context) (types.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		response.Unauthorized(c)
		return types.Actor{}, false
	}
	return actor, true
}
