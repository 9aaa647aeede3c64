package routes

import (
	"rentledger/constants"
	"rentledger/controllers"
	middlewares "rentledger/middleware"
	"rentledger/services"

	"github.com/gin-gonic/gin"
)

// Services các service được route sử dụng
type Services struct {
	Ledger    *services.LedgerService
	Contracts *services.ContractService
	Occupancy *services.OccupancyService
	Audit     *services.AuditService
}

func SetupRoutes(router *gin.Engine, svc Services, jwtSecret string) {
	blockController := controllers.NewBlockController(svc.Ledger, svc.Occupancy)
	contractController := controllers.NewContractController(svc.Contracts, svc.Occupancy)
	occupancyController := controllers.NewOccupancyController(svc.Occupancy)
	auditController := controllers.NewAuditController(svc.Audit)

	admin := middlewares.RoleMiddleware(constants.RoleAdmin, constants.RoleSuperAdmin)
	reader := middlewares.RoleMiddleware(constants.RoleAdmin, constants.RoleSuperAdmin, constants.RoleLandlord)

	v1 := router.Group("/api/v1")
	v1.Use(middlewares.RequestIDMiddleware(), middlewares.ErrorHandler(), middlewares.AuthMiddleware(jwtSecret))

	v1.GET("/properties/:id/blocks", reader, blockController.ListBlocks)
	v1.GET("/properties/:id/overlap", reader, blockController.CheckOverlap)

	v1.POST("/blocks", admin, blockController.CreateBlock)
	v1.PUT("/blocks/:id", admin, blockController.ReplaceBlock)
	v1.DELETE("/blocks/:id", admin, blockController.RemoveBlock)
	v1.GET("/blocks/:id/overlaps", admin, blockController.GetOverlappingBlocks)

	v1.POST("/contracts", admin, contractController.CreateContract)
	v1.GET("/contracts/upcoming", admin, contractController.ListUpcoming)
	v1.GET("/contracts/:id", admin, contractController.GetContract)
	v1.PUT("/contracts/:id/status", admin, contractController.UpdateStatus)
	v1.POST("/contracts/:id/free-availability", admin, contractController.FreeAvailability)

	v1.GET("/occupancy/vacancy", admin, occupancyController.GetVacancy)
	v1.GET("/audit", admin, auditController.RecentEntries)
}
