package controllers

import (
	"rentledger/builders"
	"rentledger/dto"
	"rentledger/response"
	"rentledger/services"
	"rentledger/validator"

	"github.com/gin-gonic/gin"
)

type ContractController struct {
	Contracts *services.ContractService
	Cache     CacheInvalidator
}

func NewContractController(contracts *services.ContractService, cache CacheInvalidator) ContractController {
	return ContractController{
		Contracts: contracts,
		Cache:     cache,
	}
}

func (cc ContractController) invalidate(c *gin.Context) {
	if cc.Cache != nil {
		cc.Cache.Invalidate(c.Request.Context())
	}
}

// CreateContract POST /contracts
func (cc ContractController) CreateContract(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	start, err := validator.ParseDate("startDate", req.StartDate)
	if err != nil {
		c.Error(err)
		return
	}
	end, err := validator.ParseDate("endDate", req.EndDate)
	if err != nil {
		c.Error(err)
		return
	}

	contract := builders.NewContractBuilder().
		ForProperty(req.PropertyID, req.LandlordID).
		WithRenter(req.RenterName, req.RenterCompany).
		WithPeriod(start, end).
		WithPricing(req.PricingType, req.Rent).
		WithFees(req.SecurityDeposit, req.ServiceFee, req.CleaningFee).
		WithTotal(req.TotalValue, req.Currency).
		WithPaymentStatus(req.PaymentStatus).
		WithNotes(req.NotesInternal).
		Build()

	created, err := cc.Contracts.CreateContractAndBlock(c.Request.Context(), contract, actor, req.ForceOverlap)
	if err != nil {
		c.Error(err)
		return
	}
	cc.invalidate(c)
	response.Created(c, dto.ToContractResponse(created))
}

// GetContract GET /contracts/:id
func (cc ContractController) GetContract(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contract, err := cc.Contracts.GetContract(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.ToContractResponse(contract))
}

// ListUpcoming GET /contracts/upcoming?days=
func (cc ContractController) ListUpcoming(c *gin.Context) {
	var q dto.UpcomingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "Tham số không hợp lệ: "+err.Error())
		return
	}
	contracts, err := cc.Contracts.ListUpcomingContracts(c.Request.Context(), q.Days)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.ToContractResponses(contracts), len(contracts))
}

// UpdateStatus PUT /contracts/:id/status
func (cc ContractController) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateContractStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}

	contract, freed, err := cc.Contracts.UpdateContractStatus(c.Request.Context(), id, services.StatusUpdate{
		ContractStatus:   req.ContractStatus,
		PaymentStatus:    req.PaymentStatus,
		FreeAvailability: req.FreeAvailability,
	}, actor)
	if err != nil {
		c.Error(err)
		return
	}
	if freed > 0 {
		cc.invalidate(c)
	}
	response.Success(c, dto.StatusUpdateResponse{
		Contract:    dto.ToContractResponse(contract),
		FreedBlocks: freed,
	})
}

// FreeAvailability POST /contracts/:id/free-availability
func (cc ContractController) FreeAvailability(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	removed, err := cc.Contracts.FreeAvailability(c.Request.Context(), id, actor)
	if err != nil {
		c.Error(err)
		return
	}
	if removed > 0 {
		cc.invalidate(c)
	}
	response.Success(c, dto.FreeAvailabilityResponse{ContractID: id, RemovedBlocks: removed})
}
