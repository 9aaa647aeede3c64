package controllers

import (
	"context"
	"strconv"

	"rentledger/dto"
	"rentledger/response"
	"rentledger/services"
	"rentledger/validator"

	"github.com/gin-gonic/gin"
)

// CacheInvalidator xóa cache tổng hợp sau khi lịch thay đổi
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type BlockController struct {
	Ledger *services.LedgerService
	Cache  CacheInvalidator
}

func NewBlockController(ledger *services.LedgerService, cache CacheInvalidator) BlockController {
	return BlockController{
		Ledger: ledger,
		Cache:  cache,
	}
}

func (b BlockController) invalidate(c *gin.Context) {
	if b.Cache != nil {
		b.Cache.Invalidate(c.Request.Context())
	}
}

func toBlockInput(req dto.CreateBlockRequest) (services.BlockInput, error) {
	start, err := validator.ParseDate("startDate", req.StartDate)
	if err != nil {
		return services.BlockInput{}, err
	}
	end, err := validator.ParseDate("endDate", req.EndDate)
	if err != nil {
		return services.BlockInput{}, err
	}
	return services.BlockInput{
		PropertyID:        req.PropertyID,
		Start:             start,
		End:               end,
		Status:            req.Status,
		Source:            req.Source,
		ContractReference: req.ContractReference,
		Notes:             req.Notes,
		ForceOverlap:      req.ForceOverlap,
	}, nil
}

// ListBlocks GET /properties/:id/blocks
func (b BlockController) ListBlocks(c *gin.Context) {
	propertyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	blocks, err := b.Ledger.ListBlocks(c.Request.Context(), propertyID)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.ToBlockResponses(blocks), len(blocks))
}

// CheckOverlap GET /properties/:id/overlap?start=&end=&excludeId=
func (b BlockController) CheckOverlap(c *gin.Context) {
	propertyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	start, err := validator.ParseDate("start", c.Query("start"))
	if err != nil {
		c.Error(err)
		return
	}
	end, err := validator.ParseDate("end", c.Query("end"))
	if err != nil {
		c.Error(err)
		return
	}

	var excludeID *uint
	if s := c.Query("excludeId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			response.BadRequest(c, "excludeId không hợp lệ")
			return
		}
		id := uint(v)
		excludeID = &id
	}

	overlaps, err := b.Ledger.CheckOverlap(c.Request.Context(), propertyID, start, end, excludeID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, dto.OverlapResponse{
		PropertyID: propertyID,
		StartDate:  c.Query("start"),
		EndDate:    c.Query("end"),
		Overlaps:   overlaps,
	})
}

// CreateBlock POST /blocks
func (b BlockController) CreateBlock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	input, err := toBlockInput(req)
	if err != nil {
		c.Error(err)
		return
	}

	block, err := b.Ledger.CreateBlock(c.Request.Context(), input, actor)
	if err != nil {
		c.Error(err)
		return
	}
	b.invalidate(c)
	response.Created(c, dto.ToBlockResponse(block))
}

// ReplaceBlock PUT /blocks/:id
func (b BlockController) ReplaceBlock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blockID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Dữ liệu không hợp lệ: "+err.Error())
		return
	}
	input, err := toBlockInput(req)
	if err != nil {
		c.Error(err)
		return
	}

	block, err := b.Ledger.ReplaceBlock(c.Request.Context(), blockID, input, actor)
	if err != nil {
		c.Error(err)
		return
	}
	b.invalidate(c)
	response.Success(c, dto.ToBlockResponse(block))
}

// RemoveBlock DELETE /blocks/:id
func (b BlockController) RemoveBlock(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	blockID, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := b.Ledger.RemoveBlock(c.Request.Context(), blockID, actor); err != nil {
		c.Error(err)
		return
	}
	b.invalidate(c)
	response.Success(c, gin.H{"id": blockID})
}

// GetOverlappingBlocks GET /blocks/:id/overlaps
func (b BlockController) GetOverlappingBlocks(c *gin.Context) {
	blockID, ok := parseID(c, "id")
	if !ok {
		return
	}
	blocks, err := b.Ledger.GetOverlappingBlocks(c.Request.Context(), blockID)
	if err != nil {
		c.Error(err)
		return
	}
	response.SuccessWithTotal(c, dto.ToBlockResponses(blocks), len(blocks))
}
