package dto

import (
	"rentledger/constants"
	"rentledger/models"
)

// CreateBlockRequest body tạo hoặc thay thế block, ngày theo định dạng yyyy-mm-dd
type CreateBlockRequest struct {
	PropertyID        uint                  `json:"propertyId"`
	StartDate         string                `json:"startDate" binding:"required"`
	EndDate           string                `json:"endDate" binding:"required"`
	Status            constants.BlockStatus `json:"status" binding:"required"`
	Source            constants.BlockSource `json:"source"`
	ContractReference *string               `json:"contractReference"`
	Notes             *string               `json:"notes"`
	ForceOverlap      bool                  `json:"forceOverlap"`
}

type BlockResponse struct {
	ID                uint                  `json:"id"`
	PropertyID        uint                  `json:"propertyId"`
	StartDate         string                `json:"startDate"`
	EndDate           string                `json:"endDate"`
	Days              int                   `json:"days"`
	Status            constants.BlockStatus `json:"status"`
	Source            constants.BlockSource `json:"source"`
	ContractReference *string               `json:"contractReference,omitempty"`
	Notes             *string               `json:"notes,omitempty"`
}

type OverlapResponse struct {
	PropertyID uint   `json:"propertyId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Overlaps   bool   `json:"overlaps"`
}

func ToBlockResponse(b *models.AvailabilityBlock) BlockResponse {
	r := b.Range()
	return BlockResponse{
		ID:                b.ID,
		PropertyID:        b.PropertyID,
		StartDate:         r.Start.Format(constants.DateLayout),
		EndDate:           r.End.Format(constants.DateLayout),
		Days:              r.Days(),
		Status:            b.Status,
		Source:            b.Source,
		ContractReference: b.ContractReference,
		Notes:             b.Notes,
	}
}

func ToBlockResponses(blocks []models.AvailabilityBlock) []BlockResponse {
	out := make([]BlockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, ToBlockResponse(&blocks[i]))
	}
	return out
}
