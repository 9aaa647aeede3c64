package dto

import (
	"rentledger/constants"
	"rentledger/models"
)

type CreateContractRequest struct {
	PropertyID      uint                    `json:"propertyId" binding:"required"`
	LandlordID      uint                    `json:"landlordId" binding:"required"`
	RenterName      string                  `json:"renterName" binding:"required"`
	RenterCompany   *string                 `json:"renterCompany"`
	StartDate       string                  `json:"startDate" binding:"required"`
	EndDate         string                  `json:"endDate" binding:"required"`
	PricingType     constants.PricingType   `json:"pricingType"`
	Rent            *float64                `json:"rent"`
	SecurityDeposit *float64                `json:"securityDeposit"`
	ServiceFee      *float64                `json:"serviceFee"`
	CleaningFee     *float64                `json:"cleaningFee"`
	TotalValue      float64                 `json:"totalValue" binding:"gte=0"`
	Currency        string                  `json:"currency"`
	PaymentStatus   constants.PaymentStatus `json:"paymentStatus"`
	NotesInternal   *string                 `json:"notesInternal"`
	ForceOverlap    bool                    `json:"forceOverlap"`
}

type UpdateContractStatusRequest struct {
	ContractStatus   *constants.ContractStatus `json:"contractStatus"`
	PaymentStatus    *constants.PaymentStatus  `json:"paymentStatus"`
	FreeAvailability bool                      `json:"freeAvailability"`
}

type ContractResponse struct {
	ID             uint                     `json:"id"`
	Reference      string                   `json:"reference"`
	PropertyID     uint                     `json:"propertyId"`
	PropertyTitle  string                   `json:"propertyTitle,omitempty"`
	LandlordID     uint                     `json:"landlordId"`
	LandlordName   string                   `json:"landlordName,omitempty"`
	RenterName     string                   `json:"renterName"`
	RenterCompany  *string                  `json:"renterCompany,omitempty"`
	StartDate      string                   `json:"startDate"`
	EndDate        string                   `json:"endDate"`
	DurationInDays int                      `json:"durationInDays"`
	PricingType    constants.PricingType    `json:"pricingType"`
	Rent           *float64                 `json:"rent,omitempty"`
	TotalValue     float64                  `json:"totalValue"`
	Currency       string                   `json:"currency"`
	PaymentStatus  constants.PaymentStatus  `json:"paymentStatus"`
	ContractStatus constants.ContractStatus `json:"contractStatus"`
}

type StatusUpdateResponse struct {
	Contract    ContractResponse `json:"contract"`
	FreedBlocks int              `json:"freedBlocks"`
}

type FreeAvailabilityResponse struct {
	ContractID    uint `json:"contractId"`
	RemovedBlocks int  `json:"removedBlocks"`
}

func ToContractResponse(c *models.Contract) ContractResponse {
	r := c.Range()
	resp := ContractResponse{
		ID:             c.ID,
		Reference:      c.Reference(),
		PropertyID:     c.PropertyID,
		LandlordID:     c.LandlordID,
		RenterName:     c.RenterName,
		RenterCompany:  c.RenterCompany,
		StartDate:      r.Start.Format(constants.DateLayout),
		EndDate:        r.End.Format(constants.DateLayout),
		DurationInDays: c.DurationInDays(),
		PricingType:    c.PricingType,
		Rent:           c.ActiveRent(),
		TotalValue:     c.TotalValue,
		Currency:       c.Currency,
		PaymentStatus:  c.PaymentStatus,
		ContractStatus: c.ContractStatus,
	}
	if c.Property != nil {
		resp.PropertyTitle = c.Property.Title
	}
	if c.Landlord != nil {
		resp.LandlordName = c.Landlord.DisplayName()
	}
	return resp
}

func ToContractResponses(contracts []models.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(contracts))
	for i := range contracts {
		out = append(out, ToContractResponse(&contracts[i]))
	}
	return out
}
