package models

import (
	"fmt"
	"time"

	"rentledger/constants"
)

type Contract struct {
	ID              uint                     `json:"id" gorm:"primaryKey"`
	PropertyID      uint                     `json:"propertyId" gorm:"not null;index:idx_contracts_property_start,priority:1" validate:"required"`
	LandlordID      uint                     `json:"landlordId" gorm:"not null;index" validate:"required"`
	RenterName      string                   `json:"renterName" gorm:"not null" validate:"required,max=255"`
	RenterCompany   *string                  `json:"renterCompany,omitempty"`
	StartDate       time.Time                `json:"startDate" gorm:"type:date;not null;index;index:idx_contracts_property_start,priority:2"`
	EndDate         time.Time                `json:"endDate" gorm:"type:date;not null;index"`
	PricingType     constants.PricingType    `json:"pricingType" gorm:"size:16;default:monthly;index"`
	MonthlyRent     *float64                 `json:"monthlyRent,omitempty"`
	WeeklyRent      *float64                 `json:"weeklyRent,omitempty"`
	YearlyRent      *float64                 `json:"yearlyRent,omitempty"`
	DailyRent       *float64                 `json:"dailyRent,omitempty"`
	SecurityDeposit *float64                 `json:"securityDeposit,omitempty"`
	ServiceFee      *float64                 `json:"serviceFee,omitempty"`
	CleaningFee     *float64                 `json:"cleaningFee,omitempty"`
	TotalValue      float64                  `json:"totalValue" validate:"gte=0"`
	Currency        string                   `json:"currency" gorm:"size:3;default:USD" validate:"omitempty,len=3"`
	PaymentStatus   constants.PaymentStatus  `json:"paymentStatus" gorm:"size:32;default:not_collected;index"`
	ContractStatus  constants.ContractStatus `json:"contractStatus" gorm:"size:32;default:active;index"`
	NotesInternal   *string                  `json:"notesInternal,omitempty" gorm:"type:text"`
	CreatedAt       time.Time                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time                `gorm:"autoUpdateTime" json:"updatedAt"`
	Property        *Property                `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Landlord        *Landlord                `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
}

// ContractReference tag gắn trên block được tạo cho hợp đồng
func ContractReference(contractID uint) string {
	return fmt.Sprintf("CONTRACT-%d", contractID)
}

func (c *Contract) Reference() string {
	return ContractReference(c.ID)
}

func (c *Contract) Range() DateRange {
	return NewDateRange(c.StartDate, c.EndDate)
}

// DurationInDays số ngày giữa ngày bắt đầu và ngày kết thúc
func (c *Contract) DurationInDays() int {
	return c.Range().Days() - 1
}

// ActiveRent giá thuê theo loại giá của hợp đồng
func (c *Contract) ActiveRent() *float64 {
	switch c.PricingType {
	case constants.PricingWeekly:
		return c.WeeklyRent
	case constants.PricingYearly:
		return c.YearlyRent
	case constants.PricingDaily:
		return c.DailyRent
	default:
		return c.MonthlyRent
	}
}

func (c *Contract) IsCurrentlyActive(now time.Time) bool {
	return c.ContractStatus == constants.ContractStatusActive && c.Range().Contains(now)
}

func (c *Contract) IsUpcoming(now time.Time) bool {
	return c.ContractStatus == constants.ContractStatusActive && Day(now).Before(Day(c.StartDate))
}

func (c *Contract) IsExpired(now time.Time) bool {
	return Day(now).After(Day(c.EndDate))
}
