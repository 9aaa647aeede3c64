package models

import (
	"time"

	"rentledger/constants"
)

type AvailabilityBlock struct {
	ID                uint                  `json:"id" gorm:"primaryKey"`
	PropertyID        uint                  `json:"propertyId" gorm:"not null;index:idx_blocks_property_dates,priority:1"`
	StartDate         time.Time             `json:"startDate" gorm:"type:date;not null;index;index:idx_blocks_property_dates,priority:2"`
	EndDate           time.Time             `json:"endDate" gorm:"type:date;not null;index;index:idx_blocks_property_dates,priority:3"`
	Status            constants.BlockStatus `json:"status" gorm:"size:32;not null;index"`
	Source            constants.BlockSource `json:"source" gorm:"size:32;not null;default:admin"`
	ContractReference *string               `json:"contractReference,omitempty" gorm:"size:64;index"`
	Notes             *string               `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time             `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time             `gorm:"autoUpdateTime" json:"updatedAt"`
	Property          *Property             `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (b *AvailabilityBlock) Range() DateRange {
	return NewDateRange(b.StartDate, b.EndDate)
}

// Blocking block có chặn việc đặt trùng lịch hay không
func (b *AvailabilityBlock) Blocking() bool {
	return b.Status.Blocking()
}

// Reference trả về contract reference hoặc chuỗi rỗng
func (b *AvailabilityBlock) Reference() string {
	if b.ContractReference == nil {
		return ""
	}
	return *b.ContractReference
}
