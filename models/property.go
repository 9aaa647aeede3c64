package models

import (
	"time"

	"rentledger/constants"
)

// Property chỉ được đọc từ lõi quản lý lịch
type Property struct {
	ID         uint                     `json:"id" gorm:"primaryKey"`
	LandlordID uint                     `json:"landlordId" gorm:"index"`
	Title      string                   `json:"title"`
	Status     constants.PropertyStatus `json:"status" gorm:"index;default:draft"`
	CreatedAt  time.Time                `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time                `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (p *Property) Published() bool {
	return p.Status == constants.PropertyStatusPublished
}

type Landlord struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CompanyName string    `json:"companyName"`
	ContactName string    `json:"contactName"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// DisplayName tên hiển thị của chủ nhà
func (l *Landlord) DisplayName() string {
	if l.CompanyName != "" {
		return l.CompanyName
	}
	return l.ContactName
}
