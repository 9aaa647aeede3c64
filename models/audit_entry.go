package models

import (
	"time"

	"github.com/lib/pq"
)

// AuditEntry bản ghi nhật ký thao tác, chỉ thêm không sửa
type AuditEntry struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CreatedAt     time.Time     `json:"createdAt" gorm:"index"`
	ActorID       uint          `json:"actorId" gorm:"index"`
	ActorName     string        `json:"actorName" gorm:"size:128"`
	EntityType    string        `json:"entityType" gorm:"size:64;index;index:idx_audit_entity,priority:1"`
	EntityID      uint          `json:"entityId" gorm:"index:idx_audit_entity,priority:2"`
	Action        string        `json:"action" gorm:"size:32;index"`
	PropertyID    *uint         `json:"propertyId,omitempty" gorm:"index"`
	PropertyTitle string        `json:"propertyTitle,omitempty"`
	Before        string        `json:"before,omitempty" gorm:"type:text"`
	After         string        `json:"after,omitempty" gorm:"type:text"`
	Changes       string        `json:"changes,omitempty" gorm:"type:text"`
	RelatedIDs    pq.Int64Array `json:"relatedIds,omitempty" gorm:"type:text"`
	RequestID     string        `json:"requestId,omitempty" gorm:"size:64"`
}
