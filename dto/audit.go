package dto

import (
	"time"

	"rentledger/models"
)

type AuditEntryResponse struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	ActorID       uint      `json:"actorId"`
	ActorName     string    `json:"actorName"`
	EntityType    string    `json:"entityType"`
	EntityID      uint      `json:"entityId"`
	Action        string    `json:"action"`
	PropertyID    *uint     `json:"propertyId,omitempty"`
	PropertyTitle string    `json:"propertyTitle,omitempty"`
	Before        RawJSON   `json:"before,omitempty"`
	After         RawJSON   `json:"after,omitempty"`
	Changes       RawJSON   `json:"changes,omitempty"`
	RelatedIDs    []int64   `json:"relatedIds,omitempty"`
	RequestID     string    `json:"requestId,omitempty"`
}

// RawJSON giữ nguyên chuỗi JSON đã lưu khi trả về
type RawJSON string

func (r RawJSON) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	return []byte(r), nil
}

func ToAuditEntryResponses(entries []models.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:            e.ID,
			CreatedAt:     e.CreatedAt,
			ActorID:       e.ActorID,
			ActorName:     e.ActorName,
			EntityType:    e.EntityType,
			EntityID:      e.EntityID,
			Action:        e.Action,
			PropertyID:    e.PropertyID,
			PropertyTitle: e.PropertyTitle,
			Before:        RawJSON(e.Before),
			After:         RawJSON(e.After),
			Changes:       RawJSON(e.Changes),
			RelatedIDs:    e.RelatedIDs,
			RequestID:     e.RequestID,
		})
	}
	return out
}
