package notification

import (
	"fmt"

	"rentledger/models"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// AuditMessage payload gửi qua websocket khi có bản ghi audit mới
type AuditMessage struct {
	Type    string             `json:"type"`
	Summary string             `json:"summary"`
	Entry   *models.AuditEntry `json:"entry"`
}

type MessageBuilder struct {
	entry *models.AuditEntry
}

func NewMessageBuilder(entry *models.AuditEntry) *MessageBuilder {
	return &MessageBuilder{entry: entry}
}

// Summary câu mô tả ngắn của thao tác
func (b *MessageBuilder) Summary() string {
	e := b.entry
	name := e.ActorName
	if name == "" {
		name = "system"
	}
	target := fmt.Sprintf("%s #%d", e.EntityType, e.EntityID)
	if e.PropertyTitle != "" {
		target += " (" + e.PropertyTitle + ")"
	}
	return fmt.Sprintf("🔔 %s: %s %s", name, e.Action, target)
}

func (b *MessageBuilder) Build() (string, error) {
	data, err := json.Marshal(AuditMessage{
		Type:    "audit",
		Summary: b.Summary(),
		Entry:   b.entry,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
