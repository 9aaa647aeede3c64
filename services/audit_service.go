package services

import (
	"context"
	"reflect"
	"sync"
	"time"

	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"
	"rentledger/services/logger"
	"rentledger/services/notification"
	"rentledger/types"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AuditRecorder ghi nhận thao tác, không bao giờ trả lỗi cho bên gọi
type AuditRecorder interface {
	Record(ctx context.Context, entry *models.AuditEntry)
}

type AuditService struct {
	db       *gorm.DB
	logger   logger.Logger
	notifier notification.Service
	now      func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan *models.AuditEntry
	wg     sync.WaitGroup
}

type AuditServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Notifier notification.Service
	// Async ghi qua hàng đợi với một worker, QueueSize mặc định 256
	Async     bool
	QueueSize int
	Now       func() time.Time
}

func NewAuditService(opts AuditServiceOptions) *AuditService {
	s := &AuditService{
		db:       opts.DB,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		now:      opts.Now,
	}
	if s.logger == nil {
		s.logger = logger.NopLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Async {
		size := opts.QueueSize
		if size <= 0 {
			size = 256
		}
		s.queue = make(chan *models.AuditEntry, size)
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Record ghi bản ghi audit. Lỗi chỉ được log ra kênh chẩn đoán.
func (s *AuditService) Record(ctx context.Context, entry *models.AuditEntry) {
	if entry == nil {
		return
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if entry.RequestID == "" {
		entry.RequestID = RequestIDFromContext(ctx)
	}

	s.mu.RLock()
	if s.queue != nil && !s.closed {
		select {
		case s.queue <- entry:
		default:
			s.logger.Error("❌ Audit queue full, dropping %s %s #%d", entry.EntityType, entry.Action, entry.EntityID)
		}
		s.mu.RUnlock()
		return
	}
	s.mu.RUnlock()

	s.write(context.WithoutCancel(ctx), entry)
}

func (s *AuditService) worker() {
	defer s.wg.Done()
	for entry := range s.queue {
		s.write(context.Background(), entry)
	}
}

func (s *AuditService) write(ctx context.Context, entry *models.AuditEntry) {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		s.logger.Error("❌ Failed to write audit entry %s %s #%d: %v", entry.EntityType, entry.Action, entry.EntityID, err)
		return
	}
	s.broadcast(entry)
}

func (s *AuditService) broadcast(entry *models.AuditEntry) {
	if s.notifier == nil {
		return
	}
	msg, err := notification.NewMessageBuilder(entry).Build()
	if err != nil {
		s.logger.Debug("Không thể build audit message: %v", err)
		return
	}
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Debug("Không thể gửi audit message: %v", err)
	}
}

// Close dừng nhận bản ghi mới và chờ hàng đợi ghi xong
func (s *AuditService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.queue != nil {
		close(s.queue)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Recent các bản ghi mới nhất, lọc theo entityType nếu có
func (s *AuditService) Recent(ctx context.Context, limit int, entityType string) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = constants.DefaultAuditLimit
	}
	if limit > constants.MaxAuditLimit {
		limit = constants.MaxAuditLimit
	}

	query := s.db.WithContext(ctx).Model(&models.AuditEntry{})
	if entityType != "" {
		query = query.Where("entity_type = ?", entityType)
	}

	var entries []models.AuditEntry
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, errors.DBError("Lỗi khi lấy nhật ký thao tác", err)
	}
	return entries, nil
}

type requestIDKey struct{}

// WithRequestID gắn request id vào context để audit ghi lại
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// newAuditEntry khởi tạo bản ghi với actor và property
func newAuditEntry(actor types.Actor, entityType string, entityID uint, action string, property *models.Property) *models.AuditEntry {
	entry := &models.AuditEntry{
		ActorID:    actor.ID,
		ActorName:  actor.DisplayName(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
	if property != nil {
		id := property.ID
		entry.PropertyID = &id
		entry.PropertyTitle = property.Title
	}
	return entry
}

// bỏ qua khi so sánh
var diffIgnoredFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"property":  true,
	"landlord":  true,
}

func snapshot(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func toFieldMap(v interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	if v == nil {
		return out
	}
	data, err := json.Marshal(v)
	if err != nil {
		return out
	}
	_ = json.Unmarshal(data, &out)
	return out
}

// FieldChange giá trị trước và sau của một trường
type FieldChange struct {
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// Diff so sánh hai snapshot và trả về các trường thay đổi
func Diff(before, after interface{}) map[string]FieldChange {
	b := toFieldMap(before)
	a := toFieldMap(after)
	changes := map[string]FieldChange{}
	for key, av := range a {
		if diffIgnoredFields[key] {
			continue
		}
		if bv, ok := b[key]; !ok || !reflect.DeepEqual(bv, av) {
			changes[key] = FieldChange{From: b[key], To: av}
		}
	}
	for key, bv := range b {
		if diffIgnoredFields[key] {
			continue
		}
		if _, ok := a[key]; !ok {
			changes[key] = FieldChange{From: bv, To: nil}
		}
	}
	return changes
}

func diffJSON(before, after interface{}) string {
	changes := Diff(before, after)
	if len(changes) == 0 {
		return ""
	}
	return snapshot(changes)
}

func int64IDs(ids []uint) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
