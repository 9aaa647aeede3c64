package services

import (
	"context"
	stdErrors "errors"
	"time"

	"rentledger/commands"
	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"
	"rentledger/services/logger"
	"rentledger/types"
	"rentledger/validator"

	"gorm.io/gorm"
)

// BlockInput dữ liệu tạo hoặc thay thế một block
type BlockInput struct {
	PropertyID        uint
	Start             time.Time
	End               time.Time
	Status            constants.BlockStatus
	Source            constants.BlockSource
	ContractReference *string
	Notes             *string
	ForceOverlap      bool
}

func (in BlockInput) Range() models.DateRange {
	return models.NewDateRange(in.Start, in.End)
}

// LedgerService quản lý lịch chiếm dụng của property
type LedgerService struct {
	db       *gorm.DB
	registry PropertyRegistry
	locker   PropertyLocker
	audit    AuditRecorder
	logger   logger.Logger
}

type LedgerServiceOptions struct {
	DB       *gorm.DB
	Registry PropertyRegistry
	Locker   PropertyLocker
	Audit    AuditRecorder
	Logger   logger.Logger
}

func NewLedgerService(opts LedgerServiceOptions) *LedgerService {
	s := &LedgerService{
		db:       opts.DB,
		registry: opts.Registry,
		locker:   opts.Locker,
		audit:    opts.Audit,
		logger:   opts.Logger,
	}
	if s.registry == nil {
		s.registry = NewPropertyRegistry(opts.DB)
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.logger == nil {
		s.logger = logger.NopLogger{}
	}
	return s
}

// forcedOverlapDetail nội dung ghi lại khi ép trùng lịch
type forcedOverlapDetail struct {
	Range     string             `json:"range"`
	Conflicts []conflictingRange `json:"conflicts"`
}

type conflictingRange struct {
	ID     uint                  `json:"id"`
	Range  string                `json:"range"`
	Status constants.BlockStatus `json:"status"`
}

// guardOverlap kiểm tra trùng lịch cho block sắp ghi.
// Trả về các block bị trùng khi được phép ép trùng.
func guardOverlap(tx *gorm.DB, block *models.AvailabilityBlock, excludeID *uint, force bool, actor types.Actor) ([]models.AvailabilityBlock, error) {
	if !block.Blocking() {
		return nil, nil
	}
	conflicts, err := findConflicts(tx, block.PropertyID, block.Range(), excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) == 0 {
		return nil, nil
	}
	if !force {
		return nil, errors.NewOverlapConflict(block.PropertyID, blockIDs(conflicts))
	}
	if !actor.CanForceOverlap {
		return nil, errors.ErrForceNotPermitted
	}
	return conflicts, nil
}

func forcedOverlapEntry(actor types.Actor, block *models.AvailabilityBlock, property *models.Property, conflicts []models.AvailabilityBlock, before *models.AvailabilityBlock) *models.AuditEntry {
	entry := newAuditEntry(actor, constants.EntityAvailabilityBlock, block.ID, constants.AuditActionForcedOverlap, property)
	detail := forcedOverlapDetail{Range: block.Range().String()}
	for _, c := range conflicts {
		detail.Conflicts = append(detail.Conflicts, conflictingRange{ID: c.ID, Range: c.Range().String(), Status: c.Status})
	}
	if before != nil {
		entry.Before = snapshot(before)
	}
	entry.After = snapshot(block)
	entry.Changes = snapshot(detail)
	entry.RelatedIDs = int64IDs(blockIDs(conflicts))
	return entry
}

func (s *LedgerService) record(ctx context.Context, entry *models.AuditEntry) {
	if s.audit != nil {
		s.audit.Record(ctx, entry)
	}
}

func normalizeInput(in *BlockInput) {
	if in.Source == "" {
		in.Source = constants.BlockSourceAdmin
	}
}

// CheckOverlap kiểm tra khoảng ngày có trùng block occupied/reserved trên property
func (s *LedgerService) CheckOverlap(ctx context.Context, propertyID uint, start, end time.Time, excludeID *uint) (bool, error) {
	if err := validator.ValidateRange(start, end); err != nil {
		return false, err
	}
	if _, err := s.registry.Get(ctx, propertyID); err != nil {
		return false, err
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.AvailabilityBlock{}).
		Scopes(overlapScope(propertyID, models.NewDateRange(start, end), excludeID)).
		Count(&count).Error; err != nil {
		return false, errors.DBError("Lỗi khi kiểm tra trùng lịch", err)
	}
	return count > 0, nil
}

// CreateBlock tạo block mới sau khi kiểm tra trùng lịch trong vùng độc quyền của property
func (s *LedgerService) CreateBlock(ctx context.Context, in BlockInput, actor types.Actor) (*models.AvailabilityBlock, error) {
	normalizeInput(&in)
	if err := validator.ValidateBlock(in.PropertyID, in.Start, in.End, in.Status, in.Source); err != nil {
		return nil, err
	}

	block := &models.AvailabilityBlock{
		PropertyID:        in.PropertyID,
		StartDate:         models.Day(in.Start),
		EndDate:           models.Day(in.End),
		Status:            in.Status,
		Source:            in.Source,
		ContractReference: in.ContractReference,
		Notes:             in.Notes,
	}

	var (
		property  models.Property
		conflicts []models.AvailabilityBlock
	)
	err := withPropertyLock(ctx, s.db, s.locker, in.PropertyID, func(tx *gorm.DB, p *models.Property) error {
		property = *p
		var err error
		conflicts, err = guardOverlap(tx, block, nil, in.ForceOverlap, actor)
		if err != nil {
			return err
		}
		if err := commands.NewCreateBlockCommand(block, tx).Execute(); err != nil {
			return errors.DBError("Lỗi khi tạo block", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		s.logger.Warn("⚠️ Actor %d forced block %d over %v on property %d", actor.ID, block.ID, blockIDs(conflicts), block.PropertyID)
		s.record(ctx, forcedOverlapEntry(actor, block, &property, conflicts, nil))
	} else {
		entry := newAuditEntry(actor, constants.EntityAvailabilityBlock, block.ID, constants.AuditActionCreated, &property)
		entry.After = snapshot(block)
		s.record(ctx, entry)
	}
	s.logger.Info("✅ Created block %d on property %d (%s)", block.ID, block.PropertyID, block.Range())
	return block, nil
}

func (s *LedgerService) getBlock(ctx context.Context, db *gorm.DB, blockID uint) (*models.AvailabilityBlock, error) {
	var block models.AvailabilityBlock
	if err := db.WithContext(ctx).First(&block, blockID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("block", blockID)
		}
		return nil, errors.DBError("Lỗi khi lấy block", err)
	}
	return &block, nil
}

// GetBlock lấy block theo ID
func (s *LedgerService) GetBlock(ctx context.Context, blockID uint) (*models.AvailabilityBlock, error) {
	return s.getBlock(ctx, s.db, blockID)
}

// ReplaceBlock thay toàn bộ ngày, trạng thái, nguồn và ghi chú của block.
// Block không được chuyển sang property khác.
func (s *LedgerService) ReplaceBlock(ctx context.Context, blockID uint, in BlockInput, actor types.Actor) (*models.AvailabilityBlock, error) {
	current, err := s.getBlock(ctx, s.db, blockID)
	if err != nil {
		return nil, err
	}
	if in.PropertyID == 0 {
		in.PropertyID = current.PropertyID
	}
	if in.PropertyID != current.PropertyID {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Không thể chuyển block sang property khác", nil)
	}
	normalizeInput(&in)
	if err := validator.ValidateBlock(in.PropertyID, in.Start, in.End, in.Status, in.Source); err != nil {
		return nil, err
	}

	var (
		property  models.Property
		before    models.AvailabilityBlock
		updated   *models.AvailabilityBlock
		conflicts []models.AvailabilityBlock
	)
	err = withPropertyLock(ctx, s.db, s.locker, current.PropertyID, func(tx *gorm.DB, p *models.Property) error {
		property = *p
		existing, err := s.getBlock(ctx, tx, blockID)
		if err != nil {
			return err
		}
		before = *existing

		existing.StartDate = models.Day(in.Start)
		existing.EndDate = models.Day(in.End)
		existing.Status = in.Status
		existing.Source = in.Source
		existing.ContractReference = in.ContractReference
		existing.Notes = in.Notes

		id := existing.ID
		conflicts, err = guardOverlap(tx, existing, &id, in.ForceOverlap, actor)
		if err != nil {
			return err
		}
		if err := commands.NewReplaceBlockCommand(existing, tx).Execute(); err != nil {
			return errors.DBError("Lỗi khi cập nhật block", err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		s.logger.Warn("⚠️ Actor %d forced block %d over %v on property %d", actor.ID, updated.ID, blockIDs(conflicts), updated.PropertyID)
		s.record(ctx, forcedOverlapEntry(actor, updated, &property, conflicts, &before))
	} else {
		entry := newAuditEntry(actor, constants.EntityAvailabilityBlock, updated.ID, constants.AuditActionUpdated, &property)
		entry.Before = snapshot(&before)
		entry.After = snapshot(updated)
		entry.Changes = diffJSON(&before, updated)
		s.record(ctx, entry)
	}
	return updated, nil
}

// GetOverlappingBlocks các block chặn lịch đang trùng với block đã cho
func (s *LedgerService) GetOverlappingBlocks(ctx context.Context, blockID uint) ([]models.AvailabilityBlock, error) {
	block, err := s.getBlock(ctx, s.db, blockID)
	if err != nil {
		return nil, err
	}
	id := block.ID
	return findConflicts(s.db.WithContext(ctx), block.PropertyID, block.Range(), &id)
}

// RemoveBlock xóa block và ghi lại trạng thái trước khi xóa
func (s *LedgerService) RemoveBlock(ctx context.Context, blockID uint, actor types.Actor) error {
	current, err := s.getBlock(ctx, s.db, blockID)
	if err != nil {
		return err
	}

	var (
		property models.Property
		before   models.AvailabilityBlock
	)
	err = withPropertyLock(ctx, s.db, s.locker, current.PropertyID, func(tx *gorm.DB, p *models.Property) error {
		property = *p
		existing, err := s.getBlock(ctx, tx, blockID)
		if err != nil {
			return err
		}
		before = *existing
		if err := commands.NewDeleteBlockCommand(blockID, tx).Execute(); err != nil {
			return errors.DBError("Lỗi khi xóa block", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	entry := newAuditEntry(actor, constants.EntityAvailabilityBlock, blockID, constants.AuditActionDeleted, &property)
	entry.Before = snapshot(&before)
	s.record(ctx, entry)
	return nil
}

// ListBlocks danh sách block của property theo ngày bắt đầu
func (s *LedgerService) ListBlocks(ctx context.Context, propertyID uint) ([]models.AvailabilityBlock, error) {
	var blocks []models.AvailabilityBlock
	if err := s.db.WithContext(ctx).Where("property_id = ?", propertyID).
		Order("start_date ASC, id ASC").Find(&blocks).Error; err != nil {
		return nil, errors.DBError("Lỗi khi lấy danh sách block", err)
	}
	return blocks, nil
}
