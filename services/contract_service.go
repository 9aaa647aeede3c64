package services

import (
	"context"
	stdErrors "errors"
	"time"

	"rentledger/builders"
	"rentledger/commands"
	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"
	"rentledger/services/logger"
	"rentledger/types"
	"rentledger/validator"

	"gorm.io/gorm"
)

// ContractService tạo hợp đồng offline và giữ lịch tương ứng
type ContractService struct {
	db     *gorm.DB
	locker PropertyLocker
	audit  AuditRecorder
	logger logger.Logger
	now    func() time.Time
}

type ContractServiceOptions struct {
	DB     *gorm.DB
	Locker PropertyLocker
	Audit  AuditRecorder
	Logger logger.Logger
	Now    func() time.Time
}

func NewContractService(opts ContractServiceOptions) *ContractService {
	s := &ContractService{
		db:     opts.DB,
		locker: opts.Locker,
		audit:  opts.Audit,
		logger: opts.Logger,
		now:    opts.Now,
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.logger == nil {
		s.logger = logger.NopLogger{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// StatusUpdate thay đổi trạng thái hợp đồng và/hoặc thanh toán
type StatusUpdate struct {
	ContractStatus   *constants.ContractStatus
	PaymentStatus    *constants.PaymentStatus
	FreeAvailability bool
}

func (s *ContractService) record(ctx context.Context, entry *models.AuditEntry) {
	if s.audit != nil {
		s.audit.Record(ctx, entry)
	}
}

func applyContractDefaults(c *models.Contract) {
	c.StartDate = models.Day(c.StartDate)
	c.EndDate = models.Day(c.EndDate)
	if c.PricingType == "" {
		c.PricingType = constants.PricingMonthly
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	if c.PaymentStatus == "" {
		c.PaymentStatus = constants.PaymentStatusNotCollected
	}
	if c.ContractStatus == "" {
		c.ContractStatus = constants.ContractStatusActive
	}
}

// CreateContractAndBlock lưu hợp đồng và đúng một block occupied cho khoảng ngày của hợp đồng.
// Hai bản ghi được ghi trong cùng transaction, lỗi ở bước nào cũng rollback cả hai.
func (s *ContractService) CreateContractAndBlock(ctx context.Context, contract *models.Contract, actor types.Actor, forceOverlap bool) (*models.Contract, error) {
	if contract == nil {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField, "Hợp đồng không được để trống", nil)
	}
	applyContractDefaults(contract)
	if err := validator.ValidateContract(contract); err != nil {
		return nil, err
	}

	var (
		property  models.Property
		block     *models.AvailabilityBlock
		conflicts []models.AvailabilityBlock
	)
	err := withPropertyLock(ctx, s.db, s.locker, contract.PropertyID, func(tx *gorm.DB, p *models.Property) error {
		property = *p

		var landlord models.Landlord
		if err := tx.First(&landlord, contract.LandlordID).Error; err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound("landlord", contract.LandlordID)
			}
			return errors.DBError("Lỗi khi lấy chủ nhà", err)
		}

		if err := tx.Create(contract).Error; err != nil {
			return errors.DBError("Lỗi khi tạo hợp đồng", err)
		}

		block = builders.ContractBlock(contract)
		var err error
		conflicts, err = guardOverlap(tx, block, nil, forceOverlap, actor)
		if err != nil {
			return err
		}
		if err := commands.NewCreateBlockCommand(block, tx).Execute(); err != nil {
			return errors.DBError("Lỗi khi tạo block cho hợp đồng", err)
		}
		return nil
	})
	if err != nil {
		// transaction đã rollback, bỏ ID đã gán
		contract.ID = 0
		return nil, err
	}

	entry := newAuditEntry(actor, constants.EntityContract, contract.ID, constants.AuditActionCreated, &property)
	entry.After = snapshot(contract)
	s.record(ctx, entry)

	if len(conflicts) > 0 {
		s.logger.Warn("⚠️ Contract %d block %d forced over %v", contract.ID, block.ID, blockIDs(conflicts))
		s.record(ctx, forcedOverlapEntry(actor, block, &property, conflicts, nil))
	} else {
		blockEntry := newAuditEntry(actor, constants.EntityAvailabilityBlock, block.ID, constants.AuditActionCreated, &property)
		blockEntry.After = snapshot(block)
		s.record(ctx, blockEntry)
	}

	s.logger.Info("✅ Created contract %d with block %d on property %d", contract.ID, block.ID, contract.PropertyID)
	return contract, nil
}

// GetContract lấy hợp đồng theo ID
func (s *ContractService) GetContract(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.WithContext(ctx).Preload("Property").Preload("Landlord").First(&contract, id).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("contract", id)
		}
		return nil, errors.DBError("Lỗi khi lấy hợp đồng", err)
	}
	return &contract, nil
}

// availabilityFreedDetail nội dung bản ghi availability-freed
type availabilityFreedDetail struct {
	Reference       string `json:"reference"`
	RemovedCount    int    `json:"removedCount"`
	RemovedBlockIDs []uint `json:"removedBlockIds"`
}

// FreeAvailability xóa mọi block gắn reference của hợp đồng trên property của nó.
// Gọi lần thứ hai trả về 0.
func (s *ContractService) FreeAvailability(ctx context.Context, contractID uint, actor types.Actor) (int, error) {
	var contract models.Contract
	if err := s.db.WithContext(ctx).First(&contract, contractID).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errors.NotFound("contract", contractID)
		}
		return 0, errors.DBError("Lỗi khi lấy hợp đồng", err)
	}

	var (
		property models.Property
		removed  []models.AvailabilityBlock
	)
	err := withPropertyLock(ctx, s.db, s.locker, contract.PropertyID, func(tx *gorm.DB, p *models.Property) error {
		property = *p
		cmd := commands.NewDeleteBlocksByReferenceCommand(contract.PropertyID, contract.Reference(), tx)
		if err := cmd.Execute(); err != nil {
			return errors.DBError("Lỗi khi giải phóng lịch", err)
		}
		removed = cmd.Removed
		return nil
	})
	if err != nil {
		return 0, err
	}

	for i := range removed {
		entry := newAuditEntry(actor, constants.EntityAvailabilityBlock, removed[i].ID, constants.AuditActionDeleted, &property)
		entry.Before = snapshot(&removed[i])
		s.record(ctx, entry)
	}

	entry := newAuditEntry(actor, constants.EntityContract, contract.ID, constants.AuditActionAvailabilityFreed, &property)
	ids := blockIDs(removed)
	entry.After = snapshot(availabilityFreedDetail{
		Reference:       contract.Reference(),
		RemovedCount:    len(removed),
		RemovedBlockIDs: ids,
	})
	entry.RelatedIDs = int64IDs(ids)
	s.record(ctx, entry)

	s.logger.Info("✅ Freed %d block(s) for contract %d on property %d", len(removed), contract.ID, contract.PropertyID)
	return len(removed), nil
}

// UpdateContractStatus cập nhật trạng thái hợp đồng/thanh toán.
// Chỉ giải phóng lịch khi trạng thái mới là canceled và có yêu cầu giải phóng.
func (s *ContractService) UpdateContractStatus(ctx context.Context, contractID uint, update StatusUpdate, actor types.Actor) (*models.Contract, int, error) {
	if err := validator.ValidateStatusUpdate(update.ContractStatus, update.PaymentStatus); err != nil {
		return nil, 0, err
	}

	var before, contract models.Contract
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, 0, errors.DBError("Không thể mở transaction", tx.Error)
	}

	if err := tx.First(&contract, contractID).Error; err != nil {
		tx.Rollback()
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, errors.NotFound("contract", contractID)
		}
		return nil, 0, errors.DBError("Lỗi khi lấy hợp đồng", err)
	}
	before = contract

	updates := map[string]interface{}{}
	if update.ContractStatus != nil {
		updates["contract_status"] = string(*update.ContractStatus)
		contract.ContractStatus = *update.ContractStatus
	}
	if update.PaymentStatus != nil {
		updates["payment_status"] = string(*update.PaymentStatus)
		contract.PaymentStatus = *update.PaymentStatus
	}
	if len(updates) > 0 {
		if err := tx.Model(&models.Contract{}).Where("id = ?", contractID).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, 0, errors.DBError("Lỗi khi cập nhật hợp đồng", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, 0, errors.DBError("Không thể commit transaction", err)
	}

	if len(updates) > 0 {
		var property *models.Property
		var p models.Property
		if err := s.db.WithContext(ctx).First(&p, contract.PropertyID).Error; err == nil {
			property = &p
		}
		entry := newAuditEntry(actor, constants.EntityContract, contract.ID, constants.AuditActionUpdated, property)
		entry.Before = snapshot(&before)
		entry.After = snapshot(&contract)
		entry.Changes = diffJSON(&before, &contract)
		s.record(ctx, entry)
	}

	freed := 0
	if update.ContractStatus != nil && *update.ContractStatus == constants.ContractStatusCanceled && update.FreeAvailability {
		n, err := s.FreeAvailability(ctx, contract.ID, actor)
		if err != nil {
			return &contract, 0, err
		}
		freed = n
	}
	return &contract, freed, nil
}

// ListUpcomingContracts hợp đồng active bắt đầu trong vòng days ngày tới
func (s *ContractService) ListUpcomingContracts(ctx context.Context, days int) ([]models.Contract, error) {
	if days <= 0 {
		days = constants.DefaultUpcomingDays
	}
	today := models.Day(s.now())
	until := today.AddDate(0, 0, days)

	var contracts []models.Contract
	if err := s.db.WithContext(ctx).Preload("Property").
		Where("contract_status = ?", string(constants.ContractStatusActive)).
		Where("start_date BETWEEN ? AND ?", today, until).
		Order("start_date ASC, id ASC").
		Find(&contracts).Error; err != nil {
		return nil, errors.DBError("Lỗi khi lấy hợp đồng sắp tới", err)
	}
	return contracts, nil
}
