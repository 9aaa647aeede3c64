package commands

import (
	"rentledger/models"

	"gorm.io/gorm"
)

// BlockCommand định nghĩa interface cho các command ghi lịch.
// Các command luôn chạy trên transaction do service mở.
type BlockCommand interface {
	Execute() error
}

// CreateBlockCommand command để tạo block mới
type CreateBlockCommand struct {
	block *models.AvailabilityBlock
	tx    *gorm.DB
}

func NewCreateBlockCommand(block *models.AvailabilityBlock, tx *gorm.DB) *CreateBlockCommand {
	return &CreateBlockCommand{
		block: block,
		tx:    tx,
	}
}

func (c *CreateBlockCommand) Execute() error {
	return c.tx.Create(c.block).Error
}

// ReplaceBlockCommand command để thay toàn bộ nội dung block
type ReplaceBlockCommand struct {
	block *models.AvailabilityBlock
	tx    *gorm.DB
}

func NewReplaceBlockCommand(block *models.AvailabilityBlock, tx *gorm.DB) *ReplaceBlockCommand {
	return &ReplaceBlockCommand{
		block: block,
		tx:    tx,
	}
}

func (c *ReplaceBlockCommand) Execute() error {
	return c.tx.Model(c.block).Select(
		"StartDate", "EndDate", "Status", "Source", "ContractReference", "Notes", "UpdatedAt",
	).Updates(c.block).Error
}

// DeleteBlockCommand command để xóa block
type DeleteBlockCommand struct {
	blockID uint
	tx      *gorm.DB
}

func NewDeleteBlockCommand(blockID uint, tx *gorm.DB) *DeleteBlockCommand {
	return &DeleteBlockCommand{
		blockID: blockID,
		tx:      tx,
	}
}

func (c *DeleteBlockCommand) Execute() error {
	return c.tx.Delete(&models.AvailabilityBlock{}, c.blockID).Error
}

// DeleteBlocksByReferenceCommand xóa mọi block của property gắn contract reference
type DeleteBlocksByReferenceCommand struct {
	propertyID uint
	reference  string
	tx         *gorm.DB

	Removed []models.AvailabilityBlock
}

func NewDeleteBlocksByReferenceCommand(propertyID uint, reference string, tx *gorm.DB) *DeleteBlocksByReferenceCommand {
	return &DeleteBlocksByReferenceCommand{
		propertyID: propertyID,
		reference:  reference,
		tx:         tx,
	}
}

func (c *DeleteBlocksByReferenceCommand) Execute() error {
	var blocks []models.AvailabilityBlock
	if err := c.tx.Where("property_id = ? AND contract_reference = ?", c.propertyID, c.reference).
		Order("start_date ASC, id ASC").Find(&blocks).Error; err != nil {
		return err
	}
	if len(blocks) == 0 {
		c.Removed = nil
		return nil
	}

	ids := make([]uint, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	if err := c.tx.Delete(&models.AvailabilityBlock{}, ids).Error; err != nil {
		return err
	}
	c.Removed = blocks
	return nil
}
