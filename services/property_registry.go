package services

import (
	"context"
	stdErrors "errors"

	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PropertyRegistry nguồn đọc thông tin property và chủ nhà
type PropertyRegistry interface {
	Get(ctx context.Context, id uint) (*models.Property, error)
	PublishedIDs(ctx context.Context) ([]uint, error)
}

type GormPropertyRegistry struct {
	db *gorm.DB
}

func NewPropertyRegistry(db *gorm.DB) *GormPropertyRegistry {
	return &GormPropertyRegistry{db: db}
}

func (r *GormPropertyRegistry) Get(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("property", id)
		}
		return nil, errors.DBError("Lỗi khi lấy property", err)
	}
	return &property, nil
}

// PublishedIDs danh sách id property đang đăng, tăng dần
func (r *GormPropertyRegistry) PublishedIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("status = ?", string(constants.PropertyStatusPublished)).
		Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, errors.DBError("Lỗi khi lấy danh sách property", err)
	}
	return ids, nil
}

// withPropertyLock chạy fn trong vùng độc quyền của property:
// khóa theo property, mở transaction và khóa dòng property (FOR UPDATE).
// fn chỉ được dùng tx, không dùng db gốc.
func withPropertyLock(ctx context.Context, db *gorm.DB, locker PropertyLocker, propertyID uint, fn func(tx *gorm.DB, property *models.Property) error) error {
	unlock, err := locker.Lock(ctx, propertyID)
	if err != nil {
		return err
	}
	defer unlock()

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.DBError("Không thể mở transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var property models.Property
	if err := lockPropertyRow(tx, propertyID, &property).Error; err != nil {
		tx.Rollback()
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("property", propertyID)
		}
		return errors.DBError("Lỗi khi khóa property", err)
	}

	if err := fn(tx, &property); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.DBError("Không thể commit transaction", err)
	}
	return nil
}

// lockPropertyRow đọc property kèm SELECT ... FOR UPDATE (sqlite bỏ qua mệnh đề khóa)
func lockPropertyRow(tx *gorm.DB, propertyID uint, dest *models.Property) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, propertyID)
}

func statusValues(statuses []constants.BlockStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// overlapScope lọc các block chặn lịch trùng với khoảng r trên property.
// Ba điều kiện: block bắt đầu trong r, kết thúc trong r, hoặc bao trọn r.
func overlapScope(propertyID uint, r models.DateRange, excludeID *uint) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("property_id = ?", propertyID).
			Where("status IN ?", statusValues(constants.ConflictStatuses)).
			Where("((start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?) OR (start_date <= ? AND end_date >= ?))",
				r.Start, r.End, r.Start, r.End, r.Start, r.End)
		if excludeID != nil {
			q = q.Where("id <> ?", *excludeID)
		}
		return q
	}
}

func findConflicts(tx *gorm.DB, propertyID uint, r models.DateRange, excludeID *uint) ([]models.AvailabilityBlock, error) {
	var blocks []models.AvailabilityBlock
	if err := tx.Scopes(overlapScope(propertyID, r, excludeID)).
		Order("start_date ASC, id ASC").Find(&blocks).Error; err != nil {
		return nil, errors.DBError("Lỗi khi kiểm tra trùng lịch", err)
	}
	return blocks, nil
}

func blockIDs(blocks []models.AvailabilityBlock) []uint {
	ids := make([]uint, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.ID)
	}
	return ids
}
