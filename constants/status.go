package constants

// BlockStatus trạng thái của một block trên lịch
type BlockStatus string

const (
	BlockStatusOccupied          BlockStatus = "occupied"
	BlockStatusReserved          BlockStatus = "reserved"
	BlockStatusMaintenance       BlockStatus = "maintenance"
	BlockStatusAvailableOverride BlockStatus = "available_override"
)

// BlockStatuses liệt kê tất cả trạng thái hợp lệ
var BlockStatuses = []BlockStatus{
	BlockStatusOccupied,
	BlockStatusReserved,
	BlockStatusMaintenance,
	BlockStatusAvailableOverride,
}

// ConflictStatuses là các trạng thái tham gia kiểm tra trùng lịch
var ConflictStatuses = []BlockStatus{BlockStatusOccupied, BlockStatusReserved}

// OccupancyStatuses là các trạng thái được tính vào số ngày đã sử dụng.
// available_override không nằm trong danh sách này.
var OccupancyStatuses = []BlockStatus{BlockStatusOccupied, BlockStatusReserved, BlockStatusMaintenance}

func (s BlockStatus) Valid() bool {
	for _, v := range BlockStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Blocking trả về true nếu trạng thái chặn việc đặt trùng lịch
func (s BlockStatus) Blocking() bool {
	return s == BlockStatusOccupied || s == BlockStatusReserved
}

// Occupying trả về true nếu trạng thái được tính là đã sử dụng
func (s BlockStatus) Occupying() bool {
	return s.Blocking() || s == BlockStatusMaintenance
}

// BlockSource nguồn tạo block
type BlockSource string

const (
	BlockSourcePlatform BlockSource = "platform"
	BlockSourceOffline  BlockSource = "offline"
	BlockSourceLandlord BlockSource = "landlord"
	BlockSourceAdmin    BlockSource = "admin"
	BlockSourceSystem   BlockSource = "system"
)

var BlockSources = []BlockSource{
	BlockSourcePlatform,
	BlockSourceOffline,
	BlockSourceLandlord,
	BlockSourceAdmin,
	BlockSourceSystem,
}

func (s BlockSource) Valid() bool {
	for _, v := range BlockSources {
		if v == s {
			return true
		}
	}
	return false
}

// ContractStatus trạng thái hợp đồng
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "active"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusCanceled  ContractStatus = "canceled"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusActive, ContractStatusCompleted, ContractStatusCanceled:
		return true
	}
	return false
}

// PaymentStatus trạng thái thanh toán, độc lập với lịch
type PaymentStatus string

const (
	PaymentStatusNotCollected       PaymentStatus = "not_collected"
	PaymentStatusPartiallyCollected PaymentStatus = "partially_collected"
	PaymentStatusPaid               PaymentStatus = "paid"
	PaymentStatusRefunded           PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusNotCollected, PaymentStatusPartiallyCollected, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	}
	return false
}

type PricingType string

const (
	PricingMonthly PricingType = "monthly"
	PricingWeekly  PricingType = "weekly"
	PricingYearly  PricingType = "yearly"
	PricingDaily   PricingType = "daily"
)

func (p PricingType) Valid() bool {
	switch p {
	case PricingMonthly, PricingWeekly, PricingYearly, PricingDaily:
		return true
	}
	return false
}

// PropertyStatus trạng thái duyệt của property
type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusInReview  PropertyStatus = "in_review"
	PropertyStatusApproved  PropertyStatus = "approved"
	PropertyStatusRejected  PropertyStatus = "rejected"
	PropertyStatusSuspended PropertyStatus = "suspended"
)

// PropertyStatusPublished là trạng thái được tính là đang đăng
const PropertyStatusPublished = PropertyStatusApproved
