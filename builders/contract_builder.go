package builders

import (
	"time"

	"rentledger/constants"
	"rentledger/models"
)

// ContractBuilder giúp tạo hợp đồng theo từng bước
type ContractBuilder struct {
	contract *models.Contract
}

// NewContractBuilder tạo instance mới với các giá trị mặc định
func NewContractBuilder() *ContractBuilder {
	return &ContractBuilder{
		contract: &models.Contract{
			PricingType:    constants.PricingMonthly,
			Currency:       "USD",
			PaymentStatus:  constants.PaymentStatusNotCollected,
			ContractStatus: constants.ContractStatusActive,
		},
	}
}

// ForProperty gắn property và chủ nhà
func (b *ContractBuilder) ForProperty(propertyID, landlordID uint) *ContractBuilder {
	b.contract.PropertyID = propertyID
	b.contract.LandlordID = landlordID
	return b
}

// WithRenter thêm thông tin người thuê
func (b *ContractBuilder) WithRenter(name string, company *string) *ContractBuilder {
	b.contract.RenterName = name
	b.contract.RenterCompany = company
	return b
}

// WithPeriod thêm thời gian thuê
func (b *ContractBuilder) WithPeriod(start, end time.Time) *ContractBuilder {
	b.contract.StartDate = models.Day(start)
	b.contract.EndDate = models.Day(end)
	return b
}

// WithPricing đặt loại giá và giá thuê tương ứng
func (b *ContractBuilder) WithPricing(pricingType constants.PricingType, rent *float64) *ContractBuilder {
	if pricingType == "" {
		pricingType = constants.PricingMonthly
	}
	b.contract.PricingType = pricingType
	switch pricingType {
	case constants.PricingWeekly:
		b.contract.WeeklyRent = rent
	case constants.PricingYearly:
		b.contract.YearlyRent = rent
	case constants.PricingDaily:
		b.contract.DailyRent = rent
	default:
		b.contract.MonthlyRent = rent
	}
	return b
}

// WithFees thêm tiền cọc và các loại phí
func (b *ContractBuilder) WithFees(deposit, serviceFee, cleaningFee *float64) *ContractBuilder {
	b.contract.SecurityDeposit = deposit
	b.contract.ServiceFee = serviceFee
	b.contract.CleaningFee = cleaningFee
	return b
}

// WithTotal thêm tổng giá trị hợp đồng
func (b *ContractBuilder) WithTotal(total float64, currency string) *ContractBuilder {
	b.contract.TotalValue = total
	if currency != "" {
		b.contract.Currency = currency
	}
	return b
}

func (b *ContractBuilder) WithPaymentStatus(status constants.PaymentStatus) *ContractBuilder {
	if status != "" {
		b.contract.PaymentStatus = status
	}
	return b
}

func (b *ContractBuilder) WithNotes(notes *string) *ContractBuilder {
	b.contract.NotesInternal = notes
	return b
}

// Build tạo hợp đồng hoàn chỉnh
func (b *ContractBuilder) Build() *models.Contract {
	return b.contract
}

// ContractBlock tạo block chiếm lịch cho hợp đồng offline
func ContractBlock(contract *models.Contract) *models.AvailabilityBlock {
	reference := contract.Reference()
	notes := "Offline contract for " + contract.RenterName
	return &models.AvailabilityBlock{
		PropertyID:        contract.PropertyID,
		StartDate:         models.Day(contract.StartDate),
		EndDate:           models.Day(contract.EndDate),
		Status:            constants.BlockStatusOccupied,
		Source:            constants.BlockSourceOffline,
		ContractReference: &reference,
		Notes:             &notes,
	}
}
