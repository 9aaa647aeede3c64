package validator

import (
	"strings"
	"time"

	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New()

// ValidateStruct chạy các rule `validate` trên struct
func ValidateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var fields []string
		if verrs, ok := err.(playground.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+":"+fe.Tag())
			}
		}
		return errors.NewAppError(errors.ErrCodeValidation, "Dữ liệu không hợp lệ: "+strings.Join(fields, ", "), err)
	}
	return nil
}

// ValidateRange kiểm tra ngày bắt đầu không sau ngày kết thúc
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Ngày bắt đầu và ngày kết thúc không được để trống", nil)
	}
	if !models.NewDateRange(start, end).Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidRange, "Ngày kết thúc phải bằng hoặc sau ngày bắt đầu", nil)
	}
	return nil
}

// ValidateBlock validate thông tin block trước khi ghi
func ValidateBlock(propertyID uint, start, end time.Time, status constants.BlockStatus, source constants.BlockSource) error {
	if propertyID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "ID property không được để trống", nil)
	}
	if err := ValidateRange(start, end); err != nil {
		return err
	}
	if !status.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái block không hợp lệ: "+string(status), nil)
	}
	if !source.Valid() {
		return errors.NewAppError(errors.ErrCodeValidation, "Nguồn block không hợp lệ: "+string(source), nil)
	}
	return nil
}

// ValidateContract validate hợp đồng trước khi tạo
func ValidateContract(contract *models.Contract) error {
	if contract == nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Hợp đồng không được để trống", nil)
	}
	if err := ValidateStruct(contract); err != nil {
		return err
	}
	if err := ValidateRange(contract.StartDate, contract.EndDate); err != nil {
		return err
	}
	if contract.PricingType != "" && !contract.PricingType.Valid() {
		return errors.NewAppError(errors.ErrCodeValidation, "Loại giá không hợp lệ: "+string(contract.PricingType), nil)
	}
	if contract.ContractStatus != "" && !contract.ContractStatus.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái hợp đồng không hợp lệ: "+string(contract.ContractStatus), nil)
	}
	if contract.PaymentStatus != "" && !contract.PaymentStatus.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái thanh toán không hợp lệ: "+string(contract.PaymentStatus), nil)
	}
	return nil
}

// ValidateStatusUpdate kiểm tra các trạng thái được gửi lên khi cập nhật hợp đồng
func ValidateStatusUpdate(contractStatus *constants.ContractStatus, paymentStatus *constants.PaymentStatus) error {
	if contractStatus != nil && !contractStatus.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái hợp đồng không hợp lệ: "+string(*contractStatus), nil)
	}
	if paymentStatus != nil && !paymentStatus.Valid() {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, "Trạng thái thanh toán không hợp lệ: "+string(*paymentStatus), nil)
	}
	return nil
}

// ParseDate đọc ngày yyyy-mm-dd từ request
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.NewAppError(errors.ErrCodeRequiredField, field+" không được để trống", nil)
	}
	d, err := models.ParseDay(value)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, field+" không đúng định dạng yyyy-mm-dd", err)
	}
	return d, nil
}
