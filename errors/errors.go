package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Ledger errors
	ErrCodeInvalidRange    ErrorCode = "INVALID_RANGE"
	ErrCodeOverlapConflict ErrorCode = "OVERLAP_CONFLICT"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"

	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// Database errors
	ErrCodeDBError ErrorCode = "DB_ERROR"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidStatus ErrorCode = "INVALID_STATUS"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is so sánh theo mã lỗi để dùng được với errors.Is
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var conflict *OverlapConflictError
	if errors.As(err, &conflict) {
		return conflict.AppError
	}
	return nil
}

// HasCode kiểm tra mã lỗi của err
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// OverlapConflictError lỗi trùng lịch, kèm danh sách block bị trùng
type OverlapConflictError struct {
	*AppError
	PropertyID     uint
	ConflictingIDs []uint
}

// NewOverlapConflict tạo lỗi trùng lịch
func NewOverlapConflict(propertyID uint, ids []uint) *OverlapConflictError {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return &OverlapConflictError{
		AppError: NewAppError(ErrCodeOverlapConflict,
			fmt.Sprintf("Khoảng ngày bị trùng với block đã có trên property %d: %s", propertyID, strings.Join(parts, ", ")), nil),
		PropertyID:     propertyID,
		ConflictingIDs: ids,
	}
}

func (e *OverlapConflictError) Unwrap() error {
	return e.AppError
}

func NotFound(entity string, id uint) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("Không tìm thấy %s %d", entity, id), nil)
}

func DBError(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

var (
	ErrOverlapConflict    = NewAppError(ErrCodeOverlapConflict, "", nil)
	ErrForceNotPermitted  = NewAppError(ErrCodeForbidden, "Chỉ super admin được phép ép trùng lịch", nil)
	ErrPropertyLockFailed = errors.New("property lock not acquired")
)
