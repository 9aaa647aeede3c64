package response

import (
	stdErrors "errors"
	"net/http"

	"rentledger/errors"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response
type Response struct {
	Code      int              `json:"code"`
	Mess      string           `json:"mess"`
	ErrorCode errors.ErrorCode `json:"errorCode,omitempty"`
	Data      interface{}      `json:"data,omitempty"`
}

type ResponseTotal struct {
	Code  int         `json:"code"`
	Mess  string      `json:"mess"`
	Data  interface{} `json:"data,omitempty"`
	Total int         `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Thành công",
		Data: data,
	})
}

func SuccessWithTotal(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, ResponseTotal{
		Code:  1,
		Mess:  "Thành công",
		Total: total,
		Data:  data,
	})
}

// Created trả về response tạo mới thành công
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Tạo thành công",
		Data: data,
	})
}

// Error trả về response lỗi theo AppError
func Error(c *gin.Context, status int, appErr *errors.AppError) {
	c.JSON(status, Response{
		Code:      0,
		Mess:      appErr.Message,
		ErrorCode: appErr.Code,
	})
}

// StatusFor ánh xạ mã lỗi sang HTTP status
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeInvalidRange, errors.ErrCodeValidation, errors.ErrCodeRequiredField,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeOverlapConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError trả về response phù hợp với lỗi từ service
func FromError(c *gin.Context, err error) {
	var conflict *errors.OverlapConflictError
	if stdErrors.As(err, &conflict) {
		Conflict(c, conflict)
		return
	}
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := StatusFor(appErr.Code)
	if status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	Error(c, status, appErr)
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Lỗi server",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Chưa xác thực",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Không có quyền truy cập",
	})
}

// ValidationError trả về response lỗi validation
func ValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:      0,
		Mess:      message,
		ErrorCode: errors.ErrCodeValidation,
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// ConflictData dữ liệu kèm theo response 409
type ConflictData struct {
	PropertyID     uint   `json:"propertyId"`
	ConflictingIDs []uint `json:"conflictingIds"`
}

// Conflict trả về response conflict (409) kèm các block bị trùng
func Conflict(c *gin.Context, conflict *errors.OverlapConflictError) {
	c.JSON(http.StatusConflict, Response{
		Code:      0,
		Mess:      conflict.Message,
		ErrorCode: conflict.Code,
		Data: ConflictData{
			PropertyID:     conflict.PropertyID,
			ConflictingIDs: conflict.ConflictingIDs,
		},
	})
}
