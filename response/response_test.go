package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rentledger/errors"

	"github.com/gin-gonic/gin"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.ErrCodeInvalidRange, http.StatusBadRequest},
		{errors.ErrCodeInvalidFormat, http.StatusBadRequest},
		{errors.ErrCodeInvalidToken, http.StatusUnauthorized},
		{errors.ErrCodeForbidden, http.StatusForbidden},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeOverlapConflict, http.StatusConflict},
		{errors.ErrCodeDBError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.code); got != tt.want {
			t.Errorf("StatusFor(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		FromError(c, err)
		return w
	}

	w := run(errors.NewOverlapConflict(3, []uint{7, 9}))
	if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), `"conflictingIds":[7,9]`) {
		t.Errorf("unexpected conflict response %d %s", w.Code, w.Body.String())
	}

	w = run(errors.NotFound("block", 5))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"errorCode":"NOT_FOUND"`) {
		t.Errorf("unexpected not found response %d %s", w.Code, w.Body.String())
	}

	// lỗi database không lộ chi tiết ra ngoài
	w = run(errors.DBError("Lỗi khi tạo block", http.ErrAbortHandler))
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "abort") {
		t.Errorf("unexpected server error response %d %s", w.Code, w.Body.String())
	}
}
