package models

import (
	"fmt"
	"time"

	"rentledger/constants"
)

// DateRange khoảng ngày đóng [Start, End], độ chi tiết theo ngày
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day chuẩn hóa thời gian về 0h UTC của ngày đó
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay đọc ngày theo định dạng yyyy-mm-dd
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: Day(start), End: Day(end)}
}

func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start)
}

// Overlaps kiểm tra hai khoảng có chung ít nhất một ngày.
// Hai khoảng chạm nhau tại một ngày vẫn tính là trùng.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

// Contains kiểm tra ngày d nằm trong khoảng
func (r DateRange) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Encloses kiểm tra r bao trọn o
func (r DateRange) Encloses(o DateRange) bool {
	return !r.Start.After(o.Start) && !r.End.Before(o.End)
}

// Days số ngày trong khoảng, tính cả hai đầu
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Intersect phần giao của hai khoảng, ok=false nếu không giao nhau
func (r DateRange) Intersect(o DateRange) (DateRange, bool) {
	if !r.Overlaps(o) {
		return DateRange{}, false
	}
	start := r.Start
	if o.Start.After(start) {
		start = o.Start
	}
	end := r.End
	if o.End.Before(end) {
		end = o.End
	}
	return DateRange{Start: start, End: end}, true
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(constants.DateLayout), r.End.Format(constants.DateLayout))
}
