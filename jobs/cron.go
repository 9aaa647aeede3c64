package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// VacancyWarmer tính lại cache tỷ lệ trống
type VacancyWarmer interface {
	Warm(ctx context.Context) error
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, spec string, warmer VacancyWarmer) error {
	if spec == "" {
		spec = "*/10 * * * *"
	}
	_, err := c.AddFunc(spec, func() {
		now := time.Now()
		log.Printf("Đang làm mới cache tỷ lệ trống lúc: %v", now)
		if warmer == nil {
			log.Printf("Lỗi: VacancyWarmer chưa được thiết lập")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := warmer.Warm(ctx); err != nil {
			log.Printf("Lỗi khi làm mới cache tỷ lệ trống: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
