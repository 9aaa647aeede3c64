package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Hàm kết nối đến Redis, trả về nil nếu REDIS_ADDR trống
func ConnectRedis(ctx context.Context, cfg AppConfig) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR trống, chạy không có Redis")
		return nil, nil
	}

	// Khởi tạo client Redis với các tùy chọn
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Username: cfg.RedisUser,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	// Kiểm tra kết nối
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Kết nối Redis thành công:", res)
	return rdb, nil
}
