package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"rentledger/constants"

	"github.com/joho/godotenv"
)

// AppConfig cấu hình đọc từ biến môi trường
type AppConfig struct {
	Env      string
	Port     string
	DBDriver string

	SQLitePath string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	JWTSecret   string
	LockBackend string
	LockTTL     time.Duration

	VacancyWindowDays int
	VacancyPolicy     string
	VacancyCacheTTL   time.Duration
	VacancyCron       string

	AuditAsync     bool
	AuditQueueSize int

	LogDir   string
	LogLevel string
}

// LoadEnv nạp file .env nếu có, thiếu file thì dùng biến môi trường sẵn có
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q không hợp lệ, dùng mặc định %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: %s=%q không hợp lệ, dùng mặc định %s", key, v, def)
		return def
	}
	return d
}

// Load đọc cấu hình từ môi trường (đã nạp .env)
func Load() AppConfig {
	return AppConfig{
		Env:      getEnvDefault("ENV", "dev"),
		Port:     getEnvDefault("PORT", "8083"),
		DBDriver: getEnvDefault("DB_DRIVER", "postgres"),

		SQLitePath: getEnvDefault("SQLITE_PATH", "rentledger.db"),

		RedisAddr:     GetEnv("REDIS_ADDR"),
		RedisUser:     GetEnv("REDIS_USER"),
		RedisPassword: GetEnv("REDIS_PASSWORD"),

		JWTSecret:   GetEnv("JWT_SECRET"),
		LockBackend: getEnvDefault("LOCK_BACKEND", "local"),
		LockTTL:     getEnvDuration("LOCK_TTL", 10*time.Second),

		VacancyWindowDays: getEnvInt("VACANCY_WINDOW_DAYS", constants.DefaultVacancyWindowDays),
		VacancyPolicy:     getEnvDefault("VACANCY_POLICY", constants.VacancyPolicySummed),
		VacancyCacheTTL:   getEnvDuration("VACANCY_CACHE_TTL", 10*time.Minute),
		VacancyCron:       getEnvDefault("VACANCY_CRON", "*/10 * * * *"),

		AuditAsync:     getEnvBool("AUDIT_ASYNC", true),
		AuditQueueSize: getEnvInt("AUDIT_QUEUE_SIZE", 256),

		LogDir:   getEnvDefault("LOG_DIR", "logs"),
		LogLevel: getEnvDefault("LOG_LEVEL", "info"),
	}
}
