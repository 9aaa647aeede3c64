package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"rentledger/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func getDBConfigByEnv(env string) (string, error) {
	prefix := strings.ToUpper(env)
	switch prefix {
	case "DEV", "QC", "PROD":
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	user := os.Getenv(prefix + "_DB_USER")
	password := os.Getenv(prefix + "_DB_PASSWORD")
	host := os.Getenv(prefix + "_DB_HOST")
	port := os.Getenv(prefix + "_DB_PORT")
	name := os.Getenv(prefix + "_DB_NAME")
	sslmode := getEnvDefault(prefix+"_DB_SSLMODE", "require")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host, user, password, name, port, sslmode)
	return dsn, nil
}

// ConnectDB mở kết nối theo DB_DRIVER và migrate các bảng
func ConnectDB(cfg AppConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dsn, err := getDBConfigByEnv(cfg.Env)
		if err != nil {
			return nil, err
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite chỉ cho một writer tại một thời điểm
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Printf("Successfully connected to db (%s)", cfg.DBDriver)
	return db, nil
}

// Migrate tạo hoặc cập nhật các bảng
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Landlord{},
		&models.Property{},
		&models.AvailabilityBlock{},
		&models.Contract{},
		&models.AuditEntry{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
