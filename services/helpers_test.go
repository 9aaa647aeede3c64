package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"rentledger/constants"
	"rentledger/models"
	"rentledger/types"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// mỗi connection ":memory:" là một database riêng nên chỉ mở 1 connection
func newTestDB(t *testing.T, migrate ...interface{}) *gorm.DB {
	t.Helper()
	return openTestDB(t, ":memory:", 1, migrate...)
}

// newFileTestDB database trên file, cho phép nhiều transaction chạy song song
func newFileTestDB(t *testing.T, maxConns int) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "ledger.db") + "?_busy_timeout=5000"
	return openTestDB(t, dsn, maxConns)
}

func openTestDB(t *testing.T, dsn string, maxConns int, migrate ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	t.Cleanup(func() { sqlDB.Close() })

	if len(migrate) == 0 {
		migrate = []interface{}{&models.Landlord{}, &models.Property{}, &models.AvailabilityBlock{}, &models.Contract{}, &models.AuditEntry{}}
	}
	if err := db.AutoMigrate(migrate...); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func seedLandlord(t *testing.T, db *gorm.DB, name string) *models.Landlord {
	t.Helper()
	l := &models.Landlord{CompanyName: name}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seeding landlord: %v", err)
	}
	return l
}

func seedProperty(t *testing.T, db *gorm.DB, landlordID uint, status constants.PropertyStatus) *models.Property {
	t.Helper()
	p := &models.Property{LandlordID: landlordID, Title: fmt.Sprintf("Unit %d", time.Now().UnixNano()%1000), Status: status}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seeding property: %v", err)
	}
	return p
}

func seedBlock(t *testing.T, db *gorm.DB, propertyID uint, start, end string, status constants.BlockStatus) *models.AvailabilityBlock {
	t.Helper()
	b := &models.AvailabilityBlock{
		PropertyID: propertyID,
		StartDate:  day(start),
		EndDate:    day(end),
		Status:     status,
		Source:     constants.BlockSourceAdmin,
	}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seeding block: %v", err)
	}
	return b
}

func day(s string) time.Time {
	d, err := models.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("counting: %v", err)
	}
	return n
}

var (
	adminActor      = types.NewActor(7, "Mai Admin", constants.RoleAdmin)
	superAdminActor = types.NewActor(1, "Root", constants.RoleSuperAdmin)
)

// fakeRecorder giữ lại các bản ghi audit trong bộ nhớ
type fakeRecorder struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
}

func (f *fakeRecorder) Record(_ context.Context, entry *models.AuditEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func (f *fakeRecorder) byAction(action string) []*models.AuditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.AuditEntry
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeRecorder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// captureLogger ghi nhớ các dòng log lỗi
type captureLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *captureLogger) Info(string, ...interface{})  {}
func (l *captureLogger) Warn(string, ...interface{})  {}
func (l *captureLogger) Debug(string, ...interface{}) {}
func (l *captureLogger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, v...))
}

func (l *captureLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}
