package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"rentledger/constants"
	"rentledger/errors"
	"rentledger/models"
	"rentledger/services/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const vacancyCachePrefix = "occupancy:vacancy:"

// VacancySnapshot các thành phần của tỷ lệ trống
type VacancySnapshot struct {
	WindowDays     int       `json:"windowDays"`
	WindowStart    string    `json:"windowStart"`
	WindowEnd      string    `json:"windowEnd"`
	Policy         string    `json:"policy"`
	PublishedCount int64     `json:"publishedCount"`
	TotalDays      int64     `json:"totalDays"`
	OccupiedDays   int64     `json:"occupiedDays"`
	Rate           float64   `json:"rate"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// OccupancyService tính tỷ lệ trống trên toàn bộ property đang đăng.
// Chỉ đọc dữ liệu, kết quả có thể trễ so với các thao tác ghi đồng thời.
type OccupancyService struct {
	db            *gorm.DB
	registry      PropertyRegistry
	rdb           *redis.Client
	logger        logger.Logger
	policy        string
	cacheTTL      time.Duration
	defaultWindow int
	now           func() time.Time
}

type OccupancyServiceOptions struct {
	DB       *gorm.DB
	Registry PropertyRegistry
	// Redis có thể nil, khi đó không cache
	Redis         *redis.Client
	Logger        logger.Logger
	Policy        string
	CacheTTL      time.Duration
	DefaultWindow int
	Now           func() time.Time
}

func NewOccupancyService(opts OccupancyServiceOptions) *OccupancyService {
	s := &OccupancyService{
		db:            opts.DB,
		registry:      opts.Registry,
		rdb:           opts.Redis,
		logger:        opts.Logger,
		policy:        opts.Policy,
		cacheTTL:      opts.CacheTTL,
		defaultWindow: opts.DefaultWindow,
		now:           opts.Now,
	}
	if s.registry == nil {
		s.registry = NewPropertyRegistry(opts.DB)
	}
	if s.logger == nil {
		s.logger = logger.NopLogger{}
	}
	if s.policy != constants.VacancyPolicyMerged {
		s.policy = constants.VacancyPolicySummed
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = 10 * time.Minute
	}
	if s.defaultWindow <= 0 {
		s.defaultWindow = constants.DefaultVacancyWindowDays
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// VacancyRate tỷ lệ phần trăm ngày trống, làm tròn 1 chữ số thập phân
func (s *OccupancyService) VacancyRate(ctx context.Context, windowDays int) (float64, error) {
	snap, err := s.Snapshot(ctx, windowDays)
	if err != nil {
		return 0, err
	}
	return snap.Rate, nil
}

// Window khoảng [hôm nay, hôm nay + windowDays - 1]
func (s *OccupancyService) Window(windowDays int) models.DateRange {
	today := models.Day(s.now())
	return models.DateRange{Start: today, End: today.AddDate(0, 0, windowDays-1)}
}

func (s *OccupancyService) cacheKey(window models.DateRange, windowDays int) string {
	return fmt.Sprintf("%s%s:%d:%s", vacancyCachePrefix, s.policy, windowDays, window.Start.Format(constants.DateLayout))
}

// Snapshot tính (hoặc lấy từ cache) các thành phần của tỷ lệ trống
func (s *OccupancyService) Snapshot(ctx context.Context, windowDays int) (*VacancySnapshot, error) {
	if windowDays == 0 {
		windowDays = s.defaultWindow
	}
	if windowDays < 0 {
		return nil, errors.NewAppError(errors.ErrCodeValidation, "Số ngày phải lớn hơn 0", nil)
	}

	window := s.Window(windowDays)
	key := s.cacheKey(window, windowDays)
	if s.rdb != nil {
		var cached VacancySnapshot
		found, err := GetFromRedis(ctx, s.rdb, key, &cached)
		if err != nil {
			s.logger.Debug("Không đọc được cache vacancy: %v", err)
		} else if found {
			return &cached, nil
		}
	}

	snap, err := s.compute(ctx, window, windowDays)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := SetToRedis(ctx, s.rdb, key, snap, s.cacheTTL); err != nil {
			s.logger.Debug("Không ghi được cache vacancy: %v", err)
		}
	}
	return snap, nil
}

func (s *OccupancyService) compute(ctx context.Context, window models.DateRange, windowDays int) (*VacancySnapshot, error) {
	snap := &VacancySnapshot{
		WindowDays:  windowDays,
		WindowStart: window.Start.Format(constants.DateLayout),
		WindowEnd:   window.End.Format(constants.DateLayout),
		Policy:      s.policy,
		GeneratedAt: s.now(),
	}

	published, err := s.registry.PublishedIDs(ctx)
	if err != nil {
		return nil, err
	}
	snap.PublishedCount = int64(len(published))
	snap.TotalDays = snap.PublishedCount * int64(windowDays)
	if snap.TotalDays == 0 {
		return snap, nil
	}

	var blocks []models.AvailabilityBlock
	if err := s.db.WithContext(ctx).
		Where("property_id IN ?", published).
		Where("status IN ?", statusValues(constants.OccupancyStatuses)).
		Where("start_date <= ? AND end_date >= ?", window.End, window.Start).
		Find(&blocks).Error; err != nil {
		return nil, errors.DBError("Lỗi khi tính tỷ lệ trống", err)
	}

	snap.OccupiedDays = OccupiedDays(blocks, window, s.policy)
	snap.Rate = VacancyPercent(snap.TotalDays, snap.OccupiedDays)
	return snap, nil
}

// OccupiedDays tổng số ngày bị chiếm trong window.
// summed cộng từng block độc lập, merged gộp các khoảng trùng nhau trên cùng property.
func OccupiedDays(blocks []models.AvailabilityBlock, window models.DateRange, policy string) int64 {
	if policy != constants.VacancyPolicyMerged {
		var total int64
		for i := range blocks {
			if !blocks[i].Status.Occupying() {
				continue
			}
			if r, ok := blocks[i].Range().Intersect(window); ok {
				total += int64(r.Days())
			}
		}
		return total
	}

	byProperty := map[uint][]models.DateRange{}
	for i := range blocks {
		if !blocks[i].Status.Occupying() {
			continue
		}
		if r, ok := blocks[i].Range().Intersect(window); ok {
			byProperty[blocks[i].PropertyID] = append(byProperty[blocks[i].PropertyID], r)
		}
	}

	var total int64
	for _, ranges := range byProperty {
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start.Before(ranges[j].Start) })
		current := ranges[0]
		for _, r := range ranges[1:] {
			// liền kề cũng gộp
			if !r.Start.After(current.End.AddDate(0, 0, 1)) {
				if r.End.After(current.End) {
					current.End = r.End
				}
				continue
			}
			total += int64(current.Days())
			current = r
		}
		total += int64(current.Days())
	}
	return total
}

// VacancyPercent round(((total - occupied) / total) * 100, 1)
func VacancyPercent(totalDays, occupiedDays int64) float64 {
	if totalDays <= 0 {
		return 0
	}
	rate := float64(totalDays-occupiedDays) / float64(totalDays) * 100
	return math.Round(rate*10) / 10
}

// Invalidate xóa toàn bộ cache vacancy
func (s *OccupancyService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := DeleteFromRedis(ctx, s.rdb, vacancyCachePrefix+"*"); err != nil {
		s.logger.Debug("Không xóa được cache vacancy: %v", err)
	}
}

// Warm tính lại và lưu cache cho window mặc định
func (s *OccupancyService) Warm(ctx context.Context) error {
	s.Invalidate(ctx)
	snap, err := s.Snapshot(ctx, s.defaultWindow)
	if err != nil {
		return err
	}
	s.logger.Info("Vacancy rate %.1f%% (%d/%d days occupied)", snap.Rate, snap.OccupiedDays, snap.TotalDays)
	return nil
}
