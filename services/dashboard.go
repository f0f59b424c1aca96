package services

import (
	"sort"
	"time"

	"monitoreo-server/cache"
	"monitoreo-server/db"
	"monitoreo-server/entities"
	"monitoreo-server/usecases"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardSummary is the per-tenant aggregate view backing the main
// dashboard screen.
type DashboardSummary struct {
	TotalDevices       int64                  `json:"total_devices"`
	TotalMeasurements  int64                  `json:"total_measurements"`
	TotalAlerts        int64                  `json:"total_alerts"`
	TotalZones         int64                  `json:"total_zones"`
	LatestMeasurements []entities.Measurement `json:"latest_measurements"`
	ZoneDeviceCounts   []ZoneDeviceCount      `json:"zones_with_devices"`
	Categories         []entities.Category    `json:"categories"`
	RecentDevices      []entities.Device      `json:"recent_devices"`
	AlertCounts        AlertCounts            `json:"alert_counts"`
	RecentAlerts       []entities.Alert       `json:"recent_alerts"`
	MeasurementsByDay  []DayCount             `json:"measurements_by_day"`
}

type ZoneDeviceCount struct {
	ZoneID      string `json:"zone_id"`
	ZoneName    string `json:"zone_name"`
	DeviceCount int64  `json:"device_count"`
}

// AlertCounts classifies the last week's alerts by severity.
type AlertCounts struct {
	Grave int64 `json:"grave"`
	Alta  int64 `json:"alta"`
	Media int64 `json:"media"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// DashboardService computes tenant aggregates, memoized per organization.
type DashboardService struct {
	db    db.Database
	scope *usecases.TenantScope
	cache *cache.SnapshotCache[DashboardSummary]
	log   *zap.Logger
}

func NewDashboardService(database db.Database, scope *usecases.TenantScope, ttl time.Duration, log *zap.Logger) *DashboardService {
	return &DashboardService{
		db:    database,
		scope: scope,
		cache: cache.NewSnapshotCache[DashboardSummary](ttl),
		log:   log,
	}
}

// Cache exposes the snapshot cache for invalidation and the admin stats
// endpoint.
func (s *DashboardService) Cache() *cache.SnapshotCache[DashboardSummary] { return s.cache }

// Summary builds the dashboard for the acting user's organization. A nil
// actor or a user with no resolvable organization gets the zero summary.
func (s *DashboardService) Summary(user *entities.User) (DashboardSummary, error) {
	if user == nil {
		return DashboardSummary{}, nil
	}
	org, err := s.scope.ResolveOrganization(user)
	if err != nil {
		return DashboardSummary{}, err
	}
	if org == nil && !user.IsSuperuser {
		return DashboardSummary{}, nil
	}

	cacheKey := "global"
	if org != nil {
		cacheKey = org.ID
	}
	if cached, hit := s.cache.Get(cacheKey); hit {
		return cached, nil
	}

	summary, err := s.build(user)
	if err != nil {
		return DashboardSummary{}, err
	}
	s.cache.Set(cacheKey, summary)
	s.log.Debug("dashboard summary rebuilt", zap.String("key", cacheKey))
	return summary, nil
}

func (s *DashboardService) build(user *entities.User) (DashboardSummary, error) {
	var summary DashboardSummary
	var err error

	if summary.TotalDevices, err = usecases.ScopedCount[entities.Device](s.scope, user); err != nil {
		return summary, err
	}
	if summary.TotalMeasurements, err = usecases.ScopedCount[entities.Measurement](s.scope, user); err != nil {
		return summary, err
	}
	if summary.TotalAlerts, err = usecases.ScopedCount[entities.Alert](s.scope, user); err != nil {
		return summary, err
	}
	if summary.TotalZones, err = usecases.ScopedCount[entities.Zone](s.scope, user); err != nil {
		return summary, err
	}

	summary.LatestMeasurements, err = usecases.ScopedList[entities.Measurement](s.scope, user,
		func(tx *gorm.DB) *gorm.DB {
			return tx.Order("measurements.date DESC").Limit(10)
		})
	if err != nil {
		return summary, err
	}

	summary.Categories, err = usecases.ScopedList[entities.Category](s.scope, user,
		func(tx *gorm.DB) *gorm.DB { return tx.Order("categories.name") })
	if err != nil {
		return summary, err
	}

	summary.RecentDevices, err = usecases.ScopedList[entities.Device](s.scope, user,
		func(tx *gorm.DB) *gorm.DB { return tx.Limit(5) })
	if err != nil {
		return summary, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	levels := map[string]*int64{
		entities.AlertLevelGrave: &summary.AlertCounts.Grave,
		entities.AlertLevelAlta:  &summary.AlertCounts.Alta,
		entities.AlertLevelMedia: &summary.AlertCounts.Media,
	}
	for level, target := range levels {
		level := level
		*target, err = usecases.ScopedCount[entities.Alert](s.scope, user,
			func(tx *gorm.DB) *gorm.DB {
				return tx.Where("alerts.level = ? AND alerts.created_at >= ?", level, weekAgo)
			})
		if err != nil {
			return summary, err
		}
	}

	summary.RecentAlerts, err = usecases.ScopedList[entities.Alert](s.scope, user,
		func(tx *gorm.DB) *gorm.DB { return tx.Limit(5) })
	if err != nil {
		return summary, err
	}

	if summary.ZoneDeviceCounts, err = s.zoneDeviceCounts(user); err != nil {
		return summary, err
	}
	if summary.MeasurementsByDay, err = s.measurementsByDay(user, weekAgo); err != nil {
		return summary, err
	}
	return summary, nil
}

func (s *DashboardService) zoneDeviceCounts(user *entities.User) ([]ZoneDeviceCount, error) {
	zones, err := usecases.ScopedList[entities.Zone](s.scope, user)
	if err != nil {
		return nil, err
	}
	counts := make([]ZoneDeviceCount, 0, len(zones))
	for _, zone := range zones {
		zoneID := zone.ID
		n, err := usecases.ScopedCount[entities.Device](s.scope, user,
			func(tx *gorm.DB) *gorm.DB { return tx.Where("devices.zone_id = ?", zoneID) })
		if err != nil {
			return nil, err
		}
		counts = append(counts, ZoneDeviceCount{ZoneID: zone.ID, ZoneName: zone.Name, DeviceCount: n})
	}
	return counts, nil
}

func (s *DashboardService) measurementsByDay(user *entities.User, since time.Time) ([]DayCount, error) {
	measurements, err := usecases.ScopedList[entities.Measurement](s.scope, user,
		func(tx *gorm.DB) *gorm.DB { return tx.Where("measurements.date >= ?", since) })
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int64)
	for _, m := range measurements {
		byDay[m.Date.Format("2006-01-02")]++
	}
	days := make([]DayCount, 0, len(byDay))
	for day, count := range byDay {
		days = append(days, DayCount{Day: day, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days, nil
}

// AdminSummary holds the unscoped totals for the superuser dashboard.
type AdminSummary struct {
	TotalUsers        int64 `json:"total_users"`
	TotalDevices      int64 `json:"total_devices"`
	TotalMeasurements int64 `json:"total_measurements"`
	TotalAlerts       int64 `json:"total_alerts"`
}

func (s *DashboardService) AdminSummary() (AdminSummary, error) {
	var summary AdminSummary
	gdb := s.db.GetDB()
	counts := []struct {
		model  any
		target *int64
	}{
		{&entities.User{}, &summary.TotalUsers},
		{&entities.Device{}, &summary.TotalDevices},
		{&entities.Measurement{}, &summary.TotalMeasurements},
		{&entities.Alert{}, &summary.TotalAlerts},
	}
	for _, c := range counts {
		if err := gdb.Model(c.model).Count(c.target).Error; err != nil {
			return summary, err
		}
	}
	return summary, nil
}
