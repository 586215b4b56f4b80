package service

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/util"
	"time"
)

const (
	DefaultTrendDays = 30
	MaxTrendDays     = 365
)

type DashboardService struct {
	DashboardRepo *repository.DashboardRepository
	now           func() time.Time
}

func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{DashboardRepo: dashboardRepo, now: time.Now}
}

func (s *DashboardService) Stats(ctx context.Context) (*model.AdminStats, error) {
	return s.DashboardRepo.Stats(ctx)
}

// EnrollmentTrend returns one point per day for the last days days,
// oldest first, including today.
func (s *DashboardService) EnrollmentTrend(ctx context.Context, days int) ([]model.EnrollmentTrendPoint, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, util.Invalid("days must be between 1 and 365")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	times, err := s.DashboardRepo.EnrollmentTimes(ctx, start)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, days)
	for _, t := range times {
		counts[t.In(now.Location()).Format(util.DateFormat)]++
	}

	points := make([]model.EnrollmentTrendPoint, 0, days)
	for d := 0; d < days; d++ {
		key := start.AddDate(0, 0, d).Format(util.DateFormat)
		points = append(points, model.EnrollmentTrendPoint{Date: key, Enrollments: counts[key]})
	}
	return points, nil
}
