package repository

import (
	"context"
	"coursemaster_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	DB *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

func (r *DashboardRepository) count(ctx context.Context, m interface{}, query string, args ...interface{}) (int64, error) {
	var n int64
	q := r.DB.WithContext(ctx).Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	err := q.Count(&n).Error
	return n, err
}

func (r *DashboardRepository) Stats(ctx context.Context) (*model.AdminStats, error) {
	var (
		s   model.AdminStats
		err error
	)
	if s.TotalCourses, err = r.count(ctx, &model.Course{}, ""); err != nil {
		return nil, err
	}
	if s.TotalStudents, err = r.count(ctx, &model.User{}, "role = ?", model.Student); err != nil {
		return nil, err
	}
	if s.TotalAdmins, err = r.count(ctx, &model.User{}, "role = ?", model.Admin); err != nil {
		return nil, err
	}
	if s.TotalEnrollments, err = r.count(ctx, &model.Enrollment{}, ""); err != nil {
		return nil, err
	}
	if s.CompletedEnrollments, err = r.count(ctx, &model.Enrollment{}, "status = ?", model.EnrollmentCompleted); err != nil {
		return nil, err
	}
	if s.PendingReviews, err = r.count(ctx, &model.AssignmentSubmission{}, "status = ?", model.SubmissionSubmitted); err != nil {
		return nil, err
	}
	return &s, nil
}

// EnrollmentTimes returns the creation time of every enrollment made at or
// after since. Bucketing happens in the caller so it does not depend on the
// SQL dialect's date functions.
func (r *DashboardRepository) EnrollmentTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	times := make([]time.Time, 0)
	err := r.DB.WithContext(ctx).Model(&model.Enrollment{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	return times, err
}
