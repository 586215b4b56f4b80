package repository

import (
	"context"
	"coursemaster_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentFilter struct {
	CourseID *uint
	BatchID  *uint
}

func withEnrolledCourse(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Course").
		Preload("Course.TagList").
		Preload("Course.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Course.Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC, id ASC")
		})
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *EnrollmentRepository) Save(ctx context.Context, e *model.Enrollment) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uint) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.WithContext(ctx).
		Scopes(withEnrolledCourse).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	return &e, err
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]model.Enrollment, error) {
	list := make([]model.Enrollment, 0)
	err := r.DB.WithContext(ctx).
		Scopes(withEnrolledCourse).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error
	return list, err
}

func (r *EnrollmentRepository) List(ctx context.Context, f EnrollmentFilter) ([]model.Enrollment, error) {
	q := r.DB.WithContext(ctx).Preload("User").Preload("Course")
	if f.CourseID != nil {
		q = q.Where("course_id = ?", *f.CourseID)
	}
	if f.BatchID != nil {
		q = q.Where("batch_id = ?", *f.BatchID)
	}

	list := make([]model.Enrollment, 0)
	err := q.Order("created_at DESC").Order("id DESC").Find(&list).Error
	return list, err
}
