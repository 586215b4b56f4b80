package repository

import (
	"context"
	"coursemaster_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionFilter struct {
	CourseID *uint
	BatchID  *uint
	Status   model.SubmissionStatus
}

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, s *model.AssignmentSubmission) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *AssignmentRepository) Save(ctx context.Context, s *model.AssignmentSubmission) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *AssignmentRepository) FindByID(ctx context.Context, id uint) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.WithContext(ctx).Preload("Student").Preload("Course").First(&s, id).Error
	return &s, err
}

func (r *AssignmentRepository) FindByKey(ctx context.Context, studentID, courseID, lessonID uint) (*model.AssignmentSubmission, error) {
	var s model.AssignmentSubmission
	err := r.DB.WithContext(ctx).
		Where("student_id = ? AND course_id = ? AND lesson_id = ?", studentID, courseID, lessonID).
		First(&s).Error
	return &s, err
}

func (r *AssignmentRepository) List(ctx context.Context, f SubmissionFilter) ([]model.AssignmentSubmission, error) {
	q := r.DB.WithContext(ctx).Preload("Student").Preload("Course")
	if f.CourseID != nil {
		q = q.Where("course_id = ?", *f.CourseID)
	}
	if f.BatchID != nil {
		q = q.Where("batch_id = ?", *f.BatchID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	list := make([]model.AssignmentSubmission, 0)
	err := q.Order("created_at DESC").Order("id DESC").Find(&list).Error
	return list, err
}
