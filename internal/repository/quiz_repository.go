package repository

import (
	"context"
	"coursemaster_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByCourseAndLesson(ctx context.Context, courseID, lessonID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).Where("course_id = ? AND lesson_id = ?", courseID, lessonID).First(&quiz).Error
	return &quiz, err
}

// Upsert replaces the questions when a quiz already exists for the
// course and lesson pair.
func (r *QuizRepository) Upsert(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"questions", "updated_at"}),
	}).Create(quiz).Error
}
