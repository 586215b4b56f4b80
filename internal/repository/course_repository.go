package repository

import (
	"context"
	"coursemaster_backend/internal/model"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SortNewest    = "newest"
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
)

// CourseFilter narrows the catalogue listing. Zero values mean no filter.
type CourseFilter struct {
	Search   string
	Category string
	Tags     []string
	Sort     string
	Offset   int
	Limit    int
}

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func withCourseRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("TagList").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC, id ASC")
		})
}

func (r *CourseRepository) filtered(ctx context.Context, f CourseFilter) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&model.Course{})
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(instructor) LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if len(f.Tags) > 0 {
		q = q.Where("id IN (?)", r.DB.Model(&model.CourseTag{}).Select("course_id").Where("name IN ?", f.Tags))
	}
	return q
}

// List returns one page of courses and the total number of matches.
func (r *CourseRepository) List(ctx context.Context, f CourseFilter) ([]model.Course, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := withCourseRelations(r.filtered(ctx, f))
	switch f.Sort {
	case SortPriceLow:
		q = q.Order("price ASC").Order("id DESC")
	case SortPriceHigh:
		q = q.Order("price DESC").Order("id DESC")
	default:
		q = q.Order("created_at DESC").Order("id DESC")
	}
	if f.Limit > 0 {
		q = q.Offset(f.Offset).Limit(f.Limit)
	}

	courses := make([]model.Course, 0)
	err := q.Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := withCourseRelations(r.DB.WithContext(ctx)).First(&course, id).Error
	return &course, err
}

// FindBasic loads the course row without its lessons, batches and tags.
func (r *CourseRepository) FindBasic(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

// Update saves the course columns. Tags are replaced and lessons synced
// when the matching flag is set.
func (r *CourseRepository) Update(ctx context.Context, course *model.Course, replaceTags, replaceLessons bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(course).Error; err != nil {
			return err
		}

		if replaceTags {
			if err := tx.Where("course_id = ?", course.ID).Delete(&model.CourseTag{}).Error; err != nil {
				return err
			}
			for i := range course.TagList {
				course.TagList[i].ID = 0
				course.TagList[i].CourseID = course.ID
			}
			if len(course.TagList) > 0 {
				if err := tx.Create(&course.TagList).Error; err != nil {
					return err
				}
			}
		}

		if replaceLessons {
			return syncLessons(tx, course)
		}
		return nil
	})
}

// syncLessons matches the new lessons to the stored ones by position so
// quizzes and submissions keep their lesson ids. Stored lessons past the
// new list are deleted along with their quizzes.
func syncLessons(tx *gorm.DB, course *model.Course) error {
	var existing []model.Lesson
	if err := tx.Where("course_id = ?", course.ID).Order("sort_order ASC, id ASC").Find(&existing).Error; err != nil {
		return err
	}

	for i := range course.Lessons {
		lesson := &course.Lessons[i]
		lesson.CourseID = course.ID
		if i < len(existing) {
			lesson.ID = existing[i].ID
			lesson.CreatedAt = existing[i].CreatedAt
			if err := tx.Save(lesson).Error; err != nil {
				return err
			}
			continue
		}
		lesson.ID = 0
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}
	}

	if len(existing) <= len(course.Lessons) {
		return nil
	}
	stale := make([]uint, 0, len(existing)-len(course.Lessons))
	for _, l := range existing[len(course.Lessons):] {
		stale = append(stale, l.ID)
	}
	if err := tx.Where("course_id = ? AND lesson_id IN ?", course.ID, stale).Delete(&model.Quiz{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", stale).Delete(&model.Lesson{}).Error
}

func (r *CourseRepository) UpdateThumbnail(ctx context.Context, id uint, url string) error {
	return r.DB.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Update("thumbnail", url).Error
}

// Delete removes the course and everything that hangs off it.
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []interface{}{
			&model.CourseTag{},
			&model.Lesson{},
			&model.Batch{},
			&model.Enrollment{},
			&model.Quiz{},
			&model.AssignmentSubmission{},
		}
		for _, m := range dependents {
			if err := tx.Where("course_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&model.Course{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CourseRepository) FindLesson(ctx context.Context, courseID, lessonID uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).Where("course_id = ? AND id = ?", courseID, lessonID).First(&lesson).Error
	return &lesson, err
}

func (r *CourseRepository) CreateBatch(ctx context.Context, batch *model.Batch) error {
	return r.DB.WithContext(ctx).Create(batch).Error
}

func (r *CourseRepository) FindBatch(ctx context.Context, courseID, batchID uint) (*model.Batch, error) {
	var batch model.Batch
	err := r.DB.WithContext(ctx).Where("course_id = ? AND id = ?", courseID, batchID).First(&batch).Error
	return &batch, err
}

func (r *CourseRepository) SaveBatch(ctx context.Context, batch *model.Batch) error {
	return r.DB.WithContext(ctx).Save(batch).Error
}

func (r *CourseRepository) DeleteBatch(ctx context.Context, courseID, batchID uint) error {
	res := r.DB.WithContext(ctx).Where("course_id = ? AND id = ?", courseID, batchID).Delete(&model.Batch{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
