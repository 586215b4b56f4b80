package service

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 6
	maxPageSize     = 50
	categoryAll     = "all"
)

// CourseQuery is the public catalogue filter.
type CourseQuery struct {
	Page     int
	Limit    int
	Search   string
	Category string
	Tags     string
	Sort     string
}

type CoursePage struct {
	Courses     []model.Course `json:"courses"`
	TotalPages  int            `json:"totalPages"`
	TotalCount  int64          `json:"totalCount"`
	CurrentPage int            `json:"currentPage"`
}

// CourseInput carries a create or a partial update. Nil fields were not sent.
type CourseInput struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Instructor  *string   `json:"instructor"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	Level       *string   `json:"level"`
	Thumbnail   *string   `json:"thumbnail"`
	Tags        *TagList  `json:"tags"`
	Syllabus    *Syllabus `json:"syllabus"`
}

type BatchInput struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewCourseService(courseRepo *repository.CourseRepository, storage *StorageService) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Storage: storage}
}

func notFound(err, kind error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kind
	}
	return err
}

func (s *CourseService) List(ctx context.Context, q CourseQuery) (*CoursePage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	f := repository.CourseFilter{
		Search: q.Search,
		Tags:   util.SplitCSV(q.Tags),
		Sort:   q.Sort,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	if c := strings.TrimSpace(q.Category); c != "" && c != categoryAll {
		f.Category = c
	}

	courses, total, err := s.CourseRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	if totalPages < 1 {
		totalPages = 1
	}

	return &CoursePage{
		Courses:     courses,
		TotalPages:  totalPages,
		TotalCount:  total,
		CurrentPage: page,
	}, nil
}

// ListAll is the unpaginated admin listing, newest first.
func (s *CourseService) ListAll(ctx context.Context) ([]model.Course, error) {
	courses, _, err := s.CourseRepo.List(ctx, repository.CourseFilter{Sort: repository.SortNewest})
	return courses, err
}

func (s *CourseService) Get(ctx context.Context, id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return course, nil
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (s *CourseService) Create(ctx context.Context, in CourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:       trimmed(in.Title),
		Description: trimmed(in.Description),
		Instructor:  trimmed(in.Instructor),
		Category:    trimmed(in.Category),
		Level:       trimmed(in.Level),
		Thumbnail:   trimmed(in.Thumbnail),
	}
	if course.Title == "" || course.Description == "" || course.Instructor == "" {
		return nil, util.Invalid("Title, description, and instructor are required")
	}
	if in.Price != nil && *in.Price > 0 {
		course.Price = *in.Price
	}
	if course.Category == "" {
		course.Category = model.DefaultCategory
	}
	if course.Level == "" {
		course.Level = model.DefaultLevel
	}

	tags := []string{}
	if in.Tags != nil {
		tags = *in.Tags
	}
	course.SetTags(tags)

	if in.Syllabus != nil {
		course.Lessons = in.Syllabus.Lessons()
	}

	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return s.Get(ctx, course.ID)
}

// Update applies only the fields present in the input. A sent blank value
// for a required field is rejected.
func (s *CourseService) Update(ctx context.Context, id uint, in CourseInput) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	required := []struct {
		name string
		in   *string
		dst  *string
	}{
		{"title", in.Title, &course.Title},
		{"description", in.Description, &course.Description},
		{"instructor", in.Instructor, &course.Instructor},
	}
	for _, f := range required {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return nil, util.Invalid(f.name + " cannot be empty")
		}
		*f.dst = v
	}

	if in.Price != nil {
		course.Price = math.Max(*in.Price, 0)
	}
	if in.Category != nil {
		course.Category = trimmed(in.Category)
		if course.Category == "" {
			course.Category = model.DefaultCategory
		}
	}
	if in.Level != nil {
		course.Level = trimmed(in.Level)
		if course.Level == "" {
			course.Level = model.DefaultLevel
		}
	}
	if in.Thumbnail != nil {
		course.Thumbnail = trimmed(in.Thumbnail)
	}

	replaceTags := in.Tags != nil
	if replaceTags {
		course.SetTags(*in.Tags)
	}
	replaceLessons := in.Syllabus != nil && in.Syllabus.IsSet()
	if replaceLessons {
		course.Lessons = in.Syllabus.Lessons()
	}

	if err := s.CourseRepo.Update(ctx, course, replaceTags, replaceLessons); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *CourseService) Delete(ctx context.Context, id uint) error {
	if err := s.CourseRepo.Delete(ctx, id); err != nil {
		return notFound(err, util.ErrCourseNotFound)
	}
	return nil
}

func (s *CourseService) AddBatch(ctx context.Context, courseID uint, in BatchInput) (*model.Batch, error) {
	if _, err := s.CourseRepo.FindBasic(ctx, courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}

	name := trimmed(in.Name)
	if name == "" || in.StartDate == nil {
		return nil, util.Invalid("name and startDate are required")
	}
	if in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return nil, util.Invalid("endDate must not be before startDate")
	}

	batch := &model.Batch{
		CourseID:  courseID,
		Name:      name,
		StartDate: *in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := s.CourseRepo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *CourseService) UpdateBatch(ctx context.Context, courseID, batchID uint, in BatchInput) (*model.Batch, error) {
	if _, err := s.CourseRepo.FindBasic(ctx, courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	batch, err := s.CourseRepo.FindBatch(ctx, courseID, batchID)
	if err != nil {
		return nil, notFound(err, util.ErrBatchNotFound)
	}

	if in.Name != nil {
		if name := trimmed(in.Name); name != "" {
			batch.Name = name
		}
	}
	if in.StartDate != nil {
		batch.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		batch.EndDate = in.EndDate
	}
	if batch.EndDate != nil && batch.EndDate.Before(batch.StartDate) {
		return nil, util.Invalid("endDate must not be before startDate")
	}

	if err := s.CourseRepo.SaveBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *CourseService) DeleteBatch(ctx context.Context, courseID, batchID uint) error {
	if _, err := s.CourseRepo.FindBasic(ctx, courseID); err != nil {
		return notFound(err, util.ErrCourseNotFound)
	}
	if err := s.CourseRepo.DeleteBatch(ctx, courseID, batchID); err != nil {
		return notFound(err, util.ErrBatchNotFound)
	}
	return nil
}

// UploadThumbnail stores an image for the course and points the course at it.
func (s *CourseService) UploadThumbnail(ctx context.Context, courseID uint, filename string, r io.Reader, size int64) (*model.Course, error) {
	if _, err := s.CourseRepo.FindBasic(ctx, courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	if !util.HasImageExtension(filename) {
		return nil, util.ErrUnsupportedFile
	}

	contentType, body, err := util.SniffImage(r)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("thumbnails/%d/%s%s", courseID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	url, err := s.Storage.Upload(ctx, key, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	if err := s.CourseRepo.UpdateThumbnail(ctx, courseID, url); err != nil {
		return nil, err
	}
	return s.Get(ctx, courseID)
}
