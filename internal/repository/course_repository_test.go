package repository

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCatalogue(t *testing.T, repo *CourseRepository) {
	t.Helper()
	ctx := context.Background()
	items := []struct {
		title, instructor, category string
		price                       float64
		tags                        []string
	}{
		{"Go Basics", "Rob", "web-development", 10, []string{"go", "backend"}},
		{"React Deep Dive", "Dan", "web-development", 49, []string{"react", "frontend"}},
		{"Data Science 101", "Ada Go", "data", 0, []string{"python"}},
	}
	for _, it := range items {
		c := &model.Course{Title: it.title, Description: "d", Instructor: it.instructor, Category: it.category, Price: it.price}
		c.SetTags(it.tags)
		require.NoError(t, repo.Create(ctx, c))
	}
}

func TestCourseRepositoryList(t *testing.T) {
	repo := NewCourseRepository(testutil.NewDB(t))
	seedCatalogue(t, repo)
	ctx := context.Background()

	t.Run("search matches title or instructor", func(t *testing.T) {
		got, total, err := repo.List(ctx, CourseFilter{Search: "GO"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, got, 2)
	})

	t.Run("category", func(t *testing.T) {
		_, total, err := repo.List(ctx, CourseFilter{Category: "data"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("tags", func(t *testing.T) {
		got, total, err := repo.List(ctx, CourseFilter{Tags: []string{"react", "python"}})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, c := range got {
			assert.NotEmpty(t, c.Tags)
		}
	})

	t.Run("price sort and paging", func(t *testing.T) {
		got, total, err := repo.List(ctx, CourseFilter{Sort: SortPriceHigh, Limit: 2})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, got, 2)
		assert.Equal(t, "React Deep Dive", got[0].Title)

		got, _, err = repo.List(ctx, CourseFilter{Sort: SortPriceLow, Offset: 2, Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "React Deep Dive", got[0].Title)
	})
}

func TestCourseRepositoryUpdateReplacesTagsAndLessons(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	c := testutil.CreateCourse(t, db, "Go", 0, 3)
	course, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)

	course.Title = "Go, revised"
	course.SetTags([]string{"go"})
	course.Lessons = []model.Lesson{{Title: "Only", Order: 1}}
	require.NoError(t, repo.Update(ctx, course, true, true))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go, revised", got.Title)
	assert.Equal(t, []string{"go"}, got.Tags)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, "Only", got.Lessons[0].Title)
	assert.Len(t, got.Batches, 1)
}

func TestCourseRepositoryUpdateKeepsLessonIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	c := testutil.CreateCourse(t, db, "Go", 0, 3)
	first, third := c.Lessons[0].ID, c.Lessons[2].ID
	require.NoError(t, db.Create(&model.Quiz{CourseID: c.ID, LessonID: first}).Error)
	require.NoError(t, db.Create(&model.Quiz{CourseID: c.ID, LessonID: third}).Error)

	course, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	course.Lessons = []model.Lesson{{Title: "Intro", Order: 1}, {Title: "Types", Order: 2}}
	require.NoError(t, repo.Update(ctx, course, false, true))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 2)
	assert.Equal(t, first, got.Lessons[0].ID)
	assert.Equal(t, "Intro", got.Lessons[0].Title)
	assert.Equal(t, c.Lessons[1].ID, got.Lessons[1].ID)
	assert.Equal(t, "Types", got.Lessons[1].Title)

	var quizzes []model.Quiz
	require.NoError(t, db.Find(&quizzes).Error)
	require.Len(t, quizzes, 1)
	assert.Equal(t, first, quizzes[0].LessonID)

	course.Lessons = append(got.Lessons, model.Lesson{Title: "Extra", Order: 3})
	require.NoError(t, repo.Update(ctx, course, false, true))
	got, err = repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 3)
	assert.Equal(t, first, got.Lessons[0].ID)
	assert.Equal(t, "Extra", got.Lessons[2].Title)
}

func TestCourseRepositoryDeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	u := testutil.CreateUser(t, db, "s@example.com", model.Student)
	c := testutil.CreateCourse(t, db, "Go", 0, 1)
	require.NoError(t, db.Create(&model.Enrollment{UserID: u.ID, CourseID: c.ID, Status: model.EnrollmentEnrolled, PaymentStatus: model.PaymentPaid}).Error)
	require.NoError(t, db.Create(&model.Quiz{CourseID: c.ID, LessonID: c.Lessons[0].ID}).Error)
	require.NoError(t, db.Create(&model.AssignmentSubmission{StudentID: u.ID, CourseID: c.ID, LessonID: c.Lessons[0].ID, Status: model.SubmissionSubmitted}).Error)

	require.NoError(t, repo.Delete(ctx, c.ID))

	for _, m := range []interface{}{&model.Course{}, &model.Lesson{}, &model.Batch{}, &model.Enrollment{}, &model.Quiz{}, &model.AssignmentSubmission{}} {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		assert.Zero(t, n)
	}

	assert.ErrorIs(t, repo.Delete(ctx, c.ID), gorm.ErrRecordNotFound)
}

func TestCourseRepositoryBatches(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCourseRepository(db)
	ctx := context.Background()

	a := testutil.CreateCourse(t, db, "A", 0, 0)
	b := testutil.CreateCourse(t, db, "B", 0, 0)

	_, err := repo.FindBatch(ctx, b.ID, a.Batches[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.DeleteBatch(ctx, b.ID, a.Batches[0].ID), gorm.ErrRecordNotFound)
	assert.NoError(t, repo.DeleteBatch(ctx, a.ID, a.Batches[0].ID))
}
