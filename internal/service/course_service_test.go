package service

import (
	"bytes"
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/util"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeCourse(t *testing.T, body string) CourseInput {
	t.Helper()
	var in CourseInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestCreateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.courses.Create(ctx, decodeCourse(t, `{"title": "Go", "description": " "}`))
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	c, err := f.courses.Create(ctx, decodeCourse(t, `{
		"title": "Go", "description": "Learn Go", "instructor": "Rob",
		"price": -5, "tags": "go, backend", "syllabus": "Intro\nTypes"
	}`))
	require.NoError(t, err)
	assert.Zero(t, c.Price)
	assert.Equal(t, model.DefaultCategory, c.Category)
	assert.Equal(t, model.DefaultLevel, c.Level)
	assert.ElementsMatch(t, []string{"go", "backend"}, c.Tags)
	require.Len(t, c.Lessons, 2)
	assert.Equal(t, "Types", c.Lessons[1].Title)
}

func TestUpdateCourseIsPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, decodeCourse(t, `{
		"title": "Go", "description": "Learn Go", "instructor": "Rob",
		"price": 10, "tags": ["go"], "syllabus": "Intro"
	}`))
	require.NoError(t, err)

	got, err := f.courses.Update(ctx, c.ID, decodeCourse(t, `{"price": 20}`))
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Price)
	assert.Equal(t, "Go", got.Title)
	assert.Equal(t, []string{"go"}, got.Tags)
	assert.Len(t, got.Lessons, 1)

	got, err = f.courses.Update(ctx, c.ID, decodeCourse(t, `{"tags": [], "syllabus": [{"title": "A"}, {"title": "B"}]}`))
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
	assert.Len(t, got.Lessons, 2)

	_, err = f.courses.Update(ctx, c.ID, decodeCourse(t, `{"title": ""}`))
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.courses.Update(ctx, 999, decodeCourse(t, `{"price": 1}`))
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListCourses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		_, err := f.courses.Create(ctx, decodeCourse(t, fmt.Sprintf(
			`{"title": "Course %d", "description": "d", "instructor": "i", "category": "data"}`, i)))
		require.NoError(t, err)
	}

	page, err := f.courses.List(ctx, CourseQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Courses, 6)
	assert.Equal(t, 2, page.TotalPages)
	assert.EqualValues(t, 7, page.TotalCount)
	assert.Equal(t, 1, page.CurrentPage)

	page, err = f.courses.List(ctx, CourseQuery{Page: 2, Category: "all"})
	require.NoError(t, err)
	assert.Len(t, page.Courses, 1)

	page, err = f.courses.List(ctx, CourseQuery{Category: "none"})
	require.NoError(t, err)
	assert.Empty(t, page.Courses)
	assert.Equal(t, 1, page.TotalPages)
}

func TestDeleteCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.courses.Create(ctx, decodeCourse(t, `{"title": "Go", "description": "d", "instructor": "i"}`))
	require.NoError(t, err)

	require.NoError(t, f.courses.Delete(ctx, c.ID))
	assert.ErrorIs(t, f.courses.Delete(ctx, c.ID), util.ErrCourseNotFound)
	_, err = f.courses.Get(ctx, c.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestBatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.courses.Create(ctx, decodeCourse(t, `{"title": "Go", "description": "d", "instructor": "i"}`))
	require.NoError(t, err)

	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err = f.courses.AddBatch(ctx, c.ID, BatchInput{Name: strPtr("Jan")})
	assert.ErrorIs(t, err, util.ErrInvalidInput)
	_, err = f.courses.AddBatch(ctx, 999, BatchInput{Name: strPtr("Jan"), StartDate: &start})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	b, err := f.courses.AddBatch(ctx, c.ID, BatchInput{Name: strPtr("Jan"), StartDate: &start})
	require.NoError(t, err)

	end := start.AddDate(0, 1, 0)
	b, err = f.courses.UpdateBatch(ctx, c.ID, b.ID, BatchInput{EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, "Jan", b.Name)
	require.NotNil(t, b.EndDate)

	_, err = f.courses.UpdateBatch(ctx, c.ID, 999, BatchInput{})
	assert.ErrorIs(t, err, util.ErrBatchNotFound)

	require.NoError(t, f.courses.DeleteBatch(ctx, c.ID, b.ID))
	assert.ErrorIs(t, f.courses.DeleteBatch(ctx, c.ID, b.ID), util.ErrBatchNotFound)
}

// 1x1 transparent PNG
var pngPixel = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func TestUploadThumbnail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c, err := f.courses.Create(ctx, decodeCourse(t, `{"title": "Go", "description": "d", "instructor": "i"}`))
	require.NoError(t, err)

	got, err := f.courses.UploadThumbnail(ctx, c.ID, "cover.png", bytes.NewReader(pngPixel), int64(len(pngPixel)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.Thumbnail, fmt.Sprintf("/uploads/thumbnails/%d/", c.ID)))
	assert.True(t, strings.HasSuffix(got.Thumbnail, ".png"))

	_, err = f.courses.UploadThumbnail(ctx, c.ID, "notes.png", strings.NewReader("plain text"), 10)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.courses.UploadThumbnail(ctx, c.ID, "script.sh", bytes.NewReader(pngPixel), int64(len(pngPixel)))
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}
