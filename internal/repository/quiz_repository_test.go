package repository

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizRepositoryUpsert(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewQuizRepository(db)
	ctx := context.Background()

	first := &model.Quiz{CourseID: 1, LessonID: 2, Questions: []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectIndex: 0},
	}}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &model.Quiz{CourseID: 1, LessonID: 2, Questions: []model.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b"}, CorrectIndex: 1},
		{Question: "q2", Options: []string{"a", "b"}, CorrectIndex: 0},
	}}
	require.NoError(t, repo.Upsert(ctx, second))

	var n int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	got, err := repo.FindByCourseAndLesson(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, 1, got.Questions[0].CorrectIndex)
}
