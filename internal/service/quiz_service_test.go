package service

import (
	"context"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/testutil"
	"coursemaster_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ints(vals ...int) []*int {
	out := make([]*int, len(vals))
	for i := range vals {
		v := vals[i]
		out[i] = &v
	}
	return out
}

func TestGrade(t *testing.T) {
	two := []model.QuizQuestion{
		{Question: "a", Options: []string{"x", "y"}, CorrectIndex: 0},
		{Question: "b", Options: []string{"x", "y"}, CorrectIndex: 1},
	}

	tests := []struct {
		name      string
		questions []model.QuizQuestion
		answers   []*int
		want      model.QuizResult
	}{
		{"all correct", two, ints(0, 1), model.QuizResult{Correct: 2, Total: 2, Score: 100}},
		{"half", two, ints(1, 1), model.QuizResult{Correct: 1, Total: 2, Score: 50}},
		{"none", two, ints(1, 0), model.QuizResult{Correct: 0, Total: 2, Score: 0}},
		{"missing answers never match", two, ints(0), model.QuizResult{Correct: 1, Total: 2, Score: 50}},
		{"null answer", two, []*int{nil, ints(1)[0]}, model.QuizResult{Correct: 1, Total: 2, Score: 50}},
		{"no questions", nil, ints(0), model.QuizResult{}},
		{"rounding", append(two, model.QuizQuestion{Question: "c", Options: []string{"x", "y"}}), ints(0, 0, 1), model.QuizResult{Correct: 1, Total: 3, Score: 33}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Grade(tt.questions, tt.answers))
		})
	}
}

func TestQuizLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := testutil.CreateCourse(t, f.db, "Go", 0, 1)
	lessonID := c.Lessons[0].ID

	_, err := f.quizzes.GetQuiz(ctx, c.ID, lessonID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)

	_, err = f.quizzes.UpsertQuiz(ctx, c.ID, 999, nil)
	assert.ErrorIs(t, err, util.ErrLessonNotFound)

	_, err = f.quizzes.UpsertQuiz(ctx, c.ID, lessonID, []model.QuizQuestion{
		{Question: "only one option", Options: []string{"x"}},
	})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.quizzes.UpsertQuiz(ctx, c.ID, lessonID, []model.QuizQuestion{
		{Question: "out of range", Options: []string{"x", "y"}, CorrectIndex: 2},
	})
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	questions := []model.QuizQuestion{
		{Question: "a", Options: []string{"x", "y"}, CorrectIndex: 0},
		{Question: "b", Options: []string{"x", "y"}, CorrectIndex: 1},
	}
	quiz, err := f.quizzes.UpsertQuiz(ctx, c.ID, lessonID, questions)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 2)

	res, err := f.quizzes.SubmitQuiz(ctx, c.ID, lessonID, ints(0, 1))
	require.NoError(t, err)
	assert.Equal(t, model.QuizResult{Correct: 2, Total: 2, Score: 100}, *res)

	_, err = f.quizzes.SubmitQuiz(ctx, c.ID, lessonID, nil)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = f.quizzes.SubmitQuiz(ctx, 0, lessonID, ints(0))
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	got, err := f.quizzes.GetQuiz(ctx, c.ID, lessonID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Questions[1].CorrectIndex)

	f.cfg.Quiz.HideAnswers = true
	got, err = f.quizzes.GetQuiz(ctx, c.ID, lessonID)
	require.NoError(t, err)
	assert.Equal(t, -1, got.Questions[1].CorrectIndex)
}
