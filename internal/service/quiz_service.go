package service

import (
	"context"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/repository"
	"coursemaster_backend/internal/util"
	"coursemaster_backend/pkg/monitoring"
	"fmt"
	"math"
	"strings"
)

type QuizService struct {
	QuizRepo   *repository.QuizRepository
	CourseRepo *repository.CourseRepository
	Cfg        *config.Config
}

func NewQuizService(quizRepo *repository.QuizRepository, courseRepo *repository.CourseRepository, cfg *config.Config) *QuizService {
	return &QuizService{QuizRepo: quizRepo, CourseRepo: courseRepo, Cfg: cfg}
}

func (s *QuizService) find(ctx context.Context, courseID, lessonID uint) (*model.Quiz, error) {
	if courseID == 0 || lessonID == 0 {
		return nil, util.Invalid("courseId and lessonId are required")
	}
	quiz, err := s.QuizRepo.FindByCourseAndLesson(ctx, courseID, lessonID)
	if err != nil {
		return nil, notFound(err, util.ErrQuizNotFound)
	}
	return quiz, nil
}

// GetQuiz returns the quiz for a lesson. Correct answers are blanked out
// when quiz.hide_answers is set.
func (s *QuizService) GetQuiz(ctx context.Context, courseID, lessonID uint) (*model.Quiz, error) {
	quiz, err := s.find(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if s.Cfg.Quiz.HideAnswers {
		for i := range quiz.Questions {
			quiz.Questions[i].CorrectIndex = -1
		}
	}
	return quiz, nil
}

// Grade counts positional matches. A nil or missing answer never matches.
func Grade(questions []model.QuizQuestion, answers []*int) model.QuizResult {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] != nil && *answers[i] == q.CorrectIndex {
			correct++
		}
	}

	total := len(questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return model.QuizResult{Correct: correct, Total: total, Score: score}
}

// SubmitQuiz grades the answers. Nothing is stored.
func (s *QuizService) SubmitQuiz(ctx context.Context, courseID, lessonID uint, answers []*int) (*model.QuizResult, error) {
	if answers == nil {
		return nil, util.Invalid("courseId, lessonId and answers[] are required")
	}
	quiz, err := s.find(ctx, courseID, lessonID)
	if err != nil {
		return nil, err
	}

	result := Grade(quiz.Questions, answers)
	monitoring.QuizSubmissions.Inc()
	return &result, nil
}

func validateQuestions(questions []model.QuizQuestion) error {
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return util.Invalid(fmt.Sprintf("question %d has no text", i+1))
		}
		if len(q.Options) < 2 {
			return util.Invalid(fmt.Sprintf("question %d needs at least two options", i+1))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return util.Invalid(fmt.Sprintf("question %d has correctIndex out of range", i+1))
		}
	}
	return nil
}

// UpsertQuiz creates or replaces the quiz for a course lesson.
func (s *QuizService) UpsertQuiz(ctx context.Context, courseID, lessonID uint, questions []model.QuizQuestion) (*model.Quiz, error) {
	if courseID == 0 || lessonID == 0 {
		return nil, util.Invalid("courseId and lessonId are required")
	}
	if _, err := s.CourseRepo.FindBasic(ctx, courseID); err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	if _, err := s.CourseRepo.FindLesson(ctx, courseID, lessonID); err != nil {
		return nil, notFound(err, util.ErrLessonNotFound)
	}
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.QuizQuestion{}
	}

	quiz := &model.Quiz{CourseID: courseID, LessonID: lessonID, Questions: questions}
	if err := s.QuizRepo.Upsert(ctx, quiz); err != nil {
		return nil, err
	}
	return s.QuizRepo.FindByCourseAndLesson(ctx, courseID, lessonID)
}
