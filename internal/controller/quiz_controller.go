package controller

import (
	"coursemaster_backend/internal/model"
	"coursemaster_backend/internal/service"
	"coursemaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type SubmitQuizRequest struct {
	CourseID uint `json:"courseId"`
	LessonID uint `json:"lessonId"`
	// ModuleID is the older name for LessonID.
	ModuleID uint   `json:"moduleId"`
	Answers  []*int `json:"answers"`
}

type UpsertQuizRequest struct {
	CourseID  uint                 `json:"courseId"`
	LessonID  uint                 `json:"lessonId"`
	Questions []model.QuizQuestion `json:"questions" binding:"required"`
}

// lessonParam accepts moduleId, the name older clients use.
func lessonParam(ctx *gin.Context) uint {
	if v := ctx.Query("lessonId"); v != "" {
		return util.MustParseUint(v)
	}
	return util.MustParseUint(ctx.Query("moduleId"))
}

// GetQuiz godoc
// @Summary Quiz for a lesson
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int true "Course ID"
// @Param lessonId query int true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuiz(ctx.Request.Context(), util.MustParseUint(ctx.Query("courseId")), lessonParam(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quiz": quiz})
}

// SubmitQuiz godoc
// @Summary Grade quiz answers
// @Description answers[i] is the chosen option index for question i. Nothing is stored.
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SubmitQuizRequest true "Answers"
// @Success 200 {object} util.Response{data=model.QuizResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "courseId, lessonId and answers[] are required")
		return
	}

	if req.LessonID == 0 {
		req.LessonID = req.ModuleID
	}

	result, err := c.QuizService.SubmitQuiz(ctx.Request.Context(), req.CourseID, req.LessonID, req.Answers)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// UpsertQuiz godoc
// @Summary Create or replace a lesson quiz
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpsertQuizRequest true "Quiz"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/quizzes [put]
func (c *QuizController) UpsertQuiz(ctx *gin.Context) {
	var req UpsertQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "courseId, lessonId and questions[] are required")
		return
	}

	quiz, err := c.QuizService.UpsertQuiz(ctx.Request.Context(), req.CourseID, req.LessonID, req.Questions)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Quiz saved", gin.H{"quiz": quiz})
}
