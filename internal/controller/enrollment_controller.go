package controller

import (
	"coursemaster_backend/internal/service"
	"coursemaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollRequest struct {
	CourseID uint  `json:"courseId"`
	BatchID  *uint `json:"batchId"`
}

type ProgressRequest struct {
	Progress *float64 `json:"progress" binding:"required"`
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EnrollRequest true "Course and optional batch"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "courseId is required")
		return
	}

	user := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.Enroll(ctx.Request.Context(), user.UserID, req.CourseID, req.BatchID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, "Enrolled successfully", gin.H{"enrollment": enrollment})
}

// MyEnrollments godoc
// @Summary My enrollments
// @Tags Enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /enrollments/me [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	list, err := c.EnrollmentService.ListMine(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// GetByCourse godoc
// @Summary My enrollment in a course
// @Tags Enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Router /enrollments/by-course/{courseId} [get]
func (c *EnrollmentController) GetByCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "courseId", util.ErrCourseNotFound)
	if !ok {
		return
	}

	user := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.GetByCourse(ctx.Request.Context(), user.UserID, courseID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrollment": enrollment})
}

// UpdateProgress godoc
// @Summary Update progress
// @Description Progress is 0 to 100. Reaching 100 completes the enrollment.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Enrollment ID"
// @Param body body ProgressRequest true "Progress"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /enrollments/{id}/progress [patch]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrEnrollmentNotFound)
	if !ok {
		return
	}

	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "progress must be a number between 0 and 100")
		return
	}

	user := util.GetUserFromContext(ctx)
	enrollment, err := c.EnrollmentService.UpdateProgress(ctx.Request.Context(), id, user.UserID, *req.Progress)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Progress updated", gin.H{"enrollment": enrollment})
}

// MarkPaid godoc
// @Summary Mark an enrollment as paid
// @Tags Enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Router /enrollments/{id}/pay [patch]
func (c *EnrollmentController) MarkPaid(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrEnrollmentNotFound)
	if !ok {
		return
	}

	enrollment, err := c.EnrollmentService.MarkPaid(ctx.Request.Context(), id, util.GetUserFromContext(ctx))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Payment recorded", gin.H{"enrollment": enrollment})
}

// AdminList godoc
// @Summary All enrollments
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int false "Course ID"
// @Param batchId query int false "Batch ID"
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /admin/enrollments [get]
func (c *EnrollmentController) AdminList(ctx *gin.Context) {
	list, err := c.EnrollmentService.ListForAdmin(ctx.Request.Context(),
		util.ParseOptionalUint(ctx.Query("courseId")),
		util.ParseOptionalUint(ctx.Query("batchId")),
	)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
