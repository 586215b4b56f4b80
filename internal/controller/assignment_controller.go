package controller

import (
	"coursemaster_backend/internal/service"
	"coursemaster_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Submit godoc
// @Summary Submit an assignment
// @Description Resubmitting the same lesson overwrites the previous answer.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmissionInput true "Submission"
// @Success 201 {object} util.Response{data=model.AssignmentSubmission} "Created"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission} "Resubmitted"
// @Failure 400 {object} util.Response
// @Router /assignments [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	var in service.SubmissionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, "courseId and lessonId are required")
		return
	}

	user := util.GetUserFromContext(ctx)
	sub, created, err := c.AssignmentService.Submit(ctx.Request.Context(), user.UserID, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	if created {
		util.Created(ctx, "Assignment submitted", gin.H{"submission": sub})
		return
	}
	util.SuccessWithMessage(ctx, "Assignment updated", gin.H{"submission": sub})
}

// AdminList godoc
// @Summary Assignment submissions
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param courseId query int false "Course ID"
// @Param batchId query int false "Batch ID"
// @Param status query string false "submitted or reviewed"
// @Success 200 {object} util.Response{data=[]model.AssignmentSubmission}
// @Router /admin/assignments [get]
func (c *AssignmentController) AdminList(ctx *gin.Context) {
	list, err := c.AssignmentService.ListForAdmin(ctx.Request.Context(),
		util.ParseOptionalUint(ctx.Query("courseId")),
		util.ParseOptionalUint(ctx.Query("batchId")),
		ctx.Query("status"),
	)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// Review godoc
// @Summary Review a submission
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Submission ID"
// @Param body body service.ReviewInput true "Score, feedback and status"
// @Success 200 {object} util.Response{data=model.AssignmentSubmission}
// @Failure 404 {object} util.Response
// @Router /admin/assignments/{id} [patch]
func (c *AssignmentController) Review(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrSubmissionNotFound)
	if !ok {
		return
	}

	var in service.ReviewInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.AssignmentService.Review(ctx.Request.Context(), id, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"submission": sub})
}
