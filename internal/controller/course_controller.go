package controller

import (
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/service"
	"coursemaster_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
	Cfg           *config.Config
}

func NewCourseController(courseService *service.CourseService, cfg *config.Config) *CourseController {
	return &CourseController{CourseService: courseService, Cfg: cfg}
}

// pathID reads a numeric path parameter, answering 404 when it is not one.
func pathID(ctx *gin.Context, name string, notFound error) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.RespondError(ctx, notFound)
		return 0, false
	}
	return id, true
}

// ListCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, default 6"
// @Param search query string false "Matches title or instructor"
// @Param category query string false "Category, all for any"
// @Param tags query string false "Comma separated tags"
// @Param sort query string false "newest, priceLow or priceHigh"
// @Success 200 {object} util.Response{data=service.CoursePage}
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	q := service.CourseQuery{
		Page:     util.ParseIntDefault(ctx.Query("page"), 1),
		Limit:    util.ParseIntDefault(ctx.Query("limit"), 0),
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
		Tags:     ctx.Query("tags"),
		Sort:     ctx.Query("sort"),
	}

	page, err := c.CourseService.List(ctx.Request.Context(), q)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

// GetCourse godoc
// @Summary Course detail
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}

	course, err := c.CourseService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"course": course})
}

// AdminListCourses godoc
// @Summary All courses
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /admin/courses [get]
func (c *CourseController) AdminListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.ListAll(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary Create a course
// @Description syllabus is either one lesson title per line or an array of lessons. tags is an array or a comma separated string.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseInput true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var in service.CourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Create(ctx.Request.Context(), in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, "Course created successfully", gin.H{"course": course})
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Only the fields sent are changed.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param body body service.CourseInput true "Fields to change"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}

	var in service.CourseInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(ctx.Request.Context(), id, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Course updated successfully", gin.H{"course": course})
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Also removes its lessons, batches, enrollments, quizzes and submissions.
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}

	if err := c.CourseService.Delete(ctx.Request.Context(), id); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Course deleted", nil)
}

// UploadThumbnail godoc
// @Summary Upload a course thumbnail
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param file formData file true "Image"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /admin/courses/{id}/thumbnail [post]
func (c *CourseController) UploadThumbnail(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if limit := c.Cfg.Storage.MaxUploadMB << 20; limit > 0 && fileHeader.Size > limit {
		util.Error(ctx, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	course, err := c.CourseService.UploadThumbnail(ctx.Request.Context(), id, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"course": course})
}

// AddBatch godoc
// @Summary Add a batch to a course
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param body body service.BatchInput true "Batch"
// @Success 201 {object} util.Response{data=model.Batch}
// @Router /admin/courses/{id}/batches [post]
func (c *CourseController) AddBatch(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}

	var in service.BatchInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	batch, err := c.CourseService.AddBatch(ctx.Request.Context(), courseID, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, "Batch added", batch)
}

// UpdateBatch godoc
// @Summary Update a batch
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param batchId path int true "Batch ID"
// @Param body body service.BatchInput true "Fields to change"
// @Success 200 {object} util.Response{data=model.Batch}
// @Router /admin/courses/{id}/batches/{batchId} [put]
func (c *CourseController) UpdateBatch(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}
	batchID, ok := pathID(ctx, "batchId", util.ErrBatchNotFound)
	if !ok {
		return
	}

	var in service.BatchInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	batch, err := c.CourseService.UpdateBatch(ctx.Request.Context(), courseID, batchID, in)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, batch)
}

// DeleteBatch godoc
// @Summary Remove a batch
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param batchId path int true "Batch ID"
// @Success 200 {object} util.Response
// @Router /admin/courses/{id}/batches/{batchId} [delete]
func (c *CourseController) DeleteBatch(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id", util.ErrCourseNotFound)
	if !ok {
		return
	}
	batchID, ok := pathID(ctx, "batchId", util.ErrBatchNotFound)
	if !ok {
		return
	}

	if err := c.CourseService.DeleteBatch(ctx.Request.Context(), courseID, batchID); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Batch removed", nil)
}
