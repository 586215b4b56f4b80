package controller

import (
	"coursemaster_backend/internal/service"
	"coursemaster_backend/internal/util"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// Stats godoc
// @Summary Admin dashboard counters
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.AdminStats}
// @Router /admin/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.DashboardService.Stats(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// EnrollmentsOverTime godoc
// @Summary Daily enrollments
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param days query int false "Window in days, 1 to 365, default 30 when absent"
// @Success 200 {object} util.Response{data=[]model.EnrollmentTrendPoint}
// @Failure 400 {object} util.Response
// @Router /admin/enrollments-over-time [get]
func (c *DashboardController) EnrollmentsOverTime(ctx *gin.Context) {
	days := service.DefaultTrendDays
	if raw := strings.TrimSpace(ctx.Query("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "days must be a number")
			return
		}
		days = n
	}

	points, err := c.DashboardService.EnrollmentTrend(ctx.Request.Context(), days)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, points)
}
