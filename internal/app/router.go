package app

import (
	"coursemaster_backend/docs"
	"coursemaster_backend/internal/config"
	"coursemaster_backend/internal/middleware"
	"coursemaster_backend/internal/model"
	"coursemaster_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) requestMiddlewares() []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.RequestID(), middleware.AccessLog()}
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	auth := middleware.AuthMiddleware(cfg, a.services.auth)
	adminOnly := middleware.RoleMiddleware(model.Admin)

	// 1. public
	a.registerPublicRoutes(router, c)

	// 2. any signed in user
	authGroup := router.Group("/api")
	authGroup.Use(auth)
	{
		a.registerStudentRoutes(authGroup, c)

		// course writes share the public path
		authGroup.POST("/courses", adminOnly, c.course.CreateCourse)
		authGroup.PUT("/courses/:id", adminOnly, c.course.UpdateCourse)
		authGroup.DELETE("/courses/:id", adminOnly, c.course.DeleteCourse)
	}

	// 3. admin
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(auth, adminOnly)
	{
		a.registerAdminRoutes(adminGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/courses", c.course.ListCourses)
		public.GET("/courses/:id", c.course.GetCourse)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/auth/logout", c.auth.Logout)
	rg.GET("/auth/me", c.auth.Me)

	// enrollments
	rg.POST("/enrollments", c.enrollment.Enroll)
	rg.GET("/enrollments/me", c.enrollment.MyEnrollments)
	rg.GET("/enrollments/by-course/:courseId", c.enrollment.GetByCourse)
	rg.PATCH("/enrollments/:id/progress", c.enrollment.UpdateProgress)
	rg.PATCH("/enrollments/:id/pay", c.enrollment.MarkPaid)

	rg.POST("/assignments", c.assignment.Submit)

	rg.GET("/quizzes", c.quiz.GetQuiz)
	rg.POST("/quizzes/submit", c.quiz.SubmitQuiz)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/stats", c.dashboard.Stats)
	rg.GET("/enrollments-over-time", c.dashboard.EnrollmentsOverTime)

	// courses
	rg.GET("/courses", c.course.AdminListCourses)
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.POST("/courses/:id/thumbnail", c.course.UploadThumbnail)
	rg.POST("/courses/:id/batches", c.course.AddBatch)
	rg.PUT("/courses/:id/batches/:batchId", c.course.UpdateBatch)
	rg.DELETE("/courses/:id/batches/:batchId", c.course.DeleteBatch)

	rg.GET("/enrollments", c.enrollment.AdminList)

	rg.GET("/assignments", c.assignment.AdminList)
	rg.PATCH("/assignments/:id", c.assignment.Review)

	rg.PUT("/quizzes", c.quiz.UpsertQuiz)
}
