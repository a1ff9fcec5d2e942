package routes

import (
	"net/http"

	"github.com/bathudi/admissions/internal/app/controllers"
	"github.com/bathudi/admissions/internal/middleware"
	"github.com/bathudi/admissions/internal/pkg/websocket"
	"github.com/gin-gonic/gin"
)

// Controllers groups every HTTP handler the router mounts
type Controllers struct {
	Auth        *controllers.AuthController
	Course      *controllers.CourseController
	Application *controllers.ApplicationController
	Student     *controllers.StudentController
	Dashboard   *controllers.DashboardController
	Content     *controllers.ContentController
	Media       *controllers.MediaController
	Events      *websocket.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/media/*path", c.Media.ServeFile)

	v1 := router.Group("/api/v1")
	admin := authMiddleware.AdminAuth()

	// Public reads; a valid admin token widens lists with ?admin=true
	public := v1.Group("")
	public.Use(authMiddleware.OptionalAdmin())

	// --- Auth ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.GET("/me", admin, c.Auth.Me)
	}

	// --- Courses ---
	public.GET("/courses", c.Course.ListCourses)
	public.GET("/courses/:id", c.Course.GetCourse)
	public.GET("/courses/:id/requirements", c.Course.ListRequirements)
	public.GET("/course/:id/pdf", c.Course.GetCoursePDF)
	courses := v1.Group("/courses", admin)
	{
		courses.POST("", c.Course.CreateCourse)
		courses.PUT("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeactivateCourse)
		courses.POST("/:id/pdf", c.Course.UploadCoursePDF)
		courses.POST("/:id/requirements", c.Course.CreateRequirement)
	}
	requirements := v1.Group("/course-requirements", admin)
	{
		requirements.PUT("/:id", c.Course.UpdateRequirement)
		requirements.DELETE("/:id", c.Course.DeleteRequirement)
	}

	// --- Applications ---
	v1.POST("/applications", c.Application.SubmitApplication)
	applications := v1.Group("/applications", admin)
	{
		applications.GET("", c.Application.ListApplications)
		applications.GET("/pending", c.Application.ListPending)
		applications.GET("/stats", c.Application.Stats)
		applications.GET("/:id", c.Application.GetApplication)
		applications.PUT("/:id", c.Application.UpdateApplication)
		applications.DELETE("/:id", c.Application.DeleteApplication)
		applications.GET("/:id/documents", c.Application.ListDocuments)

		// Workflow transitions
		applications.POST("/:id/approve", c.Application.Approve)
		applications.POST("/:id/reject", c.Application.Reject)
		applications.PATCH("/:id/status", c.Application.UpdateStatus)
		applications.POST("/:id/verify-fee", c.Application.VerifyFee)
		applications.POST("/:id/unverify-fee", c.Application.UnverifyFee)
	}

	// --- Students (created by approval only) ---
	students := v1.Group("/students", admin)
	{
		students.GET("", c.Student.ListStudents)
		students.GET("/:id", c.Student.GetStudent)
		students.PUT("/:id", c.Student.UpdateStudent)
		students.DELETE("/:id", c.Student.DeleteStudent)
	}

	v1.GET("/dashboard/stats", admin, c.Dashboard.Stats)
	v1.GET("/admin/events", admin, c.Events.HandleConnection)

	setupContentRoutes(v1, public, admin, c.Content)
}

func setupContentRoutes(v1, public *gin.RouterGroup, admin gin.HandlerFunc, cc *controllers.ContentController) {
	// Team members
	public.GET("/team-members", cc.ListTeamMembers)
	public.GET("/team-members/:id", cc.GetTeamMember)
	team := v1.Group("/team-members", admin)
	{
		team.POST("", cc.CreateTeamMember)
		team.PUT("/:id", cc.UpdateTeamMember)
		team.DELETE("/:id", cc.DeleteTeamMember)
	}

	// Gallery
	public.GET("/gallery", cc.ListGalleryImages)
	public.GET("/gallery/:id", cc.GetGalleryImage)
	gallery := v1.Group("/gallery", admin)
	{
		gallery.POST("", cc.CreateGalleryImage)
		gallery.PUT("/:id", cc.UpdateGalleryImage)
		gallery.DELETE("/:id", cc.DeleteGalleryImage)
	}

	// Newsletter
	v1.POST("/newsletter/subscribe", cc.Subscribe)
	newsletter := v1.Group("/newsletter", admin)
	{
		newsletter.GET("", cc.ListSubscriptions)
		newsletter.POST("/:id/activate", cc.ActivateSubscription)
		newsletter.POST("/:id/deactivate", cc.DeactivateSubscription)
		newsletter.DELETE("/:id", cc.DeleteSubscription)
	}

	// News
	public.GET("/news", cc.ListNewsPosts)
	public.GET("/news/:id", cc.GetNewsPost)
	news := v1.Group("/news", admin)
	{
		news.POST("", cc.CreateNewsPost)
		news.PUT("/:id", cc.UpdateNewsPost)
		news.DELETE("/:id", cc.DeleteNewsPost)
	}

	// Director messages
	public.GET("/director-messages/active", cc.GetActiveDirectorMessage)
	director := v1.Group("/director-messages", admin)
	{
		director.GET("", cc.ListDirectorMessages)
		director.POST("", cc.CreateDirectorMessage)
		director.PUT("/:id", cc.UpdateDirectorMessage)
		director.POST("/:id/activate", cc.ActivateDirectorMessage)
		director.DELETE("/:id", cc.DeleteDirectorMessage)
	}

	// Testimonials
	public.GET("/testimonials", cc.ListTestimonials)
	public.GET("/testimonials/:id", cc.GetTestimonial)
	testimonials := v1.Group("/testimonials", admin)
	{
		testimonials.POST("", cc.CreateTestimonial)
		testimonials.PUT("/:id", cc.UpdateTestimonial)
		testimonials.DELETE("/:id", cc.DeleteTestimonial)
	}

	// Videos
	public.GET("/videos", cc.ListVideos)
	public.GET("/videos/:id", cc.GetVideo)
	videos := v1.Group("/videos", admin)
	{
		videos.POST("", cc.CreateVideo)
		videos.PUT("/:id", cc.UpdateVideo)
		videos.DELETE("/:id", cc.DeleteVideo)
	}
}
