package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniportal/internal/app/controllers"
	"github.com/yigit/uniportal/internal/app/models/dto"
	"github.com/yigit/uniportal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth        *controllers.AuthController
	Courses     *controllers.CourseController
	Chapters    *controllers.ChapterController
	Series      *controllers.SeriesController
	Settings    *controllers.SettingsController
	Progress    *controllers.ProgressController
	Users       *controllers.UserController
	Payments    *controllers.PaymentController
	Description *controllers.DescriptionController
}

// SetupRouter configures all application routes.
// JWTAuth and SessionLoader must already be installed on router.
func SetupRouter(router *gin.Engine, c *Controllers) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signup", c.Auth.Signup)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.RequireAuthenticated())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)
		authenticated.GET("/auth/session", c.Auth.Session)

		authenticated.GET("/courses", c.Courses.ListCourses)
		authenticated.GET("/courses/:id", c.Courses.GetCourseDetail)
		authenticated.GET("/dashboard", c.Courses.Dashboard)
		authenticated.GET("/exam-settings/gate", c.Settings.GetGate)
		authenticated.GET("/preview", c.Description.Preview)

		authenticated.GET("/progress", c.Progress.ListProgress)
		authenticated.POST("/progress/:courseId/viewed", c.Progress.MarkViewed)

		authenticated.GET("/bookmarks", c.Progress.ListBookmarks)
		authenticated.PUT("/bookmarks/:courseId", c.Progress.AddBookmark)
		authenticated.DELETE("/bookmarks/:courseId", c.Progress.RemoveBookmark)

		authenticated.GET("/profile", c.Users.GetProfile)
		authenticated.PUT("/profile", c.Users.UpdateProfile)
		authenticated.GET("/profile/address-suggestions", c.Users.SuggestAddresses)

		authenticated.GET("/payments", c.Payments.ListMyPayments)
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		courses := admin.Group("/courses")
		{
			courses.GET("", c.Courses.AdminListCourses)
			courses.POST("", c.Courses.CreateCourse)
			courses.GET("/export", c.Courses.ExportCourses)
			courses.POST("/next-code", c.Courses.NextCode)
			courses.PUT("/:id", c.Courses.UpdateCourse)
			courses.DELETE("/:id", c.Courses.DeleteCourse)
		}

		chapters := admin.Group("/chapters")
		{
			chapters.GET("", c.Chapters.ListChapters)
			chapters.POST("", c.Chapters.CreateChapter)
			chapters.DELETE("", c.Chapters.ClearChapters)
			chapters.PUT("/:id", c.Chapters.UpdateChapter)
			chapters.DELETE("/:id", c.Chapters.DeleteChapter)
		}

		series := admin.Group("/series")
		{
			series.GET("", c.Series.ListSeries)
			series.POST("", c.Series.CreateSeries)
			series.DELETE("", c.Series.ClearSeries)
			series.POST("/title", c.Series.GenerateTitle)
			series.PUT("/:id", c.Series.UpdateSeries)
			series.DELETE("/:id", c.Series.DeleteSeries)
		}

		users := admin.Group("/users")
		{
			users.GET("", c.Users.ListUsers)
			users.GET("/export", c.Users.ExportUsers)
			users.GET("/:id", c.Users.GetUser)
			users.PUT("/:id", c.Users.UpdateUser)
			users.DELETE("/:id", c.Users.DeleteUser)
		}

		payments := admin.Group("/payments")
		{
			payments.GET("", c.Payments.ListPayments)
			payments.POST("", c.Payments.CreatePayment)
			payments.PUT("/:id", c.Payments.UpdatePayment)
			payments.DELETE("/:id", c.Payments.DeletePayment)
		}

		admin.GET("/exam-settings", c.Settings.GetExamSettings)
		admin.PUT("/exam-settings", c.Settings.SaveExamSettings)

		admin.POST("/descriptions/chapter", c.Description.DescribeChapter)
		admin.POST("/descriptions/series", c.Description.DescribeSeries)
	}
}
