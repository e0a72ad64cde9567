package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/schooldesk/api/internal/app/controllers"
	"github.com/schooldesk/api/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	studentController *controllers.StudentController,
	paymentController *controllers.PaymentController,
	subjectController *controllers.SubjectController,
	userController *controllers.UserController,
	feeController *controllers.FeeController,
	announcementController *controllers.AnnouncementController,
	activityController *controllers.ActivityController,
	wsHandler *websocket.Handler,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Student records and enrollment
	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.POST("", studentController.CreateStudent)
		students.POST("/bulk-delete", studentController.DeleteStudents)
		students.GET("/:id", studentController.GetStudent)
		students.PUT("/:id", studentController.UpdateStudent)
		students.DELETE("/:id", studentController.DeleteStudent)
		students.POST("/:id/enroll", studentController.EnrollStudent)
		students.POST("/:id/financial-summary", studentController.RecomputeSummary)
		students.GET("/:id/enrollment-form", studentController.EnrollmentForm)

		// Per-student payment history lives under the student resource
		students.GET("/:id/payments", paymentController.ListPayments)
		students.PUT("/:id/payments/:reference", paymentController.UpdatePayment)
		students.DELETE("/:id/payments/:reference", paymentController.DeletePayment)
		students.GET("/:id/payments/:reference/receipt", paymentController.Receipt)
	}

	// Collection-wide payment operations
	payments := v1.Group("/payments")
	{
		payments.POST("", paymentController.AddPayment)
		payments.GET("/export", paymentController.ExportCSV)
	}

	// Curriculum
	subjects := v1.Group("/subjects")
	{
		subjects.GET("", subjectController.ListSubjects)
		subjects.POST("", subjectController.CreateSubject)
		subjects.GET("/export", subjectController.ExportCSV)
		subjects.GET("/:id", subjectController.GetSubject)
		subjects.PUT("/:id", subjectController.UpdateSubject)
		subjects.DELETE("/:id", subjectController.DeleteSubject)
	}

	// Staff accounts
	users := v1.Group("/users")
	{
		users.GET("", userController.ListUsers)
		users.POST("", userController.CreateUser)
		users.GET("/export", userController.ExportCSV)
		users.GET("/:id", userController.GetUser)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
	}

	// Fee structure
	fees := v1.Group("/fees")
	{
		fees.GET("", feeController.GetSchedules)
		fees.POST("/reset", feeController.ResetDefaults)
		fees.PUT("/:department", feeController.UpdateDepartment)
	}

	// Announcement calendar
	announcements := v1.Group("/announcements")
	{
		announcements.GET("", announcementController.ListRange)
		announcements.POST("", announcementController.Create)
		announcements.GET("/:id", announcementController.Get)
		announcements.PUT("/:id", announcementController.Update)
		announcements.DELETE("/:id", announcementController.Delete)
	}

	// Dashboard activity feed
	v1.GET("/activities", activityController.List)

	// Live collection-change events
	v1.GET("/ws/users", wsHandler.Subscribe)
}
