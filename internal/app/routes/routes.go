package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/consultdesk/internal/app/auth"
	"github.com/yigit/consultdesk/internal/app/controllers"
	"github.com/yigit/consultdesk/internal/app/models/dto"
	"github.com/yigit/consultdesk/internal/middleware"
)

// Controllers groups every HTTP controller mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Branch       *controllers.BranchController
	Student      *controllers.StudentController
	Application  *controllers.ApplicationController
	Document     *controllers.DocumentController
	Checklist    *controllers.ChecklistController
	Notification *controllers.NotificationController
	Dashboard    *controllers.DashboardController
	Bulk         *controllers.BulkController
}

// Options carries the non-controller pieces the routes need
type Options struct {
	CronAPIKey       string
	WebSocketHandler gin.HandlerFunc
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, opts Options) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	authGroup := v1.Group("/auth")
	{
		// A bearer token is optional here; it is needed to create global users
		authGroup.POST("/register", authMiddleware.OptionalAuth(), c.Auth.Register)
		authGroup.POST("/login", c.Auth.Login)
	}

	// Called by an external scheduler, authenticated by API key instead of JWT
	v1.POST("/notifications/cron/send-expiry-reminders",
		middleware.CronAPIKey(opts.CronAPIKey),
		c.Notification.CronSendExpiryReminders,
	)

	if opts.WebSocketHandler != nil {
		// Browsers cannot set headers on the handshake, so ?token= is accepted too
		v1.GET("/ws", authMiddleware.OptionalAuth(), opts.WebSocketHandler)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", c.Auth.Me)

		users := authenticated.Group("/users")
		{
			users.GET("", c.User.ListUsers)
			users.GET("/roles", c.User.ListRoles)
			users.GET("/:id", c.User.GetUser)
			users.PUT("/:id", c.User.UpdateUser)
			users.PUT("/:id/role", c.User.UpdateRole)
			users.DELETE("/:id", c.User.DeleteUser)
		}

		branches := authenticated.Group("/branches")
		{
			branches.GET("", c.Branch.ListBranches)
			branches.GET("/:id", c.Branch.GetBranch)
			branches.GET("/:id/staff", c.Branch.ListStaff)
			branches.POST("", c.Branch.CreateBranch)
			branches.PUT("/:id", c.Branch.UpdateBranch)
			branches.DELETE("/:id", c.Branch.DeleteBranch)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", c.Student.ListStudents)
			students.GET("/:id", c.Student.GetStudent)
			students.GET("/:id/applications", c.Student.ListStudentApplications)
			students.POST("", c.Student.CreateStudent)
			students.PUT("/:id", c.Student.UpdateStudent)
			students.DELETE("/:id", c.Student.DeleteStudent)
		}

		applications := authenticated.Group("/applications")
		{
			applications.GET("", c.Application.ListApplications)
			applications.GET("/:id", c.Application.GetApplication)
			applications.POST("", c.Application.CreateApplication)
			applications.PUT("/:id/status", c.Application.UpdateApplicationStatus)
			applications.DELETE("/:id", c.Application.DeleteApplication)
		}

		documents := authenticated.Group("/documents")
		{
			documents.POST("/upload/:applicationId/:documentId", c.Document.UploadDocument)
			documents.GET("/application/:id", c.Document.ListApplicationDocuments)
			documents.GET("/expiring", c.Document.ListExpiringDocuments)
			documents.PUT("/status/:appDocId", c.Document.UpdateDocumentStatus)
			documents.PUT("/expiry/:appDocId", c.Document.UpdateDocumentExpiry)
			documents.DELETE("/:appDocId", c.Document.DeleteDocument)

			documents.GET("/types", c.Document.ListDocumentTypes)
			documents.POST("/types", c.Document.CreateDocumentType)
			documents.PUT("/types/:id", c.Document.UpdateDocumentType)
		}

		checklists := authenticated.Group("/checklists")
		{
			checklists.GET("", c.Checklist.ListChecklists)
			checklists.GET("/countries", c.Checklist.ListCountries)
			checklists.GET("/country/:id", c.Checklist.ListCountryChecklists)
			checklists.GET("/:id", c.Checklist.GetChecklist)
			checklists.POST("", c.Checklist.CreateChecklist)
			checklists.PUT("/:id", c.Checklist.UpdateChecklist)
			checklists.DELETE("/:id", c.Checklist.DeleteChecklist)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", c.Notification.ListNotifications)
			notifications.PUT("/:id/read", c.Notification.MarkNotificationRead)
			notifications.POST("/send-expiry-reminders",
				authMiddleware.RequireCapability(auth.CapTriggerExpiryScan),
				c.Notification.SendExpiryReminders,
			)
		}

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("/stats", c.Dashboard.GetStats)
			dashboard.GET("/branch-comparison", c.Dashboard.GetBranchComparison)
		}

		bulk := authenticated.Group("/bulk")
		bulk.Use(authMiddleware.RequireCapability(auth.CapBulkTransfer))
		{
			bulk.POST("/import/students", c.Bulk.ImportStudents)
			bulk.GET("/export/students", c.Bulk.ExportStudents)
			bulk.GET("/export/applications", c.Bulk.ExportApplications)
			bulk.GET("/export/documents/:applicationId", c.Bulk.ExportDocumentChecklist)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
