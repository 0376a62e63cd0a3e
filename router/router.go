package router

import (
	"github.com/gin-gonic/gin"
	"github.com/hendrawanp/passvault-app/controllers"
	"github.com/hendrawanp/passvault-app/middlewares"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	organizationCtrl := controllers.NewOrganizationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Strict rate limit on the credential endpoints
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.ListNotifications)
	auth.GET("/notifications/unread-count", notificationCtrl.GetUnreadCount)
	auth.PATCH("/notifications/:notification_id/read", notificationCtrl.MarkNotificationRead)
	auth.PATCH("/notifications/:notification_id/deleted", notificationCtrl.MarkNotificationDeleted)

	// ORGANIZATIONS (admin)
	admin := auth.Group("/organizations")
	admin.Use(middlewares.RequireRole("admin"))
	{
		admin.POST("", organizationCtrl.CreateOrganization)
		admin.GET("", organizationCtrl.GetAllOrganizations)
		admin.GET("/:org_id/members", organizationCtrl.ListMembers)
		admin.POST("/:org_id/members", organizationCtrl.AddMember)
		admin.DELETE("/:org_id/members/:user_id", organizationCtrl.RemoveMember)
	}

	return r
}
