package routes

import (
	"github.com/gin-gonic/gin"
	supa "github.com/supabase-community/supabase-go"

	"github.com/matchellatte/church-konek-web-admin/config"
	"github.com/matchellatte/church-konek-web-admin/handlers"
	"github.com/matchellatte/church-konek-web-admin/middleware"
	"github.com/matchellatte/church-konek-web-admin/services"
	"github.com/matchellatte/church-konek-web-admin/store"
)

func SetupRoutes(router *gin.Engine, supabaseClient *supa.Client, cfg *config.Config) {
	// One shared data-access layer over the Supabase gateway
	supabaseStore := store.NewSupabaseStore(supabaseClient)
	appointmentList := services.NewAppointmentList(supabaseStore)
	statsService := services.NewStatsService(supabaseStore)
	userDirectory := services.NewUserDirectory(supabaseStore)
	formCatalog := services.NewFormCatalog(supabaseStore)

	authHandler := handlers.NewAuthHandler(supabaseClient, cfg)
	dashboardHandler := handlers.NewDashboardHandler(statsService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentList)
	userHandler := handlers.NewUserHandler(userDirectory)
	serviceFormsHandler := handlers.NewServiceFormsHandler(formCatalog)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Server is running",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/auth/me", authHandler.GetMe)

			// Admin panel
			admin := protected.Group("/admin")
			admin.Use(middleware.RoleMiddleware("admin"))
			{
				admin.GET("/dashboard", dashboardHandler.GetDashboard)

				admin.GET("/appointments", appointmentHandler.GetAppointments)
				admin.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

				admin.GET("/users", userHandler.GetUsers)

				admin.GET("/services/:serviceSlug", serviceFormsHandler.GetServiceRecords)
				admin.GET("/services/:serviceSlug/records/:index", serviceFormsHandler.GetServiceRecord)
				admin.GET("/forms/first-communion", serviceFormsHandler.GetCommunionForms)
			}
		}
	}
}
