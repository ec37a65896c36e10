package main

import (
	"github.com/gin-gonic/gin"

	"appointme.backend/internal/interfaces/http/handlers"
	"appointme.backend/internal/interfaces/http/middleware"
	"appointme.backend/pkg/metrics"
)

type routeDeps struct {
	authHandler                *handlers.AuthHandler
	adminAuthHandler           *handlers.AdminAuthHandler
	bookingHandler             *handlers.BookingHandler
	serviceHandler             *handlers.ServiceHandler
	profileHandler             *handlers.ProfileHandler
	providerApplicationHandler *handlers.ProviderApplicationHandler
	notificationHandler        *handlers.NotificationHandler
	chatbotHandler             *handlers.ChatbotHandler
	authMiddleware             gin.HandlerFunc
	chatbotRateLimit           gin.HandlerFunc
	adminSignup                bool
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(middleware.CORSMiddleware(allowedOrigins))
}

func registerHealthRoute(r *gin.Engine, h *handlers.HealthHandler) {
	r.GET("/health", h.Health)
}

func registerMetricsRoute(r *gin.Engine, m *metrics.Metrics) {
	r.GET("/metrics", gin.WrapH(m.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	requireUser := middleware.RequireUser()
	requireAdmin := middleware.RequireAdmin()

	chatLimit := d.chatbotRateLimit
	if chatLimit == nil {
		chatLimit = func(c *gin.Context) { c.Next() }
	}

	v1 := r.Group("/api/v1")
	{
		// Auth routes (public except logout/me)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/logout", d.authMiddleware, requireUser, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, requireUser, d.authHandler.Me)
		}

		// Admin auth routes. Signup can be switched off; cmd/admin-seed creates accounts then.
		admin := v1.Group("/admin")
		{
			if d.adminSignup {
				admin.POST("/signup", d.adminAuthHandler.Signup)
			}
			admin.POST("/login", d.adminAuthHandler.Login)
			admin.POST("/refresh", d.adminAuthHandler.Refresh)
			admin.POST("/logout", d.authMiddleware, requireAdmin, d.adminAuthHandler.Logout)
			admin.GET("/me", d.authMiddleware, requireAdmin, d.adminAuthHandler.Me)
		}

		// Service catalog (public read, protected write)
		services := v1.Group("/services")
		{
			services.GET("", d.serviceHandler.ListServices)
			services.GET("/mine", d.authMiddleware, requireUser, d.serviceHandler.ListMyServices)
			services.GET("/:id", d.serviceHandler.GetService)
			services.POST("", d.authMiddleware, requireUser, d.serviceHandler.CreateService)
		}

		// Booking routes (protected)
		bookings := v1.Group("/bookings")
		bookings.Use(d.authMiddleware, requireUser)
		{
			bookings.GET("", d.bookingHandler.ListProviderBookings)
			bookings.POST("", d.bookingHandler.CreateBooking)
			bookings.GET("/mine", d.bookingHandler.ListMyBookings)
			bookings.POST("/mark-all-available", d.bookingHandler.MarkAllAvailable)
			bookings.POST("/:id/confirm", d.bookingHandler.ConfirmBooking)
			bookings.POST("/:id/cancel", d.bookingHandler.CancelBooking)
			bookings.POST("/:id/complete", d.bookingHandler.CompleteBooking)
			bookings.POST("/:id/available", d.bookingHandler.MarkAvailable)
		}

		// Profile routes (protected)
		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware, requireUser)
		{
			profile.GET("", d.profileHandler.GetProfile)
			profile.PUT("", d.profileHandler.UpdateProfile)
			profile.GET("/picture", d.profileHandler.GetPicture)
			profile.POST("/picture", d.profileHandler.UploadPicture)
		}

		// Account settings (protected)
		settings := v1.Group("/settings")
		settings.Use(d.authMiddleware, requireUser)
		{
			settings.PUT("/email", d.profileHandler.UpdateEmail)
			settings.PUT("/password", d.profileHandler.ChangePassword)
			settings.DELETE("/account", d.profileHandler.DeleteAccount)
		}

		// Provider applications: users submit, admins review
		applications := v1.Group("/provider-applications")
		applications.Use(d.authMiddleware)
		{
			applications.POST("", requireUser, d.providerApplicationHandler.Submit)
			applications.GET("", requireAdmin, d.providerApplicationHandler.ListPending)
			applications.POST("/:id/approve", requireAdmin, d.providerApplicationHandler.Approve)
			applications.POST("/:id/reject", requireAdmin, d.providerApplicationHandler.Reject)
		}

		// Notifications (protected)
		notifications := v1.Group("/notifications")
		notifications.Use(d.authMiddleware, requireUser)
		{
			notifications.GET("", d.notificationHandler.ListNotifications)
			notifications.POST("/read-all", d.notificationHandler.MarkAllRead)
			notifications.POST("/:id/read", d.notificationHandler.MarkRead)
		}

		// Chatbot (public)
		chatbot := v1.Group("/chatbot")
		{
			chatbot.POST("/message", chatLimit, d.chatbotHandler.SendMessage)
			chatbot.POST("/simple", d.chatbotHandler.SimpleMessage)
			chatbot.GET("/quick-responses", d.chatbotHandler.QuickResponses)
			chatbot.GET("/faqs", d.chatbotHandler.FAQs)
			chatbot.GET("/test", d.chatbotHandler.Test)
		}
	}
}
