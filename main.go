package main

import (
	"log"
	"tripsplit-backend/config"
	"tripsplit-backend/database"
	"tripsplit-backend/handlers"
	"tripsplit-backend/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me", handlers.UpdateProfile)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)
		api.POST("/users/search", handlers.SearchUsers)

		// Trips
		api.POST("/trips", handlers.CreateTrip)
		api.GET("/trips", handlers.GetTrips)
		api.GET("/trips/:id", handlers.GetTrip)
		api.PUT("/trips/:id", handlers.UpdateTrip)
		api.POST("/trips/:id/members", handlers.AddMember)
		api.DELETE("/trips/:id/members/:uid", handlers.RemoveMember)
		api.PUT("/trips/:id/weights", handlers.UpdateWeights)
		api.POST("/trips/:id/invite", handlers.InviteToTripHandler)

		// Expenses
		api.POST("/trips/:id/expenses", handlers.CreateExpense)
		api.GET("/trips/:id/expenses", handlers.GetTripExpenses)
		api.GET("/expenses/:id", handlers.GetExpense)
		api.PUT("/expenses/:id", handlers.UpdateExpense)
		api.DELETE("/expenses/:id", handlers.DeleteExpense)

		// Settlement plans
		api.GET("/trips/:id/plan", handlers.GetTripPlan)
		api.POST("/trips/:id/plan/paid", handlers.MarkInstructionPaid)
		api.DELETE("/trips/:id/plan/paid/:sid", handlers.UnmarkInstructionPaid)
		api.GET("/trips/:id/settlements", handlers.GetTripSettlements)

		// Wallet
		api.GET("/balance", handlers.GetWallet)

		// Direct payments
		api.POST("/payments", handlers.CreateDirectPayment)
		api.GET("/payments", handlers.GetDirectPayments)
		api.PUT("/payments/:id/paid", handlers.MarkDirectPaymentPaid)
		api.DELETE("/payments/:id", handlers.DeleteDirectPayment)

		// Activity
		api.GET("/activity", handlers.GetActivityFeed)
		api.GET("/trips/:id/activity", handlers.GetTripActivity)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
