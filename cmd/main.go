package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agroconnect/internal/auth"
	"agroconnect/internal/config"
	"agroconnect/internal/database"
	"agroconnect/internal/handlers"
	"agroconnect/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize services
	userService := services.NewUserService(database.GetDB())
	listingService := services.NewListingService(database.GetDB())
	orderService := services.NewOrderService(database.GetDB())
	bargainService := services.NewBargainService(database.GetDB())
	adminService := services.NewAdminService(database.GetDB())

	// Bootstrap admin account from config, if set
	if err := userService.EnsureAdmin(cfg.App.AdminUsername, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	listingHandler := handlers.NewListingHandler(listingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	bargainHandler := handlers.NewBargainHandler(bargainService)
	adminHandler := handlers.NewAdminHandler(adminService, orderService, listingService, bargainService)

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register/farmer", authHandler.RegisterFarmer)
		authRoutes.POST("/register/company", authHandler.RegisterCompany)
		authRoutes.POST("/login", authHandler.Login)
	}

	// API routes (protected)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		// Profile endpoints
		api.GET("/profile", userHandler.GetProfile)
		api.PUT("/profile", userHandler.UpdateProfile)

		// Listing endpoints
		api.POST("/listings", listingHandler.CreateListing)
		api.GET("/listings", listingHandler.GetListings)
		api.GET("/listings/:id", listingHandler.GetListing)
		api.GET("/market-prices", listingHandler.GetMarketPrices)

		// Order endpoints
		api.POST("/orders", orderHandler.PlaceOrder)
		api.GET("/orders", orderHandler.GetOrders)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.POST("/orders/:id/respond", orderHandler.RespondToOrder)

		// Bargain endpoints
		api.POST("/bargains", bargainHandler.CreateBargain)
		api.GET("/bargains", bargainHandler.GetBargains)
	}

	// Admin routes (protected + admin only)
	admin := router.Group("/api/admin")
	admin.Use(auth.AuthMiddleware())
	admin.Use(adminHandler.AdminMiddleware())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)

		// Order management
		admin.GET("/orders", adminHandler.GetOrders)
		admin.GET("/orders/summary", adminHandler.GetOrderSummary)
		admin.POST("/orders/:id/advance", adminHandler.AdvanceOrder)

		// Listing management
		admin.GET("/listings", adminHandler.GetListings)
		admin.PUT("/listings/:id/price", adminHandler.SetListingPrice)

		// Bargain management
		admin.GET("/bargains", adminHandler.GetBargains)
		admin.POST("/bargains/:id/respond", adminHandler.RespondToBargain)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
