package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"business-directory-api/config"
	"business-directory-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.AppConfig = config.Load()
	slog.SetDefault(config.NewLogger(config.AppConfig.GinMode))
	gin.SetMode(config.AppConfig.GinMode)

	// Initialize database
	config.InitDB()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Business Directory API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	if err := routes.SetupRoutes(r); err != nil {
		slog.Error("route setup failed", "error", err)
		os.Exit(1)
	}

	addr := ":" + config.AppConfig.Port
	slog.Info("server starting", "addr", addr, "mode", config.AppConfig.GinMode)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
