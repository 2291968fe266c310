package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/controllers"
)

// SetupRoutes registers all application routes.
func SetupRoutes(
	router *gin.Engine,
	pagesController *controllers.PagesController,
	sessionController *controllers.SessionController,
	passController *controllers.PassController,
	scannerController *controllers.ScannerController,
) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Server-rendered pages
	router.GET("/", pagesController.Index)
	router.GET("/admin", pagesController.Admin)
	router.GET("/scanner", pagesController.Scanner)

	api := router.Group("/api")
	{
		api.POST("/create_session", sessionController.CreateSession)
		api.POST("/send_qr", passController.SendQR)
		api.POST("/validate_qr", scannerController.ValidateQR)
		api.POST("/delete_all", sessionController.DeleteAll)
		api.GET("/get_recent_redemptions", scannerController.GetRecentRedemptions)
		api.GET("/get_stats", scannerController.GetStats)
	}
}
