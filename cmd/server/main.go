package main

import (
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/config"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/controllers"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/database"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/mailer"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/qrpass"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/render"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/routes"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	setupLogging(&cfg.Logging)

	if err := database.Connect(&cfg.Database); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorf("error closing database: %v", err)
		}
	}()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(db)
	passRepo := repositories.NewPassRepository(db)

	// Initialize services
	codec := qrpass.NewCodec(cfg.Pass.Keyword)
	sessionService := services.NewSessionService(db, sessionRepo)
	issuanceService := services.NewIssuanceService(
		sessionRepo, passRepo, codec, render.NewQRRenderer(),
		mailer.NewSMTPMailer(cfg.Mail, cfg.Pass),
	)
	redemptionService := services.NewRedemptionService(passRepo, codec)
	statsService := services.NewStatsService(passRepo)

	// Initialize controllers
	pagesController := controllers.NewPagesController(sessionService, statsService, cfg.Pass.EventName)
	sessionController := controllers.NewSessionController(sessionService)
	passController := controllers.NewPassController(issuanceService)
	scannerController := controllers.NewScannerController(redemptionService, statsService)

	// Setup router
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.Default()
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))
	router.LoadHTMLGlob("web/templates/*.html")
	routes.SetupRoutes(router, pagesController, sessionController, passController, scannerController)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		log.Infof("server running on %s", addr)
		if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	waitForShutdown()
}

func setupLogging(cfg *config.LoggingConfig) {
	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{})
	}
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down server...")
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	origins := "*"
	if len(allowedOrigins) > 0 {
		origins = strings.Join(allowedOrigins, ", ")
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
