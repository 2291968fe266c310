package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	log "github.com/sirupsen/logrus"
)

// PagesController serves the server-rendered admin and scanner pages. It is
// presentation only; everything it shows comes through the same services the
// JSON API uses.
type PagesController struct {
	sessionService *services.SessionService
	statsService   *services.StatsService
	eventName      string
}

func NewPagesController(
	sessionService *services.SessionService,
	statsService *services.StatsService,
	eventName string,
) *PagesController {
	return &PagesController{
		sessionService: sessionService,
		statsService:   statsService,
		eventName:      eventName,
	}
}

// Index renders the home page
// GET /
func (pc *PagesController) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"event": pc.eventName})
}

// Admin renders the dashboard with sessions and statistics
// GET /admin
func (pc *PagesController) Admin(c *gin.Context) {
	sessions, err := pc.sessionService.List()
	if err != nil {
		log.WithError(err).Error("failed to list sessions")
	}
	stats, err := pc.statsService.GetStats()
	if err != nil {
		log.WithError(err).Error("failed to get stats")
		stats = &services.Stats{}
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"event":    pc.eventName,
		"sessions": sessions,
		"stats":    stats,
	})
}

// Scanner renders the scan page with the session picker and recent activity
// GET /scanner
func (pc *PagesController) Scanner(c *gin.Context) {
	sessions, err := pc.sessionService.List()
	if err != nil {
		log.WithError(err).Error("failed to list sessions")
	}
	recent, err := pc.statsService.RecentRedemptions(services.DefaultRecentLimit)
	if err != nil {
		log.WithError(err).Error("failed to get recent redemptions")
	}
	c.HTML(http.StatusOK, "scanner.html", gin.H{
		"event":       pc.eventName,
		"sessions":    sessions,
		"redemptions": recent,
	})
}
