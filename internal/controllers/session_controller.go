package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	log "github.com/sirupsen/logrus"
)

type SessionController struct {
	sessionService *services.SessionService
}

func NewSessionController(sessionService *services.SessionService) *SessionController {
	return &SessionController{sessionService: sessionService}
}

// CreateSession handles session registration
// POST /api/create_session
func (sc *SessionController) CreateSession(c *gin.Context) {
	name := c.PostForm("session_name")

	session, err := sc.sessionService.Create(name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNameRequired):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Session name is required"})
		case errors.Is(err, services.ErrDuplicateSession):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Session already exists"})
		default:
			log.WithError(err).Error("failed to create session")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to create session"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Session %q created successfully", session.Name),
	})
}

// DeleteAll wipes every session and pass
// POST /api/delete_all
func (sc *SessionController) DeleteAll(c *gin.Context) {
	if err := sc.sessionService.PurgeAll(); err != nil {
		log.WithError(err).Error("failed to delete all data")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to delete all data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All sessions and statistics deleted successfully",
	})
}
