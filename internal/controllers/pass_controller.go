package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	log "github.com/sirupsen/logrus"
)

type PassController struct {
	issuanceService *services.IssuanceService
}

func NewPassController(issuanceService *services.IssuanceService) *PassController {
	return &PassController{issuanceService: issuanceService}
}

// SendQR mints passes for the selected sessions and emails them as one bundle
// POST /api/send_qr
func (pc *PassController) SendQR(c *gin.Context) {
	email := c.PostForm("participant_email")
	selected := c.PostFormArray("selected_sessions")

	count, err := pc.issuanceService.Issue(email, selected)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailRequired):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Participant email is required"})
		case errors.Is(err, services.ErrNoSessionsSelected):
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Please select at least one session"})
		default:
			log.WithError(err).Error("failed to send QR codes")
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to send QR codes"})
		}
		return
	}

	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to send QR codes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Sent %d QR code(s) successfully", count),
	})
}
