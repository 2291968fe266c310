package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/services"
	log "github.com/sirupsen/logrus"
)

type ScannerController struct {
	redemptionService *services.RedemptionService
	statsService      *services.StatsService
}

func NewScannerController(
	redemptionService *services.RedemptionService,
	statsService *services.StatsService,
) *ScannerController {
	return &ScannerController{
		redemptionService: redemptionService,
		statsService:      statsService,
	}
}

type validateQRRequest struct {
	QRData          string `json:"qr_data"`
	SelectedSession string `json:"selected_session"`
}

// ValidateQR validates and redeems a scanned pass
// POST /api/validate_qr
func (sc *ScannerController) ValidateQR(c *gin.Context) {
	var req validateQRRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QRData == "" || req.SelectedSession == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": "QR data and session selection required",
			"audio":   "failure",
		})
		return
	}

	outcome := sc.redemptionService.Redeem(req.QRData, req.SelectedSession)

	resp := gin.H{
		"success": outcome.Success,
		"message": outcome.Message,
		"audio":   outcome.Audio,
		"code":    outcome.Code,
	}
	if outcome.Success {
		resp["participant_email"] = outcome.ParticipantEmail
		resp["redeemed_at"] = outcome.RedeemedAt
	}
	c.JSON(http.StatusOK, resp)
}

// GetRecentRedemptions returns the latest redemptions for the scanner page
// GET /api/get_recent_redemptions
func (sc *ScannerController) GetRecentRedemptions(c *gin.Context) {
	redemptions, err := sc.statsService.RecentRedemptions(services.DefaultRecentLimit)
	if err != nil {
		log.WithError(err).Error("failed to get recent redemptions")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to get recent redemptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "redemptions": redemptions})
}

// GetStats returns current pass statistics
// GET /api/get_stats
func (sc *ScannerController) GetStats(c *gin.Context) {
	stats, err := sc.statsService.GetStats()
	if err != nil {
		log.WithError(err).Error("failed to get stats")
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to get statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
