package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/qrpass"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
	log "github.com/sirupsen/logrus"
)

// OutcomeCode classifies the result of a redemption attempt.
type OutcomeCode string

const (
	OutcomeSuccess         OutcomeCode = "success"
	OutcomeInvalidCode     OutcomeCode = "invalid-code"
	OutcomeWrongSession    OutcomeCode = "wrong-session"
	OutcomeNotFound        OutcomeCode = "not-found"
	OutcomeAlreadyRedeemed OutcomeCode = "already-redeemed"
	OutcomeError           OutcomeCode = "error"
)

// Outcome is the full result of one scan. Audio is a presentation hint for
// the scanner UI, "success" or "failure" per outcome class.
type Outcome struct {
	Success          bool
	Code             OutcomeCode
	Message          string
	Audio            string
	ParticipantEmail string
	RedeemedAt       string
}

func failure(code OutcomeCode, message string) *Outcome {
	return &Outcome{
		Success: false,
		Code:    code,
		Message: message,
		Audio:   "failure",
	}
}

// RedemptionService runs the issued -> redeemed transition for scanned
// passes. The transition is terminal; once redeemed, every further scan of
// the same identifier reports already-redeemed without side effects.
type RedemptionService struct {
	passes repositories.PassRepository
	codec  *qrpass.Codec
}

func NewRedemptionService(passes repositories.PassRepository, codec *qrpass.Codec) *RedemptionService {
	return &RedemptionService{passes: passes, codec: codec}
}

// Redeem validates the scanned payload against the claimed session and, when
// everything checks out, atomically flips the pass to redeemed. Internal
// failures surface as an OutcomeError result rather than an error return;
// every caller wants a structured response either way.
func (s *RedemptionService) Redeem(rawData, claimedSession string) *Outcome {
	payload, err := s.codec.Decode(rawData)
	if err != nil {
		log.WithError(err).Warn("rejected scanned payload")
		if errors.Is(err, qrpass.ErrInvalidKeyword) || errors.Is(err, qrpass.ErrMissingField) ||
			errors.Is(err, qrpass.ErrMalformedPayload) {
			return failure(OutcomeInvalidCode, "Invalid QR code format or missing keyword")
		}
		return failure(OutcomeError, "Error processing QR code")
	}

	if payload.Session != claimedSession {
		return failure(OutcomeWrongSession,
			fmt.Sprintf("QR code does not belong to session %q", claimedSession))
	}

	pass, err := s.passes.GetByID(payload.ID)
	if err != nil {
		log.WithError(err).Error("failed to look up pass")
		return failure(OutcomeError, "Error processing QR code")
	}
	if pass == nil {
		return failure(OutcomeNotFound, "QR code not found in database")
	}

	if pass.IsRedeemed {
		return failure(OutcomeAlreadyRedeemed,
			fmt.Sprintf("QR code already redeemed on %s", pass.RedeemedAtString()))
	}

	now := time.Now().UTC()
	redeemed, err := s.passes.Redeem(pass.ID, now)
	if err != nil {
		log.WithError(err).Error("failed to redeem pass")
		return failure(OutcomeError, "Failed to redeem QR code")
	}
	if !redeemed {
		// Lost the race against a concurrent scan; report the winner's
		// timestamp.
		current, err := s.passes.GetByID(pass.ID)
		if err != nil || current == nil {
			return failure(OutcomeAlreadyRedeemed, "QR code already redeemed")
		}
		return failure(OutcomeAlreadyRedeemed,
			fmt.Sprintf("QR code already redeemed on %s", current.RedeemedAtString()))
	}

	log.WithField("pass", pass.ID).Info("redeemed pass")
	return &Outcome{
		Success:          true,
		Code:             OutcomeSuccess,
		Message:          fmt.Sprintf("QR code redeemed successfully for %s", pass.ParticipantEmail),
		Audio:            "success",
		ParticipantEmail: pass.ParticipantEmail,
		RedeemedAt:       now.Format(models.TimestampLayout),
	}
}
