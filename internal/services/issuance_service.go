package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/mailer"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/qrpass"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/render"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmailRequired      = errors.New("issuance service: participant email is required")
	ErrNoSessionsSelected = errors.New("issuance service: at least one session must be selected")
	ErrDeliveryFailed     = errors.New("issuance service: delivery failed")
)

// IssuanceService mints passes for a participant across the selected
// sessions and delivers them as one combined email. Rows are persisted only
// after the delivery succeeds, so a mail failure never leaves passes the
// participant was not notified about.
type IssuanceService struct {
	sessions repositories.SessionRepository
	passes   repositories.PassRepository
	codec    *qrpass.Codec
	renderer render.Renderer
	mail     mailer.Mailer
}

func NewIssuanceService(
	sessions repositories.SessionRepository,
	passes repositories.PassRepository,
	codec *qrpass.Codec,
	renderer render.Renderer,
	mail mailer.Mailer,
) *IssuanceService {
	return &IssuanceService{
		sessions: sessions,
		passes:   passes,
		codec:    codec,
		renderer: renderer,
		mail:     mail,
	}
}

// Issue processes the selected sessions in order: unknown sessions and
// already-issued (session, email) pairs are skipped, the rest get a freshly
// minted pass each. Returns the number of passes issued, 0 when nothing
// survived or the delivery failed.
func (s *IssuanceService) Issue(email string, sessionNames []string) (int, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, ErrEmailRequired
	}
	if len(sessionNames) == 0 {
		return 0, ErrNoSessionsSelected
	}

	var (
		attachments []mailer.PassAttachment
		toCreate    []*models.Pass
		imagePaths  []string
	)
	// Temp images are removed after the delivery attempt, success or not.
	defer func() { render.Cleanup(imagePaths) }()

	for _, sessionName := range sessionNames {
		session, err := s.sessions.GetByName(sessionName)
		if err != nil {
			return 0, fmt.Errorf("issuance service: look up session: %w", err)
		}
		if session == nil {
			log.WithField("session", sessionName).Warn("skipping unknown session")
			continue
		}

		existing, err := s.passes.GetBySessionAndEmail(sessionName, email)
		if err != nil {
			return 0, fmt.Errorf("issuance service: check existing pass: %w", err)
		}
		if existing != nil {
			log.WithFields(log.Fields{
				"session": sessionName,
				"email":   email,
			}).Warn("pass already exists, skipping")
			continue
		}

		id := qrpass.GenerateID(sessionName)
		payload, err := s.codec.Encode(id, sessionName, email)
		if err != nil {
			return 0, err
		}

		imagePath, err := s.renderer.Render(payload, id)
		if err != nil {
			return 0, fmt.Errorf("issuance service: render qr: %w", err)
		}
		imagePaths = append(imagePaths, imagePath)

		attachments = append(attachments, mailer.PassAttachment{
			SessionName: sessionName,
			ImagePath:   imagePath,
		})
		toCreate = append(toCreate, &models.Pass{
			ID:               id,
			SessionName:      sessionName,
			ParticipantEmail: email,
			Payload:          payload,
		})
	}

	if len(toCreate) == 0 {
		return 0, nil
	}

	if err := s.mail.SendPassBundle(email, attachments); err != nil {
		log.WithError(err).WithField("email", email).Error("failed to send pass bundle")
		return 0, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	if err := s.passes.CreateBatch(toCreate); err != nil {
		return 0, fmt.Errorf("issuance service: persist passes: %w", err)
	}

	log.WithFields(log.Fields{
		"email":  email,
		"issued": len(toCreate),
	}).Info("issued passes")
	return len(toCreate), nil
}
