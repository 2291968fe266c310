package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/repositories"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSessionNameRequired = errors.New("session service: session name is required")
	ErrDuplicateSession    = errors.New("session service: session already exists")
)

// SessionService manages the registry of meal sessions.
type SessionService struct {
	db       *gorm.DB
	sessions repositories.SessionRepository
}

func NewSessionService(db *gorm.DB, sessions repositories.SessionRepository) *SessionService {
	return &SessionService{db: db, sessions: sessions}
}

// Create registers a new session. The name is unique; a second registration
// of the same name fails with ErrDuplicateSession.
func (s *SessionService) Create(name string) (*models.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSessionNameRequired
	}

	exists, err := s.sessions.ExistsByName(name)
	if err != nil {
		return nil, fmt.Errorf("session service: check existing: %w", err)
	}
	if exists {
		return nil, ErrDuplicateSession
	}

	session := &models.Session{Name: name}
	if err := s.sessions.Create(session); err != nil {
		// The unique index closes the gap between the pre-check and the
		// insert under concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSession
		}
		return nil, fmt.Errorf("session service: create: %w", err)
	}

	log.WithField("session", name).Info("created session")
	return session, nil
}

func (s *SessionService) List() ([]models.Session, error) {
	return s.sessions.GetAll()
}

// PurgeAll removes every pass and every session in one transaction, so a
// partial purge is never observable.
func (s *SessionService) PurgeAll() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Pass{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session service: purge all: %w", err)
	}

	log.Info("deleted all sessions and passes")
	return nil
}
