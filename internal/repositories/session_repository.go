package repositories

import (
	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
)

type SessionRepository interface {
	GetByName(name string) (*models.Session, error)
	Create(session *models.Session) error
	GetAll() ([]models.Session, error)
	ExistsByName(name string) (bool, error)
}
