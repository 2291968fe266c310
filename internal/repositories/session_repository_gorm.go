package repositories

import (
	"errors"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"gorm.io/gorm"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) GetByName(name string) (*models.Session, error) {
	var session models.Session
	if err := r.db.First(&session, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *GormSessionRepository) Create(session *models.Session) error {
	return r.db.Create(session).Error
}

// GetAll returns every session ordered by name so repeated reads render the
// same way.
func (r *GormSessionRepository) GetAll() ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.Order("name asc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *GormSessionRepository) ExistsByName(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Session{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
