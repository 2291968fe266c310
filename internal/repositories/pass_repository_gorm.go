package repositories

import (
	"errors"
	"time"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
	"gorm.io/gorm"
)

// GormPassRepository implements PassRepository using GORM.
type GormPassRepository struct {
	db *gorm.DB
}

func NewPassRepository(db *gorm.DB) *GormPassRepository {
	return &GormPassRepository{db: db}
}

func (r *GormPassRepository) GetByID(id string) (*models.Pass, error) {
	var pass models.Pass
	if err := r.db.First(&pass, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pass, nil
}

func (r *GormPassRepository) GetBySessionAndEmail(sessionName, email string) (*models.Pass, error) {
	var pass models.Pass
	err := r.db.First(&pass, "session_name = ? AND participant_email = ?", sessionName, email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pass, nil
}

func (r *GormPassRepository) Create(pass *models.Pass) error {
	if err := r.db.Create(pass).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdentifier
		}
		return err
	}
	return nil
}

// CreateBatch persists a whole issuance batch in one transaction so a
// persistence failure never leaves a partial batch behind.
func (r *GormPassRepository) CreateBatch(passes []*models.Pass) error {
	if len(passes) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, pass := range passes {
			if err := tx.Create(pass).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrDuplicateIdentifier
				}
				return err
			}
		}
		return nil
	})
}

// Redeem performs the issued -> redeemed transition as one conditional
// update, so two concurrent scans of the same identifier cannot both win.
func (r *GormPassRepository) Redeem(id string, at time.Time) (bool, error) {
	res := r.db.Model(&models.Pass{}).
		Where("id = ? AND is_redeemed = ?", id, false).
		Updates(map[string]interface{}{
			"is_redeemed": true,
			"redeemed_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *GormPassRepository) ListRedeemed(limit int) ([]models.Pass, error) {
	var passes []models.Pass
	err := r.db.Where("is_redeemed = ?", true).
		Order("redeemed_at desc").
		Limit(limit).
		Find(&passes).Error
	if err != nil {
		return nil, err
	}
	return passes, nil
}

func (r *GormPassRepository) CountAll() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Pass{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPassRepository) CountRedeemed() (int64, error) {
	var count int64
	err := r.db.Model(&models.Pass{}).Where("is_redeemed = ?", true).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
