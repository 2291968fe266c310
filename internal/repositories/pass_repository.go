package repositories

import (
	"errors"
	"time"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/models"
)

// ErrDuplicateIdentifier is returned when a pass insert collides with an
// existing row. With 32 bits of identifier randomness this is practically
// unreachable, but the constraint is still checked.
var ErrDuplicateIdentifier = errors.New("repositories: duplicate pass identifier")

type PassRepository interface {
	GetByID(id string) (*models.Pass, error)
	GetBySessionAndEmail(sessionName, email string) (*models.Pass, error)
	Create(pass *models.Pass) error
	CreateBatch(passes []*models.Pass) error
	// Redeem flips the pass to redeemed with a single conditional update.
	// It reports false when the pass was already redeemed (no rows matched).
	Redeem(id string, at time.Time) (bool, error)
	ListRedeemed(limit int) ([]models.Pass, error)
	CountAll() (int64, error)
	CountRedeemed() (int64, error)
}
