package repository

import (
	"context"

	"meetup-escrow-backend/internal/features/wallet/models"
)

// WalletRepository stores the user-to-wallet links.
type WalletRepository interface {
	Save(ctx context.Context, link *models.Link) error
	// Get returns the link for userID, or models.ErrNotLinked.
	Get(ctx context.Context, userID int64) (*models.Link, error)
}
