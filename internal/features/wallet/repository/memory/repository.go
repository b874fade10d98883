package memory

import (
	"context"
	"sync"

	"meetup-escrow-backend/internal/features/wallet/models"
)

// Repository is an in-process WalletRepository for tests.
type Repository struct {
	mu    sync.RWMutex
	links map[int64]models.Link
}

func NewWalletRepository() *Repository {
	return &Repository{links: make(map[int64]models.Link)}
}

func (r *Repository) Save(_ context.Context, link *models.Link) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.UserID] = *link
	return nil
}

func (r *Repository) Get(_ context.Context, userID int64) (*models.Link, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	link, ok := r.links[userID]
	if !ok {
		return nil, models.ErrNotLinked
	}
	return &link, nil
}
