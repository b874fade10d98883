package repository

import (
	"context"
	"errors"

	"meetup-escrow-backend/internal/features/escrow/models"
)

var (
	ErrConfigExists   = errors.New("configuration already exists")
	ErrConfigNotFound = errors.New("configuration not found")
	ErrPoolNotFound   = errors.New("pool record not found")
)

// EscrowRepository persists the per-contract configuration and the single
// pool record slot. Keys are namespaced by contract id so independent
// instances can coexist in one store.
type EscrowRepository interface {
	// CreateConfig writes the configuration for id. It fails with
	// ErrConfigExists when a configuration is already present; existence is
	// keyed on the admin entry.
	CreateConfig(ctx context.Context, id string, cfg *models.Config) error
	GetConfig(ctx context.Context, id string) (*models.Config, error)
	HasConfig(ctx context.Context, id string) (bool, error)

	// SetPool writes the pool record for id, replacing any prior record.
	SetPool(ctx context.Context, id string, pool *models.PoolRecord) error
	GetPool(ctx context.Context, id string) (*models.PoolRecord, error)
	DeletePool(ctx context.Context, id string) error
}
