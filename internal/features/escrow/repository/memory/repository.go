package memory

import (
	"context"
	"sync"

	"meetup-escrow-backend/internal/features/escrow/models"
	"meetup-escrow-backend/internal/features/escrow/repository"
)

// Repository is an in-process EscrowRepository used by tests and local runs
// without a Redis instance.
type Repository struct {
	mu      sync.RWMutex
	configs map[string]models.Config
	pools   map[string]models.PoolRecord
}

func NewEscrowRepository() *Repository {
	return &Repository{
		configs: make(map[string]models.Config),
		pools:   make(map[string]models.PoolRecord),
	}
}

func (r *Repository) CreateConfig(_ context.Context, id string, cfg *models.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[id]; ok {
		return repository.ErrConfigExists
	}
	r.configs[id] = *cfg
	return nil
}

func (r *Repository) GetConfig(_ context.Context, id string) (*models.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[id]
	if !ok {
		return nil, repository.ErrConfigNotFound
	}
	return &cfg, nil
}

func (r *Repository) HasConfig(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.configs[id]
	return ok, nil
}

func (r *Repository) SetPool(_ context.Context, id string, pool *models.PoolRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *pool
	cp.Depositors = append([]string(nil), pool.Depositors...)
	r.pools[id] = cp
	return nil
}

func (r *Repository) GetPool(_ context.Context, id string) (*models.PoolRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pool, ok := r.pools[id]
	if !ok {
		return nil, repository.ErrPoolNotFound
	}
	cp := pool
	cp.Depositors = append([]string(nil), pool.Depositors...)
	return &cp, nil
}

func (r *Repository) DeletePool(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pools, id)
	return nil
}
