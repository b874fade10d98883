package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"meetup-escrow-backend/internal/features/escrow/models"
	"meetup-escrow-backend/internal/features/escrow/repository"

	"github.com/redis/go-redis/v9"
)

// Storage layout: the configuration and the pool record are each one JSON
// blob under the contract prefix. Writing the configuration as a single
// SetNX keeps initialization atomic: the key either holds all five fields or
// does not exist.
const (
	keyPrefixContract = "contract:"

	slotConfig  = "config"
	slotBalance = "balance"
)

type redisRepository struct {
	client *redis.Client
}

func NewEscrowRepository(client *redis.Client) repository.EscrowRepository {
	return &redisRepository{client: client}
}

func makeSlotKey(id, slot string) string {
	return keyPrefixContract + id + ":" + slot
}

func (r *redisRepository) CreateConfig(ctx context.Context, id string, cfg *models.Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	ok, err := r.client.SetNX(ctx, makeSlotKey(id, slotConfig), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	if !ok {
		return repository.ErrConfigExists
	}
	return nil
}

func (r *redisRepository) GetConfig(ctx context.Context, id string) (*models.Config, error) {
	data, err := r.client.Get(ctx, makeSlotKey(id, slotConfig)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

func (r *redisRepository) HasConfig(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, makeSlotKey(id, slotConfig)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *redisRepository) SetPool(ctx context.Context, id string, pool *models.PoolRecord) error {
	data, err := json.Marshal(pool)
	if err != nil {
		return fmt.Errorf("failed to marshal pool record: %w", err)
	}
	return r.client.Set(ctx, makeSlotKey(id, slotBalance), data, 0).Err()
}

func (r *redisRepository) GetPool(ctx context.Context, id string) (*models.PoolRecord, error) {
	data, err := r.client.Get(ctx, makeSlotKey(id, slotBalance)).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrPoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pool record: %w", err)
	}

	var pool models.PoolRecord
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pool record: %w", err)
	}
	return &pool, nil
}

func (r *redisRepository) DeletePool(ctx context.Context, id string) error {
	return r.client.Del(ctx, makeSlotKey(id, slotBalance)).Err()
}
