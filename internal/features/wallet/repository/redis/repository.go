package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"meetup-escrow-backend/internal/features/wallet/models"
	"meetup-escrow-backend/internal/features/wallet/repository"

	"github.com/redis/go-redis/v9"
)

const keyPrefixWallet = "wallet:"

type redisRepository struct {
	client *redis.Client
}

func NewWalletRepository(client *redis.Client) repository.WalletRepository {
	return &redisRepository{client: client}
}

func makeWalletKey(userID int64) string {
	return fmt.Sprintf("%s%d", keyPrefixWallet, userID)
}

func (r *redisRepository) Save(ctx context.Context, link *models.Link) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet link: %w", err)
	}
	return r.client.Set(ctx, makeWalletKey(link.UserID), data, 0).Err()
}

func (r *redisRepository) Get(ctx context.Context, userID int64) (*models.Link, error) {
	data, err := r.client.Get(ctx, makeWalletKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, models.ErrNotLinked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet link: %w", err)
	}

	var link models.Link
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet link: %w", err)
	}
	return &link, nil
}
