package service

import (
	"context"
	"fmt"

	"meetup-escrow-backend/internal/features/wallet/models"
	"meetup-escrow-backend/internal/features/wallet/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/address"
)

// WalletService resolves the invoking Telegram user to the wallet address
// used as their on-chain identity.
type WalletService interface {
	// Link validates addr, normalizes it and stores it for userID. Linking
	// again overwrites the previous address.
	Link(ctx context.Context, userID int64, addr string) (*models.Link, error)
	// Resolve returns the linked address for userID, or models.ErrNotLinked.
	Resolve(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, userID int64) (*models.Link, error)
}

type walletService struct {
	repo   repository.WalletRepository
	clock  clockwork.Clock
	logger zerolog.Logger
}

func NewWalletService(repo repository.WalletRepository, clock clockwork.Clock, logger zerolog.Logger) WalletService {
	return &walletService{repo: repo, clock: clock, logger: logger}
}

func (s *walletService) Link(ctx context.Context, userID int64, addr string) (*models.Link, error) {
	normalized, err := normalizeAddress(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidAddress, err)
	}

	link := &models.Link{
		UserID:   userID,
		Address:  normalized,
		LinkedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.Save(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save wallet link: %w", err)
	}

	s.logger.Info().Int64("user_id", userID).Str("address", normalized).Msg("wallet linked")
	return link, nil
}

func (s *walletService) Resolve(ctx context.Context, userID int64) (string, error) {
	link, err := s.repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return link.Address, nil
}

func (s *walletService) Get(ctx context.Context, userID int64) (*models.Link, error) {
	return s.repo.Get(ctx, userID)
}

// normalizeAddress accepts both friendly and raw TON address forms and
// returns the friendly form so the same wallet always compares equal.
func normalizeAddress(addr string) (string, error) {
	a, err := address.ParseAddr(addr)
	if err != nil {
		a, err = address.ParseRawAddr(addr)
	}
	if err != nil {
		return "", err
	}
	return a.String(), nil
}
