package service

import (
	"context"
	"errors"
	"fmt"

	"meetup-escrow-backend/internal/features/escrow/models"
	"meetup-escrow-backend/internal/features/escrow/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// escrowService implements the pooled-escrow state machine. meetup_date,
// deposit_fee and the pool's time bound are persisted and surfaced but do not
// gate deposits or distribution; the pool record's existence is the only
// state consulted. Changing that would change the financial semantics, so it
// stays a deliberate product decision rather than a code fix.
type escrowService struct {
	repo       repository.EscrowRepository
	token      TokenClient
	clock      clockwork.Clock
	escrowAddr string
	logger     zerolog.Logger
}

func NewEscrowService(
	repo repository.EscrowRepository,
	token TokenClient,
	clock clockwork.Clock,
	escrowAddr string,
	logger zerolog.Logger,
) EscrowService {
	return &escrowService{
		repo:       repo,
		token:      token,
		clock:      clock,
		escrowAddr: escrowAddr,
		logger:     logger,
	}
}

func (s *escrowService) Initialize(ctx context.Context, id string, input *models.ContractCreate) (*models.ContractResponse, error) {
	cfg := &models.Config{
		Admin:      input.Admin,
		StartedAt:  uint64(s.clock.Now().Unix()),
		MeetupDate: input.MeetupDate,
		DepositFee: input.DepositFee,
		TokenID:    input.TokenID,
	}

	if err := s.repo.CreateConfig(ctx, id, cfg); err != nil {
		if errors.Is(err, repository.ErrConfigExists) {
			return nil, models.ErrAlreadyInitialized
		}
		return nil, fmt.Errorf("failed to store configuration: %w", err)
	}

	s.logger.Info().
		Str("contract_id", id).
		Str("admin", cfg.Admin).
		Uint64("meetup_date", cfg.MeetupDate).
		Msg("contract initialized")

	return &models.ContractResponse{ID: id, Config: cfg}, nil
}

func (s *escrowService) Deposit(ctx context.Context, id, invoker string, input *models.DepositRequest) (*models.PoolRecord, error) {
	if input.Amount < 0 {
		return nil, models.ErrInvalidAmount
	}

	ok, err := s.repo.HasConfig(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check configuration: %w", err)
	}
	if !ok {
		return nil, models.ErrNotFound
	}

	// Transfer first; the pool record is written only once the funds are in.
	if err := s.token.TransferFrom(ctx, input.Token, invoker, s.escrowAddr, input.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}

	prior, err := s.repo.GetPool(ctx, id)
	switch {
	case err == nil:
		s.logger.Warn().
			Str("contract_id", id).
			Int64("prior_amount", prior.Amount).
			Int("prior_depositors", len(prior.Depositors)).
			Msg("replacing live pool record; prior depositors lose eligibility")
	case !errors.Is(err, repository.ErrPoolNotFound):
		s.logger.Error().
			Err(err).
			Str("contract_id", id).
			Msg("failed to check for prior pool record")
	}

	pool := &models.PoolRecord{
		Token:      input.Token,
		Amount:     input.Amount,
		Depositors: input.Depositors,
		TimeBound:  input.TimeBound,
	}
	if err := s.repo.SetPool(ctx, id, pool); err != nil {
		return nil, fmt.Errorf("failed to store pool record: %w", err)
	}

	s.logger.Info().
		Str("contract_id", id).
		Str("token", pool.Token).
		Int64("amount", pool.Amount).
		Int("depositors", len(pool.Depositors)).
		Msg("deposit recorded")

	return pool, nil
}

func (s *escrowService) Distribute(ctx context.Context, id, invoker string) (*models.DistributionResult, error) {
	pool, err := s.repo.GetPool(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPoolNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read pool record: %w", err)
	}

	if !pool.HasDepositor(invoker) {
		return nil, models.ErrNotEligible
	}

	// The whole pool goes to the first eligible claimant; deleting the
	// record afterwards is what blocks every later claim.
	if err := s.token.Transfer(ctx, pool.Token, invoker, pool.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransferFailed, err)
	}
	if err := s.repo.DeletePool(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to retire pool record: %w", err)
	}

	s.logger.Info().
		Str("contract_id", id).
		Str("recipient", invoker).
		Int64("amount", pool.Amount).
		Msg("pool distributed")

	return &models.DistributionResult{
		Recipient: invoker,
		Token:     pool.Token,
		Amount:    pool.Amount,
	}, nil
}

func (s *escrowService) Get(ctx context.Context, id string) (*models.ContractResponse, error) {
	cfg, err := s.repo.GetConfig(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrConfigNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	resp := &models.ContractResponse{ID: id, Config: cfg}
	pool, err := s.repo.GetPool(ctx, id)
	if err == nil {
		resp.Pool = pool
	} else if !errors.Is(err, repository.ErrPoolNotFound) {
		return nil, fmt.Errorf("failed to read pool record: %w", err)
	}
	return resp, nil
}
