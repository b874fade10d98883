package service

import (
	"context"

	"meetup-escrow-backend/internal/features/escrow/models"
)

// TokenClient is the external value-transfer collaborator. Identities and
// token ids are opaque strings here; the production implementation maps them
// onto TON wallet addresses.
type TokenClient interface {
	// TransferFrom moves amount units of token from the authorizing sender
	// into to. It fails when the sender has not provided the funds.
	TransferFrom(ctx context.Context, token, from, to string, amount int64) error
	// Transfer moves amount units of token from the escrow's own funds to to.
	Transfer(ctx context.Context, token, to string, amount int64) error
	// Balance reports the holdings of owner in token units.
	Balance(ctx context.Context, token, owner string) (int64, error)
}

// EscrowService runs the deposit/distribution state machine. Every operation
// receives the invoking identity explicitly; callers are responsible for
// resolving it from their authentication layer.
type EscrowService interface {
	// Initialize writes the write-once configuration of contract id and
	// stamps it with the current clock reading. A second call for the same
	// id fails with models.ErrAlreadyInitialized.
	Initialize(ctx context.Context, id string, input *models.ContractCreate) (*models.ContractResponse, error)

	// Deposit pulls input.Amount from invoker into the escrow and replaces
	// the contract's pool record with the request's token, amount, depositor
	// list and time bound. Nothing is merged with a prior record.
	Deposit(ctx context.Context, id, invoker string, input *models.DepositRequest) (*models.PoolRecord, error)

	// Distribute pays the entire pool to invoker if invoker is in the
	// recorded depositor set, then deletes the pool record. The next call
	// fails with models.ErrNotFound until a new deposit is made.
	Distribute(ctx context.Context, id, invoker string) (*models.DistributionResult, error)

	// Get returns the configuration and current pool record of contract id.
	Get(ctx context.Context, id string) (*models.ContractResponse, error)
}
