package models

import "errors"

var (
	ErrAlreadyInitialized = errors.New("contract already initialized")
	ErrInvalidAmount      = errors.New("negative amount is not allowed")
	ErrTransferFailed     = errors.New("token transfer failed")
	ErrNotEligible        = errors.New("identity is not in the depositor set")
	ErrNotFound           = errors.New("not found")
)

// TimeBoundKind selects which side of the timestamp the window covers.
type TimeBoundKind string

const (
	TimeBoundBefore TimeBoundKind = "before"
	TimeBoundAfter  TimeBoundKind = "after"
)

// TimeBound is a declared validity window for a pool record. It is stored
// and returned with the record but no operation currently evaluates it.
type TimeBound struct {
	Kind      TimeBoundKind `json:"kind"`
	Timestamp uint64        `json:"timestamp"`
}

// State mirrors the declared pool lifecycle. No operation branches on it;
// the record's presence or absence is the actual state machine.
type State uint32

const (
	StateRunning State = iota
	StateSuccess
	StateExpired
)

// Config holds the write-once parameters of a contract instance.
type Config struct {
	Admin      string `json:"admin"`
	StartedAt  uint64 `json:"started_at"`
	MeetupDate uint64 `json:"meetup_date"`
	DepositFee int64  `json:"deposit_fee"`
	TokenID    string `json:"token_id"`
}

// PoolRecord is the single live escrow slot of a contract instance. A
// deposit replaces it wholesale; a successful distribution deletes it.
type PoolRecord struct {
	Token      string    `json:"token"`
	Amount     int64     `json:"amount"`
	Depositors []string  `json:"depositors"`
	TimeBound  TimeBound `json:"time_bound"`
}

// HasDepositor reports whether id is recorded as eligible to claim the pool.
func (p *PoolRecord) HasDepositor(id string) bool {
	for _, d := range p.Depositors {
		if d == id {
			return true
		}
	}
	return false
}

// ContractCreate is the initialize request. ID is optional; a fresh one is
// generated when empty. Admin defaults to the invoking wallet.
type ContractCreate struct {
	ID         string `json:"id,omitempty"`
	Admin      string `json:"admin,omitempty"`
	MeetupDate uint64 `json:"meetup_date"`
	DepositFee int64  `json:"deposit_fee"`
	TokenID    string `json:"token_id"`
}

// DepositRequest carries the full depositor set and amount for one deposit
// call. The list is assembled by the caller; it is not accumulated here.
type DepositRequest struct {
	Token      string    `json:"token"`
	Amount     int64     `json:"amount"`
	Depositors []string  `json:"depositors"`
	TimeBound  TimeBound `json:"time_bound"`
}

// ContractResponse is the full observable state of a contract instance.
type ContractResponse struct {
	ID     string      `json:"id"`
	Config *Config     `json:"config"`
	Pool   *PoolRecord `json:"pool,omitempty"`
}

// DistributionResult reports a completed payout.
type DistributionResult struct {
	Recipient string `json:"recipient"`
	Token     string `json:"token"`
	Amount    int64  `json:"amount"`
}
