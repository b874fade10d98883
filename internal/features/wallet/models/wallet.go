package models

import (
	"errors"
	"time"
)

var (
	ErrNotLinked      = errors.New("no wallet linked for user")
	ErrInvalidAddress = errors.New("invalid wallet address")
)

// Link ties a Telegram user to the TON wallet address used as their identity
// for deposits and claims.
type Link struct {
	UserID   int64     `json:"user_id"`
	Address  string    `json:"address"`
	LinkedAt time.Time `json:"linked_at"`
}

// LinkRequest is the body of the wallet-link endpoint.
type LinkRequest struct {
	Address string `json:"address" binding:"required"`
}
