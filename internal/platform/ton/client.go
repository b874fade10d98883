package ton

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/liteclient"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
	"github.com/xssnick/tonutils-go/ton/wallet"
)

// TokenNative is the token id of the native TON coin. Transfers are only
// supported for it; jetton balances can still be queried by master address.
const TokenNative = "ton"

const payoutComment = "meetup escrow payout"

type ClientConfig struct {
	LiteConfigURL string
	WalletSeed    string
	TonAPIBaseURL string
	TonAPIToken   string
}

// Client is the token-transfer collaborator backed by the escrow's own TON
// wallet. Outbound payouts are signed by the wallet; inbound deposits cannot
// be pulled on TON, so TransferFrom verifies that the depositor's payment has
// reached the escrow account instead.
type Client struct {
	w      *wallet.Wallet
	api    ton.APIClientWrapped
	tonapi *tonAPI
}

func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	pool := liteclient.NewConnectionPool()
	if err := pool.AddConnectionsFromConfigUrl(ctx, cfg.LiteConfigURL); err != nil {
		return nil, fmt.Errorf("failed to connect to lite servers: %w", err)
	}
	api := ton.NewAPIClient(pool).WithRetry()

	w, err := wallet.FromSeed(api, strings.Fields(cfg.WalletSeed), wallet.V4R2)
	if err != nil {
		return nil, fmt.Errorf("failed to open escrow wallet: %w", err)
	}

	return &Client{
		w:      w,
		api:    api,
		tonapi: newTonAPI(cfg.TonAPIBaseURL, cfg.TonAPIToken),
	}, nil
}

// EscrowAddress returns the address that holds pooled deposits.
func (c *Client) EscrowAddress() string {
	return c.w.WalletAddress().String()
}

func (c *Client) TransferFrom(ctx context.Context, token, from, to string, amount int64) error {
	if token != TokenNative {
		return fmt.Errorf("unsupported token %q", token)
	}
	return c.tonapi.VerifyInboundTransfer(ctx, to, from, amount)
}

func (c *Client) Transfer(ctx context.Context, token, to string, amount int64) error {
	if token != TokenNative {
		return fmt.Errorf("unsupported token %q", token)
	}
	addr, err := address.ParseAddr(to)
	if err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	return c.w.Transfer(ctx, addr, tlb.FromNanoTON(big.NewInt(amount)), payoutComment, true)
}

func (c *Client) Balance(ctx context.Context, token, owner string) (int64, error) {
	if token == TokenNative {
		return c.tonapi.GetAddressBalanceNano(ctx, owner)
	}
	return c.tonapi.GetJettonBalanceNano(ctx, owner, token)
}
