package ton

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xssnick/tonutils-go/address"
)

// tonAPI implements balance and transfer-verification checks via TonAPI HTTP.
type tonAPI struct {
	base       string
	token      string
	httpClient *http.Client
}

func newTonAPI(baseURL, apiToken string) *tonAPI {
	if baseURL == "" {
		baseURL = "https://tonapi.io"
	}
	return &tonAPI{
		base:       strings.TrimRight(baseURL, "/"),
		token:      apiToken,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
}

func (s *tonAPI) get(ctx context.Context, path string, out interface{}) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, s.base+path, nil)
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tonapi http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetAddressBalanceNano returns native TON balance in nanoTONs for the address.
func (s *tonAPI) GetAddressBalanceNano(ctx context.Context, addr string) (int64, error) {
	var out struct {
		Balance int64 `json:"balance"`
	}
	if err := s.get(ctx, "/v2/accounts/"+addr, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// GetJettonBalanceNano returns jetton balance in smallest units for given
// owner wallet.
func (s *tonAPI) GetJettonBalanceNano(ctx context.Context, ownerAddr, jettonMaster string) (int64, error) {
	var out struct {
		Balances []struct {
			Balance string `json:"balance"`
			Jetton  struct {
				Address string `json:"address"`
			} `json:"jetton"`
		} `json:"balances"`
	}
	if err := s.get(ctx, "/v2/accounts/"+ownerAddr+"/jettons", &out); err != nil {
		return 0, err
	}
	jm := strings.ToLower(jettonMaster)
	for _, b := range out.Balances {
		if strings.ToLower(b.Jetton.Address) != jm {
			continue
		}
		var n int64
		for i := 0; i < len(b.Balance); i++ {
			c := b.Balance[i]
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("invalid balance format")
			}
			n = n*10 + int64(c-'0')
		}
		return n, nil
	}
	return 0, nil
}

// VerifyInboundTransfer checks recent transactions of the escrow account for
// a successful payment of at least amount nanoTONs from the sender.
func (s *tonAPI) VerifyInboundTransfer(ctx context.Context, escrowAddr, from string, amount int64) error {
	var out struct {
		Transactions []struct {
			Success bool `json:"success"`
			InMsg   struct {
				Value  int64 `json:"value"`
				Source struct {
					Address string `json:"address"`
				} `json:"source"`
			} `json:"in_msg"`
		} `json:"transactions"`
	}
	if err := s.get(ctx, "/v2/blockchain/accounts/"+escrowAddr+"/transactions?limit=50", &out); err != nil {
		return err
	}

	want, err := normalizeAddr(from)
	if err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	for _, tx := range out.Transactions {
		if !tx.Success || tx.InMsg.Value < amount {
			continue
		}
		got, err := normalizeAddr(tx.InMsg.Source.Address)
		if err != nil {
			continue
		}
		if got == want {
			return nil
		}
	}
	return fmt.Errorf("no inbound transfer of %d from %s found", amount, from)
}

// normalizeAddr accepts friendly and raw forms and returns the friendly form
// so addresses from TonAPI compare equal to caller-supplied ones.
func normalizeAddr(s string) (string, error) {
	a, err := address.ParseAddr(s)
	if err != nil {
		a, err = address.ParseRawAddr(s)
	}
	if err != nil {
		return "", err
	}
	return a.String(), nil
}
