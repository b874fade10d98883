package ton

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Checksum-valid TON address reused for both sides of the verification.
const testAddr = "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"

func newServer(t *testing.T, handler http.HandlerFunc) *tonAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newTonAPI(srv.URL, "test-token")
}

func TestTonAPI_GetAddressBalanceNano(t *testing.T) {
	t.Parallel()

	t.Run("returns the account balance", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			fmt.Fprint(w, `{"balance": 1500000000}`)
		})

		n, err := api.GetAddressBalanceNano(context.Background(), testAddr)
		require.NoError(t, err)
		require.Equal(t, int64(1500000000), n)
	})

	t.Run("propagates http errors", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := api.GetAddressBalanceNano(context.Background(), testAddr)
		require.Error(t, err)
	})
}

func TestTonAPI_GetJettonBalanceNano(t *testing.T) {
	t.Parallel()

	t.Run("matches the jetton master and parses the balance", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"balances":[{"balance":"250","jetton":{"address":"0:abc"}}]}`)
		})

		n, err := api.GetJettonBalanceNano(context.Background(), testAddr, "0:ABC")
		require.NoError(t, err)
		require.Equal(t, int64(250), n)
	})

	t.Run("unknown jetton reports zero", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"balances":[]}`)
		})

		n, err := api.GetJettonBalanceNano(context.Background(), testAddr, "0:abc")
		require.NoError(t, err)
		require.Equal(t, int64(0), n)
	})
}

func TestTonAPI_VerifyInboundTransfer(t *testing.T) {
	t.Parallel()

	transactions := func(success bool, value int64, source string) string {
		return fmt.Sprintf(
			`{"transactions":[{"success":%t,"in_msg":{"value":%d,"source":{"address":%q}}}]}`,
			success, value, source,
		)
	}

	t.Run("finds a matching payment", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, transactions(true, 100, testAddr))
		})

		require.NoError(t, api.VerifyInboundTransfer(context.Background(), testAddr, testAddr, 100))
	})

	t.Run("rejects when the payment is too small", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, transactions(true, 99, testAddr))
		})

		require.Error(t, api.VerifyInboundTransfer(context.Background(), testAddr, testAddr, 100))
	})

	t.Run("rejects failed transactions", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, transactions(false, 100, testAddr))
		})

		require.Error(t, api.VerifyInboundTransfer(context.Background(), testAddr, testAddr, 100))
	})

	t.Run("rejects invalid sender addresses", func(t *testing.T) {
		t.Parallel()
		api := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"transactions":[]}`)
		})

		require.Error(t, api.VerifyInboundTransfer(context.Background(), testAddr, "garbage", 100))
	})
}
