package swqos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
)

func TestSubmitSendTransactionRPC(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req jsonRPCRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "sendTransaction", req.Method)
		require.Len(t, req.Params, 2)

		opts, ok := req.Params[1].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, opts["skipPreflight"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW",
		})
	}))
	defer server.Close()

	sig, err := submitSendTransactionRPC(context.Background(), server.Client(), server.URL, "dGVzdA==")
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestSubmitSendTransactionRPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]interface{}{"code": -32002, "message": "Transaction simulation failed"},
		})
	}))
	defer server.Close()

	_, err := submitSendTransactionRPC(context.Background(), server.Client(), server.URL, "dGVzdA==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation failed")

	var tradeErr *cerrors.TradeError
	assert.False(t, errors.As(err, &tradeErr), "gateway rejection must stay unstructured")
}

func TestSubmitSendTransactionRPCConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client := server.Client()
	server.Close()

	_, err := submitSendTransactionRPC(context.Background(), client, server.URL, "dGVzdA==")
	require.Error(t, err)

	var tradeErr *cerrors.TradeError
	assert.False(t, errors.As(err, &tradeErr), "transport failure must stay unstructured")
}

func TestSubmitRelayV2(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token-123", r.Header.Get("Authorization"))

		var req relayV2Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "dGVzdA==", req.Transaction.Content)
		assert.True(t, req.FrontRunningProtection)

		json.NewEncoder(w).Encode(map[string]string{"signature": "abc123"})
	}))
	defer server.Close()

	sig, err := submitRelayV2(context.Background(), server.Client(), server.URL, "token-123", "dGVzdA==", true)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sig)
}

func TestSubmitRelayV2Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"reason": "invalid auth header"})
	}))
	defer server.Close()

	_, err := submitRelayV2(context.Background(), server.Client(), server.URL, "bad", "dGVzdA==", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid auth header")

	var tradeErr *cerrors.TradeError
	assert.False(t, errors.As(err, &tradeErr), "relay rejection must stay unstructured")
}
