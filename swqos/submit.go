package swqos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// jsonRPCRequest is the minimal JSON-RPC 2.0 envelope used by channels
// that speak the sendTransaction method over plain HTTP.
type jsonRPCRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type jsonRPCResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// submitSendTransactionRPC posts a base64 transaction via JSON-RPC
// sendTransaction with preflight disabled and returns the signature string.
func submitSendTransactionRPC(ctx context.Context, client *http.Client, endpoint, txBase64 string) (string, error) {
	req := jsonRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "sendTransaction",
		Params: []interface{}{
			txBase64,
			map[string]interface{}{
				"encoding":      "base64",
				"skipPreflight": true,
			},
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response")
	}

	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return "", errors.Errorf("unexpected response (status %d): %s", resp.StatusCode, truncate(raw, 256))
	}
	if rpcResp.Error != nil {
		return "", errors.Errorf("rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var sig string
	if err := json.Unmarshal(rpcResp.Result, &sig); err != nil {
		return "", errors.Wrap(err, "failed to decode signature")
	}
	return sig, nil
}

// relayV2Request is the submit envelope shared by relay vendors that accept
// the transaction content wrapped in an object.
type relayV2Request struct {
	Transaction struct {
		Content string `json:"content"`
	} `json:"transaction"`
	FrontRunningProtection bool `json:"frontRunningProtection"`
}

type relayV2Response struct {
	Signature string `json:"signature"`
	Reason    string `json:"reason"`
}

// submitRelayV2 posts a base64 transaction to a relay /api/v2/submit style
// endpoint with an Authorization token.
func submitRelayV2(ctx context.Context, client *http.Client, endpoint, authToken, txBase64 string, frontRunningProtection bool) (string, error) {
	var req relayV2Request
	req.Transaction.Content = txBase64
	req.FrontRunningProtection = frontRunningProtection

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", authToken)

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read response")
	}

	var relayResp relayV2Response
	if err := json.Unmarshal(raw, &relayResp); err != nil {
		return "", errors.Errorf("unexpected response (status %d): %s", resp.StatusCode, truncate(raw, 256))
	}
	if relayResp.Reason != "" {
		return "", errors.Errorf("submit rejected: %s", relayResp.Reason)
	}
	if relayResp.Signature == "" {
		return "", errors.Errorf("missing signature in response (status %d): %s", resp.StatusCode, truncate(raw, 256))
	}
	return relayResp.Signature, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
