package swqos

import (
	"context"
	"strings"
	"time"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

const (
	confirmTimeout      = 15 * time.Second
	confirmPollInterval = 1 * time.Second
	// After this many status polls without an answer, fall back to the
	// heavier getTransaction lookup in case the status cache lags.
	confirmFallbackPolls = 10
)

// PollTransactionConfirmation blocks until the signature confirms on-chain,
// fails on-chain, or the poll window expires. An on-chain failure is
// returned as a *cerrors.TradeError carrying the program error code and any
// log-derived message.
func PollTransactionConfirmation(ctx context.Context, provider types.SignatureStatusProvider, sig sol.Signature, searchHistory bool) error {
	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(confirmPollInterval)
	defer ticker.Stop()

	polls := 0
	for {
		statuses, err := provider.GetSignatureStatuses(ctx, searchHistory, sig)
		if err == nil && statuses != nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
			status := statuses.Value[0]
			if status.Err != nil {
				return fetchTransactionError(ctx, provider, sig, status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}

		polls++
		if polls >= confirmFallbackPolls {
			if done, err := lookupTransaction(ctx, provider, sig); done {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return cerrors.NewTradeError(500, "confirmation timed out for %s", sig)
		case <-ticker.C:
		}
	}
}

// PollAnyTransactionConfirmation races confirmation polls for a candidate
// signature set and returns the first signature that confirms. When every
// candidate fails or times out, the last observed error is returned.
func PollAnyTransactionConfirmation(ctx context.Context, provider types.SignatureStatusProvider, sigs []sol.Signature, searchHistory bool) (sol.Signature, error) {
	if len(sigs) == 0 {
		return sol.Signature{}, cerrors.ErrNoSignatures
	}
	if len(sigs) == 1 {
		return sigs[0], PollTransactionConfirmation(ctx, provider, sigs[0], searchHistory)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		sig sol.Signature
		err error
	}
	results := make(chan outcome, len(sigs))
	for _, sig := range sigs {
		go func(sig sol.Signature) {
			results <- outcome{sig: sig, err: PollTransactionConfirmation(ctx, provider, sig, searchHistory)}
		}(sig)
	}

	var lastErr error
	for range sigs {
		out := <-results
		if out.err == nil {
			return out.sig, nil
		}
		lastErr = out.err
	}
	return sol.Signature{}, lastErr
}

// lookupTransaction checks whether the transaction already landed via the
// full getTransaction path. Returns done=false when the transaction is not
// yet visible.
func lookupTransaction(ctx context.Context, provider types.SignatureStatusProvider, sig sol.Signature) (bool, error) {
	maxVersion := uint64(0)
	result, err := provider.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       sol.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err != nil || result == nil {
		return false, nil
	}
	if result.Meta != nil && result.Meta.Err != nil {
		return true, buildTransactionError(result.Meta.Err, result.Meta.LogMessages)
	}
	return true, nil
}

// fetchTransactionError enriches a failed status with program logs when the
// full transaction is retrievable; the status-level error is the fallback.
func fetchTransactionError(ctx context.Context, provider types.SignatureStatusProvider, sig sol.Signature, statusErr interface{}) error {
	maxVersion := uint64(0)
	result, err := provider.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       sol.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	if err == nil && result != nil && result.Meta != nil && result.Meta.Err != nil {
		return buildTransactionError(result.Meta.Err, result.Meta.LogMessages)
	}
	return buildTransactionError(statusErr, nil)
}

// instructionErrorCodes maps named runtime instruction errors to stable
// numeric codes for classification.
var instructionErrorCodes = map[string]uint32{
	"GenericError":           1,
	"InvalidArgument":        2,
	"InvalidInstructionData": 3,
	"InvalidAccountData":     4,
	"AccountDataTooSmall":    5,
	"InsufficientFunds":      6,
}

// buildTransactionError converts a decoded transaction error and its logs
// into a TradeError with a numeric code and the most specific message the
// logs carry.
func buildTransactionError(txErr interface{}, logs []string) *cerrors.TradeError {
	code := uint32(999)
	message := ""
	var instructionIndex *uint8

	if errMap, ok := txErr.(map[string]interface{}); ok {
		if instErr, ok := errMap["InstructionError"].([]interface{}); ok && len(instErr) == 2 {
			if idx, ok := instErr[0].(float64); ok {
				i := uint8(idx)
				instructionIndex = &i
			}
			switch detail := instErr[1].(type) {
			case map[string]interface{}:
				if custom, ok := detail["Custom"].(float64); ok {
					code = uint32(custom)
				}
			case string:
				if mapped, ok := instructionErrorCodes[detail]; ok {
					code = mapped
				}
				message = detail
			}
		}
	}

	if logMsg := extractLogError(logs); logMsg != "" {
		message = logMsg
	}
	if message == "" {
		message = "transaction failed"
	}

	terr := cerrors.NewTradeError(code, "%s", message)
	terr.InstructionIndex = instructionIndex
	return terr
}

// extractLogError pulls the most specific error line out of program logs.
func extractLogError(logs []string) string {
	for i := len(logs) - 1; i >= 0; i-- {
		if idx := strings.Index(logs[i], "Error Message: "); idx >= 0 {
			return strings.TrimSpace(logs[i][idx+len("Error Message: "):])
		}
	}
	for i := len(logs) - 1; i >= 0; i-- {
		if idx := strings.Index(logs[i], "Program log: Error: "); idx >= 0 {
			return strings.TrimSpace(logs[i][idx+len("Program log: Error: "):])
		}
	}
	return ""
}
