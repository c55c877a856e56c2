package swqos

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
)

// fakeStatusProvider serves scripted signature statuses and transactions.
type fakeStatusProvider struct {
	statuses map[sol.Signature]*rpc.SignatureStatusesResult
	txs      map[sol.Signature]*rpc.GetTransactionResult
}

func (f *fakeStatusProvider) GetSignatureStatuses(_ context.Context, _ bool, sigs ...sol.Signature) (*rpc.GetSignatureStatusesResult, error) {
	result := &rpc.GetSignatureStatusesResult{}
	for _, sig := range sigs {
		result.Value = append(result.Value, f.statuses[sig])
	}
	return result, nil
}

func (f *fakeStatusProvider) GetTransaction(_ context.Context, sig sol.Signature, _ *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	if tx, ok := f.txs[sig]; ok {
		return tx, nil
	}
	return nil, cerrors.NewTradeError(500, "transaction not found")
}

func testSig(b byte) sol.Signature {
	var sig sol.Signature
	sig[0] = b
	return sig
}

func TestPollTransactionConfirmationConfirmed(t *testing.T) {
	sig := testSig(1)
	provider := &fakeStatusProvider{
		statuses: map[sol.Signature]*rpc.SignatureStatusesResult{
			sig: {ConfirmationStatus: rpc.ConfirmationStatusConfirmed},
		},
	}

	err := PollTransactionConfirmation(context.Background(), provider, sig, false)
	assert.NoError(t, err)
}

func TestPollTransactionConfirmationOnChainFailure(t *testing.T) {
	sig := testSig(2)
	instructionError := map[string]interface{}{
		"InstructionError": []interface{}{
			float64(3),
			map[string]interface{}{"Custom": float64(6004)},
		},
	}
	provider := &fakeStatusProvider{
		statuses: map[sol.Signature]*rpc.SignatureStatusesResult{
			sig: {ConfirmationStatus: rpc.ConfirmationStatusConfirmed, Err: instructionError},
		},
		txs: map[sol.Signature]*rpc.GetTransactionResult{
			sig: {Meta: &rpc.TransactionMeta{
				Err: instructionError,
				LogMessages: []string{
					"Program log: Instruction: Buy",
					"Program log: AnchorError occurred. Error Message: slippage: too much sol required",
				},
			}},
		},
	}

	err := PollTransactionConfirmation(context.Background(), provider, sig, false)
	require.Error(t, err)

	var tradeErr *cerrors.TradeError
	require.ErrorAs(t, err, &tradeErr)
	assert.Equal(t, uint32(6004), tradeErr.Code)
	assert.Contains(t, tradeErr.Message, "slippage")
	require.NotNil(t, tradeErr.InstructionIndex)
	assert.Equal(t, uint8(3), *tradeErr.InstructionIndex)
}

func TestPollAnyConfirmationFirstWins(t *testing.T) {
	confirmed := testSig(3)
	failed := testSig(4)

	provider := &fakeStatusProvider{
		statuses: map[sol.Signature]*rpc.SignatureStatusesResult{
			confirmed: {ConfirmationStatus: rpc.ConfirmationStatusFinalized},
			failed: {ConfirmationStatus: rpc.ConfirmationStatusConfirmed, Err: map[string]interface{}{
				"InstructionError": []interface{}{float64(0), "InsufficientFunds"},
			}},
		},
	}

	winner, err := PollAnyTransactionConfirmation(context.Background(), provider, []sol.Signature{failed, confirmed}, false)
	require.NoError(t, err)
	assert.Equal(t, confirmed, winner)
}

func TestPollAnyConfirmationEmptySet(t *testing.T) {
	_, err := PollAnyTransactionConfirmation(context.Background(), &fakeStatusProvider{}, nil, false)
	assert.ErrorIs(t, err, cerrors.ErrNoSignatures)
}

func TestBuildTransactionErrorNamedInstructionError(t *testing.T) {
	err := buildTransactionError(map[string]interface{}{
		"InstructionError": []interface{}{float64(1), "InsufficientFunds"},
	}, nil)

	assert.Equal(t, uint32(6), err.Code)
	assert.Equal(t, "InsufficientFunds", err.Message)
}

func TestBuildTransactionErrorUnknownShape(t *testing.T) {
	err := buildTransactionError("AccountNotFound", []string{"Program log: Error: insufficient lamports"})

	assert.Equal(t, uint32(999), err.Code)
	assert.Equal(t, "insufficient lamports", err.Message)
}

func TestExtractLogErrorPrefersErrorMessage(t *testing.T) {
	logs := []string{
		"Program log: Error: generic failure",
		"Program log: AnchorError occurred. Error Message: slippage exceeded",
	}
	assert.Equal(t, "slippage exceeded", extractLogError(logs))
	assert.Empty(t, extractLogError(nil))
}
