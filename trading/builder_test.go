package trading

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

func testBuildParams(t *testing.T) BuildParams {
	t.Helper()

	payer, err := sol.NewRandomPrivateKey()
	require.NoError(t, err)

	blockhash := sol.Hash{}
	blockhash[0] = 9

	transfer := system.NewTransferInstruction(1, payer.PublicKey(), payer.PublicKey()).Build()

	return BuildParams{
		Payer:           payer,
		CuLimit:         200_000,
		CuPrice:         1_000,
		Instructions:    []sol.Instruction{transfer},
		RecentBlockhash: &blockhash,
	}
}

func instructionProgram(t *testing.T, tx *sol.Transaction, index int) sol.PublicKey {
	t.Helper()
	compiled := tx.Message.Instructions[index]
	program, err := tx.Message.Program(compiled.ProgramIDIndex)
	require.NoError(t, err)
	return program
}

func TestBuildTransactionEmptyInstructions(t *testing.T) {
	p := testBuildParams(t)
	p.Instructions = nil

	_, err := BuildTransaction(context.Background(), p)
	assert.ErrorIs(t, err, cerrors.ErrInstructionsEmpty)
}

func TestBuildTransactionNoBlockhashSource(t *testing.T) {
	p := testBuildParams(t)
	p.RecentBlockhash = nil

	_, err := BuildTransaction(context.Background(), p)
	assert.ErrorIs(t, err, cerrors.ErrBlockhashUnavailable)
}

func TestBuildTransactionComputeBudgetFirst(t *testing.T) {
	p := testBuildParams(t)

	tx, err := BuildTransaction(context.Background(), p)
	require.NoError(t, err)

	// limit, price, transfer
	require.Len(t, tx.Message.Instructions, 3)
	assert.Equal(t, sol.ComputeBudget, instructionProgram(t, tx, 0))
	assert.Equal(t, sol.ComputeBudget, instructionProgram(t, tx, 1))
	assert.Len(t, tx.Signatures, 1)
}

func TestBuildTransactionNonceAdvanceLeads(t *testing.T) {
	p := testBuildParams(t)
	var nonce sol.Hash
	nonce[0] = 3
	p.DurableNonce = &types.DurableNonceInfo{
		NonceAccount: sol.SysVarRentPubkey,
		Authority:    p.Payer.PublicKey(),
		CurrentNonce: nonce,
	}

	tx, err := BuildTransaction(context.Background(), p)
	require.NoError(t, err)

	// advance, limit, price, transfer
	require.Len(t, tx.Message.Instructions, 4)
	assert.Equal(t, sol.SystemProgramID, instructionProgram(t, tx, 0))
	assert.Equal(t, []byte{4, 0, 0, 0}, []byte(tx.Message.Instructions[0].Data))

	// The nonce value replaces the recent blockhash for signing.
	assert.Equal(t, nonce, tx.Message.RecentBlockhash)
}

func TestBuildTransactionTipAppended(t *testing.T) {
	p := testBuildParams(t)
	p.IncludeTip = true
	p.TipSol = 0.001
	p.TipAccount = sol.SysVarRentPubkey

	tx, err := BuildTransaction(context.Background(), p)
	require.NoError(t, err)

	// limit, price, transfer, tip
	require.Len(t, tx.Message.Instructions, 4)
	assert.Equal(t, sol.SystemProgramID, instructionProgram(t, tx, 3))
}

func TestBuildTransactionTipSkippedWhenZero(t *testing.T) {
	p := testBuildParams(t)
	p.IncludeTip = true
	p.TipSol = 0

	tx, err := BuildTransaction(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, tx.Message.Instructions, 3)
}
