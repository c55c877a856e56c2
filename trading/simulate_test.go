package trading

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

type fakeSimulator struct {
	opts  *rpc.SimulateTransactionOpts
	resp  *rpc.SimulateTransactionResponse
	err   error
	calls int
}

func (f *fakeSimulator) SimulateTransactionWithOpts(_ context.Context, _ *sol.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error) {
	f.calls++
	f.opts = opts
	return f.resp, f.err
}

func testSimulateSetup(t *testing.T) (*Executor, *types.SwapParams, *GasFeeStrategy) {
	t.Helper()

	payer, err := sol.NewRandomPrivateKey()
	require.NoError(t, err)

	blockhash := sol.Hash{}
	blockhash[0] = 5
	transfer := system.NewTransferInstruction(1, payer.PublicKey(), payer.PublicKey()).Build()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	strategy := NewGasFeeStrategy()
	strategy.SetGlobalFeeStrategy(200_000, 1_000, 0.001, 0.0001)

	executor := NewExecutor(&fakeBuilder{instructions: []sol.Instruction{transfer}}, "test", logger)

	return executor, &types.SwapParams{
		TradeType:       types.TradeTypeBuy,
		Payer:           payer,
		Protocol:        fakeParams{},
		RecentBlockhash: &blockhash,
	}, strategy
}

func TestSimulateKeepsTransactionBlockhash(t *testing.T) {
	executor, params, strategy := testSimulateSetup(t)
	sim := &fakeSimulator{resp: &rpc.SimulateTransactionResponse{Value: &rpc.SimulateTransactionResult{}}}

	result, err := executor.Simulate(context.Background(), Infra{Strategy: strategy, Middleware: NewMiddlewareManager()}, sim, params)
	require.NoError(t, err)
	require.NotNil(t, result)

	require.Equal(t, 1, sim.calls)
	assert.False(t, sim.opts.ReplaceRecentBlockhash)
	assert.False(t, sim.opts.SigVerify)
}

func TestSimulateRequiresDefaultFeeConfig(t *testing.T) {
	executor, params, _ := testSimulateSetup(t)

	// Only a non-default channel is configured.
	strategy := NewGasFeeStrategy()
	strategy.AddFeeStrategy(types.SwqosTypeJito, types.TradeTypeBuy, types.FeeConfig{CuLimit: 200_000, CuPrice: 1_000})

	sim := &fakeSimulator{}
	_, err := executor.Simulate(context.Background(), Infra{Strategy: strategy, Middleware: NewMiddlewareManager()}, sim, params)
	assert.ErrorIs(t, err, cerrors.ErrNoAvailableFeeConfig)
	assert.Zero(t, sim.calls)
}

func TestSimulateOnChainFailure(t *testing.T) {
	executor, params, strategy := testSimulateSetup(t)
	sim := &fakeSimulator{resp: &rpc.SimulateTransactionResponse{Value: &rpc.SimulateTransactionResult{Err: "InstructionError"}}}

	result, err := executor.Simulate(context.Background(), Infra{Strategy: strategy, Middleware: NewMiddlewareManager()}, sim, params)
	require.Error(t, err)
	require.NotNil(t, result)

	var tradeErr *cerrors.TradeError
	require.ErrorAs(t, err, &tradeErr)
	assert.Equal(t, uint32(999), tradeErr.Code)
}
