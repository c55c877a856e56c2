package trading

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

type fakeBuilder struct {
	instructions []sol.Instruction
	err          error
}

func (f *fakeBuilder) BuildBuyInstructions(_ context.Context, _ *types.SwapParams) ([]sol.Instruction, error) {
	return f.instructions, f.err
}

func (f *fakeBuilder) BuildSellInstructions(_ context.Context, _ *types.SwapParams) ([]sol.Instruction, error) {
	return f.instructions, f.err
}

type fakeParams struct{}

func (fakeParams) ProtocolName() string { return "test" }

func TestSwapBuySingleChannel(t *testing.T) {
	payer, err := sol.NewRandomPrivateKey()
	require.NoError(t, err)

	blockhash := sol.Hash{}
	blockhash[0] = 5
	transfer := system.NewTransferInstruction(1, payer.PublicKey(), payer.PublicKey()).Build()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	strategy := NewGasFeeStrategy()
	strategy.SetGlobalFeeStrategy(200_000, 1_000, 0.001, 0.0001)

	defaultClient := &fakeSwqos{typ: types.SwqosTypeDefault}
	executor := NewExecutor(&fakeBuilder{instructions: []sol.Instruction{transfer}}, "test", logger)

	result, err := executor.Swap(context.Background(), Infra{
		SwqosClients: []types.SwqosClient{defaultClient},
		Strategy:     strategy,
		Middleware:   NewMiddlewareManager(),
	}, &types.SwapParams{
		TradeType:       types.TradeTypeBuy,
		Payer:           payer,
		Protocol:        fakeParams{},
		RecentBlockhash: &blockhash,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Success)
	assert.Len(t, result.Signatures, 1)
	assert.Equal(t, 1, defaultClient.callCount())
}

func TestSwapEmptyInstructions(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	executor := NewExecutor(&fakeBuilder{}, "test", logger)
	payer, err := sol.NewRandomPrivateKey()
	require.NoError(t, err)

	_, err = executor.Swap(context.Background(), Infra{
		SwqosClients: []types.SwqosClient{&fakeSwqos{typ: types.SwqosTypeDefault}},
		Strategy:     NewGasFeeStrategy(),
		Middleware:   NewMiddlewareManager(),
	}, &types.SwapParams{
		TradeType: types.TradeTypeSell,
		Payer:     payer,
		Protocol:  fakeParams{},
	})
	assert.ErrorIs(t, err, cerrors.ErrInstructionsEmpty)
}

type droppingMiddleware struct{}

func (droppingMiddleware) Name() string { return "drop-all" }

func (droppingMiddleware) Process(_ []sol.Instruction, _ string, _ bool) ([]sol.Instruction, error) {
	return nil, nil
}

func TestSwapAppliesMiddleware(t *testing.T) {
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

	// Middleware stripping every instruction must fail the trade before
	// any submission happens.
	defaultClient := &fakeSwqos{typ: types.SwqosTypeDefault}
	_, err = executor.Swap(context.Background(), Infra{
		SwqosClients: []types.SwqosClient{defaultClient},
		Strategy:     strategy,
		Middleware:   NewMiddlewareManager(droppingMiddleware{}),
	}, &types.SwapParams{
		TradeType:       types.TradeTypeSell,
		Payer:           payer,
		Protocol:        fakeParams{},
		RecentBlockhash: &blockhash,
	})
	require.Error(t, err)
	assert.Equal(t, 0, defaultClient.callCount())
}
