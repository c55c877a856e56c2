package trading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

func TestGlobalFeeStrategyCoversAllChannels(t *testing.T) {
	strategy := NewGasFeeStrategy()
	strategy.SetGlobalFeeStrategy(200_000, 1_000, 0.002, 0.0005)

	buys := strategy.GetStrategies(types.TradeTypeBuy)
	sells := strategy.GetStrategies(types.TradeTypeSell)

	require.Len(t, buys, len(allSwqosTypes))
	require.Len(t, sells, len(allSwqosTypes))

	for _, config := range buys {
		assert.Equal(t, uint32(200_000), config.Fee.CuLimit)
		assert.Equal(t, uint64(1_000), config.Fee.CuPrice)
		assert.Equal(t, 0.002, config.Fee.TipSol)
	}
	for _, config := range sells {
		assert.Equal(t, 0.0005, config.Fee.TipSol)
	}
}

func TestSetGlobalFeeStrategyReplacesExisting(t *testing.T) {
	strategy := NewGasFeeStrategy()
	strategy.AddFeeStrategy(types.SwqosTypeJito, types.TradeTypeBuy, types.FeeConfig{CuLimit: 1, CuPrice: 1, TipSol: 1})

	strategy.SetGlobalFeeStrategy(100_000, 500, 0.001, 0.001)
	assert.Len(t, strategy.GetStrategies(types.TradeTypeBuy), len(allSwqosTypes))
}

func TestAddFeeStrategyAllowsMultiplePerChannel(t *testing.T) {
	strategy := NewGasFeeStrategy()
	strategy.AddFeeStrategy(types.SwqosTypeJito, types.TradeTypeBuy, types.FeeConfig{CuLimit: 100_000, CuPrice: 500, TipSol: 0.001})
	strategy.AddFeeStrategy(types.SwqosTypeJito, types.TradeTypeBuy, types.FeeConfig{CuLimit: 200_000, CuPrice: 5_000, TipSol: 0.01})
	strategy.AddFeeStrategy(types.SwqosTypeJito, types.TradeTypeSell, types.FeeConfig{CuLimit: 100_000, CuPrice: 500, TipSol: 0.0001})

	buys := strategy.GetStrategies(types.TradeTypeBuy)
	require.Len(t, buys, 2)
	assert.Equal(t, uint64(500), buys[0].Fee.CuPrice)
	assert.Equal(t, uint64(5_000), buys[1].Fee.CuPrice)
}

func TestClearRemovesAllStrategies(t *testing.T) {
	strategy := NewGasFeeStrategy()
	strategy.SetGlobalFeeStrategy(100_000, 500, 0.001, 0.001)
	strategy.Clear()

	assert.Empty(t, strategy.GetStrategies(types.TradeTypeBuy))
	assert.Empty(t, strategy.GetStrategies(types.TradeTypeSell))
}
