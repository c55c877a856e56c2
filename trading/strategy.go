package trading

import (
	"sync"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

// allSwqosTypes is the fixed set of channel types a global strategy covers.
var allSwqosTypes = []types.SwqosType{
	types.SwqosTypeDefault,
	types.SwqosTypeJito,
	types.SwqosTypeHelius,
	types.SwqosTypeNextBlock,
	types.SwqosTypeBloxroute,
}

// GasFeeStrategy resolves the ordered list of fee configurations to attempt
// for a trade direction. Resolution is pure and deterministic given the
// configured state; the executor cross-joins the result with the channel
// registry and discards configs whose channel has no live descriptor.
type GasFeeStrategy struct {
	mu      sync.RWMutex
	configs []types.GasFeeStrategyConfig
}

func NewGasFeeStrategy() *GasFeeStrategy {
	return &GasFeeStrategy{}
}

// SetGlobalFeeStrategy replaces all configured strategies with one config per
// known channel type, using the given compute budget and per-direction tips.
func (s *GasFeeStrategy) SetGlobalFeeStrategy(cuLimit uint32, cuPrice uint64, buyTipSol, sellTipSol float64) {
	configs := make([]types.GasFeeStrategyConfig, 0, len(allSwqosTypes)*2)
	for _, swqosType := range allSwqosTypes {
		configs = append(configs,
			types.GasFeeStrategyConfig{
				SwqosType: swqosType,
				TradeType: types.TradeTypeBuy,
				Fee:       types.FeeConfig{CuLimit: cuLimit, CuPrice: cuPrice, TipSol: buyTipSol},
			},
			types.GasFeeStrategyConfig{
				SwqosType: swqosType,
				TradeType: types.TradeTypeSell,
				Fee:       types.FeeConfig{CuLimit: cuLimit, CuPrice: cuPrice, TipSol: sellTipSol},
			},
		)
	}

	s.mu.Lock()
	s.configs = configs
	s.mu.Unlock()
}

// AddFeeStrategy appends one (channel, direction) configuration. Multiple
// entries may share a channel type; all of them produce independent
// transaction variants.
func (s *GasFeeStrategy) AddFeeStrategy(swqosType types.SwqosType, tradeType types.TradeType, fee types.FeeConfig) {
	s.mu.Lock()
	s.configs = append(s.configs, types.GasFeeStrategyConfig{
		SwqosType: swqosType,
		TradeType: tradeType,
		Fee:       fee,
	})
	s.mu.Unlock()
}

// GetStrategies returns the ordered configurations applying to the given
// direction. The returned slice is a copy and safe to retain.
func (s *GasFeeStrategy) GetStrategies(tradeType types.TradeType) []types.GasFeeStrategyConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := make([]types.GasFeeStrategyConfig, 0, len(s.configs))
	for _, config := range s.configs {
		if config.TradeType == tradeType {
			configs = append(configs, config)
		}
	}
	return configs
}

// Clear removes all configured strategies.
func (s *GasFeeStrategy) Clear() {
	s.mu.Lock()
	s.configs = nil
	s.mu.Unlock()
}
