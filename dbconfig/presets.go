package dbconfig

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hookenful/sol-trade-sdk/common/types"
	"github.com/hookenful/sol-trade-sdk/dbconfig/models"
)

// Preset bundles everything needed to configure a trading client: the
// submission endpoints and the fee strategy rows of one named preset.
type Preset struct {
	SwqosConfigs []types.SwqosConfig
	FeeConfigs   []types.GasFeeStrategyConfig
}

// LoadPreset fetches endpoints and fee strategies concurrently and converts
// them to runtime config types.
//
// Parameters:
// - ctx: the context for managing the request.
// - preset: the preset name.
//
// Returns:
// - *Preset: the loaded preset.
// - error: an error if either load fails.
func (r *DBConfig) LoadPreset(ctx context.Context, preset string) (*Preset, error) {
	var endpoints []models.Endpoint
	var strategies []models.FeeStrategy

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		endpoints, err = r.GetEndpoints(ctx, true)
		return err
	})
	group.Go(func() error {
		var err error
		strategies, err = r.GetFeeStrategies(ctx, preset, true)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &Preset{
		SwqosConfigs: make([]types.SwqosConfig, 0, len(endpoints)),
		FeeConfigs:   make([]types.GasFeeStrategyConfig, 0, len(strategies)),
	}
	for _, endpoint := range endpoints {
		result.SwqosConfigs = append(result.SwqosConfigs, types.SwqosConfig{
			Type:      types.SwqosType(endpoint.SwqosType),
			Endpoint:  endpoint.URL,
			AuthToken: endpoint.AuthToken,
			SwqosOnly: endpoint.SwqosOnly,
		})
	}
	for _, strategy := range strategies {
		result.FeeConfigs = append(result.FeeConfigs, types.GasFeeStrategyConfig{
			SwqosType: types.SwqosType(strategy.SwqosType),
			TradeType: types.TradeType(strategy.TradeType),
			Fee: types.FeeConfig{
				CuLimit: uint32(strategy.CuLimit),
				CuPrice: uint64(strategy.CuPrice),
				TipSol:  strategy.TipSol,
			},
		})
	}
	return result, nil
}
