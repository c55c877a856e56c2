package client

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/config"
	"github.com/hookenful/sol-trade-sdk/dbconfig"
)

// NewFromConfig builds a client from loaded application configuration.
// When a database connection string is configured, endpoints and fee
// strategies come from the stored preset; otherwise the static endpoint
// fields are used and the default fee strategy stays in place.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*TradingClient, error) {
	payer, err := sol.PrivateKeyFromBase58(cfg.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse private key")
	}

	swqosConfigs := cfg.SwqosConfigs()
	var preset *dbconfig.Preset
	if cfg.DBConnStr != "" {
		store, err := dbconfig.NewDBConfig(cfg.DBConnStr)
		if err != nil {
			return nil, err
		}
		preset, err = store.LoadPreset(ctx, cfg.Preset)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load preset")
		}
		if len(preset.SwqosConfigs) > 0 {
			swqosConfigs = preset.SwqosConfigs
		}
	}

	client, err := New(cfg.RPCURL, payer, swqosConfigs, logger)
	if err != nil {
		return nil, err
	}

	if preset != nil && len(preset.FeeConfigs) > 0 {
		strategy := client.GasFeeStrategy()
		strategy.Clear()
		for _, fee := range preset.FeeConfigs {
			strategy.AddFeeStrategy(fee.SwqosType, fee.TradeType, fee.Fee)
		}
	}

	if cfg.NonceAccount != "" && cfg.NonceAuthority != "" {
		nonceAccount, err := sol.PublicKeyFromBase58(cfg.NonceAccount)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse nonce account")
		}
		authority, err := sol.PublicKeyFromBase58(cfg.NonceAuthority)
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse nonce authority")
		}
		if _, err := client.UseDurableNonce(nonceAccount, authority).Refresh(ctx); err != nil {
			return nil, err
		}
	}

	return client, nil
}
