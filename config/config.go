package config

import (
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

// Config holds the application configuration
type Config struct {
	// RPCURL is the Solana RPC node used for blockhashes, confirmation
	// polling and the default submission channel.
	RPCURL string
	// PrivateKey is the base58-encoded payer key.
	PrivateKey string
	// DBConnStr, when set, enables loading endpoints and fee presets from
	// postgres instead of the static fields below.
	DBConnStr string
	// Preset names the fee preset to load from the database.
	Preset string

	JitoEndpoint      string
	HeliusEndpoint    string
	HeliusSwqosOnly   bool
	NextBlockEndpoint string
	NextBlockToken    string
	BloxrouteEndpoint string
	BloxrouteToken    string

	// NonceAccount and NonceAuthority enable the durable nonce cache.
	NonceAccount   string
	NonceAuthority string

	LogLevel string
}

// Load reads configuration from .env, environment variables and an optional
// yaml config file.
func Load() (*Config, error) {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	viper.SetConfigName(".sol-trade")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("rpc_url", "https://api.mainnet-beta.solana.com")
	viper.SetDefault("log_level", "info")

	// Read from environment variables
	viper.SetEnvPrefix("SOL_TRADE")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		RPCURL:            viper.GetString("rpc_url"),
		PrivateKey:        viper.GetString("private_key"),
		DBConnStr:         viper.GetString("db_conn_str"),
		Preset:            viper.GetString("preset"),
		JitoEndpoint:      viper.GetString("jito_endpoint"),
		HeliusEndpoint:    viper.GetString("helius_endpoint"),
		HeliusSwqosOnly:   viper.GetBool("helius_swqos_only"),
		NextBlockEndpoint: viper.GetString("nextblock_endpoint"),
		NextBlockToken:    viper.GetString("nextblock_token"),
		BloxrouteEndpoint: viper.GetString("bloxroute_endpoint"),
		BloxrouteToken:    viper.GetString("bloxroute_token"),
		NonceAccount:      viper.GetString("nonce_account"),
		NonceAuthority:    viper.GetString("nonce_authority"),
		LogLevel:          viper.GetString("log_level"),
	}

	if cfg.PrivateKey == "" {
		return nil, errors.New("private key not found. Please set SOL_TRADE_PRIVATE_KEY environment variable or create a .sol-trade.yaml config file")
	}

	return cfg, nil
}

// SwqosConfigs builds the channel configuration list from the static
// endpoint fields. The default RPC channel is always first.
func (c *Config) SwqosConfigs() []types.SwqosConfig {
	configs := []types.SwqosConfig{
		{Type: types.SwqosTypeDefault, Endpoint: c.RPCURL},
	}
	if c.JitoEndpoint != "" {
		configs = append(configs, types.SwqosConfig{Type: types.SwqosTypeJito, Endpoint: c.JitoEndpoint})
	}
	if c.HeliusEndpoint != "" {
		configs = append(configs, types.SwqosConfig{
			Type:      types.SwqosTypeHelius,
			Endpoint:  c.HeliusEndpoint,
			SwqosOnly: c.HeliusSwqosOnly,
		})
	}
	if c.NextBlockEndpoint != "" {
		configs = append(configs, types.SwqosConfig{
			Type:      types.SwqosTypeNextBlock,
			Endpoint:  c.NextBlockEndpoint,
			AuthToken: c.NextBlockToken,
		})
	}
	if c.BloxrouteEndpoint != "" {
		configs = append(configs, types.SwqosConfig{
			Type:      types.SwqosTypeBloxroute,
			Endpoint:  c.BloxrouteEndpoint,
			AuthToken: c.BloxrouteToken,
		})
	}
	return configs
}
