package client

import (
	"context"
	"sync"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
	"github.com/hookenful/sol-trade-sdk/instruction/pumpfun"
	"github.com/hookenful/sol-trade-sdk/noncecache"
	"github.com/hookenful/sol-trade-sdk/swqos"
	"github.com/hookenful/sol-trade-sdk/trading"
)

// Default fee strategy applied until the caller configures their own.
const (
	defaultCuLimit    = 400_000
	defaultCuPrice    = 1_000_000
	defaultBuyTipSol  = 0.001
	defaultSellTipSol = 0.0001
)

// TradingClient is the top-level entry point. It owns the channel registry,
// fee strategy, protocol executors and the optional durable nonce cache.
// Safe for concurrent use; all mutable state behind it is either immutable
// after construction or internally synchronized.
type TradingClient struct {
	payer      sol.PrivateKey
	rpc        *rpc.Client
	registry   *swqos.Registry
	strategy   *trading.GasFeeStrategy
	middleware *trading.MiddlewareManager
	nonceCache *noncecache.Cache
	logger     *logrus.Logger

	executorsMutex sync.RWMutex
	executors      map[string]*trading.Executor

	monitorsMutex sync.Mutex
	monitors      []swqos.EndpointMonitor
}

// New creates a trading client from an RPC endpoint, a payer key and the
// channel configs. The bonding curve protocol executor is registered out of
// the box; others can be added with RegisterExecutor.
func New(rpcURL string, payer sol.PrivateKey, swqosConfigs []types.SwqosConfig, logger *logrus.Logger) (*TradingClient, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if len(payer) == 0 {
		return nil, errors.New("payer private key is required")
	}

	rpcClient := rpc.New(rpcURL)

	registry, err := swqos.BuildRegistry(swqosConfigs, rpcClient, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build swqos registry")
	}

	strategy := trading.NewGasFeeStrategy()
	strategy.SetGlobalFeeStrategy(defaultCuLimit, defaultCuPrice, defaultBuyTipSol, defaultSellTipSol)

	client := &TradingClient{
		payer:      payer,
		rpc:        rpcClient,
		registry:   registry,
		strategy:   strategy,
		middleware: trading.NewMiddlewareManager(),
		logger:     logger,
		executors:  make(map[string]*trading.Executor),
	}
	client.RegisterExecutor(pumpfun.Name, trading.NewExecutor(pumpfun.NewBuilder(), pumpfun.Name, logger))

	return client, nil
}

// RegisterExecutor adds or replaces the executor for a protocol.
func (c *TradingClient) RegisterExecutor(protocolName string, executor *trading.Executor) {
	c.executorsMutex.Lock()
	c.executors[protocolName] = executor
	c.executorsMutex.Unlock()
}

// UseDurableNonce attaches a nonce cache so multi-channel buys can share a
// replay-protection value. Refresh is left to the caller's cadence.
func (c *TradingClient) UseDurableNonce(nonceAccount, authority sol.PublicKey) *noncecache.Cache {
	c.nonceCache = noncecache.New(c.rpc, nonceAccount, authority, c.logger)
	return c.nonceCache
}

// AddMiddleware appends an instruction middleware applied to every trade.
func (c *TradingClient) AddMiddleware(middleware trading.InstructionMiddleware) {
	c.middleware.Add(middleware)
}

// GasFeeStrategy exposes the fee strategy for runtime tuning.
func (c *TradingClient) GasFeeStrategy() *trading.GasFeeStrategy {
	return c.strategy
}

// Registry exposes the channel registry.
func (c *TradingClient) Registry() *swqos.Registry {
	return c.registry
}

// StartEndpointMonitors begins background health checks for the given
// vendor ping URLs, keyed by channel type.
func (c *TradingClient) StartEndpointMonitors(ctx context.Context, pingURLs map[types.SwqosType]string) error {
	c.monitorsMutex.Lock()
	defer c.monitorsMutex.Unlock()

	for swqosType, url := range pingURLs {
		monitor := swqos.NewEndpointMonitor(swqos.NewHTTPPinger(url), c.logger, swqosType)
		if err := monitor.Start(ctx); err != nil {
			return err
		}
		c.monitors = append(c.monitors, monitor)
	}
	return nil
}

// Buy executes a buy trade.
func (c *TradingClient) Buy(ctx context.Context, params *types.SwapParams) (*types.TradeResult, error) {
	params.TradeType = types.TradeTypeBuy
	return c.swap(ctx, params)
}

// Sell executes a sell trade.
func (c *TradingClient) Sell(ctx context.Context, params *types.SwapParams) (*types.TradeResult, error) {
	params.TradeType = types.TradeTypeSell
	return c.swap(ctx, params)
}

// Simulate dry-runs the trade against the chain without submitting.
func (c *TradingClient) Simulate(ctx context.Context, params *types.SwapParams) (*rpc.SimulateTransactionResult, error) {
	executor, err := c.executorFor(params)
	if err != nil {
		return nil, err
	}
	c.prepare(params)
	return executor.Simulate(ctx, c.infra(), c.rpc, params)
}

func (c *TradingClient) swap(ctx context.Context, params *types.SwapParams) (*types.TradeResult, error) {
	executor, err := c.executorFor(params)
	if err != nil {
		return nil, err
	}
	c.prepare(params)
	return executor.Swap(ctx, c.infra(), params)
}

// prepare fills per-trade defaults the caller left unset.
func (c *TradingClient) prepare(params *types.SwapParams) {
	if len(params.Payer) == 0 {
		params.Payer = c.payer
	}
	if params.DurableNonce == nil && c.nonceCache != nil {
		params.DurableNonce = c.nonceCache.Current()
	}
}

func (c *TradingClient) executorFor(params *types.SwapParams) (*trading.Executor, error) {
	if params.Protocol == nil {
		return nil, errors.New("protocol params are required")
	}
	name := params.Protocol.ProtocolName()

	c.executorsMutex.RLock()
	executor := c.executors[name]
	c.executorsMutex.RUnlock()

	if executor == nil {
		return nil, errors.Errorf("no executor registered for protocol %s", name)
	}
	return executor, nil
}

func (c *TradingClient) infra() trading.Infra {
	return trading.Infra{
		SwqosClients: c.registry.All(),
		RPC:          c.rpc,
		Strategy:     c.strategy,
		Middleware:   c.middleware,
	}
}

// Close stops background monitors. Submission tasks in flight are
// fire-and-forget and run to completion on their own.
func (c *TradingClient) Close() {
	c.monitorsMutex.Lock()
	defer c.monitorsMutex.Unlock()

	for _, monitor := range c.monitors {
		monitor.Stop()
	}
	c.monitors = nil
}
