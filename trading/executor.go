package trading

import (
	"context"
	"runtime"
	"time"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
	"github.com/hookenful/sol-trade-sdk/metrics"
)

// submitWaitTimeout bounds the submission-only wait.
const submitWaitTimeout = 30 * time.Second

// maxInstructionsWarn is the instruction count above which a warning is logged.
const maxInstructionsWarn = 64

// ExecuteParams is the input of one parallel submission run: the trade
// intent's shared immutable state plus the infrastructure it runs against.
type ExecuteParams struct {
	SwqosClients             []types.SwqosClient
	Payer                    sol.PrivateKey
	RPC                      types.BlockhashProvider
	Instructions             []sol.Instruction
	LookupTable              *types.AddressLookupTableAccount
	RecentBlockhash          *sol.Hash
	DurableNonce             *types.DurableNonceInfo
	ProtocolName             string
	IsBuy                    bool
	WaitTransactionConfirmed bool
	WithTip                  bool
	Strategy                 *GasFeeStrategy
	UseCoreAffinity          bool
	CheckMinTip              bool
	Logger                   *logrus.Logger
}

// taskConfig is one surviving (channel, fee config) pair, consumed by
// exactly one spawned task.
type taskConfig struct {
	index      int
	client     types.SwqosClient
	fee        types.FeeConfig
	tipAccount sol.PublicKey
}

// ExecuteParallel races one transaction variant per valid (channel, fee
// config) pair across all channels concurrently and reconciles the outcome.
//
// Tasks are fire-and-forget: a slow channel runs to completion but the call
// returns as soon as the collector's first decision rule fires. No task is
// ever cancelled and no task is waited on directly; coordination happens only
// through the collector.
func ExecuteParallel(ctx context.Context, p ExecuteParams) (*types.TradeResult, error) {
	if len(p.SwqosClients) == 0 {
		return nil, cerrors.ErrEmptySwqosClients
	}

	if !p.WithTip && !hasDefaultClient(p.SwqosClients) {
		return nil, cerrors.ErrNoDefaultSwqos
	}

	tradeType := types.TradeTypeSell
	if p.IsBuy {
		tradeType = types.TradeTypeBuy
	}

	taskConfigs, err := buildTaskConfigs(p, tradeType)
	if err != nil {
		return nil, err
	}
	if len(taskConfigs) == 0 {
		return nil, cerrors.ErrNoAvailableFeeConfig
	}

	// Multiple buy variants racing on a single consumable blockhash would
	// invalidate each other; an externally-advanceable nonce is the only
	// replay-protection value all variants can share.
	if p.IsBuy && len(taskConfigs) > 1 && p.DurableNonce == nil {
		return nil, cerrors.ErrDurableNonceRequired
	}

	collector := newResultCollector(len(taskConfigs))
	cores := runtime.NumCPU()

	for _, tc := range taskConfigs {
		coreID := tc.index % cores
		go runTask(ctx, p, tradeType, tc, coreID, collector)
	}

	if !p.WaitTransactionConfirmed {
		result := collector.waitForAllSubmitted(ctx, submitWaitTimeout)
		if result == nil {
			return &types.TradeResult{
				Success: false,
				Err:     errors.Errorf("no swqos result within %s", submitWaitTimeout),
			}, nil
		}
		return result, nil
	}

	if result := collector.waitForSuccess(ctx); result != nil {
		return result, nil
	}
	return nil, cerrors.ErrAllTransactionsFailed
}

// buildTaskConfigs computes the cross product of channels and applicable fee
// configs, filtered by the tip-enable rule and the minimum-tip floor. Tip
// accounts are resolved up front so a bad channel fails the call before any
// task is dispatched.
func buildTaskConfigs(p ExecuteParams, tradeType types.TradeType) ([]taskConfig, error) {
	strategies := p.Strategy.GetStrategies(tradeType)

	var configs []taskConfig
	index := 0
	for _, client := range p.SwqosClients {
		swqosType := client.SwqosType()
		isDefault := swqosType == types.SwqosTypeDefault

		if !p.WithTip && !isDefault {
			continue
		}

		checkTip := p.WithTip && !isDefault && p.CheckMinTip
		minTip := 0.0
		if checkTip {
			minTip = client.MinTipSol()
		}

		for _, strategy := range strategies {
			if strategy.SwqosType != swqosType {
				continue
			}
			if checkTip && strategy.Fee.TipSol < minTip {
				if p.Logger != nil {
					p.Logger.WithFields(logrus.Fields{
						"swqos":  swqosType,
						"tip":    strategy.Fee.TipSol,
						"minTip": minTip,
					}).Warn("Fee config filtered: tip below channel minimum")
				}
				continue
			}

			tipAccountStr, err := client.TipAccount()
			if err != nil {
				return nil, errors.Wrapf(err, "failed to get tip account for %s", swqosType)
			}
			tipAccount, err := sol.PublicKeyFromBase58(tipAccountStr)
			if err != nil {
				tipAccount = sol.PublicKey{}
			}

			configs = append(configs, taskConfig{
				index:      index,
				client:     client,
				fee:        strategy.Fee,
				tipAccount: tipAccount,
			})
			index++
		}
	}
	return configs, nil
}

// runTask builds and submits one transaction variant, then reports exactly
// one result to the collector regardless of outcome.
func runTask(ctx context.Context, p ExecuteParams, tradeType types.TradeType, tc taskConfig, coreID int, collector *resultCollector) {
	if p.UseCoreAffinity {
		runtime.LockOSThread()
		setAffinity(coreID)
		defer runtime.UnlockOSThread()
	}

	metrics.InFlightTasks.Inc()
	defer metrics.InFlightTasks.Dec()
	taskStart := time.Now()

	swqosType := tc.client.SwqosType()

	tipSol := 0.0
	if p.WithTip {
		tipSol = tc.fee.TipSol
	}

	tx, err := BuildTransaction(ctx, BuildParams{
		Payer:           p.Payer,
		RPC:             p.RPC,
		CuLimit:         tc.fee.CuLimit,
		CuPrice:         tc.fee.CuPrice,
		Instructions:    p.Instructions,
		LookupTable:     p.LookupTable,
		RecentBlockhash: p.RecentBlockhash,
		ProtocolName:    p.ProtocolName,
		IsBuy:           p.IsBuy,
		IncludeTip:      swqosType != types.SwqosTypeDefault,
		TipAccount:      tc.tipAccount,
		TipSol:          tipSol,
		DurableNonce:    p.DurableNonce,
	})
	if err != nil {
		metrics.Submissions.WithLabelValues(string(swqosType), "build_failed").Inc()
		collector.submit(taskResult{
			success:      false,
			err:          errors.Wrap(err, "failed to build transaction"),
			swqosType:    swqosType,
			submitDoneUs: time.Now().UnixMicro(),
		})
		return
	}

	sendErr := tc.client.SendTransaction(ctx, tradeType, tx, p.WaitTransactionConfirmed)

	success := sendErr == nil
	// A clean send with confirmation observed means the transaction is
	// on-chain; otherwise fall back to the error classifier.
	landedOnChain := success
	if sendErr != nil {
		landedOnChain = isLandedError(sendErr)
	}

	var signature sol.Signature
	if len(tx.Signatures) > 0 {
		signature = tx.Signatures[0]
	}

	metrics.SubmitLatency.WithLabelValues(string(swqosType)).Observe(time.Since(taskStart).Seconds())
	switch {
	case success:
		metrics.Submissions.WithLabelValues(string(swqosType), "success").Inc()
	case landedOnChain:
		metrics.Submissions.WithLabelValues(string(swqosType), "landed_failed").Inc()
		metrics.LandedFailures.WithLabelValues(string(swqosType)).Inc()
	default:
		metrics.Submissions.WithLabelValues(string(swqosType), "failed").Inc()
	}

	if sendErr != nil && p.Logger != nil {
		p.Logger.WithError(sendErr).WithFields(logrus.Fields{
			"swqos":  swqosType,
			"landed": landedOnChain,
		}).Debug("Transaction submission failed")
	}

	collector.submit(taskResult{
		success:       success,
		signature:     signature,
		err:           sendErr,
		swqosType:     swqosType,
		landedOnChain: landedOnChain,
		submitDoneUs:  time.Now().UnixMicro(),
	})
}

func hasDefaultClient(clients []types.SwqosClient) bool {
	for _, client := range clients {
		if client.SwqosType() == types.SwqosTypeDefault {
			return true
		}
	}
	return false
}
