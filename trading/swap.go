package trading

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
	"github.com/hookenful/sol-trade-sdk/metrics"
	"github.com/hookenful/sol-trade-sdk/swqos"
)

// InstructionBuilder produces protocol instructions for a trade intent.
// Implementations live outside the core (per protocol).
type InstructionBuilder interface {
	BuildBuyInstructions(ctx context.Context, params *types.SwapParams) ([]sol.Instruction, error)
	BuildSellInstructions(ctx context.Context, params *types.SwapParams) ([]sol.Instruction, error)
}

// RPCClient is the combined narrow RPC surface a swap needs.
type RPCClient interface {
	types.BlockhashProvider
	types.SignatureStatusProvider
}

// Infra is the shared, trade-independent infrastructure a swap runs against.
// Created once at client construction and reused across trades.
type Infra struct {
	SwqosClients []types.SwqosClient
	RPC          RPCClient
	Strategy     *GasFeeStrategy
	Middleware   *MiddlewareManager
}

// Executor drives a full trade for one protocol: instruction build,
// preprocessing, parallel submission, and optional confirmation.
type Executor struct {
	builder      InstructionBuilder
	protocolName string
	logger       *logrus.Logger
}

func NewExecutor(builder InstructionBuilder, protocolName string, logger *logrus.Logger) *Executor {
	return &Executor{
		builder:      builder,
		protocolName: protocolName,
		logger:       logger,
	}
}

// ProtocolName returns the protocol this executor trades against.
func (e *Executor) ProtocolName() string {
	return e.protocolName
}

// Swap executes one trade intent end to end and reconciles the outcome into
// a single result. Signatures collected from failed variants are returned
// even on failure, for forensic lookups.
func (e *Executor) Swap(ctx context.Context, infra Infra, params *types.SwapParams) (*types.TradeResult, error) {
	isBuy := params.TradeType.IsBuy()

	var instructions []sol.Instruction
	var err error
	if isBuy {
		instructions, err = e.builder.BuildBuyInstructions(ctx, params)
	} else {
		instructions, err = e.builder.BuildSellInstructions(ctx, params)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to build instructions")
	}

	if err := e.preprocess(instructions); err != nil {
		return nil, err
	}

	instructions, err = infra.Middleware.Apply(instructions, e.protocolName, isBuy)
	if err != nil {
		return nil, err
	}
	if len(instructions) == 0 {
		return nil, cerrors.ErrInstructionsEmpty
	}

	// Buys always carry a tip so priority channels are worth racing.
	withTip := params.WithTip
	if isBuy {
		withTip = true
	}

	result, err := ExecuteParallel(ctx, ExecuteParams{
		SwqosClients:    infra.SwqosClients,
		Payer:           params.Payer,
		RPC:             infra.RPC,
		Instructions:    instructions,
		LookupTable:     params.LookupTable,
		RecentBlockhash: params.RecentBlockhash,
		DurableNonce:    params.DurableNonce,
		ProtocolName:    e.protocolName,
		IsBuy:           isBuy,
		// Submission only; confirmation is reconciled below across the
		// whole candidate signature set.
		WaitTransactionConfirmed: false,
		WithTip:                  withTip,
		Strategy:                 infra.Strategy,
		UseCoreAffinity:          params.UseCoreAffinity,
		CheckMinTip:              params.CheckMinTip,
		Logger:                   e.logger,
	})
	if err != nil {
		metrics.Trades.WithLabelValues(string(params.TradeType), "failed").Inc()
		return nil, err
	}

	if params.WaitTransactionConfirmed && infra.RPC != nil && len(result.Signatures) > 0 {
		if _, confirmErr := swqos.PollAnyTransactionConfirmation(ctx, infra.RPC, result.Signatures, true); confirmErr != nil {
			result.Success = false
			result.Err = confirmErr
		} else {
			result.Success = true
			result.Err = nil
		}
	}

	status := "failed"
	if result.Success {
		status = "success"
	}
	metrics.Trades.WithLabelValues(string(params.TradeType), status).Inc()

	e.logger.WithFields(logrus.Fields{
		"protocol":   e.protocolName,
		"direction":  params.TradeType,
		"success":    result.Success,
		"signatures": len(result.Signatures),
	}).Info("Trade completed")

	return result, nil
}

// preprocess validates the instruction list before any transaction variant
// is assembled.
func (e *Executor) preprocess(instructions []sol.Instruction) error {
	if len(instructions) == 0 {
		return cerrors.ErrInstructionsEmpty
	}
	if len(instructions) > maxInstructionsWarn {
		e.logger.WithField("count", len(instructions)).Warn("Large instruction count")
	}
	return nil
}
