package trading

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
)

// Simulator is the narrow RPC surface a dry run needs.
type Simulator interface {
	SimulateTransactionWithOpts(ctx context.Context, tx *sol.Transaction, opts *rpc.SimulateTransactionOpts) (*rpc.SimulateTransactionResponse, error)
}

// Simulate builds one transaction variant with the default channel's fee
// config and dry-runs it against the chain without submitting. No tip is
// attached and the nonce is not consumed on-chain.
func (e *Executor) Simulate(ctx context.Context, infra Infra, sim Simulator, params *types.SwapParams) (*rpc.SimulateTransactionResult, error) {
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

	var fee *types.FeeConfig
	for _, strategy := range infra.Strategy.GetStrategies(params.TradeType) {
		if strategy.SwqosType == types.SwqosTypeDefault {
			fee = &strategy.Fee
			break
		}
	}
	if fee == nil {
		return nil, errors.Wrap(cerrors.ErrNoAvailableFeeConfig, "no default channel fee config for simulation")
	}

	tx, err := BuildTransaction(ctx, BuildParams{
		Payer:           params.Payer,
		RPC:             infra.RPC,
		CuLimit:         fee.CuLimit,
		CuPrice:         fee.CuPrice,
		Instructions:    instructions,
		LookupTable:     params.LookupTable,
		RecentBlockhash: params.RecentBlockhash,
		Middleware:      infra.Middleware,
		ProtocolName:    e.protocolName,
		IsBuy:           isBuy,
		DurableNonce:    params.DurableNonce,
	})
	if err != nil {
		return nil, err
	}

	// Keep the transaction's own blockhash so nonce-based variants are
	// simulated exactly as they would submit.
	resp, err := sim.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: false,
		Commitment:             rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "simulation request failed")
	}
	if resp == nil || resp.Value == nil {
		return nil, errors.New("empty simulation response")
	}

	if resp.Value.Err != nil {
		e.logger.WithFields(logrus.Fields{
			"protocol": e.protocolName,
			"error":    resp.Value.Err,
		}).Warn("Simulation failed on-chain")
		return resp.Value, cerrors.NewTradeError(999, "simulation failed: %v", resp.Value.Err)
	}

	return resp.Value, nil
}
