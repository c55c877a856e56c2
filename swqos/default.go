package swqos

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

// DefaultClient submits through a plain Solana RPC node. It carries no tip
// account and enforces no tip floor.
type DefaultClient struct {
	rpc    *rpc.Client
	status types.SignatureStatusProvider
	logger *logrus.Logger
}

func NewDefaultClient(endpoint string, logger *logrus.Logger) *DefaultClient {
	client := rpc.New(endpoint)
	return &DefaultClient{
		rpc:    client,
		status: client,
		logger: logger,
	}
}

func (c *DefaultClient) SendTransaction(ctx context.Context, tradeType types.TradeType, tx *sol.Transaction, waitConfirmation bool) error {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight: true,
	})
	if err != nil {
		return errors.Wrap(err, "rpc submit failed")
	}

	c.logger.WithFields(logrus.Fields{
		"swqos":     types.SwqosTypeDefault,
		"signature": sig,
		"direction": tradeType,
	}).Debug("Transaction submitted")

	if waitConfirmation {
		return PollTransactionConfirmation(ctx, c.status, sig, false)
	}
	return nil
}

func (c *DefaultClient) TipAccount() (string, error) {
	return "", nil
}

func (c *DefaultClient) MinTipSol() float64 {
	return 0
}

func (c *DefaultClient) SwqosType() types.SwqosType {
	return types.SwqosTypeDefault
}
