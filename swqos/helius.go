package swqos

import (
	"context"
	"math/rand"
	"net/http"
	"strings"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

var heliusTipAccounts = []string{
	"4ACfpUFoaSD9bfPdeu6DBt89gB6ENTeHBXCAi87NhDEE",
	"D2L6yPZ2FmmmTKPgzaMKdhu6EWZcTpLy1Vhx8uvZe7NZ",
	"9bnz4RShgq1hAnLnZbP8kbgBg1kEmcJBYQq3gQbmnSta",
	"5VY91ws6B2hMmBFRsXkoAAdsPHBJwRfBht4DXox3xkwn",
	"2nyhqdwKcJZR2vcqCyrYsaPVdAnFoJjiksCXJ7hfEYgD",
	"2q5pghRs6arqVjRvT5gfgWfWcHWmw1ZuCzphgd5KfWGJ",
	"wyvPkWjVZz1M8fHQnMMCDTQDbkManefNNhweYk5WkcF",
	"3KCKozbAaF75qEU33jtzozcJ29yJuaLJTy2jFdzUY8bT",
	"4vieeGHPYPG2MmyPRcYjdiDmmhN3ww7hsFNap8pVN3Ey",
	"4TQLFNWK8AovT1gFvda5jfw2oJeRMKEmw7aH6MGBJ3or",
}

const (
	heliusMinTipSol = 0.0002
	// SWQOS-only routing skips the dual Jito path and accepts a far lower
	// tip floor.
	heliusSwqosOnlyMinTipSol = 0.000005
)

// HeliusClient submits through the Helius Sender fast path.
type HeliusClient struct {
	endpoint   string
	swqosOnly  bool
	httpClient *http.Client
	status     types.SignatureStatusProvider
	logger     *logrus.Logger
}

func NewHeliusClient(endpoint string, swqosOnly bool, status types.SignatureStatusProvider, logger *logrus.Logger) *HeliusClient {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if swqosOnly && !strings.Contains(endpoint, "swqos_only") {
		endpoint += "/fast?swqos_only=true"
	} else if !strings.HasSuffix(endpoint, "/fast") {
		endpoint += "/fast"
	}
	return &HeliusClient{
		endpoint:   endpoint,
		swqosOnly:  swqosOnly,
		httpClient: sharedSubmitClient(),
		status:     status,
		logger:     logger,
	}
}

func (c *HeliusClient) SendTransaction(ctx context.Context, tradeType types.TradeType, tx *sol.Transaction, waitConfirmation bool) error {
	txBase64, err := tx.ToBase64()
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction")
	}

	sigStr, err := submitSendTransactionRPC(ctx, c.httpClient, c.endpoint, txBase64)
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"swqos":     types.SwqosTypeHelius,
		"signature": sigStr,
		"direction": tradeType,
	}).Debug("Transaction submitted")

	if waitConfirmation && c.status != nil {
		sig, err := sol.SignatureFromBase58(sigStr)
		if err != nil {
			return errors.Wrap(err, "failed to parse signature")
		}
		return PollTransactionConfirmation(ctx, c.status, sig, false)
	}
	return nil
}

func (c *HeliusClient) TipAccount() (string, error) {
	return heliusTipAccounts[rand.Intn(len(heliusTipAccounts))], nil
}

func (c *HeliusClient) MinTipSol() float64 {
	if c.swqosOnly {
		return heliusSwqosOnlyMinTipSol
	}
	return heliusMinTipSol
}

func (c *HeliusClient) SwqosType() types.SwqosType {
	return types.SwqosTypeHelius
}
