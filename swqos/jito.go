package swqos

import (
	"context"
	"math/rand"
	"net/http"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

// jitoTipAccounts are the block engine's designated tip accounts. One is
// picked at random per transaction to spread write locks.
var jitoTipAccounts = []string{
	"96gYZGLnJYVFmbjzopPSU6QiEV5fGqZNyN9nmNhvrZU5",
	"HFqU5x63VTqvQss8hp11i4wVV8bD44PvwucfZ2bU7gRe",
	"Cw8CFyM9FkoMi7K7Crf6HNQqf4uEMzpKw6QNghXLvLkY",
	"ADaUMid9yfUytqMBgopwjb2DTLSokTSzL1zt6iGPaS49",
	"DfXygSm4jCyNCybVYYK6DwvWqjKee8pbDmJGcLWNDXjh",
	"ADuUkR4vqLUMWXxW9gh6D6L8pMSawimctcNZ5pGwDcEt",
	"DttWaMuVvTiduZRnguLF7jNxTgiMBZ1hyAumKUiL2KRL",
	"3AVi9Tg9Uo68tJfuvoKvqKNWKkC5wPdSSdeBnizKZ6jT",
}

const jitoMinTipSol = 0.000001

// JitoClient submits through the Jito block engine transaction endpoint.
type JitoClient struct {
	endpoint   string
	httpClient *http.Client
	status     types.SignatureStatusProvider
	logger     *logrus.Logger
}

func NewJitoClient(endpoint string, status types.SignatureStatusProvider, logger *logrus.Logger) *JitoClient {
	return &JitoClient{
		endpoint:   endpoint,
		httpClient: sharedSubmitClient(),
		status:     status,
		logger:     logger,
	}
}

func (c *JitoClient) SendTransaction(ctx context.Context, tradeType types.TradeType, tx *sol.Transaction, waitConfirmation bool) error {
	txBase64, err := tx.ToBase64()
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction")
	}

	sigStr, err := submitSendTransactionRPC(ctx, c.httpClient, c.endpoint, txBase64)
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"swqos":     types.SwqosTypeJito,
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

func (c *JitoClient) TipAccount() (string, error) {
	return jitoTipAccounts[rand.Intn(len(jitoTipAccounts))], nil
}

func (c *JitoClient) MinTipSol() float64 {
	return jitoMinTipSol
}

func (c *JitoClient) SwqosType() types.SwqosType {
	return types.SwqosTypeJito
}
