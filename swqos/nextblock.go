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

var nextBlockTipAccounts = []string{
	"NextbLoCkVtMGcV47JzewQdvBpLqT9TxQFozQkN98pE",
	"NexTbLoCkWykbLuB1NkjXgFWkX9oAtcoagQegygXXA2",
	"NeXTBLoCKs9F1y5PJS9CKrFNNLU1keHW71rfh7KgA1X",
	"NexTBLockJYZ7QD7p2byrUa6df8ndV2WSd8GkbWqfbb",
	"neXtBLock1LeC67jYd1QdAa32kbVeubsfPNTJC1V5At",
	"nEXTBLockYgngeRmRrjDV31mGSekVPqZoMGhQEZtPVG",
	"NEXTbLoCkB51HpLBLojQfpyVAMorm3zzKg7w9NFdqid",
	"nextBLoCkPMgmG8ZgJtABeScP35qLa2AMCNKntAP7Xc",
}

const nextBlockMinTipSol = 0.001

// NextBlockClient submits through the NextBlock relay v2 API.
type NextBlockClient struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
	status     types.SignatureStatusProvider
	logger     *logrus.Logger
}

func NewNextBlockClient(endpoint, authToken string, status types.SignatureStatusProvider, logger *logrus.Logger) *NextBlockClient {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasSuffix(endpoint, "/api/v2/submit") {
		endpoint += "/api/v2/submit"
	}
	return &NextBlockClient{
		endpoint:   endpoint,
		authToken:  authToken,
		httpClient: sharedSubmitClient(),
		status:     status,
		logger:     logger,
	}
}

func (c *NextBlockClient) SendTransaction(ctx context.Context, tradeType types.TradeType, tx *sol.Transaction, waitConfirmation bool) error {
	txBase64, err := tx.ToBase64()
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction")
	}

	sigStr, err := submitRelayV2(ctx, c.httpClient, c.endpoint, c.authToken, txBase64, true)
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"swqos":     types.SwqosTypeNextBlock,
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

func (c *NextBlockClient) TipAccount() (string, error) {
	return nextBlockTipAccounts[rand.Intn(len(nextBlockTipAccounts))], nil
}

func (c *NextBlockClient) MinTipSol() float64 {
	return nextBlockMinTipSol
}

func (c *NextBlockClient) SwqosType() types.SwqosType {
	return types.SwqosTypeNextBlock
}
