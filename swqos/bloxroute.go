package swqos

import (
	"context"
	"net/http"
	"strings"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

const (
	bloxrouteTipAccount = "HWEoBxYs7ssKuudEjzjmpfJVX7Dvi7wescFsVx2L5yoY"
	bloxrouteMinTipSol  = 0.001
)

// BloxrouteClient submits through the bloXroute trader API.
type BloxrouteClient struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
	status     types.SignatureStatusProvider
	logger     *logrus.Logger
}

func NewBloxrouteClient(endpoint, authToken string, status types.SignatureStatusProvider, logger *logrus.Logger) *BloxrouteClient {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasSuffix(endpoint, "/api/v2/submit") {
		endpoint += "/api/v2/submit"
	}
	return &BloxrouteClient{
		endpoint:   endpoint,
		authToken:  authToken,
		httpClient: sharedSubmitClient(),
		status:     status,
		logger:     logger,
	}
}

func (c *BloxrouteClient) SendTransaction(ctx context.Context, tradeType types.TradeType, tx *sol.Transaction, waitConfirmation bool) error {
	txBase64, err := tx.ToBase64()
	if err != nil {
		return errors.Wrap(err, "failed to encode transaction")
	}

	// Front-running protection only makes sense for buys; sells want the
	// fastest path available.
	sigStr, err := submitRelayV2(ctx, c.httpClient, c.endpoint, c.authToken, txBase64, tradeType.IsBuy())
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"swqos":     types.SwqosTypeBloxroute,
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

func (c *BloxrouteClient) TipAccount() (string, error) {
	return bloxrouteTipAccount, nil
}

func (c *BloxrouteClient) MinTipSol() float64 {
	return bloxrouteMinTipSol
}

func (c *BloxrouteClient) SwqosType() types.SwqosType {
	return types.SwqosTypeBloxroute
}
