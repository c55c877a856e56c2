package trading

import (
	"strings"

	"github.com/pkg/errors"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
)

// isLandedError reports whether a submission error indicates the transaction
// reached the chain and failed there (consuming its nonce), as opposed to a
// network-level failure where the transaction never landed.
//
// Best-effort heuristic, not a proof: a structured trade error with a
// non-zero code other than a timeout-coded 500 means the chain saw the
// transaction (e.g. slippage exceeded); timeouts and everything unrecognized
// classify as not-landed.
func isLandedError(err error) bool {
	var tradeErr *cerrors.TradeError
	if errors.As(err, &tradeErr) {
		if tradeErr.Code == 500 && strings.Contains(tradeErr.Message, "timed out") {
			return false
		}
		return tradeErr.Code > 0
	}

	// Unstructured errors carry no evidence the chain saw the transaction.
	return false
}
