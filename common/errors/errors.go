package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrEmptySwqosClients     = errors.New("swqos clients is empty")
	ErrNoDefaultSwqos        = errors.New("no rpc default swqos configured")
	ErrDurableNonceRequired  = errors.New("multiple swqos transactions require durable_nonce to be set")
	ErrNoAvailableFeeConfig  = errors.New("no available gas fee strategy configs")
	ErrAllTransactionsFailed = errors.New("all transactions failed")
	ErrInstructionsEmpty     = errors.New("instructions empty")
	ErrBlockhashUnavailable  = errors.New("no blockhash or durable nonce resolvable")
	ErrNoSignatures          = errors.New("transaction has no signatures")
	ErrUnknownSwqosType      = errors.New("unknown swqos type")
	ErrEndpointNotConfigured = errors.New("swqos endpoint not configured")
)

// TradeError is a structured trade/on-chain error with a program error code
// and an optional instruction index. A non-zero code other than a timeout
// means the transaction reached the chain and failed there.
type TradeError struct {
	Code    uint32
	Message string
	// InstructionIndex is the failing instruction, when known.
	InstructionIndex *uint8
}

func (e *TradeError) Error() string {
	return e.Message
}

// NewTradeError creates a TradeError without an instruction index.
func NewTradeError(code uint32, format string, args ...interface{}) *TradeError {
	return &TradeError{Code: code, Message: fmt.Sprintf(format, args...)}
}
