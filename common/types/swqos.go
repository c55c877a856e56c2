package types

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// SwqosType identifies a submission quality-of-service vendor.
type SwqosType string

const (
	// SwqosTypeDefault is the canonical direct-RPC channel.
	SwqosTypeDefault SwqosType = "Default"
	// SwqosTypeJito submits through the Jito block engine.
	SwqosTypeJito SwqosType = "Jito"
	// SwqosTypeHelius submits through Helius Sender.
	SwqosTypeHelius SwqosType = "Helius"
	// SwqosTypeNextBlock submits through the NextBlock relay.
	SwqosTypeNextBlock SwqosType = "NextBlock"
	// SwqosTypeBloxroute submits through the bloXroute trader API.
	SwqosTypeBloxroute SwqosType = "Bloxroute"
)

// SwqosClient is one configured submission channel. Implementations are
// created at client construction, shared read-only across trades, and
// outlive any single trade.
type SwqosClient interface {
	// SendTransaction submits a signed transaction through the channel.
	// When waitConfirmation is set the call blocks until the transaction is
	// confirmed on-chain or the confirmation poll times out.
	SendTransaction(ctx context.Context, tradeType TradeType, tx *sol.Transaction, waitConfirmation bool) error

	// TipAccount returns the channel-designated tip account address.
	TipAccount() (string, error)

	// MinTipSol returns the channel's minimum tip floor in SOL, 0 when the
	// channel does not enforce one.
	MinTipSol() float64

	// SwqosType returns the channel's vendor tag.
	SwqosType() SwqosType
}

// SwqosConfig describes how to construct one submission channel.
type SwqosConfig struct {
	Type      SwqosType
	Endpoint  string
	AuthToken string
	// SwqosOnly applies to Helius Sender: SWQOS-only routing with a much
	// lower minimum tip.
	SwqosOnly bool
}

// BlockhashProvider is the narrow RPC surface the transaction builder needs.
type BlockhashProvider interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
}

// SignatureStatusProvider is the narrow RPC surface the confirmation poller needs.
type SignatureStatusProvider interface {
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...sol.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetTransaction(ctx context.Context, sig sol.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
}

// AccountInfoProvider is the narrow RPC surface the nonce cache needs.
type AccountInfoProvider interface {
	GetAccountInfo(ctx context.Context, account sol.PublicKey) (*rpc.GetAccountInfoResult, error)
}
