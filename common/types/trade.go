package types

import (
	sol "github.com/gagliardetto/solana-go"
)

// TradeType represents the direction of a trade.
type TradeType string

const (
	// TradeTypeBuy is a buy against the bonding curve (SOL in, tokens out).
	TradeTypeBuy TradeType = "BUY"
	// TradeTypeSell is a sell against the bonding curve (tokens in, SOL out).
	TradeTypeSell TradeType = "SELL"
)

// IsBuy reports whether the trade spends SOL for tokens.
func (t TradeType) IsBuy() bool {
	return t == TradeTypeBuy
}

// ProtocolParams carries protocol-specific state needed by an instruction
// builder (e.g. bonding curve reserves). The core treats it as opaque.
type ProtocolParams interface {
	ProtocolName() string
}

// AddressLookupTableAccount pairs a lookup table address with its resolved
// keys so transaction variants can be built without extra RPC round trips.
type AddressLookupTableAccount struct {
	Address   sol.PublicKey
	Addresses sol.PublicKeySlice
}

// DurableNonceInfo references a chain-side durable nonce, allowing multiple
// independently built transactions to each be valid without sharing a single
// consumable blockhash.
type DurableNonceInfo struct {
	// NonceAccount is the nonce account address.
	NonceAccount sol.PublicKey
	// Authority is the account allowed to advance the nonce.
	Authority sol.PublicKey
	// CurrentNonce is the nonce value used in place of a recent blockhash.
	CurrentNonce sol.Hash
}

// SwapParams is the immutable input for one trade call. Created once per
// trade; read-only for the lifetime of the operation.
//
// Fields:
// - TradeType: the trade direction.
// - Payer: the signer for every transaction variant.
// - Mint: the token mint being traded.
// - InputAmount: lamports for a buy, token amount for a sell.
// - SlippageBasisPoints: slippage tolerance in basis points.
// - FixedOutputAmount: when non-zero, skips curve quoting and trades for exactly this amount.
// - Protocol: protocol-specific parameters consumed by the instruction builder.
// - RecentBlockhash: optional pre-fetched blockhash.
// - DurableNonce: optional durable nonce reference; required for multi-channel buys.
// - LookupTable: optional address lookup table for versioned transactions.
// - WaitTransactionConfirmed: whether the caller wants on-chain confirmation.
// - WithTip: whether tip-paying channels participate.
// - UseCoreAffinity: best-effort CPU pinning hint for submission tasks.
// - CheckMinTip: whether channel minimum-tip floors are enforced.
type SwapParams struct {
	TradeType                TradeType
	Payer                    sol.PrivateKey
	Mint                     sol.PublicKey
	InputAmount              uint64
	SlippageBasisPoints      uint64
	FixedOutputAmount        uint64
	Protocol                 ProtocolParams
	RecentBlockhash          *sol.Hash
	DurableNonce             *DurableNonceInfo
	LookupTable              *AddressLookupTableAccount
	WaitTransactionConfirmed bool
	WithTip                  bool
	UseCoreAffinity          bool
	CheckMinTip              bool
}

// SubmitTiming records when one channel finished its submission attempt.
type SubmitTiming struct {
	SwqosType SwqosType
	// DoneAtUs is the microsecond wall-clock timestamp when the channel returned.
	DoneAtUs int64
}

// TradeResult is the reconciled outcome of one trade call.
type TradeResult struct {
	// Success is true when at least one transaction variant landed and succeeded.
	Success bool
	// Signatures holds every signature produced, including from failed
	// variants, for forensic lookups.
	Signatures []sol.Signature
	// Err is the most informative error observed, preferring the error from
	// a transaction that actually reached the chain.
	Err error
	// Timings holds per-channel submission completion timestamps.
	Timings []SubmitTiming
}
