package noncecache

import (
	"context"
	"encoding/binary"
	"sync"

	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

const (
	// nonceAccountDataLen is the serialized size of an initialized nonce account.
	nonceAccountDataLen = 80

	// nonceStateInitialized is the state tag of a usable nonce account.
	nonceStateInitialized = 1

	// advanceNonceInstructionIndex is the system program instruction index
	// for AdvanceNonceAccount.
	advanceNonceInstructionIndex = 4
)

// NonceAccountState mirrors the system program's nonce account layout.
type NonceAccountState struct {
	Version       uint32
	State         uint32
	Authority     sol.PublicKey
	Nonce         sol.Hash
	FeeCalculator uint64
}

// Cache tracks a durable nonce account and caches its current value so every
// transaction variant of a multi-channel buy can be built without an extra
// RPC round trip.
type Cache struct {
	provider     types.AccountInfoProvider
	nonceAccount sol.PublicKey
	authority    sol.PublicKey
	logger       *logrus.Logger

	mu      sync.RWMutex
	current *types.DurableNonceInfo
}

// New creates a nonce cache for the given nonce account and authority.
func New(provider types.AccountInfoProvider, nonceAccount, authority sol.PublicKey, logger *logrus.Logger) *Cache {
	return &Cache{
		provider:     provider,
		nonceAccount: nonceAccount,
		authority:    authority,
		logger:       logger,
	}
}

// Refresh fetches the nonce account and replaces the cached value.
func (c *Cache) Refresh(ctx context.Context) (*types.DurableNonceInfo, error) {
	result, err := c.provider.GetAccountInfo(ctx, c.nonceAccount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nonce account info")
	}
	if result == nil || result.Value == nil {
		return nil, errors.Errorf("nonce account %s not found", c.nonceAccount)
	}

	state, err := DecodeNonceAccount(result.Value.Data.GetBinary())
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode nonce account")
	}

	info := &types.DurableNonceInfo{
		NonceAccount: c.nonceAccount,
		Authority:    c.authority,
		CurrentNonce: state.Nonce,
	}

	c.mu.Lock()
	c.current = info
	c.mu.Unlock()

	c.logger.WithFields(logrus.Fields{
		"nonceAccount": c.nonceAccount.String(),
		"nonce":        state.Nonce.String(),
	}).Debug("Durable nonce refreshed")

	return info, nil
}

// Current returns the cached nonce value, nil before the first Refresh.
func (c *Cache) Current() *types.DurableNonceInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// DecodeNonceAccount parses a nonce account's binary state.
func DecodeNonceAccount(data []byte) (*NonceAccountState, error) {
	if len(data) < nonceAccountDataLen {
		return nil, errors.Errorf("nonce account data too short: %d bytes", len(data))
	}

	var state NonceAccountState
	if err := bin.NewBinDecoder(data).Decode(&state); err != nil {
		return nil, errors.Wrap(err, "failed to decode nonce account state")
	}
	if state.State != nonceStateInitialized {
		return nil, errors.Errorf("nonce account not initialized: state=%d", state.State)
	}

	return &state, nil
}

// AdvanceNonceInstruction creates the system program instruction advancing a
// durable nonce. It must be the first instruction of any transaction signed
// against the nonce's value.
func AdvanceNonceInstruction(nonceAccount, authority sol.PublicKey) sol.Instruction {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, advanceNonceInstructionIndex)

	return sol.NewInstruction(
		sol.SystemProgramID,
		sol.AccountMetaSlice{
			{PublicKey: nonceAccount, IsSigner: false, IsWritable: true},
			{PublicKey: sol.SysVarRecentBlockHashesPubkey, IsSigner: false, IsWritable: false},
			{PublicKey: authority, IsSigner: true, IsWritable: false},
		},
		data,
	)
}
