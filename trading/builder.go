package trading

import (
	"context"

	sol "github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"

	cerrors "github.com/hookenful/sol-trade-sdk/common/errors"
	"github.com/hookenful/sol-trade-sdk/common/types"
	"github.com/hookenful/sol-trade-sdk/noncecache"
	"github.com/hookenful/sol-trade-sdk/solutil"
)

// BuildParams describes one fully-formed transaction variant.
//
// Exactly one blockhash source must be resolvable: a durable nonce, a
// pre-fetched recent blockhash, or an RPC client to fetch one. When a durable
// nonce is supplied its advance instruction is prepended and the nonce value
// is used for signing instead of any passed blockhash.
type BuildParams struct {
	Payer           sol.PrivateKey
	RPC             types.BlockhashProvider
	CuLimit         uint32
	CuPrice         uint64
	Instructions    []sol.Instruction
	LookupTable     *types.AddressLookupTableAccount
	RecentBlockhash *sol.Hash
	Middleware      *MiddlewareManager
	ProtocolName    string
	IsBuy           bool
	IncludeTip      bool
	TipAccount      sol.PublicKey
	TipSol          float64
	DurableNonce    *types.DurableNonceInfo
}

// BuildTransaction assembles and signs one transaction variant: optional
// nonce-advance instruction, compute-budget instructions, the protocol
// instructions, and an optional tip transfer.
func BuildTransaction(ctx context.Context, p BuildParams) (*sol.Transaction, error) {
	if len(p.Instructions) == 0 {
		return nil, cerrors.ErrInstructionsEmpty
	}

	base := p.Instructions
	if p.Middleware != nil {
		var err error
		base, err = p.Middleware.Apply(base, p.ProtocolName, p.IsBuy)
		if err != nil {
			return nil, errors.Wrap(err, "failed to apply middlewares")
		}
		if len(base) == 0 {
			return nil, cerrors.ErrInstructionsEmpty
		}
	}

	final := make([]sol.Instruction, 0, len(base)+4)

	if p.DurableNonce != nil {
		final = append(final, noncecache.AdvanceNonceInstruction(p.DurableNonce.NonceAccount, p.DurableNonce.Authority))
	}

	setComputeUnitLimitIx, err := computebudget.NewSetComputeUnitLimitInstruction(p.CuLimit).ValidateAndBuild()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create compute unit limit instruction")
	}
	final = append(final, setComputeUnitLimitIx)

	setComputeUnitPriceIx, err := computebudget.NewSetComputeUnitPriceInstruction(p.CuPrice).ValidateAndBuild()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create compute unit price instruction")
	}
	final = append(final, setComputeUnitPriceIx)

	final = append(final, base...)

	if p.IncludeTip && p.TipSol > 0 {
		tipIx := system.NewTransferInstruction(
			solutil.SolToLamports(p.TipSol),
			p.Payer.PublicKey(),
			p.TipAccount,
		).Build()
		final = append(final, tipIx)
	}

	blockhash, err := resolveBlockhash(ctx, &p)
	if err != nil {
		return nil, err
	}

	opts := []sol.TransactionOption{sol.TransactionPayer(p.Payer.PublicKey())}
	if p.LookupTable != nil {
		opts = append(opts, sol.TransactionAddressTables(map[sol.PublicKey]sol.PublicKeySlice{
			p.LookupTable.Address: p.LookupTable.Addresses,
		}))
	}

	tx, err := sol.NewTransaction(final, blockhash, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	_, err = tx.Sign(func(key sol.PublicKey) *sol.PrivateKey {
		if p.Payer.PublicKey().Equals(key) {
			return &p.Payer
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	return tx, nil
}

// resolveBlockhash picks the replay-protection value to sign against. A
// durable nonce always wins: its value is the only one every independently
// built variant can share safely.
func resolveBlockhash(ctx context.Context, p *BuildParams) (sol.Hash, error) {
	if p.DurableNonce != nil {
		return p.DurableNonce.CurrentNonce, nil
	}
	if p.RecentBlockhash != nil {
		return *p.RecentBlockhash, nil
	}
	if p.RPC != nil {
		latest, err := p.RPC.GetLatestBlockhash(ctx, rpc.CommitmentProcessed)
		if err != nil {
			return sol.Hash{}, errors.Wrap(err, "failed to get latest blockhash")
		}
		return latest.Value.Blockhash, nil
	}
	return sol.Hash{}, cerrors.ErrBlockhashUnavailable
}
