package pumpfun

import (
	"context"
	"encoding/binary"

	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/hookenful/sol-trade-sdk/common/types"
)

// Name is the protocol identifier used in logs and middleware hooks.
const Name = "pumpfun"

var (
	buyDiscriminator  = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	sellDiscriminator = []byte{51, 230, 133, 164, 1, 127, 131, 173}
)

// Params carries the bonding curve state a trade is quoted against. The
// caller snapshots it from chain (or an event stream) before trading.
type Params struct {
	// Creator is the token creator, owner of the creator fee vault.
	Creator sol.PublicKey
	// VirtualTokenReserves and VirtualSolReserves define the current price.
	VirtualTokenReserves uint64
	VirtualSolReserves   uint64
	// RealTokenReserves bounds how many tokens the curve can still sell.
	RealTokenReserves uint64
	RealSolReserves   uint64
}

func (p *Params) ProtocolName() string {
	return Name
}

// Builder assembles bonding curve trade instructions.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// BuildBuyInstructions quotes the buy against the curve snapshot and returns
// the idempotent token account create plus the buy instruction.
func (b *Builder) BuildBuyInstructions(_ context.Context, params *types.SwapParams) ([]sol.Instruction, error) {
	curve, err := curveParams(params)
	if err != nil {
		return nil, err
	}

	slippage := params.SlippageBasisPoints
	if slippage == 0 {
		slippage = DefaultSlippageBasisPoints
	}

	tokenAmount := params.FixedOutputAmount
	if tokenAmount == 0 {
		tokenAmount = GetBuyTokenAmountFromSolAmount(
			params.InputAmount,
			curve.VirtualTokenReserves,
			curve.VirtualSolReserves,
			curve.RealTokenReserves,
			curve.Creator,
		)
	}
	if tokenAmount == 0 {
		return nil, errors.New("buy quote produced zero tokens")
	}
	maxSolCost := CalculateWithSlippageBuy(params.InputAmount, slippage)

	accounts, ata, err := b.tradeAccounts(params, curve)
	if err != nil {
		return nil, err
	}

	payer := params.Payer.PublicKey()
	data := make([]byte, 0, 24)
	data = append(data, buyDiscriminator...)
	data = binary.LittleEndian.AppendUint64(data, tokenAmount)
	data = binary.LittleEndian.AppendUint64(data, maxSolCost)

	return []sol.Instruction{
		createIdempotentATAInstruction(payer, payer, params.Mint, ata),
		sol.NewInstruction(ProgramID, accounts.buy(), data),
	}, nil
}

// BuildSellInstructions quotes the sell against the curve snapshot.
func (b *Builder) BuildSellInstructions(_ context.Context, params *types.SwapParams) ([]sol.Instruction, error) {
	curve, err := curveParams(params)
	if err != nil {
		return nil, err
	}

	slippage := params.SlippageBasisPoints
	if slippage == 0 {
		slippage = DefaultSlippageBasisPoints
	}

	solOut := GetSellSolAmountFromTokenAmount(
		params.InputAmount,
		curve.VirtualTokenReserves,
		curve.VirtualSolReserves,
		curve.Creator,
	)
	minSolOutput := CalculateWithSlippageSell(solOut, slippage)
	if params.FixedOutputAmount > 0 {
		minSolOutput = params.FixedOutputAmount
	}

	accounts, _, err := b.tradeAccounts(params, curve)
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, 24)
	data = append(data, sellDiscriminator...)
	data = binary.LittleEndian.AppendUint64(data, params.InputAmount)
	data = binary.LittleEndian.AppendUint64(data, minSolOutput)

	return []sol.Instruction{
		sol.NewInstruction(ProgramID, accounts.sell(), data),
	}, nil
}

// tradeMetas holds every account a trade touches, in derivation form.
type tradeMetas struct {
	bondingCurve   sol.PublicKey
	associated     sol.PublicKey
	associatedUser sol.PublicKey
	creatorVault   sol.PublicKey
	mint           sol.PublicKey
	user           sol.PublicKey
}

func (b *Builder) tradeAccounts(params *types.SwapParams, curve *Params) (*tradeMetas, sol.PublicKey, error) {
	bondingCurve, err := DeriveBondingCurve(params.Mint)
	if err != nil {
		return nil, sol.PublicKey{}, err
	}
	associatedBondingCurve, err := DeriveAssociatedTokenAccount(bondingCurve, params.Mint)
	if err != nil {
		return nil, sol.PublicKey{}, err
	}
	user := params.Payer.PublicKey()
	associatedUser, err := DeriveAssociatedTokenAccount(user, params.Mint)
	if err != nil {
		return nil, sol.PublicKey{}, err
	}
	creatorVault, err := DeriveCreatorVault(curve.Creator)
	if err != nil {
		return nil, sol.PublicKey{}, err
	}

	return &tradeMetas{
		bondingCurve:   bondingCurve,
		associated:     associatedBondingCurve,
		associatedUser: associatedUser,
		creatorVault:   creatorVault,
		mint:           params.Mint,
		user:           user,
	}, associatedUser, nil
}

func (m *tradeMetas) buy() sol.AccountMetaSlice {
	return sol.AccountMetaSlice{
		sol.NewAccountMeta(GlobalAccount, false, false),
		sol.NewAccountMeta(FeeRecipient, true, false),
		sol.NewAccountMeta(m.mint, false, false),
		sol.NewAccountMeta(m.bondingCurve, true, false),
		sol.NewAccountMeta(m.associated, true, false),
		sol.NewAccountMeta(m.associatedUser, true, false),
		sol.NewAccountMeta(m.user, true, true),
		sol.NewAccountMeta(sol.SystemProgramID, false, false),
		sol.NewAccountMeta(sol.TokenProgramID, false, false),
		sol.NewAccountMeta(m.creatorVault, true, false),
		sol.NewAccountMeta(EventAuthority, false, false),
		sol.NewAccountMeta(ProgramID, false, false),
	}
}

func (m *tradeMetas) sell() sol.AccountMetaSlice {
	return sol.AccountMetaSlice{
		sol.NewAccountMeta(GlobalAccount, false, false),
		sol.NewAccountMeta(FeeRecipient, true, false),
		sol.NewAccountMeta(m.mint, false, false),
		sol.NewAccountMeta(m.bondingCurve, true, false),
		sol.NewAccountMeta(m.associated, true, false),
		sol.NewAccountMeta(m.associatedUser, true, false),
		sol.NewAccountMeta(m.user, true, true),
		sol.NewAccountMeta(sol.SystemProgramID, false, false),
		sol.NewAccountMeta(m.creatorVault, true, false),
		sol.NewAccountMeta(sol.TokenProgramID, false, false),
		sol.NewAccountMeta(EventAuthority, false, false),
		sol.NewAccountMeta(ProgramID, false, false),
	}
}

func curveParams(params *types.SwapParams) (*Params, error) {
	curve, ok := params.Protocol.(*Params)
	if !ok || curve == nil {
		return nil, errors.Errorf("protocol params must be %s params", Name)
	}
	return curve, nil
}
