package pumpfun

import (
	sol "github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var (
	// ProgramID is the bonding curve program.
	ProgramID = sol.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	// GlobalAccount holds program-wide curve parameters.
	GlobalAccount = sol.MustPublicKeyFromBase58("4wTV1YmiEkRvAtNtsSGPtUrqRYQMe5SKy2uB4Jjaxnjf")
	// FeeRecipient collects the protocol fee on every trade.
	FeeRecipient = sol.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")
	// EventAuthority signs program event CPIs.
	EventAuthority = sol.MustPublicKeyFromBase58("Ce6TQqeHC9p8KetsN6JsjHK7UTZk7nasjjnr7XxXp9F1")

	associatedTokenProgramID = sol.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
)

// DeriveBondingCurve returns the curve PDA for a mint.
func DeriveBondingCurve(mint sol.PublicKey) (sol.PublicKey, error) {
	address, _, err := sol.FindProgramAddress(
		[][]byte{[]byte("bonding-curve"), mint.Bytes()},
		ProgramID,
	)
	if err != nil {
		return sol.PublicKey{}, errors.Wrap(err, "failed to derive bonding curve")
	}
	return address, nil
}

// DeriveCreatorVault returns the creator fee vault PDA.
func DeriveCreatorVault(creator sol.PublicKey) (sol.PublicKey, error) {
	address, _, err := sol.FindProgramAddress(
		[][]byte{[]byte("creator-vault"), creator.Bytes()},
		ProgramID,
	)
	if err != nil {
		return sol.PublicKey{}, errors.Wrap(err, "failed to derive creator vault")
	}
	return address, nil
}

// DeriveAssociatedTokenAccount returns the owner's token account for a mint.
func DeriveAssociatedTokenAccount(owner, mint sol.PublicKey) (sol.PublicKey, error) {
	address, _, err := sol.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return sol.PublicKey{}, errors.Wrap(err, "failed to derive associated token account")
	}
	return address, nil
}

// createIdempotentATAInstruction creates the owner's token account if it does
// not exist yet and is a no-op otherwise.
func createIdempotentATAInstruction(payer, owner, mint, ata sol.PublicKey) sol.Instruction {
	accounts := sol.AccountMetaSlice{
		sol.NewAccountMeta(payer, true, true),
		sol.NewAccountMeta(ata, true, false),
		sol.NewAccountMeta(owner, false, false),
		sol.NewAccountMeta(mint, false, false),
		sol.NewAccountMeta(sol.SystemProgramID, false, false),
		sol.NewAccountMeta(sol.TokenProgramID, false, false),
	}
	return sol.NewInstruction(associatedTokenProgramID, accounts, []byte{1})
}
