package pumpfun

import (
	"math/big"

	sol "github.com/gagliardetto/solana-go"
)

// Fee schedule in basis points. The protocol fee goes to the fee recipient,
// the creator fee to the creator vault. The creator fee only applies to
// curves that carry a creator key.
const (
	protocolFeeBasisPoints = 95
	creatorFeeBasisPoints  = 5

	basisPointsDenominator = 10_000

	// DefaultSlippageBasisPoints bounds price movement when the caller does
	// not pick a tolerance.
	DefaultSlippageBasisPoints = 250
)

func totalFeeBasisPoints(creator sol.PublicKey) int64 {
	if creator.IsZero() {
		return protocolFeeBasisPoints
	}
	return protocolFeeBasisPoints + creatorFeeBasisPoints
}

// GetBuyTokenAmountFromSolAmount returns how many curve tokens a SOL amount
// buys at the given virtual reserves, after fees, capped by the tokens
// actually remaining on the curve.
func GetBuyTokenAmountFromSolAmount(solAmount, virtualTokenReserves, virtualSolReserves, realTokenReserves uint64, creator sol.PublicKey) uint64 {
	if solAmount == 0 || virtualSolReserves == 0 {
		return 0
	}

	amount := new(big.Int).SetUint64(solAmount)
	vToken := new(big.Int).SetUint64(virtualTokenReserves)
	vSol := new(big.Int).SetUint64(virtualSolReserves)

	// Strip fees off the input before it hits the curve.
	input := new(big.Int).Mul(amount, big.NewInt(basisPointsDenominator))
	input.Div(input, big.NewInt(basisPointsDenominator+totalFeeBasisPoints(creator)))

	// Constant product: tokens = input * vToken / (vSol + input)
	tokens := new(big.Int).Mul(input, vToken)
	tokens.Div(tokens, new(big.Int).Add(vSol, input))

	out := tokens.Uint64()
	if out > realTokenReserves {
		out = realTokenReserves
	}
	return out
}

// GetSellSolAmountFromTokenAmount returns the SOL received for selling
// tokens back to the curve, net of fees.
func GetSellSolAmountFromTokenAmount(tokenAmount, virtualTokenReserves, virtualSolReserves uint64, creator sol.PublicKey) uint64 {
	if tokenAmount == 0 || virtualTokenReserves == 0 {
		return 0
	}

	amount := new(big.Int).SetUint64(tokenAmount)
	vToken := new(big.Int).SetUint64(virtualTokenReserves)
	vSol := new(big.Int).SetUint64(virtualSolReserves)

	gross := new(big.Int).Mul(amount, vSol)
	gross.Div(gross, new(big.Int).Add(vToken, amount))

	fee := new(big.Int).Mul(gross, big.NewInt(totalFeeBasisPoints(creator)))
	fee.Div(fee, big.NewInt(basisPointsDenominator))

	return new(big.Int).Sub(gross, fee).Uint64()
}

// CalculateWithSlippageBuy returns the maximum SOL cost the buyer accepts.
func CalculateWithSlippageBuy(solAmount, slippageBasisPoints uint64) uint64 {
	delta := new(big.Int).SetUint64(solAmount)
	delta.Mul(delta, new(big.Int).SetUint64(slippageBasisPoints))
	delta.Div(delta, big.NewInt(basisPointsDenominator))
	return solAmount + delta.Uint64()
}

// CalculateWithSlippageSell returns the minimum SOL the seller accepts.
func CalculateWithSlippageSell(solAmount, slippageBasisPoints uint64) uint64 {
	delta := new(big.Int).SetUint64(solAmount)
	delta.Mul(delta, new(big.Int).SetUint64(slippageBasisPoints))
	delta.Div(delta, big.NewInt(basisPointsDenominator))
	if delta.Uint64() >= solAmount {
		return 0
	}
	return solAmount - delta.Uint64()
}
