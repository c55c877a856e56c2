package types

// FeeConfig describes one way to pay for inclusion: a compute budget and an
// optional tip. Immutable once produced.
type FeeConfig struct {
	// CuLimit is the requested compute-unit limit.
	CuLimit uint32
	// CuPrice is the price paid per compute unit, in micro-lamports.
	CuPrice uint64
	// TipSol is the tip paid to the channel's tip account, in SOL.
	TipSol float64
}

// GasFeeStrategyConfig binds a FeeConfig to the channel type and trade
// direction it applies to. A trade strategy yields an ordered list of these
// per direction.
type GasFeeStrategyConfig struct {
	SwqosType SwqosType
	TradeType TradeType
	Fee       FeeConfig
}
