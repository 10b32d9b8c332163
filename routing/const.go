package routing

import "time"

const (
	// MaxHops is the hard cap on path length the pathfinder enforces.
	MaxHops = 20

	// MaxMilliSatoshi is the payment ceiling (2^40 millisatoshis):
	// requests at or above this are rejected outright, and any partial
	// pathfinding state that would exceed it is discarded.
	MaxMilliSatoshi = 1 << 40

	// BlocksPerYear normalizes a caller-supplied annualized risk factor
	// into the per-block, per-msat units the risk term uses internally.
	BlocksPerYear = 52596

	// UnroutablePenalty is how long a half-channel is marked unroutable
	// after a non-permanent routing failure.
	UnroutablePenalty = 20 * time.Second
)

// normalizeRiskFactor converts a caller-supplied annualized risk factor
// into the per-block, per-msat units the risk term uses:
// risk_factor / 52596 / 10000.
func normalizeRiskFactor(riskFactor float64) float64 {
	return riskFactor / BlocksPerYear / 10000
}
