package lnwire

import "fmt"

// MilliSatoshi represents a thousandth of a satoshi, the unit fees, HTLC
// minimums, and amounts-to-forward are expressed in throughout gossip and
// pathfinding.
type MilliSatoshi uint64

// String returns the string representation of the millisatoshi amount.
func (m MilliSatoshi) String() string {
	return fmt.Sprintf("%d mSAT", uint64(m))
}
