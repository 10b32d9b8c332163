package discovery

import "fmt"

// Sentinel errors returned by the gossip handlers. Most ingestion
// failures are simply dropped without an error reaching the caller; these
// are returned only by the on-chain confirmation callback, whose return
// value the caller inspects.
var (
	ErrNotOurs         = fmt.Errorf("discovery: scid is not pending confirmation")
	ErrFundingSpent    = fmt.Errorf("discovery: funding output is spent or unknown")
	ErrFundingMismatch = fmt.Errorf("discovery: funding output script does not match announced keys")
)
