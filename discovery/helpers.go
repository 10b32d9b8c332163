package discovery

import (
	"bytes"
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

// maxProportionalFee (2^24): a channel_update advertising a proportional
// fee at or above this is forced inactive, since the routing algebra
// assumes bounded ppm.
const maxProportionalFee = 1 << 24

// zeroTime is the cleared value of a half-channel's UnroutableUntil field,
// applied whenever a fresh update is accepted.
var zeroTime time.Time

func scriptsEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}

func satoshiAmount(v int64) btcutil.Amount {
	return btcutil.Amount(v)
}
