package routing

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/lnroute/routingcore/graph"
	"github.com/lnroute/routingcore/lnwire"
)

func testPubKey(t *testing.T, seed byte) *btcec.PublicKey {
	t.Helper()
	var buf [32]byte
	buf[0] = 0x01
	buf[31] = seed
	priv, _ := btcec.PrivKeyFromBytes(buf[:])
	return priv.PubKey()
}

// setHalf configures the half-channel of c owned by owner, activating it
// with the given policy. It fails the test immediately if owner isn't one
// of c's endpoints, which would indicate a broken test fixture rather than
// a condition worth a graceful error.
func setHalf(t *testing.T, c *graph.Channel, owner *graph.Node,
	base lnwire.MilliSatoshi, ppm uint32, delay uint32) {

	t.Helper()
	idx, ok := c.DirectionOf(owner)
	if !ok {
		t.Fatalf("%v is not an endpoint of channel %d", owner.ID, c.ShortChannelID)
	}
	c.Half[idx].Active = true
	c.Half[idx].BaseFee = base
	c.Half[idx].ProportionalFee = ppm
	c.Half[idx].TimeLockDelta = delay
}

func newTestStore() *graph.Store {
	return graph.NewStore(time.Hour)
}
