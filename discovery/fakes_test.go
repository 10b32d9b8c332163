package discovery

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/lnroute/routingcore/graph"
)

// fakeBroadcaster is a graph.BroadcastFanout that just hands out
// monotonically increasing slot handles and reports a replacement whenever
// a non-zero slot comes back in.
type fakeBroadcaster struct {
	next    graph.BroadcastHandle
	entries map[graph.BroadcastHandle][]byte
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{entries: make(map[graph.BroadcastHandle][]byte)}
}

func (f *fakeBroadcaster) ReplaceBroadcast(slot graph.BroadcastHandle,
	_ graph.MessageType, _ graph.RoutingKeyTag, payload []byte) (graph.BroadcastHandle, bool) {

	if slot != 0 {
		f.entries[slot] = payload
		return slot, true
	}
	f.next++
	f.entries[f.next] = payload
	return f.next, false
}

// fakeVerifier is an xcrypto.Verifier stand-in whose signature checks
// always return a configured, fixed verdict: these tests exercise the
// gossip handlers' control flow, not real secp256k1 signature math.
type fakeVerifier struct {
	verifyResult bool
}

func (f fakeVerifier) VerifyECDSA([]byte, *ecdsa.Signature, *btcec.PublicKey) bool {
	return f.verifyResult
}

func (f fakeVerifier) Sha256d(buf []byte) [32]byte {
	return chainhash.DoubleHashH(buf)
}

func (f fakeVerifier) SipHash24(seed [16]byte, buf []byte) uint64 {
	return 0
}
