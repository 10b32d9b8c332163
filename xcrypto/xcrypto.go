// Package xcrypto is the concrete default implementation of the
// cryptographic collaborator external to the routing core: ECDSA
// signature verification, the double-SHA256 used to digest signed gossip
// payloads, and the SipHash-2-4 used to derive deterministic per-request
// fee fuzz.
//
// The routing core depends only on the Verifier interface declared here;
// this package is simply the implementation an embedder wires in.
package xcrypto

import (
	"github.com/aead/siphash"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Verifier is the cryptographic collaborator the routing core depends on.
type Verifier interface {
	// VerifyECDSA reports whether sig is a valid signature over msgHash
	// under pubKey.
	VerifyECDSA(msgHash []byte, sig *ecdsa.Signature, pubKey *btcec.PublicKey) bool

	// Sha256d returns the double-SHA256 digest of buf, the digest every
	// gossip signature in this protocol signs over.
	Sha256d(buf []byte) [32]byte

	// SipHash24 returns the SipHash-2-4 of buf under the 128-bit key
	// formed from seed, used to derive deterministic per-request fee
	// fuzz.
	SipHash24(seed [16]byte, buf []byte) uint64
}

// Default is the production Verifier, backed by
// github.com/btcsuite/btcd/btcec/v2/ecdsa,
// github.com/btcsuite/btcd/chaincfg/chainhash, and
// github.com/aead/siphash.
type Default struct{}

var _ Verifier = Default{}

// VerifyECDSA implements Verifier.
func (Default) VerifyECDSA(msgHash []byte, sig *ecdsa.Signature, pubKey *btcec.PublicKey) bool {
	if sig == nil || pubKey == nil {
		return false
	}
	return sig.Verify(msgHash, pubKey)
}

// Sha256d implements Verifier.
func (Default) Sha256d(buf []byte) [32]byte {
	return [32]byte(chainhash.DoubleHashH(buf))
}

// SipHash24 implements Verifier.
func (Default) SipHash24(seed [16]byte, buf []byte) uint64 {
	return siphash.Sum64(buf, &seed)
}
