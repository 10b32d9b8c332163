package lnwire

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ChannelAnnouncement is the decoded form of a signed claim that a channel
// exists and is backed by an on-chain 2-of-2 multisig output.
type ChannelAnnouncement struct {
	NodeSig1    *ecdsa.Signature
	NodeSig2    *ecdsa.Signature
	BitcoinSig1 *ecdsa.Signature
	BitcoinSig2 *ecdsa.Signature

	Features *RawFeatureVector

	ChainHash chainhash.Hash

	ShortChannelID ShortChannelID

	NodeID1 *btcec.PublicKey
	NodeID2 *btcec.PublicKey

	BitcoinKey1 *btcec.PublicKey
	BitcoinKey2 *btcec.PublicKey

	// Raw is the complete undecoded announcement, retained for
	// broadcast re-publication and signature verification.
	Raw []byte
}

// DataToSign returns the portion of the announcement that all four
// signatures commit to: everything past the fixed 258-byte signature
// prefix.
func (a *ChannelAnnouncement) DataToSign() []byte {
	return SignedPayload(a.Raw, ChannelAnnouncementSigOffset)
}

// ChanUpdateFlag is the 16-bit flags field of a channel_update.
type ChanUpdateFlag uint16

const (
	// ChanUpdateDirection is bit 0: which of the two channel endpoints
	// issued this update.
	ChanUpdateDirection ChanUpdateFlag = 1 << 0

	// ChanUpdateDisabled is bit 1: the issuing endpoint has marked the
	// channel temporarily unusable in this direction.
	ChanUpdateDisabled ChanUpdateFlag = 1 << 1
)

// Direction extracts the direction bit (0 or 1) from the flags field.
func (f ChanUpdateFlag) Direction() uint8 {
	if f&ChanUpdateDirection != 0 {
		return 1
	}
	return 0
}

// Disabled reports whether the disabled bit is set.
func (f ChanUpdateFlag) Disabled() bool {
	return f&ChanUpdateDisabled != 0
}

// ChannelUpdate is the decoded form of a signed per-direction routing
// policy update.
type ChannelUpdate struct {
	Signature *ecdsa.Signature

	ChainHash chainhash.Hash

	ShortChannelID ShortChannelID

	Timestamp uint32

	Flags ChanUpdateFlag

	TimeLockDelta uint16

	HtlcMinimumMsat MilliSatoshi

	BaseFee MilliSatoshi

	FeeProportionalMillionths uint32

	// Raw is the complete undecoded update, retained for broadcast
	// re-publication.
	Raw []byte
}

// DataToSign returns the portion of the update the signature commits to:
// everything past the fixed 66-byte prefix.
func (u *ChannelUpdate) DataToSign() []byte {
	return SignedPayload(u.Raw, ChannelUpdateSigOffset)
}
