package lnwire

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// RGB is the color a node chooses to be displayed as in maps/graphs built
// from the gossip it announces about itself.
type RGB struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// aliasLen is the maximum number of meaningful bytes within the fixed
// 32-byte alias field; trailing bytes are zero padding.
const aliasLen = 32

// Alias is a free-form, non-unique display name a node advertises for
// itself.
type Alias [aliasLen]byte

// String returns the alias with its zero padding trimmed.
func (a Alias) String() string {
	end := aliasLen
	for end > 0 && a[end-1] == 0 {
		end--
	}
	return string(a[:end])
}

// NewAlias builds an Alias from a string, truncating anything past the
// first 32 bytes.
func NewAlias(s string) Alias {
	var a Alias
	copy(a[:], s)
	return a
}

// NodeAnnouncement announces a node's metadata: its addresses, display
// color and alias, and the feature bits it supports. It is valid only when
// Signature verifies over DataToSign under NodeID.
type NodeAnnouncement struct {
	// Signature authenticates the remaining fields under NodeID.
	Signature *ecdsa.Signature

	// Features carries the even/odd feature bits this node advertises.
	// Per BOLT #7, an unknown *even* bit makes the announcement
	// unparseable and it must be discarded.
	Features *RawFeatureVector

	// Timestamp orders announcements for the same node; only a
	// strictly newer timestamp may replace previously accepted data.
	Timestamp uint32

	// NodeID is the node's long-term identity public key.
	NodeID *btcec.PublicKey

	RGBColor RGB
	Alias    Alias

	// AddressPayload is the node's undecoded advertised address list.
	// Parsing it (skipping padding entries, stopping cleanly at the
	// first unknown address type, rejecting the whole message on a
	// malformed known-type entry) is part of applying the announcement.
	AddressPayload []byte

	// Raw is the undecoded announcement payload, retained so it can be
	// re-published verbatim via the broadcast collaborator.
	Raw []byte
}

// DataToSign returns the NodeAnnouncement payload past the fixed signature
// prefix (2 bytes message type + 64 bytes signature), the portion that
// NodeID's signature must cover.
func (a *NodeAnnouncement) DataToSign() []byte {
	return SignedPayload(a.Raw, NodeAnnouncementSigOffset)
}
