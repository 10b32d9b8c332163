package graph

import (
	"bytes"
	"math"
	"net"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lnroute/routingcore/lnwire"
)

// NodeID is a node's 33-byte compressed public key, used as the primary key
// for every node-keyed index in the graph.
type NodeID [33]byte

// NodeIDFromPubKey serializes a public key into its NodeID form.
func NodeIDFromPubKey(pub *btcec.PublicKey) NodeID {
	var id NodeID
	copy(id[:], pub.SerializeCompressed())
	return id
}

// Less reports whether id is lexicographically smaller than other, the
// ordering relation used to pick the canonical node-1/node-2 slot of a
// channel.
func (id NodeID) Less(other NodeID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

func (id NodeID) String() string {
	return btcecPubKeyString(id)
}

func btcecPubKeyString(id NodeID) string {
	const hextable = "0123456789abcdef"
	buf := make([]byte, 0, len(id)*2)
	for _, b := range id {
		buf = append(buf, hextable[b>>4], hextable[b&0xf])
	}
	return string(buf)
}

// neverSeen is the sentinel last-accepted-node-descriptor timestamp used
// before a node has ever had a node_announcement applied to it. Gossip
// timestamps are 32-bit Unix seconds, so the all-ones value can never be a
// legitimately accepted timestamp within this protocol's lifetime.
const neverSeen uint32 = math.MaxUint32

// Node is a participant in the channel graph, identified by its identity
// public key. A Node is created on demand when its first incident channel
// is created, and destroyed when its last incident channel is removed.
type Node struct {
	ID NodeID

	PubKey *btcec.PublicKey

	HaveNodeAnnouncement bool

	Alias lnwire.Alias
	Color lnwire.RGB

	Addresses []net.Addr

	// LastTimestamp is the timestamp of the last accepted
	// node_announcement for this node, or neverSeen if none has ever
	// been applied.
	LastTimestamp uint32

	// RawAnnouncement is the last raw node_announcement message applied
	// to this node, retained for broadcast re-publication.
	RawAnnouncement []byte

	// BroadcastIndex is this node's handle into the broadcast
	// collaborator's index.
	BroadcastIndex BroadcastHandle

	// Channels is the set of channels with this node as an endpoint,
	// keyed by short channel ID. Every entry here also has a matching
	// entry in the peer's Channels map and in the graph Store's channel
	// index.
	Channels map[uint64]*Channel
}

// newNode allocates a Node with an unset ("never seen") node-descriptor
// timestamp and an empty incident-channel set.
func newNode(pub *btcec.PublicKey) *Node {
	return &Node{
		ID:            NodeIDFromPubKey(pub),
		PubKey:        pub,
		LastTimestamp: neverSeen,
		Channels:      make(map[uint64]*Channel),
	}
}

// HasNeverSeenDescriptor reports whether this node has never had a
// node_announcement successfully applied to it.
func (n *Node) HasNeverSeenDescriptor() bool {
	return n.LastTimestamp == neverSeen
}
