// Package graph holds the in-memory channel graph: nodes, channels, and
// their per-direction half-channel policies, plus the staging area for
// announcements and updates still awaiting on-chain confirmation.
//
// Unlike the bolt-backed channel graph this package is modeled on, nothing
// here is persisted: the graph is rebuilt from gossip on every restart, so
// the store is just a pair of maps guarded by a single-threaded event loop.
package graph

import (
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/go-errors/errors"
)

// Store owns every Node and Channel reachable from gossip, indexed by node
// id and by short channel id.
type Store struct {
	// PruneTimeout is the maximum age of a channel's freshest half
	// before the pruner may remove it. It also determines the
	// "half-aged" seed timestamp new half-channels are given.
	PruneTimeout time.Duration

	nodes    map[NodeID]*Node
	channels map[uint64]*Channel

	Pending *PendingStaging
}

// NewStore creates an empty graph store.
func NewStore(pruneTimeout time.Duration) *Store {
	return &Store{
		PruneTimeout: pruneTimeout,
		nodes:        make(map[NodeID]*Node),
		channels:     make(map[uint64]*Channel),
		Pending:      newPendingStaging(),
	}
}

// LookupNode returns the node with the given id, or nil if none is
// reachable from the index.
func (s *Store) LookupNode(id NodeID) *Node {
	return s.nodes[id]
}

// LookupChannel returns the public or local channel with the given short
// channel ID, or nil if none exists.
func (s *Store) LookupChannel(scid uint64) *Channel {
	return s.channels[scid]
}

// ForEachNode iterates every node reachable from the index. Destroying a
// node from within cb is not supported; destroy after iteration completes.
func (s *Store) ForEachNode(cb func(*Node) error) error {
	for _, n := range s.nodes {
		if err := cb(n); err != nil {
			return err
		}
	}
	return nil
}

// ForEachChannel iterates every channel (public and local) in the store.
// As with ForEachNode, destroying a channel from within cb is unsupported;
// the pruner collects candidates during iteration and destroys them
// afterward for exactly this reason.
func (s *Store) ForEachChannel(cb func(*Channel) error) error {
	for _, c := range s.channels {
		if err := cb(c); err != nil {
			return err
		}
	}
	return nil
}

// getOrCreateNode returns the existing node for pub, or creates, indexes,
// and returns a new one.
func (s *Store) getOrCreateNode(pub *btcec.PublicKey) *Node {
	id := NodeIDFromPubKey(pub)
	if n, ok := s.nodes[id]; ok {
		return n
	}
	n := newNode(pub)
	s.nodes[id] = n
	return n
}

// CreateChannel creates a new channel between id1 and id2, auto-creating
// either endpoint node that doesn't yet exist. The two endpoints are stored
// in canonical order regardless of the order passed in.
func (s *Store) CreateChannel(scid uint64, id1, id2 *btcec.PublicKey) *Channel {
	now := time.Now()

	a := s.getOrCreateNode(id1)
	b := s.getOrCreateNode(id2)

	// Canonical order: node-1 slot holds the lexicographically smaller
	// serialized public key.
	node1, node2 := a, b
	if b.ID.Less(a.ID) {
		node1, node2 = b, a
	}

	c := &Channel{
		ShortChannelID: scid,
		Node1:          node1,
		Node2:          node2,
	}
	c.Half[0] = newHalfChannel(0, now, s.PruneTimeout)
	c.Half[1] = newHalfChannel(1, now, s.PruneTimeout)

	s.channels[scid] = c
	node1.Channels[scid] = c
	node2.Channels[scid] = c

	return c
}

// DestroyChannel removes c from the graph: it is unindexed and removed
// from both endpoint nodes' incident-channel lists, and any endpoint whose
// incident list becomes empty (and which has no pending descriptor keeping
// it reachable) is destroyed in turn.
//
// DestroyChannel aborts if c is not consistently present in both endpoint
// lists: that indicates a prior bookkeeping bug elsewhere in the store, not
// a condition this call should paper over.
func (s *Store) DestroyChannel(c *Channel) {
	if _, ok := c.Node1.Channels[c.ShortChannelID]; !ok {
		panic(errors.Errorf("graph: channel %d missing from node1's "+
			"incident list at destruction", c.ShortChannelID))
	}
	if _, ok := c.Node2.Channels[c.ShortChannelID]; !ok {
		panic(errors.Errorf("graph: channel %d missing from node2's "+
			"incident list at destruction", c.ShortChannelID))
	}

	delete(s.channels, c.ShortChannelID)
	delete(c.Node1.Channels, c.ShortChannelID)
	delete(c.Node2.Channels, c.ShortChannelID)

	s.destroyNodeIfOrphaned(c.Node1)
	s.destroyNodeIfOrphaned(c.Node2)
}

// destroyNodeIfOrphaned removes n from the node index once it has no
// incident channels and no pending descriptor slot keeping it reachable.
func (s *Store) destroyNodeIfOrphaned(n *Node) {
	if len(n.Channels) > 0 {
		return
	}
	if s.Pending.hasNodeSlot(n.ID) {
		return
	}
	delete(s.nodes, n.ID)
}
