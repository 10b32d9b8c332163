package graph

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnroute/routingcore/lnwire"
)

// HalfChannel is the per-direction routing policy and liveness state of one
// side of a channel. Two of these make up a Channel; half[i]'s Direction
// must always equal i, the array index within the parent's Half array.
type HalfChannel struct {
	// Direction is the 0/1 direction bit this half represents. It must
	// equal this half's index within the parent Channel's Half array.
	Direction uint8

	// Active is whether this direction is currently usable per its last
	// accepted update.
	Active bool

	// UnroutableUntil is the monotonic wall-clock time before which the
	// pathfinder must skip this half, set by the failure handler on a
	// routing failure and cleared on a fresh accepted update.
	UnroutableUntil time.Time

	BaseFee         lnwire.MilliSatoshi
	ProportionalFee uint32
	TimeLockDelta   uint32
	HtlcMinimum     lnwire.MilliSatoshi

	// LastTimestamp is the timestamp of the last accepted update for
	// this direction. Newly created halves are seeded at
	// now - pruneTimeout/2 so an unseen direction is "half-aged" rather
	// than immediately eligible for pruning.
	LastTimestamp uint32

	// Raw is the last raw channel_update message applied to this half,
	// retained for broadcast re-publication.
	Raw []byte

	// BroadcastIndex is this half's handle into the broadcast
	// collaborator's index.
	BroadcastIndex BroadcastHandle
}

// Unroutable reports whether this half should be skipped by the pathfinder
// at time now: either explicitly inactive, or still serving out an
// unroutable-until penalty.
func (h *HalfChannel) Unroutable(now time.Time) bool {
	return !h.Active || now.Before(h.UnroutableUntil)
}

// Channel is a public or local channel between two nodes, identified by its
// short channel ID.
type Channel struct {
	ShortChannelID uint64

	ChainHash chainhash.Hash

	// Node1, Node2 are the channel's two endpoints in canonical order:
	// Node1.ID is lexicographically smaller than Node2.ID. Half[0] is
	// Node1's outgoing policy, Half[1] is Node2's.
	Node1 *Node
	Node2 *Node

	Capacity btcutil.Amount

	// Public reports whether the channel's funding output has been
	// observed on-chain. Local-only channels (operator pre-registered,
	// not yet or never to be publicly announced) have Public == false
	// and are exempt from pruning.
	Public bool

	// RawAnnouncement is the channel_announcement message backing this
	// channel, once public.
	RawAnnouncement []byte

	// BroadcastIndex is this channel's handle into the broadcast
	// collaborator's index for its announcement.
	BroadcastIndex BroadcastHandle

	Half [2]*HalfChannel
}

// newHalfChannel allocates a half-channel at the given array index: inactive
// until an update arrives, with LastTimestamp set to now - pruneTimeout/2.
func newHalfChannel(direction uint8, now time.Time, pruneTimeout time.Duration) *HalfChannel {
	seed := now.Add(-pruneTimeout / 2)
	return &HalfChannel{
		Direction:     direction,
		Active:        false,
		LastTimestamp: uint32(seed.Unix()),
	}
}

// Endpoint returns the node at the given half-channel index (0 or 1).
func (c *Channel) Endpoint(idx uint8) *Node {
	if idx == 0 {
		return c.Node1
	}
	return c.Node2
}

// OtherEndpoint returns the node on the opposite side of the channel from
// n, or nil if n is not one of this channel's endpoints.
func (c *Channel) OtherEndpoint(n *Node) *Node {
	switch {
	case c.Node1 == n:
		return c.Node2
	case c.Node2 == n:
		return c.Node1
	default:
		return nil
	}
}

// DirectionOf returns the half-channel index for the direction of travel
// leaving node n along this channel, and ok=false if n is not an endpoint.
func (c *Channel) DirectionOf(n *Node) (uint8, bool) {
	switch {
	case c.Node1 == n:
		return 0, true
	case c.Node2 == n:
		return 1, true
	default:
		return 0, false
	}
}

// DirectionInto returns the half-channel index representing forwarding
// *into* node n along this channel (the policy the node on the other side
// sets for sending to n), and ok=false if n is not an endpoint.
func (c *Channel) DirectionInto(n *Node) (uint8, bool) {
	idx, ok := c.DirectionOf(n)
	if !ok {
		return 0, false
	}
	// The half indexed by n's own endpoint slot is the policy *n*
	// issues for traffic leaving n; the other half is the policy for
	// traffic arriving at n.
	return 1 - idx, true
}
