package graph

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnroute/routingcore/lnwire"
)

// PendingChannel is a validated but not-yet-on-chain-confirmed channel
// announcement. It retains the unpacked announcement plus, for each
// direction, at most one deferred channel_update — whichever carries the
// newest timestamp seen while the channel was pending.
type PendingChannel struct {
	NodeID1 NodeID
	NodeID2 NodeID

	NodeKey1 *btcec.PublicKey
	NodeKey2 *btcec.PublicKey

	BitcoinKey1 *btcec.PublicKey
	BitcoinKey2 *btcec.PublicKey

	ChainHash chainhash.Hash

	RawAnnouncement []byte

	// DeferredUpdate holds, per direction, the newest-timestamped
	// channel_update offered while this channel was pending, or nil if
	// none has arrived yet.
	DeferredUpdate [2]*lnwire.ChannelUpdate
}

// nodeSlot is a pending-node-descriptor slot: a marker that some pending
// channel references this node id, plus at most one deferred
// node_announcement for it.
type nodeSlot struct {
	// refs counts how many still-pending channels reference this node
	// id. The slot is kept alive as long as refs > 0.
	refs int

	descriptor *lnwire.NodeAnnouncement
}

// PendingStaging holds both pending-staging collections: the set of
// pending channel announcements keyed by scid, and the map of pending
// node-descriptor slots keyed by node id.
//
// NOTE: pending channel entries carry no timeout, so a flood of
// unconfirmable announcements is unbounded memory growth. This module
// carries that limitation forward as-is rather than silently resolving
// it — see DESIGN.md.
type PendingStaging struct {
	channels map[uint64]*PendingChannel
	nodes    map[NodeID]*nodeSlot
}

func newPendingStaging() *PendingStaging {
	return &PendingStaging{
		channels: make(map[uint64]*PendingChannel),
		nodes:    make(map[NodeID]*nodeSlot),
	}
}

// Lookup returns the pending channel for scid, or nil if none is staged.
func (p *PendingStaging) Lookup(scid uint64) *PendingChannel {
	return p.channels[scid]
}

// Add stages a new pending channel announcement keyed by scid, and opens
// (or references) a pending-node slot for each endpoint. It returns false
// without effect if scid is already pending.
//
// The caller is responsible for having already rejected scid as a public
// channel: a scid is never both pending and public at once.
func (p *PendingStaging) Add(scid uint64, pc *PendingChannel) bool {
	if _, ok := p.channels[scid]; ok {
		return false
	}
	p.channels[scid] = pc
	p.refNode(pc.NodeID1)
	p.refNode(pc.NodeID2)
	return true
}

func (p *PendingStaging) refNode(id NodeID) {
	slot, ok := p.nodes[id]
	if !ok {
		slot = &nodeSlot{}
		p.nodes[id] = slot
	}
	slot.refs++
}

// hasNodeSlot reports whether a pending-node slot for id is resident, used
// by the graph store to decide whether an otherwise-orphaned node is still
// reachable.
func (p *PendingStaging) hasNodeSlot(id NodeID) bool {
	_, ok := p.nodes[id]
	return ok
}

// DeferUpdate stages upd for scid's given direction if it is newer than
// whatever is already staged there. It is a no-op if scid is not pending.
func (p *PendingStaging) DeferUpdate(scid uint64, direction uint8, upd *lnwire.ChannelUpdate) {
	pc, ok := p.channels[scid]
	if !ok {
		return
	}
	cur := pc.DeferredUpdate[direction]
	if cur != nil && cur.Timestamp >= upd.Timestamp {
		return
	}
	pc.DeferredUpdate[direction] = upd
}

// DeferNodeAnnouncement stages ann for id's pending slot if it is newer
// than whatever is already staged there. It returns false if no slot
// exists for id (the announcement is orphaned with no enabling channel
// announcement in flight).
func (p *PendingStaging) DeferNodeAnnouncement(id NodeID, ann *lnwire.NodeAnnouncement) bool {
	slot, ok := p.nodes[id]
	if !ok {
		return false
	}
	if slot.descriptor != nil && slot.descriptor.Timestamp >= ann.Timestamp {
		return true
	}
	slot.descriptor = ann
	return true
}

// Resolve removes scid from the pending set and releases both endpoints'
// node-slot references, returning one ResolvedNodeSlot for every slot
// whose reference count dropped to zero as a result, carrying that slot's
// deferred node_announcement (nil if none was staged).
//
// Resolve is called both on successful adoption into the graph and on
// explicit drop; the caller distinguishes those cases, this method only
// tears down the staging bookkeeping.
func (p *PendingStaging) Resolve(scid uint64) []ResolvedNodeSlot {
	pc, ok := p.channels[scid]
	if !ok {
		return nil
	}
	delete(p.channels, scid)

	var resolved []ResolvedNodeSlot
	for _, id := range [2]NodeID{pc.NodeID1, pc.NodeID2} {
		if r, ok := p.unrefNode(id); ok {
			resolved = append(resolved, r)
		}
	}
	return resolved
}

// ResolvedNodeSlot carries a pending node slot's deferred announcement
// (if any) back to the caller once the slot's last referencing pending
// channel is resolved.
type ResolvedNodeSlot struct {
	NodeID     NodeID
	Descriptor *lnwire.NodeAnnouncement
}

func (p *PendingStaging) unrefNode(id NodeID) (ResolvedNodeSlot, bool) {
	slot, ok := p.nodes[id]
	if !ok {
		return ResolvedNodeSlot{}, false
	}
	slot.refs--
	if slot.refs > 0 {
		return ResolvedNodeSlot{}, false
	}
	delete(p.nodes, id)
	return ResolvedNodeSlot{
		NodeID:     id,
		Descriptor: slot.descriptor,
	}, true
}
