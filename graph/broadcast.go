package graph

// BroadcastHandle is the opaque slot handle the broadcast fan-out
// collaborator returns for a published message, retained by the owning
// node/channel/half-channel so a later update can replace it in place.
// Zero means "never published".
type BroadcastHandle uint64

// RoutingKeyTag identifies what a broadcast entry is keyed by: a short
// channel ID for channel announcements, a (scid, direction) pair for
// updates, or a node ID for node descriptors.
type RoutingKeyTag struct {
	ShortChannelID uint64
	Direction      uint8
	HasDirection   bool
	Node           NodeID
	HasNode        bool
}

// ChannelAnnouncementTag builds the routing-key tag for a channel
// announcement broadcast entry.
func ChannelAnnouncementTag(scid uint64) RoutingKeyTag {
	return RoutingKeyTag{ShortChannelID: scid}
}

// ChannelUpdateTag builds the routing-key tag for a channel_update
// broadcast entry.
func ChannelUpdateTag(scid uint64, direction uint8) RoutingKeyTag {
	return RoutingKeyTag{
		ShortChannelID: scid,
		Direction:      direction,
		HasDirection:   true,
	}
}

// NodeAnnouncementTag builds the routing-key tag for a node_announcement
// broadcast entry.
func NodeAnnouncementTag(id NodeID) RoutingKeyTag {
	return RoutingKeyTag{Node: id, HasNode: true}
}

// MessageType distinguishes the three gossip message kinds for the
// broadcast collaborator.
type MessageType uint8

const (
	MsgTypeChannelAnnouncement MessageType = iota
	MsgTypeChannelUpdate
	MsgTypeNodeAnnouncement
)

// BroadcastFanout is the outbound gossip collaborator: it replaces or
// indexes an outbound message by its prior slot handle and reports whether
// doing so replaced an already-indexed entry.
type BroadcastFanout interface {
	// ReplaceBroadcast indexes payload under the given routing key,
	// replacing whatever was previously stored at slot (if slot is
	// non-zero). It returns the (possibly new) slot handle and whether
	// an existing entry was replaced.
	ReplaceBroadcast(slot BroadcastHandle, msgType MessageType,
		key RoutingKeyTag, payload []byte) (BroadcastHandle, bool)
}
