package lnwire

// MessageType identifies the two-byte wire type prefix of a gossip message.
// Deserialization of the envelope itself happens upstream of this module;
// this core only ever peeks at the type of a nested channel_update when
// replaying a failure message.
type MessageType uint16

const (
	MsgChannelAnnouncement MessageType = 256
	MsgNodeAnnouncement    MessageType = 257
	MsgChannelUpdate       MessageType = 258
)

const (
	// ChannelAnnouncementSigOffset is the byte offset at which the
	// signed payload of a channel_announcement begins: 2 bytes of
	// message type plus four 64-byte signatures.
	ChannelAnnouncementSigOffset = 2 + 4*64

	// ChannelUpdateSigOffset is the byte offset at which the signed
	// payload of a channel_update begins: 2 bytes of message type plus
	// one 64-byte signature.
	ChannelUpdateSigOffset = 2 + 64

	// NodeAnnouncementSigOffset is the byte offset at which the signed
	// payload of a node_announcement begins: 2 bytes of message type
	// plus one 64-byte signature.
	NodeAnnouncementSigOffset = 2 + 64
)

// SignedPayload slices off the fixed type+signature prefix of a raw gossip
// message, returning the remainder that the attached signature(s) commit
// to. Callers past this point operate only on the portion of the message
// that was actually signed.
func SignedPayload(raw []byte, offset int) []byte {
	if len(raw) < offset {
		return nil
	}
	return raw[offset:]
}

// PeekMessageType reads the two-byte big-endian message type prefixing raw,
// without otherwise interpreting the message. Used by the failure handler
// to confirm a replayed channel_update_bytes blob is in fact a
// channel_update before feeding it through ordinary ingestion.
func PeekMessageType(raw []byte) (MessageType, bool) {
	if len(raw) < 2 {
		return 0, false
	}
	return MessageType(uint16(raw[0])<<8 | uint16(raw[1])), true
}
