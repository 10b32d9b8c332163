package lnwire

import "fmt"

// ShortChannelID represents the set of on-chain coordinates that uniquely
// identify a channel's funding output: the height of the block the funding
// transaction was mined in, the transaction's index within that block, and
// the output index within the transaction. Packed together they form the
// 64-bit short channel id (scid) used throughout gossip.
//
//	| 3 bytes  |  3 bytes  | 2 bytes |
//	| block    |  tx index | output  |
type ShortChannelID struct {
	BlockHeight uint32
	TxIndex     uint32
	TxPosition  uint16
}

// ToUint64 packs the short channel ID into its wire representation.
func (scid ShortChannelID) ToUint64() uint64 {
	return ((uint64(scid.BlockHeight) << 40) |
		(uint64(scid.TxIndex) << 16) |
		uint64(scid.TxPosition))
}

// NewShortChanIDFromInt unpacks a 64-bit short channel ID into its
// constituent block height, tx index, and output index.
func NewShortChanIDFromInt(chanID uint64) ShortChannelID {
	return ShortChannelID{
		BlockHeight: uint32(chanID >> 40),
		TxIndex:     uint32(chanID>>16) & 0xFFFFFF,
		TxPosition:  uint16(chanID),
	}
}

// String returns the string representation of the short channel ID.
func (scid ShortChannelID) String() string {
	return fmt.Sprintf("%dx%dx%d", scid.BlockHeight, scid.TxIndex,
		scid.TxPosition)
}
