package routing

import (
	"time"

	"github.com/lnroute/routingcore/graph"
	"github.com/lnroute/routingcore/lnwire"
)

// Failure code bits: failcode is a bitmask carrying at least the flags
// NODE, PERM, and UPDATE.
const (
	FailNode   uint16 = 1 << 0
	FailPerm   uint16 = 1 << 1
	FailUpdate uint16 = 1 << 2
)

// UpdateApplier is the subset of discovery.AuthenticatedGossiper the
// failure handler needs: replaying a channel_update alongside a routing
// failure, feeding it back through ordinary gossip ingestion. Declared
// here rather than importing package discovery so that an embedder can
// wire in whatever gossiper implementation it likes;
// *discovery.AuthenticatedGossiper satisfies this directly.
type UpdateApplier interface {
	ProcessChannelUpdate(u *lnwire.ChannelUpdate) error
}

// FailureHandler applies onion-decoded routing failures to the graph:
// per-channel penalties on forwarding errors, with an optional fresher
// channel_update re-enabling the affected direction.
type FailureHandler struct {
	store   *graph.Store
	applier UpdateApplier
}

// NewFailureHandler returns a handler operating against store, replaying
// accepted UPDATE payloads through applier.
func NewFailureHandler(store *graph.Store, applier UpdateApplier) *FailureHandler {
	return &FailureHandler{store: store, applier: applier}
}

// Report is the decoded shape of an onion-relayed routing failure: the
// erring node, the channel it named, a failure code, and an optional
// fresher channel_update carried alongside an UPDATE failure.
type Report struct {
	ErringNode  graph.NodeID
	ShortChanID uint64
	FailCode    uint16

	// Update is the fresher channel_update carried alongside an UPDATE
	// failcode, already decoded upstream, or nil if none was provided.
	// Its Raw field is peeked (not reparsed) to confirm it is in fact a
	// channel_update before being replayed.
	Update *lnwire.ChannelUpdate
}

// Apply applies report's penalty to the graph and, if the UPDATE flag is
// set and Update peeks as a channel_update, replays it through the
// handler's UpdateApplier after applying the penalty, so that a fresher
// legitimate update may re-enable the channel. A report naming an unknown
// erring node, an unknown channel, or a channel the erring node is not a
// party to changes nothing: no penalty is applied and Update is not
// replayed.
func (f *FailureHandler) Apply(report Report, now time.Time) {
	erringNode := f.store.LookupNode(report.ErringNode)
	if erringNode == nil {
		// Unknown node: nothing to penalize, and the UPDATE rule is a
		// no-op, so any carried update is not replayed.
		return
	}

	if report.FailCode&FailNode != 0 {
		// Destroying a channel mutates erringNode.Channels, so collect
		// the affected channels before touching any of them.
		affected := make([]*graph.Channel, 0, len(erringNode.Channels))
		for _, c := range erringNode.Channels {
			affected = append(affected, c)
		}
		for _, c := range affected {
			f.penalizeFromNode(c, erringNode, report.FailCode, now)
		}
	} else {
		c := f.store.LookupChannel(report.ShortChanID)
		switch {
		case c == nil:
			log.Debugf("routing failure for unknown channel %d, ignoring",
				report.ShortChanID)
			return
		case c.Node1 != erringNode && c.Node2 != erringNode:
			// The failure names a channel the erring node isn't
			// even party to.
			log.Warnf("unusual: routing failure names node %v not "+
				"party to channel %d", report.ErringNode, report.ShortChanID)
			return
		default:
			f.penalizeFromNode(c, erringNode, report.FailCode, now)
		}
	}

	f.replayUpdate(report)
}

func (f *FailureHandler) replayUpdate(report Report) {
	if report.FailCode&FailUpdate == 0 || report.Update == nil {
		return
	}
	msgType, ok := lnwire.PeekMessageType(report.Update.Raw)
	if !ok || msgType != lnwire.MsgChannelUpdate {
		log.Warnf("unusual: routing failure carried a non-update "+
			"payload for channel %d", report.ShortChanID)
		return
	}
	if err := f.applier.ProcessChannelUpdate(report.Update); err != nil {
		log.Tracef("replayed channel_update for %d rejected: %v",
			report.ShortChanID, err)
	}
}

// penalizeFromNode applies the per-channel penalty to the half that leaves
// erringNode toward its peer on c: a temporary unroutable deadline, or
// outright destruction if PERM is set.
func (f *FailureHandler) penalizeFromNode(c *graph.Channel, erringNode *graph.Node,
	failCode uint16, now time.Time) {

	idx, ok := c.DirectionOf(erringNode)
	if !ok {
		return
	}

	if failCode&FailPerm != 0 {
		f.store.DestroyChannel(c)
		return
	}

	c.Half[idx].UnroutableUntil = now.Add(UnroutablePenalty)
}

// MarkUnroutable sets unroutable_until = now + UnroutablePenalty on both
// halves of scid, for a caller-driven request to mark a specific scid
// unroutable. It is a no-op if scid is unknown.
func (f *FailureHandler) MarkUnroutable(scid uint64, now time.Time) {
	c := f.store.LookupChannel(scid)
	if c == nil {
		return
	}
	deadline := now.Add(UnroutablePenalty)
	c.Half[0].UnroutableUntil = deadline
	c.Half[1].UnroutableUntil = deadline
}
