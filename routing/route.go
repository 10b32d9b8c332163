package routing

import (
	"github.com/lnroute/routingcore/graph"
	"github.com/lnroute/routingcore/lnwire"
)

// Hop is one entry of an assembled route: the channel to forward over, the
// node reached by doing so, the exact amount to forward across it, and the
// absolute block height its HTLC must expire by.
type Hop struct {
	ChannelID       uint64
	NextNodeID      graph.NodeID
	AmountToForward lnwire.MilliSatoshi
	CltvExpiry      uint32
}

// AssembleRoute converts a pathfinder's channel list into the per-hop
// amount/time-lock schedule. channels must run from source to destination
// in forward order (the Pathfinder.GetRoute contract); amount
// is the quantity the destination is to receive, currentHeight the block
// height the hops' CltvExpiry values are computed relative to.
//
// The walk is backward, starting at the destination: amount accumulates
// each hop's fee and cltvDelta accumulates each hop's time-lock delta,
// mirroring the pathfinder's own backward search so the two stay
// consistent. AssembleRoute asserts the walk ends at source.
func AssembleRoute(channels []*graph.Channel, source graph.NodeID,
	amount lnwire.MilliSatoshi, finalCltvDelta uint16, currentHeight uint32) ([]Hop, error) {

	if len(channels) == 0 || len(channels) > MaxHops {
		return nil, ErrNoRoute
	}

	hops := make([]Hop, len(channels))

	runningAmount := float64(amount)
	cltvDelta := uint32(finalCltvDelta)

	// Recover the node sequence implied by the channel list by walking
	// from source forward, since Channel only exposes its two
	// endpoints, not a direction of travel.
	nodes := make([]*graph.Node, len(channels)+1)
	cur := lookupEndpoint(channels[0], source)
	if cur == nil {
		return nil, errRouteDesync
	}
	nodes[0] = cur
	for i, c := range channels {
		next := c.OtherEndpoint(cur)
		if next == nil {
			return nil, errRouteDesync
		}
		nodes[i+1] = next
		cur = next
	}

	for i := len(channels) - 1; i >= 0; i-- {
		c := channels[i]
		into := nodes[i+1]

		hops[i] = Hop{
			ChannelID:       c.ShortChannelID,
			NextNodeID:      into.ID,
			AmountToForward: lnwire.MilliSatoshi(runningAmount),
			CltvExpiry:      currentHeight + cltvDelta,
		}

		if i == 0 {
			break
		}

		// The fee for hop i is charged by the node forwarding across
		// it: the half representing traffic arriving at `into`,
		// i.e. DirectionInto(into).
		idx, ok := c.DirectionInto(into)
		if !ok {
			return nil, errRouteDesync
		}
		half := c.Half[idx]

		runningAmount += connectionFee(half, runningAmount)
		cltvDelta += half.TimeLockDelta
	}

	if nodes[0].ID != source {
		return nil, errRouteDesync
	}

	return hops, nil
}

func lookupEndpoint(c *graph.Channel, id graph.NodeID) *graph.Node {
	if c.Node1.ID == id {
		return c.Node1
	}
	if c.Node2.ID == id {
		return c.Node2
	}
	return nil
}
