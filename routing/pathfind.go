// Package routing implements the pathfinder, route assembler, failure
// handler, and pruner: an amount-aware, hop-indexed Bellman-Ford search
// over the channel graph maintained by package graph, plus the feedback
// loop that keeps that graph's liveness state honest.
package routing

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/lnroute/routingcore/graph"
	"github.com/lnroute/routingcore/lnwire"
	"github.com/lnroute/routingcore/xcrypto"
)

// Config bundles a Pathfinder's collaborators: the graph it searches, and
// the cryptographic primitive used to derive deterministic per-request fee
// fuzz.
type Config struct {
	Store    *graph.Store
	Verifier xcrypto.Verifier
}

// Pathfinder answers GetRoute queries against a Config's graph store.
type Pathfinder struct {
	cfg Config
}

// New returns a Pathfinder operating against cfg.
func New(cfg Config) *Pathfinder {
	return &Pathfinder{cfg: cfg}
}

// hopSlot is one entry of a node's per-request scratch array: the
// cheapest-known way to reach the search destination from this node in
// exactly this many hops — the total amount that would arrive at this
// node, the accumulated time-lock risk, and the channel that relaxed into
// this slot.
type hopSlot struct {
	total float64
	risk  float64
	pred  *graph.Channel
}

// GetRoute runs the backward hop-indexed Bellman-Ford search and returns
// the ordered channel list from from to to, plus the total fee the route
// accumulates. now gates which half-channels are currently routable; seed
// and fuzz derive a deterministic per-request fee perturbation applied to
// each edge's fee.
func (p *Pathfinder) GetRoute(from, to graph.NodeID, amount lnwire.MilliSatoshi,
	riskFactor, fuzz float64, seed [16]byte, now time.Time) ([]*graph.Channel, lnwire.MilliSatoshi, error) {

	if uint64(amount) >= MaxMilliSatoshi {
		return nil, 0, ErrAmountTooLarge
	}
	if from == to {
		return nil, 0, ErrNoRoute
	}

	fromNode := p.cfg.Store.LookupNode(from)
	toNode := p.cfg.Store.LookupNode(to)
	if fromNode == nil || toNode == nil {
		return nil, 0, ErrNoRoute
	}

	scratch := make(map[graph.NodeID]*[MaxHops + 1]hopSlot)
	_ = p.cfg.Store.ForEachNode(func(n *graph.Node) error {
		var slots [MaxHops + 1]hopSlot
		for h := range slots {
			slots[h] = hopSlot{total: math.Inf(1)}
		}
		scratch[n.ID] = &slots
		return nil
	})

	scratch[to][0] = hopSlot{total: float64(amount)}

	normRisk := normalizeRiskFactor(riskFactor)

	for pass := 0; pass < MaxHops; pass++ {
		_ = p.cfg.Store.ForEachNode(func(n *graph.Node) error {
			nSlots := scratch[n.ID]
			for _, c := range n.Channels {
				idx, ok := c.DirectionInto(n)
				if !ok {
					continue
				}
				half := c.Half[idx]
				if half.Unroutable(now) {
					continue
				}
				src := c.Endpoint(idx)
				srcSlots := scratch[src.ID]

				for h := 0; h < MaxHops; h++ {
					if math.IsInf(nSlots[h].total, 1) {
						continue
					}

					fee := connectionFee(half, nSlots[h].total) *
						p.fuzzScale(c.ShortChannelID, fuzz, seed)
					risk := nSlots[h].risk + riskFee(
						nSlots[h].total+fee, half.TimeLockDelta, normRisk,
					)

					if nSlots[h].total+fee+risk >= MaxMilliSatoshi {
						continue
					}

					newTotal := nSlots[h].total + fee
					if newTotal+risk < srcSlots[h+1].total+srcSlots[h+1].risk {
						srcSlots[h+1] = hopSlot{
							total: newTotal,
							risk:  risk,
							pred:  c,
						}
					}
				}
			}
			return nil
		})
	}

	fromSlots := scratch[from]
	hStar := -1
	best := math.Inf(1)
	for h := 1; h <= MaxHops; h++ {
		if fromSlots[h].total < best {
			best = fromSlots[h].total
			hStar = h
		}
	}
	if hStar < 0 || math.IsInf(best, 1) {
		return nil, 0, ErrNoRoute
	}

	var channels []*graph.Channel
	cur := fromNode
	for h := hStar; h > 0; h-- {
		s := scratch[cur.ID][h]
		if s.pred == nil {
			return nil, 0, errRouteDesync
		}
		channels = append(channels, s.pred)
		cur = s.pred.OtherEndpoint(cur)
	}
	if cur != toNode {
		return nil, 0, errRouteDesync
	}

	firstHop := channels[0].OtherEndpoint(fromNode)
	fee := scratch[firstHop.ID][hStar-1].total - float64(amount)

	return channels, lnwire.MilliSatoshi(math.Round(fee)), nil
}

// connectionFee is the fee model a channel charges to forward amount:
// base + floor(ppm * amount / 1e6).
func connectionFee(half *graph.HalfChannel, amount float64) float64 {
	return float64(half.BaseFee) +
		math.Floor(float64(half.ProportionalFee)*amount/1_000_000)
}

// riskFee is the linear time-lock risk term: 1 + amount*delay*risk_factor,
// the leading 1 breaking ties in favor of shorter routes.
func riskFee(amount float64, delay uint32, normalizedRiskFactor float64) float64 {
	return 1 + amount*float64(delay)*normalizedRiskFactor
}

// fuzzScale derives the deterministic per-edge fee multiplier: a factor in
// [1-fuzz, 1+fuzz] from SipHash24(seed, scid) normalized to [0,1]. fuzz <= 0
// disables perturbation entirely.
func (p *Pathfinder) fuzzScale(scid uint64, fuzz float64, seed [16]byte) float64 {
	if fuzz <= 0 {
		return 1
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], scid)
	h := p.cfg.Verifier.SipHash24(seed, buf[:])
	norm := float64(h) / float64(math.MaxUint64)
	return (1 - fuzz) + 2*fuzz*norm
}
