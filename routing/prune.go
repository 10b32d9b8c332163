package routing

import (
	"time"

	"github.com/lnroute/routingcore/graph"
)

// Pruner periodically sweeps the graph for stale public channels.
type Pruner struct {
	store *graph.Store
}

// NewPruner returns a pruner operating against store.
func NewPruner(store *graph.Store) *Pruner {
	return &Pruner{store: store}
}

// Sweep destroys every public channel whose both halves have gone stale
// past store.PruneTimeout: with highwater = now - prune_timeout, every
// public channel whose both halves have last_timestamp < highwater is
// destroyed. Local-only channels are exempt. Candidates are collected
// during iteration and destroyed afterward, since destruction
// mid-iteration is unsupported by graph.Store's iterators.
func (p *Pruner) Sweep(now time.Time) int {
	highwater := uint32(now.Add(-p.store.PruneTimeout).Unix())

	var stale []*graph.Channel
	_ = p.store.ForEachChannel(func(c *graph.Channel) error {
		if !c.Public {
			return nil
		}
		if c.Half[0].LastTimestamp < highwater && c.Half[1].LastTimestamp < highwater {
			stale = append(stale, c)
		}
		return nil
	})

	for _, c := range stale {
		p.store.DestroyChannel(c)
	}

	return len(stale)
}
