package graph

import (
	"testing"

	"github.com/lnroute/routingcore/lnwire"
)

func TestPendingStagingAddRejectsDuplicate(t *testing.T) {
	p := newPendingStaging()

	pc := &PendingChannel{NodeID1: NodeID{1}, NodeID2: NodeID{2}}
	if !p.Add(1, pc) {
		t.Fatalf("first Add should succeed")
	}
	if p.Add(1, &PendingChannel{NodeID1: NodeID{1}, NodeID2: NodeID{2}}) {
		t.Fatalf("duplicate Add for the same scid must fail")
	}
}

func TestDeferUpdateKeepsNewestTimestamp(t *testing.T) {
	p := newPendingStaging()
	p.Add(1, &PendingChannel{NodeID1: NodeID{1}, NodeID2: NodeID{2}})

	p.DeferUpdate(1, 0, &lnwire.ChannelUpdate{Timestamp: 100})
	p.DeferUpdate(1, 0, &lnwire.ChannelUpdate{Timestamp: 50})

	pc := p.Lookup(1)
	if pc.DeferredUpdate[0].Timestamp != 100 {
		t.Fatalf("older update must not replace a newer deferred one, got %d",
			pc.DeferredUpdate[0].Timestamp)
	}
}

func TestResolveUnrefsBothEndpointsAndReturnsDescriptor(t *testing.T) {
	p := newPendingStaging()
	nodeA := NodeID{1}
	nodeB := NodeID{2}
	p.Add(1, &PendingChannel{NodeID1: nodeA, NodeID2: nodeB})

	desc := &lnwire.NodeAnnouncement{Timestamp: 5}
	if ok := p.DeferNodeAnnouncement(nodeA, desc); !ok {
		t.Fatalf("expected a slot for nodeA to exist")
	}

	resolved := p.Resolve(1)
	if len(resolved) != 2 {
		t.Fatalf("expected both endpoints' slots to resolve, got %d", len(resolved))
	}

	var sawDescriptor bool
	for _, r := range resolved {
		if r.NodeID == nodeA {
			if r.Descriptor != desc {
				t.Fatalf("nodeA's resolved slot should carry the deferred descriptor")
			}
			sawDescriptor = true
		}
	}
	if !sawDescriptor {
		t.Fatalf("did not see nodeA's resolved slot")
	}

	if p.hasNodeSlot(nodeA) || p.hasNodeSlot(nodeB) {
		t.Fatalf("slots should be gone after resolution")
	}
	if p.Lookup(1) != nil {
		t.Fatalf("pending channel should be gone after resolution")
	}
}

func TestRefCountedNodeSlotSurvivesUntilLastPendingChannelResolves(t *testing.T) {
	p := newPendingStaging()
	shared := NodeID{9}

	p.Add(1, &PendingChannel{NodeID1: shared, NodeID2: NodeID{1}})
	p.Add(2, &PendingChannel{NodeID1: shared, NodeID2: NodeID{2}})

	resolved := p.Resolve(1)
	for _, r := range resolved {
		if r.NodeID == shared {
			t.Fatalf("shared slot must not resolve while channel 2 is still pending")
		}
	}
	if !p.hasNodeSlot(shared) {
		t.Fatalf("shared slot should still be resident")
	}

	resolved = p.Resolve(2)
	var sawShared bool
	for _, r := range resolved {
		if r.NodeID == shared {
			sawShared = true
		}
	}
	if !sawShared {
		t.Fatalf("shared slot should resolve once its last referencing channel resolves")
	}
}
