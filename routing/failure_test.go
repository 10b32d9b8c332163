package routing

import (
	"testing"
	"time"

	"github.com/lnroute/routingcore/graph"
	"github.com/lnroute/routingcore/lnwire"
)

// fakeApplier records replayed channel_updates without touching a real
// graph.Store, so these tests can assert on the replay path in isolation.
type fakeApplier struct {
	applied []*lnwire.ChannelUpdate
	err     error
}

func (f *fakeApplier) ProcessChannelUpdate(u *lnwire.ChannelUpdate) error {
	f.applied = append(f.applied, u)
	return f.err
}

func buildTwoPartyChannel(t *testing.T) (store *graph.Store, a, b *graph.Node, c *graph.Channel) {
	t.Helper()
	store = newTestStore()
	ka := testPubKey(t, 0x10)
	kb := testPubKey(t, 0x11)
	c = store.CreateChannel(1, ka, kb)
	a = store.LookupNode(graph.NodeIDFromPubKey(ka))
	b = store.LookupNode(graph.NodeIDFromPubKey(kb))
	setHalf(t, c, a, 0, 0, 10)
	setHalf(t, c, b, 0, 0, 10)
	return store, a, b, c
}

// An UPDATE failure penalizes the erring side, and a replayed
// channel_update is handed to the applier.
func TestApplyTemporaryUpdateFailurePenalizesAndReplays(t *testing.T) {
	store, a, _, c := buildTwoPartyChannel(t)
	applier := &fakeApplier{}
	fh := NewFailureHandler(store, applier)

	now := time.Now()
	raw := make([]byte, lnwire.ChannelUpdateSigOffset+1)
	raw[0] = byte(lnwire.MsgChannelUpdate >> 8)
	raw[1] = byte(lnwire.MsgChannelUpdate)
	upd := &lnwire.ChannelUpdate{
		ShortChannelID: lnwire.NewShortChanIDFromInt(c.ShortChannelID),
		Timestamp:      uint32(now.Unix()) + 100,
		Raw:            raw,
	}

	fh.Apply(Report{
		ErringNode:  a.ID,
		ShortChanID: c.ShortChannelID,
		FailCode:    FailUpdate,
		Update:      upd,
	}, now)

	idx, _ := c.DirectionOf(a)
	if !c.Half[idx].UnroutableUntil.After(now) {
		t.Fatalf("expected a's outgoing half to be penalized")
	}
	if len(applier.applied) != 1 || applier.applied[0] != upd {
		t.Fatalf("expected the update to be replayed through the applier, got %v", applier.applied)
	}
}

// PERM destroys the channel outright rather than merely penalizing it.
func TestApplyPermFailureDestroysChannel(t *testing.T) {
	store, a, _, c := buildTwoPartyChannel(t)
	fh := NewFailureHandler(store, &fakeApplier{})

	fh.Apply(Report{
		ErringNode:  a.ID,
		ShortChanID: c.ShortChannelID,
		FailCode:    FailPerm,
	}, time.Now())

	if store.LookupChannel(c.ShortChannelID) != nil {
		t.Fatalf("expected the channel to be destroyed on a PERM failure")
	}
}

// NODE penalizes every channel incident to the erring node, not just the
// one named in the report.
func TestApplyNodeFailurePenalizesAllIncidentChannels(t *testing.T) {
	store := newTestStore()
	ka := testPubKey(t, 0x20)
	kb := testPubKey(t, 0x21)
	kc := testPubKey(t, 0x22)

	c1 := store.CreateChannel(1, ka, kb)
	c2 := store.CreateChannel(2, ka, kc)
	a := store.LookupNode(graph.NodeIDFromPubKey(ka))
	b := store.LookupNode(graph.NodeIDFromPubKey(kb))
	c := store.LookupNode(graph.NodeIDFromPubKey(kc))
	setHalf(t, c1, a, 0, 0, 10)
	setHalf(t, c1, b, 0, 0, 10)
	setHalf(t, c2, a, 0, 0, 10)
	setHalf(t, c2, c, 0, 0, 10)

	fh := NewFailureHandler(store, &fakeApplier{})
	now := time.Now()

	fh.Apply(Report{
		ErringNode: a.ID,
		FailCode:   FailNode,
	}, now)

	idx1, _ := c1.DirectionOf(a)
	idx2, _ := c2.DirectionOf(a)
	if !c1.Half[idx1].UnroutableUntil.After(now) {
		t.Fatalf("expected c1's a-side half to be penalized")
	}
	if !c2.Half[idx2].UnroutableUntil.After(now) {
		t.Fatalf("expected c2's a-side half to be penalized")
	}
}

// NODE|PERM destroys every channel incident to the erring node, a case that
// mutates the very map the handler must range over to find them.
func TestApplyNodePermFailureDestroysAllIncidentChannels(t *testing.T) {
	store := newTestStore()
	ka := testPubKey(t, 0x30)
	kb := testPubKey(t, 0x31)
	kc := testPubKey(t, 0x32)

	store.CreateChannel(1, ka, kb)
	store.CreateChannel(2, ka, kc)
	a := store.LookupNode(graph.NodeIDFromPubKey(ka))

	fh := NewFailureHandler(store, &fakeApplier{})
	fh.Apply(Report{
		ErringNode: a.ID,
		FailCode:   FailNode | FailPerm,
	}, time.Now())

	if store.LookupChannel(1) != nil || store.LookupChannel(2) != nil {
		t.Fatalf("expected both of a's channels to be destroyed")
	}
	if store.LookupNode(a.ID) != nil {
		t.Fatalf("expected a to be orphaned and removed along with its channels")
	}
}

func TestApplyUnknownChannelIsIgnored(t *testing.T) {
	store, a, _, _ := buildTwoPartyChannel(t)
	fh := NewFailureHandler(store, &fakeApplier{})

	// Should not panic despite naming a channel that doesn't exist.
	fh.Apply(Report{
		ErringNode:  a.ID,
		ShortChanID: 0xdeadbeef,
		FailCode:    0,
	}, time.Now())
}

func TestApplyWrongPartyIsIgnored(t *testing.T) {
	store, _, _, c := buildTwoPartyChannel(t)
	outsider := testPubKey(t, 0x40)
	outsiderID := graph.NodeIDFromPubKey(outsider)

	// Give the outsider a channel of its own so LookupNode resolves it;
	// otherwise Apply would take the unknown-node path instead of the
	// not-a-party-to-scid path this test means to exercise.
	third := testPubKey(t, 0x41)
	store.CreateChannel(2, outsider, third)

	fh := NewFailureHandler(store, &fakeApplier{})
	fh.Apply(Report{
		ErringNode:  outsiderID,
		ShortChanID: c.ShortChannelID,
		FailCode:    0,
	}, time.Now())

	if c.Half[0].UnroutableUntil.After(time.Now().Add(-time.Second)) &&
		!c.Half[0].UnroutableUntil.IsZero() {
		t.Fatalf("a channel's halves must not be penalized by a non-party node")
	}
}

func TestMarkUnroutablePenalizesBothHalves(t *testing.T) {
	store, _, _, c := buildTwoPartyChannel(t)
	fh := NewFailureHandler(store, &fakeApplier{})

	now := time.Now()
	fh.MarkUnroutable(c.ShortChannelID, now)

	if !c.Half[0].UnroutableUntil.After(now) || !c.Half[1].UnroutableUntil.After(now) {
		t.Fatalf("expected both halves to carry a future unroutable_until")
	}
}
