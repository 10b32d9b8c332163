package routing

import (
	"testing"
	"time"

	"github.com/lnroute/routingcore/graph"
	"github.com/lnroute/routingcore/lnwire"
	"github.com/lnroute/routingcore/xcrypto"
)

// buildABCGraph builds a two-hop fixture: A-B with (base=0, ppm=1000,
// delay=10) and B-C with (base=1000, ppm=0, delay=10), each channel active
// only in the direction the route flows (A to B, B to C).
func buildABCGraph(t *testing.T) (store *graph.Store, a, b, c *graph.Node, chAB, chBC *graph.Channel) {
	t.Helper()
	store = newTestStore()

	ka := testPubKey(t, 0xA)
	kb := testPubKey(t, 0xB)
	kc := testPubKey(t, 0xC)

	chAB = store.CreateChannel(0xAB, ka, kb)
	chBC = store.CreateChannel(0xBC, kb, kc)

	a = store.LookupNode(graph.NodeIDFromPubKey(ka))
	b = store.LookupNode(graph.NodeIDFromPubKey(kb))
	c = store.LookupNode(graph.NodeIDFromPubKey(kc))

	setHalf(t, chAB, a, 0, 1000, 10)
	setHalf(t, chBC, b, 1000, 0, 10)

	return store, a, b, c, chAB, chBC
}

func TestGetRouteTwoHop(t *testing.T) {
	store, a, _, c, chAB, chBC := buildABCGraph(t)

	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})

	channels, fee, err := pf.GetRoute(a.ID, c.ID, 1_000_000, 0, 0, [16]byte{}, time.Now())
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if len(channels) != 2 || channels[0] != chAB || channels[1] != chBC {
		t.Fatalf("expected route [AB, BC], got %v", channels)
	}
	if fee != 1000 {
		t.Fatalf("expected total fee 1000, got %d", fee)
	}
}

func TestAssembleRouteTwoHop(t *testing.T) {
	store, a, b, c, chAB, chBC := buildABCGraph(t)

	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})
	channels, _, err := pf.GetRoute(a.ID, c.ID, 1_000_000, 0, 0, [16]byte{}, time.Now())
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}

	hops, err := AssembleRoute(channels, a.ID, 1_000_000, 9, 0)
	if err != nil {
		t.Fatalf("AssembleRoute: %v", err)
	}
	if len(hops) != 2 {
		t.Fatalf("expected 2 hops, got %d", len(hops))
	}

	want := []Hop{
		{ChannelID: chAB.ShortChannelID, NextNodeID: b.ID, AmountToForward: 1_001_000, CltvExpiry: 19},
		{ChannelID: chBC.ShortChannelID, NextNodeID: c.ID, AmountToForward: 1_000_000, CltvExpiry: 9},
	}
	for i, w := range want {
		if hops[i] != w {
			t.Fatalf("hop %d = %+v, want %+v", i, hops[i], w)
		}
	}
}

func TestGetRouteDisabledChannelHasNoRoute(t *testing.T) {
	store, a, _, c, chAB, _ := buildABCGraph(t)
	chAB.Half[0].Active = false
	chAB.Half[1].Active = false

	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})
	_, _, err := pf.GetRoute(a.ID, c.ID, 1_000_000, 0, 0, [16]byte{}, time.Now())
	if err != ErrNoRoute {
		t.Fatalf("expected ErrNoRoute with both AB halves disabled, got %v", err)
	}
}

func TestGetRouteSourceEqualsDestination(t *testing.T) {
	store, a, _, _, _, _ := buildABCGraph(t)
	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})

	_, _, err := pf.GetRoute(a.ID, a.ID, 1000, 0, 0, [16]byte{}, time.Now())
	if err != ErrNoRoute {
		t.Fatalf("expected ErrNoRoute for source == destination, got %v", err)
	}
}

func TestGetRouteUnknownNode(t *testing.T) {
	store, a, _, _, _, _ := buildABCGraph(t)
	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})

	var unknown graph.NodeID
	unknown[0] = 0xff

	_, _, err := pf.GetRoute(a.ID, unknown, 1000, 0, 0, [16]byte{}, time.Now())
	if err != ErrNoRoute {
		t.Fatalf("expected ErrNoRoute for an unknown destination, got %v", err)
	}
}

func TestGetRouteAmountTooLarge(t *testing.T) {
	store, a, _, c, _, _ := buildABCGraph(t)
	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})

	_, _, err := pf.GetRoute(a.ID, c.ID, lnwire.MilliSatoshi(MaxMilliSatoshi), 0, 0, [16]byte{}, time.Now())
	if err != ErrAmountTooLarge {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestGetRouteUnroutableHalfIsSkipped(t *testing.T) {
	store, a, _, c, chAB, _ := buildABCGraph(t)
	idx, _ := chAB.DirectionOf(a)
	chAB.Half[idx].UnroutableUntil = time.Now().Add(time.Hour)

	pf := New(Config{Store: store, Verifier: xcrypto.Default{}})
	_, _, err := pf.GetRoute(a.ID, c.ID, 1_000_000, 0, 0, [16]byte{}, time.Now())
	if err != ErrNoRoute {
		t.Fatalf("expected ErrNoRoute while AB's A-side half is penalized, got %v", err)
	}
}
