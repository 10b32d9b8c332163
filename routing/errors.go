package routing

import "fmt"

// Sentinel errors returned by the pathfinder and route assembler.
var (
	// ErrNoRoute is returned whenever no path satisfying the request
	// exists: source == destination, either endpoint is unknown, or
	// every relaxation pass left the source's slots at infinity. An
	// amount at or above MaxMilliSatoshi is reported as
	// ErrAmountTooLarge instead.
	ErrNoRoute = fmt.Errorf("routing: no route found")

	// ErrAmountTooLarge is returned when the caller's requested amount
	// is at or above MaxMilliSatoshi, before any search is attempted.
	ErrAmountTooLarge = fmt.Errorf("routing: amount exceeds MAX_MSATOSHI")

	// errRouteDesync indicates route assembly's backward walk did not
	// land on the requested source, signaling a channel list that
	// wasn't actually produced by this package's own pathfinder.
	errRouteDesync = fmt.Errorf("routing: assembled route does not end at source")
)
