// Package pathfinding exposes the route-request channel mobs will use
// once a real mob AI design exists. Until then it offers only
// TestMobChannel, a no-op implementation that always reports an empty
// route: spec.md explicitly leaves mob navigation a stub rather than
// porting the source's full A* search.
package pathfinding

import (
	"context"

	"hexworld/internal/hexmath"
)

// GlobalCoord addresses a block independent of any one chunk's local
// frame: (lon,lat) selects the chunk, (x,y,z) the cell within it.
type GlobalCoord struct {
	Lon, Lat int32
	X, Y, Z  int
}

// Route is an ordered list of waypoints a mob would walk between From and
// To. A TestMobChannel route is always empty.
type Route struct {
	Waypoints []hexmath.Coord
}

// RouteRequester is the interface a scheduler or mob controller uses to
// ask for a path between two points without depending on a concrete
// implementation.
type RouteRequester interface {
	RequestRoute(ctx context.Context, from, to GlobalCoord) (Route, error)
}

// TestMobChannel is a RouteRequester that never searches: it exists so
// code that depends on routing can be wired and tested before a mob AI
// design lands.
type TestMobChannel struct{}

// NewTestMobChannel returns a ready-to-use no-op route requester.
func NewTestMobChannel() *TestMobChannel { return &TestMobChannel{} }

// RequestRoute always succeeds with an empty route.
func (TestMobChannel) RequestRoute(ctx context.Context, from, to GlobalCoord) (Route, error) {
	return Route{}, nil
}
