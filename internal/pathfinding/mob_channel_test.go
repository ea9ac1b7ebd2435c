package pathfinding

import (
	"context"
	"testing"
)

func TestTestMobChannelReturnsEmptyRoute(t *testing.T) {
	ch := NewTestMobChannel()
	route, err := ch.RequestRoute(context.Background(), GlobalCoord{}, GlobalCoord{Lon: 1, Lat: 1})
	if err != nil {
		t.Fatalf("RequestRoute: %v", err)
	}
	if len(route.Waypoints) != 0 {
		t.Fatalf("expected an empty route from the stub channel")
	}
}
