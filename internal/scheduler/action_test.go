package scheduler

import (
	"testing"

	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/world"
)

func TestBuildPlacesBlockInAirCell(t *testing.T) {
	s := newTestScheduler(t)
	g := world.GlobalHex(s.mgr.Longitude()+4, s.mgr.Latitude()+4, 5, 5)
	s.SubmitBuild(int(g.X), int(g.Y), 100, block.Stone, hexmath.Forward, hexmath.Up)
	s.tick()

	c, _ := s.mgr.ChunkAt(s.mgr.Longitude()+4, s.mgr.Latitude()+4)
	if h := c.BlockAt(5, 5, 100); h.Type != block.Stone {
		t.Fatalf("expected stone placed at the built cell, got %v", h.Type)
	}
}

func TestBuildIgnoredWhenTargetNotAir(t *testing.T) {
	s := newTestScheduler(t)
	col, row := int32(4), int32(4)
	c, _ := s.mgr.ChunkAt(s.mgr.Longitude()+col, s.mgr.Latitude()+row)
	c.SetBlock(5, 5, 100, block.Soil)

	g := world.GlobalHex(s.mgr.Longitude()+col, s.mgr.Latitude()+row, 5, 5)
	s.SubmitBuild(int(g.X), int(g.Y), 100, block.Stone, hexmath.Forward, hexmath.Up)
	s.tick()

	if h := c.BlockAt(5, 5, 100); h.Type != block.Soil {
		t.Fatalf("expected the occupied cell to be left untouched, got %v", h.Type)
	}
}

func TestBuildIgnoredWhenZOutOfBounds(t *testing.T) {
	s := newTestScheduler(t)
	g := world.GlobalHex(s.mgr.Longitude()+4, s.mgr.Latitude()+4, 5, 5)

	s.SubmitBuild(int(g.X), int(g.Y), -1, block.Stone, hexmath.Forward, hexmath.Up)
	s.SubmitBuild(int(g.X), int(g.Y), world.Height, block.Stone, hexmath.Forward, hexmath.Up)
	s.tick()
}

func TestBuildIgnoredWhenOutsideLoadedWindow(t *testing.T) {
	s := newTestScheduler(t)
	s.SubmitBuild(1_000_000, 1_000_000, 10, block.Stone, hexmath.Forward, hexmath.Up)
	s.tick()
}

func TestDestroyRevertsCellToAir(t *testing.T) {
	s := newTestScheduler(t)
	col, row := int32(4), int32(4)
	c, _ := s.mgr.ChunkAt(s.mgr.Longitude()+col, s.mgr.Latitude()+row)
	c.SetBlock(5, 5, 100, block.Stone)

	g := world.GlobalHex(s.mgr.Longitude()+col, s.mgr.Latitude()+row, 5, 5)
	s.SubmitDestroy(int(g.X), int(g.Y), 100)
	s.tick()

	if h := c.BlockAt(5, 5, 100); h.Type != block.Air {
		t.Fatalf("expected destroyed cell to read air, got %v", h.Type)
	}
}
