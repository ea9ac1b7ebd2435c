package light

import (
	"testing"

	"hexworld/internal/block"
	"hexworld/internal/world"
)

type flatOracle struct{ height int }

func (o flatOracle) HeightAt(lon, lat int32, x, y int) int  { return o.height }
func (o flatOracle) BiomeAt(lon, lat int32, x, y int) world.Biome { return world.BiomePlains }

func newTestManager(t *testing.T) *world.Manager {
	t.Helper()
	cfg := world.Config{ChunksX: 8, ChunksY: 8, ActiveMarginX: 2, ActiveMarginY: 2, Seed: 1}
	m, err := world.NewManager(cfg, flatOracle{height: 70}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

// TestSunSeedingScenarioB matches spec.md §8 Scenario B: a flat chunk with
// ground at z=40 and air above gets full sun light from z=41 up, and none
// at z=39 (inside the solid ground, under its top cell at z=40).
func TestSunSeedingScenarioB(t *testing.T) {
	m := newTestManager(t)
	c, ok := m.ChunkAt(0, 0)
	if !ok {
		t.Fatalf("expected chunk (0,0) to be loaded")
	}
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z <= 40; z++ {
				c.SetBlock(x, y, z, block.Stone)
			}
			for z := 41; z < world.Height; z++ {
				c.SetBlock(x, y, z, block.Air)
			}
		}
	}

	e := NewEngine(m)
	e.SeedChunk(0, 0)

	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 41; z < world.Height; z++ {
				if got := c.SunLightAt(x, y, z); got != block.MaxSunLight {
					t.Fatalf("(%d,%d,%d): sun light %d, want %d", x, y, z, got, block.MaxSunLight)
				}
			}
			if got := c.SunLightAt(x, y, 39); got != 0 {
				t.Fatalf("(%d,%d,39): sun light %d, want 0", x, y, got)
			}
		}
	}
}

// TestLightMonotonicUnderBlockRemoval matches spec.md §8 property 3:
// removing a solid block never decreases sun light at any cell.
func TestLightMonotonicUnderBlockRemoval(t *testing.T) {
	m := newTestManager(t)
	c, ok := m.ChunkAt(0, 0)
	if !ok {
		t.Fatalf("expected chunk (0,0) to be loaded")
	}
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				c.SetBlock(x, y, z, block.Air)
			}
		}
	}
	// A single stone pillar blocks sun from reaching the cell directly
	// beneath it.
	c.SetBlock(8, 8, 100, block.Stone)

	e := NewEngine(m)
	e.SeedChunk(0, 0)

	before := make(map[[3]int]uint8)
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				before[[3]int{x, y, z}] = c.SunLightAt(x, y, z)
			}
		}
	}

	c.SetBlock(8, 8, 100, block.Air)
	e.AddLight(Sun, 0, 0, 8, 8, world.Height-1, block.MaxSunLight)

	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				key := [3]int{x, y, z}
				if after := c.SunLightAt(x, y, z); after < before[key] {
					t.Fatalf("(%d,%d,%d): sun light decreased from %d to %d after removing a block", x, y, z, before[key], after)
				}
			}
		}
	}
}

// TestLightBounds matches spec.md §8 property 4: sun and fire light never
// exceed their channel maxima, even when seeded above them.
func TestLightBounds(t *testing.T) {
	m := newTestManager(t)
	c, ok := m.ChunkAt(0, 0)
	if !ok {
		t.Fatalf("expected chunk (0,0) to be loaded")
	}
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				c.SetBlock(x, y, z, block.Air)
			}
		}
	}

	e := NewEngine(m)
	e.AddLight(Sun, 0, 0, 5, 5, 50, 255)
	e.AddLight(Fire, 0, 0, 5, 5, 50, 255)

	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				if got := c.SunLightAt(x, y, z); got > block.MaxSunLight {
					t.Fatalf("(%d,%d,%d): sun light %d exceeds MaxSunLight", x, y, z, got)
				}
				if got := c.FireLightAt(x, y, z); got > block.MaxFireLight {
					t.Fatalf("(%d,%d,%d): fire light %d exceeds MaxFireLight", x, y, z, got)
				}
			}
		}
	}
}

// TestRemoveLightDarkensUnlessOtherSourceCovers confirms RemoveLight
// actually retracts a source's contribution rather than leaving stale
// light behind, and that a second independent source still lights its
// own reach afterward.
func TestRemoveLightDarkensUnlessOtherSourceCovers(t *testing.T) {
	m := newTestManager(t)
	c, ok := m.ChunkAt(0, 0)
	if !ok {
		t.Fatalf("expected chunk (0,0) to be loaded")
	}
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				c.SetBlock(x, y, z, block.Air)
			}
		}
	}

	e := NewEngine(m)
	e.AddLight(Fire, 0, 0, 8, 8, 8, 10)
	if got := c.FireLightAt(8, 8, 8); got != 10 {
		t.Fatalf("expected seeded fire light 10, got %d", got)
	}
	// A second source 12 cells straight above; the midpoint z=14 is 6
	// hops from both, so each source alone lights it to 4.
	e.AddLight(Fire, 0, 0, 8, 8, 20, 10)

	e.RemoveLight(Fire, 0, 0, 8, 8, 8, 10)
	if got := c.FireLightAt(8, 8, 8); got != 0 {
		t.Fatalf("expected fire light retracted to 0, got %d", got)
	}
	if got := c.FireLightAt(8, 8, 20); got != 10 {
		t.Fatalf("expected second source to keep fire light 10, got %d", got)
	}
	if got := c.FireLightAt(8, 8, 14); got != 4 {
		t.Fatalf("expected midpoint relit to 4 by the second source, got %d", got)
	}
}
