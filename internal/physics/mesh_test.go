package physics

import (
	"testing"

	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/world"
)

type flatOracle struct{}

func (flatOracle) HeightAt(lon, lat int32, x, y int) int        { return 0 }
func (flatOracle) BiomeAt(lon, lat int32, x, y int) world.Biome { return world.BiomePlains }

func newTestManager(t *testing.T) *world.Manager {
	t.Helper()
	cfg := world.Config{ChunksX: 8, ChunksY: 8, ActiveMarginX: 2, ActiveMarginY: 2, Seed: 1}
	mgr, err := world.NewManager(cfg, flatOracle{}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return mgr
}

func TestRebuildEmitsFloorAndCeilingFaces(t *testing.T) {
	mgr := newTestManager(t)
	c, ok := mgr.ChunkAt(mgr.Longitude()+2, mgr.Latitude()+2)
	if !ok {
		t.Fatalf("expected an active chunk")
	}
	c.SetBlock(5, 5, 10, block.Stone)

	b := NewBuilder(mgr)
	b.Rebuild(mgr.Longitude()+2, mgr.Latitude()+2, 5, 5, 10)

	mesh := b.Current()
	var floor, ceiling bool
	for _, f := range mesh.UpperFaces {
		switch f.Dir {
		case hexmath.Up:
			floor = true
		case hexmath.Down:
			ceiling = true
		}
	}
	if !floor || !ceiling {
		t.Fatalf("expected both an upward (floor) and a downward (ceiling) face around the solid block, got floor=%v ceiling=%v", floor, ceiling)
	}
	if len(mesh.Sides) == 0 {
		t.Fatalf("expected side faces around the exposed solid block")
	}
}
