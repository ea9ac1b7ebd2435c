package automata

import (
	"testing"

	"hexworld/internal/block"
	"hexworld/internal/randx"
)

func TestActiveGrassRevertsToSoilUnderSolidCover(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.SetBlock(5, 5, 20, block.Soil)
	c.NewActiveGrass(5, 5, 20)
	c.SetBlock(5, 5, 21, block.Stone)

	rng := randx.NewLCG(1)
	changed := stepChunkGrass(mgr, c, rng, true)

	if !changed {
		t.Fatalf("expected the grass step to report a change")
	}
	if h := c.BlockAt(5, 5, 20); h.Type != block.Soil {
		t.Fatalf("expected cell reverted to soil, got %v", h.Type)
	}
}

func TestActiveGrassUnderWaterRevertsToSoil(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.SetBlock(5, 5, 20, block.Soil)
	c.NewActiveGrass(5, 5, 20)
	c.NewLiquid(5, 5, 21, 1000)

	rng := randx.NewLCG(1)
	stepChunkGrass(mgr, c, rng, true)

	if h := c.BlockAt(5, 5, 20); h.Type != block.Soil {
		t.Fatalf("expected cell reverted to soil under water cover, got %v", h.Type)
	}
}

func TestGrassWithoutEnoughLightStaysActive(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.SetBlock(5, 5, 20, block.Soil)
	c.NewActiveGrass(5, 5, 20)
	// No sun/fire light seeded above, so effective light is 0.

	rng := randx.NewLCG(1)
	changed := stepChunkGrass(mgr, c, rng, true)

	if changed {
		t.Fatalf("expected no transition without sufficient effective light")
	}
	if h := c.BlockAt(5, 5, 20); h.Type != block.Grass || h.Arena == block.ArenaNone {
		t.Fatalf("expected the grass block to remain active, got %+v", h)
	}
}
