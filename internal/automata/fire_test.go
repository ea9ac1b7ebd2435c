package automata

import (
	"testing"

	"hexworld/internal/block"
	"hexworld/internal/light"
	"hexworld/internal/randx"
	"hexworld/internal/world"
)

func TestFireIsQuenchedWithNoFlammableNeighbors(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.NewFire(5, 5, 20, 255) // already saturated, surrounded by air only

	eng := light.NewEngine(mgr)
	rng := randx.NewLCG(1)
	changed := stepChunkFire(mgr, c, eng, rng, 0)

	if !changed {
		t.Fatalf("expected fire with no flammable neighbors to be quenched")
	}
	if h := c.BlockAt(5, 5, 20); world.IsFire(h) {
		t.Fatalf("expected fire removed, still present")
	}
}

func TestFireUnderWaterIsQuenched(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.SetBlock(5, 5, 20, block.Wood)
	c.NewFire(5, 5, 20, 255)
	c.NewLiquid(5, 5, 21, 1000)

	eng := light.NewEngine(mgr)
	rng := randx.NewLCG(1)
	stepChunkFire(mgr, c, eng, rng, 0)

	if h := c.BlockAt(5, 5, 20); h.Type != block.Air {
		t.Fatalf("expected fire under water quenched to air, got %v", h.Type)
	}
}

func TestFirePowerRampsUpBeforeActivation(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.NewFire(5, 5, 20, 0)
	c.SetBlock(6, 5, 20, block.Wood) // keeps the fire fed so it isn't quenched for want of fuel

	eng := light.NewEngine(mgr)
	rng := randx.NewLCG(1)
	stepChunkFire(mgr, c, eng, rng, 0)

	h := c.BlockAt(5, 5, 20)
	if !world.IsFire(h) {
		t.Fatalf("expected the fire to still be present after one low-power tick")
	}
	if got := c.Fires[h.Arena].Power; got != 1 {
		t.Fatalf("expected power incremented to 1, got %d", got)
	}
}

func TestFireLightIsReDerivedAsPowerGrows(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.NewFire(5, 5, 20, 19) // fireLightFor(19) == 0, one tick away from crossing to 1
	c.SetBlock(6, 5, 20, block.Wood)

	eng := light.NewEngine(mgr)
	rng := randx.NewLCG(1)

	if got := c.FireLightAt(5, 5, 20); got != 0 {
		t.Fatalf("expected no fire light seeded yet, got %d", got)
	}

	stepChunkFire(mgr, c, eng, rng, 0)

	if got := c.FireLightAt(5, 5, 20); got != fireLightFor(20) {
		t.Fatalf("expected fire light re-derived to %d as power crossed the threshold, got %d", fireLightFor(20), got)
	}
}

func TestFireLightIsRemovedOnQuench(t *testing.T) {
	mgr, c := newAirChunkManager(t)
	c.NewFire(5, 5, 20, 255) // saturated, no flammable neighbors so it quenches this tick

	eng := light.NewEngine(mgr)
	eng.AddLight(light.Fire, c.Longitude, c.Latitude, 5, 5, 20, fireLightFor(255))
	if got := c.FireLightAt(5, 5, 20); got != fireLightFor(255) {
		t.Fatalf("expected fire light seeded before quench, got %d", got)
	}

	rng := randx.NewLCG(1)
	stepChunkFire(mgr, c, eng, rng, 0)

	if got := c.FireLightAt(5, 5, 20); got != 0 {
		t.Fatalf("expected fire light retracted on quench, got %d", got)
	}
}
