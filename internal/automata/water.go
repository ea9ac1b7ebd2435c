// Package automata implements the cellular automata that advance world
// state one tick at a time: water flow, grass reproduction, fire spread,
// rain, and gravity-driven block collapse. Every automaton here operates
// through *world.Manager/*world.Chunk; apart from RainMachine, which
// keeps the weather state and its PRNG between ticks, none hold their own
// state across ticks beyond what the manager's chunks already carry.
package automata

import (
	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/world"
)

// WaterTick advances every liquid block one step of spec.md §4.4's flow
// algorithm, across the active chunks ForEachActive visits, applying the
// checkerboard/distance load-shedding schedule so the whole world is
// never fully re-evaluated on a single tick.
func WaterTick(mgr *world.Manager, dirty *world.DirtySet, observerLon, observerLat int32, tick uint64) {
	mgr.ForEachActive(func(c *world.Chunk) {
		if shouldSkipWaterChunk(c.Longitude, c.Latitude, observerLon, observerLat, tick) {
			return
		}
		if stepChunkWater(mgr, c) {
			dirty.MarkWater(c.Longitude, c.Latitude)
			c.NeedsLight = true
		}
	})
}

// shouldSkipWaterChunk implements the 3x3-cluster checkerboard plus
// distance-based thinning spec.md §4.4 calls "tick-rate pacing".
func shouldSkipWaterChunk(lon, lat, observerLon, observerLat int32, tick uint64) bool {
	clusterX := lon / 3
	clusterY := lat / 3
	if (clusterX^clusterY)&1 != int32(tick&1) {
		return true
	}
	dist := chebyshev(lon-observerLon, lat-observerLat)
	switch {
	case dist > 8:
		return tick&4 != 0
	case dist > 4:
		return tick&2 != 0
	default:
		return false
	}
}

func chebyshev(dx, dy int32) int32 {
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// stepChunkWater runs one tick of flow for every liquid block present in
// c at the start of the tick. The scan order is a coordinate snapshot
// taken up front so blocks created by horizontal spread this tick are
// left for next tick (spec.md §4.4: "ordered by chunk scan, stable within
// a chunk"). Every lookup of a liquid's current state goes back through
// BlockAt(x,y,z).Arena rather than trusting a remembered arena index:
// New/DeleteLiquid reshuffle arena indices (swap-with-last), so a stored
// index can go stale the instant another liquid is created or removed,
// while the cell's handle is always kept consistent by chunk.go's own
// invariant. Re-resolving by coordinate sidesteps that entirely.
func stepChunkWater(mgr *world.Manager, c *world.Chunk) bool {
	n := len(c.Liquids)
	if n == 0 {
		return false
	}
	cells := make([][3]uint8, n)
	for i, l := range c.Liquids {
		cells[i] = [3]uint8{l.X, l.Y, l.Z}
	}

	changed := false
	for _, cell := range cells {
		x, y, z := int(cell[0]), int(cell[1]), int(cell[2])
		h := c.BlockAt(x, y, z)
		if h.Type != block.Water {
			continue // already consumed earlier this tick (drained dry, or fell)
		}

		if level(c, x, y, z) == 0 {
			c.DeleteLiquid(h.Arena)
			changed = true
			continue
		}

		if fell := tryFall(c, x, y, z); fell {
			changed = true
			continue // rule 1: stop for this tick once it moves down
		}

		if tryDrainDown(c, x, y, z) {
			changed = true
		}

		if tryFlowHorizontally(mgr, c, x, y, z) {
			changed = true
		}

		h = c.BlockAt(x, y, z)
		if h.Type != block.Water {
			continue
		}
		lvl := level(c, x, y, z)
		if lvl == 0 || (lvl < 16 && !belowIsLiquid(c, x, y, z)) {
			c.DeleteLiquid(h.Arena)
			changed = true
		}
	}

	return changed
}

func level(c *world.Chunk, x, y, z int) uint16 {
	h := c.BlockAt(x, y, z)
	if h.Type != block.Water {
		return 0
	}
	return c.LiquidAt(h.Arena).Level
}

// tryFall implements rule 1: an air cell below drains the source
// entirely and relocates it one cell down.
func tryFall(c *world.Chunk, x, y, z int) bool {
	if z == 0 {
		return false
	}
	if c.BlockAt(x, y, z-1).Type != block.Air {
		return false
	}
	lvl := level(c, x, y, z)
	h := c.BlockAt(x, y, z)
	c.DeleteLiquid(h.Arena)
	c.NewLiquid(x, y, z-1, lvl)
	return true
}

// tryDrainDown implements rule 2: a liquid below with spare capacity
// absorbs min(source, spare).
func tryDrainDown(c *world.Chunk, x, y, z int) bool {
	if z == 0 {
		return false
	}
	below := c.BlockAt(x, y, z-1)
	if below.Type != block.Water {
		return false
	}
	dest := c.LiquidAt(below.Arena)
	spare := int(block.MaxWaterLevel) - int(dest.Level)
	if spare <= 0 {
		return false
	}
	src := c.LiquidAt(c.BlockAt(x, y, z).Arena)
	xfer := int(src.Level)
	if xfer > spare {
		xfer = spare
	}
	if xfer == 0 {
		return false
	}
	src.Level -= uint16(xfer)
	dest.Level += uint16(xfer)
	return true
}

// tryFlowHorizontally implements rule 3 across the six hex neighbors.
// Each iteration re-resolves the source's arena index by coordinate
// before touching it, since the previous iteration's NewLiquid call may
// have been served out of the same chunk's arena (a same-chunk neighbor
// is the common case) and reshuffled indices.
func tryFlowHorizontally(mgr *world.Manager, c *world.Chunk, x, y, z int) bool {
	changed := false
	for _, dir := range hexmath.InPlaneDirections {
		if level(c, x, y, z) <= 1 {
			break
		}
		h, nlon, nlat, nx, ny, nz, ok := mgr.BlockNeighbor(c.Longitude, c.Latitude, x, y, z, dir)
		if !ok {
			continue
		}
		nc, ok := mgr.ChunkAt(nlon, nlat)
		if !ok {
			continue
		}

		switch {
		case world.IsFire(h):
			nc.DeleteFire(h.Arena)
			nc.SetBlock(nx, ny, nz, block.Air)
			changed = true
		case h.Type == block.Air:
			srcLevel := level(c, x, y, z)
			half := srcLevel / 2
			if half == 0 {
				continue
			}
			nc.NewLiquid(nx, ny, nz, half)
			src := c.LiquidAt(c.BlockAt(x, y, z).Arena)
			src.Level -= half
			changed = true
		case h.Type == block.Water:
			dest := nc.LiquidAt(h.Arena)
			srcLevel := level(c, x, y, z)
			if dest.Level >= srcLevel {
				continue
			}
			diff := (srcLevel - dest.Level) / 2
			if diff == 0 {
				continue
			}
			dest.Level += diff
			src := c.LiquidAt(c.BlockAt(x, y, z).Arena)
			src.Level -= diff
			changed = true
		}
	}
	return changed
}

func belowIsLiquid(c *world.Chunk, x, y, z int) bool {
	if z == 0 {
		return false
	}
	return c.BlockAt(x, y, z-1).Type == block.Water
}
