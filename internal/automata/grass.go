package automata

import (
	"hexworld/internal/block"
	"hexworld/internal/calendarx"
	"hexworld/internal/hexmath"
	"hexworld/internal/randx"
	"hexworld/internal/world"
)

// grassStartAttemptThreshold and grassDoThreshold are the two independent
// PRNG thresholds spec.md §4.5 requires: an overall "does this block even
// try to reproduce this tick" draw, then a per-candidate-neighbor "does
// this particular spread succeed" draw.
const (
	grassStartAttemptThreshold = randx.MaxRand / 32
	grassDoThreshold           = randx.MaxRand / 12
)

// GrassTick advances every active grass block one step. rng drives both
// PRNG draws; cal/latitude/tick supply the effective-light daytime term.
func GrassTick(mgr *world.Manager, dirty *world.DirtySet, rng *randx.LCG, cal *calendarx.Calendar, tick uint64, latitude float64) {
	daytime := cal.IsDaytime(tick, latitude)
	mgr.ForEachActive(func(c *world.Chunk) {
		if stepChunkGrass(mgr, c, rng, daytime) {
			dirty.MarkSolid(c.Longitude, c.Latitude)
		}
	})
}

func stepChunkGrass(mgr *world.Manager, c *world.Chunk, rng *randx.LCG, daytime bool) bool {
	n := len(c.ActiveGrass)
	if n == 0 {
		return false
	}
	cells := make([][3]uint8, n)
	for i, g := range c.ActiveGrass {
		cells[i] = [3]uint8{g.X, g.Y, g.Z}
	}

	changed := false
	for _, cell := range cells {
		x, y, z := int(cell[0]), int(cell[1]), int(cell[2])
		h := c.BlockAt(x, y, z)
		if h.Type != block.Grass || h.Arena == block.ArenaNone {
			continue // already reverted/deactivated earlier this pass
		}

		if z+1 < world.Height {
			above, aok, anc, anx, anY, anz := resolveAbove(mgr, c, x, y, z)
			if aok {
				vis, _ := block.Unpack(anc.TransparencyAt(anx, anY, anz))
				if vis == block.VisSolid || above.Type == block.Water {
					idx := c.BlockAt(x, y, z).Arena
					c.RevertGrassToSoil(idx)
					changed = true
					continue
				}
			}
		}

		effectiveLight := effectiveLightAbove(c, x, y, z, daytime)
		if effectiveLight < block.MaxSunLight/2 {
			continue
		}
		if !rng.Chance(grassStartAttemptThreshold) {
			continue
		}

		if reproduceInto(mgr, c, x, y, z, rng) {
			changed = true
			continue
		}

		idx := c.BlockAt(x, y, z).Arena
		c.DeactivateGrass(idx)
		changed = true
	}

	return changed
}

func resolveAbove(mgr *world.Manager, c *world.Chunk, x, y, z int) (h block.Handle, ok bool, nc *world.Chunk, nx, ny, nz int) {
	h, nlon, nlat, nx, ny, nz, ok := mgr.BlockNeighbor(c.Longitude, c.Latitude, x, y, z, hexmath.Up)
	if !ok {
		return block.Handle{}, false, nil, 0, 0, 0
	}
	nc, ok = mgr.ChunkAt(nlon, nlat)
	return h, ok, nc, nx, ny, nz
}

func effectiveLightAbove(c *world.Chunk, x, y, z int, daytime bool) uint8 {
	if z+1 >= world.Height {
		return 0
	}
	sunAbove := c.SunLightAt(x, y, z+1)
	fireAbove := c.FireLightAt(x, y, z+1)
	var sunTerm uint8
	if daytime {
		sunTerm = sunAbove
	}
	total := int(sunTerm) + int(fireAbove)
	if total > 255 {
		total = 255
	}
	return uint8(total)
}

// reproduceInto scans the six hex neighbors at z, z-1, z+1 for a soil
// cell with air above and attempts to convert the first one that passes
// the "do" PRNG draw into a new active grass block.
func reproduceInto(mgr *world.Manager, c *world.Chunk, x, y, z int, rng *randx.LCG) bool {
	for _, dz := range [3]int{0, -1, 1} {
		nz := z + dz
		if nz < 0 || nz >= world.Height {
			continue
		}
		for _, dir := range hexmath.InPlaneDirections {
			h, nlon, nlat, nx, ny, hz, ok := mgr.BlockNeighbor(c.Longitude, c.Latitude, x, y, nz, dir)
			if !ok || hz != nz {
				continue
			}
			if h.Type != block.Soil {
				continue
			}
			nc, ok := mgr.ChunkAt(nlon, nlat)
			if !ok {
				continue
			}
			if nz+1 < world.Height {
				coverHandle, cok, _, _, _, _ := resolveAbove(mgr, nc, nx, ny, nz)
				if cok && coverHandle.Type != block.Air {
					continue
				}
			}
			if !rng.Chance(grassDoThreshold) {
				continue
			}
			nc.NewActiveGrass(nx, ny, nz)
			return true
		}
	}
	return false
}
