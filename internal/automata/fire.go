package automata

import (
	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/light"
	"hexworld/internal/randx"
	"hexworld/internal/world"
)

// Fire power thresholds and direction-weighted spread chances, recovered
// from original_source/src/world.cpp's FirePhysTick (see SPEC_FULL.md
// §4.4-4.7 supplemental detail).
const (
	maxFirePower      = 255
	fireActivatePower = maxFirePower / 6

	nearSpreadThreshold = randx.MaxRand / 8
	downSpreadThreshold = randx.MaxRand / 12
	upSpreadThreshold   = randx.MaxRand / 6

	maxFlammability = 255

	quenchBaseChance = randx.MaxRand / 64
)

// FireTick advances every fire block one step: power ramps up to
// saturation, active fires attempt to spread and may be quenched by rain
// or starvation.
func FireTick(mgr *world.Manager, dirty *world.DirtySet, eng *light.Engine, rng *randx.LCG, rainIntensity float64) {
	mgr.ForEachActive(func(c *world.Chunk) {
		if stepChunkFire(mgr, c, eng, rng, rainIntensity) {
			dirty.MarkSolid(c.Longitude, c.Latitude)
		}
	})
}

func stepChunkFire(mgr *world.Manager, c *world.Chunk, eng *light.Engine, rng *randx.LCG, rainIntensity float64) bool {
	n := len(c.Fires)
	if n == 0 {
		return false
	}
	cells := make([][3]uint8, n)
	for i, f := range c.Fires {
		cells[i] = [3]uint8{f.X, f.Y, f.Z}
	}

	changed := false
	for _, cell := range cells {
		x, y, z := int(cell[0]), int(cell[1]), int(cell[2])
		h := c.BlockAt(x, y, z)
		if !world.IsFire(h) {
			continue // quenched by an earlier fire's spread/extinguish this pass
		}

		if quench(mgr, c, x, y, z, rng, rainIntensity) {
			idx := c.BlockAt(x, y, z).Arena
			level := fireLightFor(c.Fires[idx].Power)
			c.DeleteFire(idx)
			eng.RemoveLight(light.Fire, c.Longitude, c.Latitude, x, y, z, level)
			changed = true
			continue
		}

		f := c.Fires[h.Arena]
		oldLevel := fireLightFor(f.Power)
		if f.Power < maxFirePower {
			idx := c.BlockAt(x, y, z).Arena
			c.Fires[idx].Power++
		}

		power := c.Fires[c.BlockAt(x, y, z).Arena].Power
		if newLevel := fireLightFor(power); newLevel > oldLevel {
			// Light is re-derived as the fire's power climbs past a
			// fireLightFor threshold (spec.md §4.6); AddLight only ever
			// raises a cell's level, so no RemoveLight pass is needed
			// here the way quench's extinguish does.
			eng.AddLight(light.Fire, c.Longitude, c.Latitude, x, y, z, newLevel)
			changed = true
		}
		if power < fireActivatePower {
			continue
		}
		if !rng.Chance(uint32(int(randx.MaxRand) * int(power) / maxFirePower)) {
			continue
		}

		if spread(mgr, c, x, y, z, rng) {
			changed = true
		}
	}

	return changed
}

// fireLightFor maps a fire's power to a fire-light emission level, capped
// at block.MaxFireLight.
func fireLightFor(power uint8) uint8 {
	level := int(power) * int(block.MaxFireLight) / maxFirePower
	if level > int(block.MaxFireLight) {
		level = int(block.MaxFireLight)
	}
	return uint8(level)
}

// quench implements spec.md §4.6's removal conditions: rain with a clear
// path to the sky, no flammable neighbor left to sustain it, or water
// directly above.
func quench(mgr *world.Manager, c *world.Chunk, x, y, z int, rng *randx.LCG, rainIntensity float64) bool {
	if rainIntensity > 0 && skyIsClear(c, x, y, z) {
		threshold := uint32(float64(quenchBaseChance) * rainIntensity)
		if rng.Chance(threshold) {
			return true
		}
	}
	if aboveIsWater(mgr, c, x, y, z) {
		return true
	}
	if !anyFlammableNeighbor(mgr, c, x, y, z) {
		return true
	}
	return false
}

func skyIsClear(c *world.Chunk, x, y, z int) bool {
	for zz := z + 1; zz < world.Height; zz++ {
		vis, _ := block.Unpack(c.TransparencyAt(x, y, zz))
		if vis == block.VisSolid {
			return false
		}
	}
	return true
}

func aboveIsWater(mgr *world.Manager, c *world.Chunk, x, y, z int) bool {
	if z+1 >= world.Height {
		return false
	}
	h, _, _, _, _, _, ok := mgr.BlockNeighbor(c.Longitude, c.Latitude, x, y, z, hexmath.Up)
	return ok && h.Type == block.Water
}

func anyFlammableNeighbor(mgr *world.Manager, c *world.Chunk, x, y, z int) bool {
	for _, dir := range fireNeighborDirs {
		h, _, _, _, _, _, ok := mgr.BlockNeighbor(c.Longitude, c.Latitude, x, y, z, dir)
		if !ok || world.IsFire(h) {
			continue
		}
		if block.InfoFor(h.Type).Flammability > 0 {
			return true
		}
	}
	return false
}

var fireNeighborDirs = [8]hexmath.Direction{
	hexmath.Forward, hexmath.Back, hexmath.ForwardRight, hexmath.BackLeft,
	hexmath.ForwardLeft, hexmath.BackRight, hexmath.Up, hexmath.Down,
}

// spread implements spec.md §4.6's direction-weighted neighbor burn and
// the separate air-ignition attempt.
func spread(mgr *world.Manager, c *world.Chunk, x, y, z int, rng *randx.LCG) bool {
	changed := false
	for _, dir := range fireNeighborDirs {
		h, nlon, nlat, nx, ny, nz, ok := mgr.BlockNeighbor(c.Longitude, c.Latitude, x, y, z, dir)
		if !ok {
			continue
		}
		nc, ok := mgr.ChunkAt(nlon, nlat)
		if !ok {
			continue
		}
		if world.IsFire(h) {
			continue
		}

		base := directionBaseChance(dir)

		if h.Type == block.Air {
			maxFlam := localMaxFlammability(mgr, nlon, nlat, nx, ny, nz)
			threshold := uint32(int(base) * int(maxFlam) / maxFlammability)
			if threshold > 0 && rng.Chance(threshold) {
				igniteCell(nc, nx, ny, nz)
				changed = true
			}
			continue
		}

		flam := block.InfoFor(h.Type).Flammability
		if flam == 0 {
			continue
		}
		threshold := uint32(int(flam) * int(base) / maxFlammability)
		if threshold > 0 && rng.Chance(threshold) {
			nc.SetBlock(nx, ny, nz, block.Air)
			igniteCell(nc, nx, ny, nz)
			changed = true
		}
	}
	return changed
}

func directionBaseChance(dir hexmath.Direction) uint32 {
	switch dir {
	case hexmath.Up:
		return upSpreadThreshold
	case hexmath.Down:
		return downSpreadThreshold
	default:
		return nearSpreadThreshold
	}
}

// igniteCell starts a fire at zero power. fireLightFor(0) is 0, so there
// is nothing to seed yet; stepChunkFire's per-tick relight check lights
// it once its power climbs past the first threshold.
func igniteCell(c *world.Chunk, x, y, z int) {
	c.NewFire(x, y, z, 0)
}

func localMaxFlammability(mgr *world.Manager, lon, lat int32, x, y, z int) uint8 {
	var maxFlam uint8
	for _, dir := range fireNeighborDirs {
		h, _, _, _, _, _, ok := mgr.BlockNeighbor(lon, lat, x, y, z, dir)
		if !ok {
			continue
		}
		if flam := block.InfoFor(h.Type).Flammability; flam > maxFlam {
			maxFlam = flam
		}
	}
	return maxFlam
}
