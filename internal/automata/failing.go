package automata

import (
	"hexworld/internal/block"
	"hexworld/internal/world"
)

// gravityMagnitude has the same value as the player-movement gravity
// constant (9.8 * 1.5 m/s^2, see SPEC_FULL.md §4.8-4.9). A falling block
// gains a constant gravityMagnitude*dt*dt of fall progress per tick, held
// in FailingBlock.Velocity as the accumulated fraction of a cell rather
// than as a physical speed, and drops one cell per whole unit.
const gravityMagnitude = 9.8 * 1.5

// FailingTick advances every mid-fall block one step: accumulate fall
// progress, drop a cell once a full unit has accumulated, and settle
// once the cell below can no longer be fallen through.
func FailingTick(mgr *world.Manager, dirty *world.DirtySet, dt float64) {
	mgr.ForEachActive(func(c *world.Chunk) {
		if stepChunkFailing(c, dt) {
			dirty.MarkSolid(c.Longitude, c.Latitude)
		}
	})
}

func stepChunkFailing(c *world.Chunk, dt float64) bool {
	changed := false
	for i := 0; i < len(c.Failing); {
		fb := &c.Failing[i]
		x, y, z := int(fb.X), int(fb.Y), int(fb.Z)

		fb.Velocity += gravityMagnitude * dt * dt
		if fb.Velocity < 1.0 {
			i++
			continue
		}
		fb.Velocity -= 1.0

		if z == 0 || !canFallThrough(c, x, y, z-1) {
			c.SetBlock(x, y, z, fb.Wrapped)
			c.RemoveFailingBlock(uint16(i))
			changed = true
			continue
		}

		fb.Z = uint8(z - 1)
		changed = true
		i++
	}
	return changed
}

// canFallThrough reports whether a failing block may continue dropping
// into (x,y,z): only air and liquid cells yield, matching spec.md's sand
// collapse scenario (air below) and the teacher's general "solid blocks
// air" transparency convention.
func canFallThrough(c *world.Chunk, x, y, z int) bool {
	h := c.BlockAt(x, y, z)
	if h.Type == block.Air {
		return true
	}
	return h.Type == block.Water
}
