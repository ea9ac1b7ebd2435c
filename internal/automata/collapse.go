package automata

import (
	"hexworld/internal/block"
	"hexworld/internal/world"
)

// groundSupportForce models the bedrock anchor beneath z==0 of every
// column, taken from the teacher's column stability evaluator
// (internal/world/stability.go's groundSupportForce).
const groundSupportForce = 1e6

// DetectCollapses scans every active chunk for Sand and Spherical cells
// whose supporting force cannot bear their own weight and spawns a
// FailingBlock from each one found. Spec.md's sand-collapse scenario
// assumes something triggers the fall; this is that trigger, adapted from
// the teacher's evaluateColumnStability/cascadeColumns (stability.go,
// damage.go) collapsed down to a single-cell support check, since a
// granular cell here has no persistent chain state to track between
// ticks: a cell that settles and leaves a new gap simply re-triggers the
// same check on its former neighbor next tick.
func DetectCollapses(mgr *world.Manager, dirty *world.DirtySet) {
	mgr.ForEachActive(func(c *world.Chunk) {
		if collapseChunkColumns(c) {
			dirty.MarkSolid(c.Longitude, c.Latitude)
		}
	})
}

func collapseChunkColumns(c *world.Chunk) bool {
	changed := false
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			for z := 0; z < world.Height; z++ {
				h := c.BlockAt(x, y, z)
				if !isGranular(h.Type) {
					continue
				}
				if supportForce(c, x, y, z) >= block.InfoFor(h.Type).Weight {
					continue
				}
				c.NewFailingBlock(x, y, z, h.Type, 0)
				changed = true
			}
		}
	}
	return changed
}

// isGranular reports whether t is one of the two types spec.md's collapse
// scenario names; every other type is treated as structurally
// self-supporting and never automatically fails.
func isGranular(t block.Type) bool {
	return t == block.Sand || t == block.Spherical
}

// supportForce is the force the cell beneath (x,y,z) offers: bedrock at
// z==0, the block below's ConnectingForce if it is solid, or zero if the
// cell below is air or water.
func supportForce(c *world.Chunk, x, y, z int) float64 {
	if z == 0 {
		return groundSupportForce
	}
	below := c.BlockAt(x, y, z-1)
	if below.Type == block.Air || below.Type == block.Water {
		return 0
	}
	return block.InfoFor(below.Type).ConnectingForce
}
