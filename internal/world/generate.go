package world

import (
	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/randx"
)

// InitialWaterBlockCap bounds how many water blocks a freshly generated
// chunk may seed, mirroring the source's
// CHUNK_INITIAL_WATER_BLOCK_COUNT constant.
const InitialWaterBlockCap = 64

// SeaLevel is the z below which a generated column is flooded up to, for
// chunks whose terrain height sits below it.
const SeaLevel = 60

// SoilDepth is how many layers of soil sit between bedrock stone and the
// surface.
const SoilDepth = 4

// TreeChance is the per-column probability (as an LCG threshold against
// randx.MaxRand) that a forest-biome column not already used by water
// gets a tree, applied deterministically from the chunk's own seed.
const TreeChance = randx.MaxRand / 40

// GenerateChunk builds a fresh chunk at (lon,lat) by sampling oracle for a
// height-map column per (x,y), filling stone/soil/air, planting grass and
// (in forest biome) trees, and seeding initial water — spec.md §4.2.
// seed determines the deterministic LCG draws used for tree placement so
// that regenerating the same chunk from the same seed reproduces the same
// layout.
func GenerateChunk(oracle Oracle, lon, lat int32, seed uint32) *Chunk {
	c := NewChunk(lon, lat)
	lcg := randx.NewLCG(seed ^ uint32(lon)*2654435761 ^ uint32(lat)*40503)

	waterBudget := InitialWaterBlockCap
	for x := 0; x < Width; x++ {
		for y := 0; y < Width; y++ {
			height := oracle.HeightAt(lon, lat, x, y)
			if height < 0 {
				height = 0
			}
			if height >= Height {
				height = Height - 1
			}
			biome := oracle.BiomeAt(lon, lat, x, y)

			for z := 0; z <= height; z++ {
				switch {
				case z == height:
					c.SetBlock(x, y, z, block.Soil)
				case z >= height-SoilDepth:
					c.SetBlock(x, y, z, block.Soil)
				default:
					c.SetBlock(x, y, z, block.Stone)
				}
			}

			topZ := height
			if height < SeaLevel && waterBudget > 0 {
				for z := height + 1; z <= SeaLevel && waterBudget > 0; z++ {
					c.NewLiquid(x, y, z, block.MaxWaterLevel)
					waterBudget--
					topZ = z
				}
			} else {
				// Grass caps a dry, soil-topped column.
				c.NewActiveGrass(x, y, height)
			}
			c.SetHeightAt(x, y, topZ)

			if biome == BiomeForest && topZ == height && lcg.Chance(TreeChance) {
				plantTree(c, x, y, height+1, lcg)
			}
		}
	}
	c.NeedsLight = true
	return c
}

// plantTree places a simple deterministic trunk-and-canopy tree: a
// vertical wood column topped by a foliage cap across the six hex
// neighbors of the top cell, matching the source's "deterministic
// placement from seed" without replicating its exact tree-shape table.
func plantTree(c *Chunk, x, y, baseZ int, lcg *randx.LCG) {
	trunkHeight := 3 + int(lcg.Next()%3)
	z := baseZ
	for i := 0; i < trunkHeight && z < Height; i++ {
		c.SetBlock(x, y, z, block.Wood)
		z++
	}
	canopyZ := z
	if canopyZ >= Height {
		return
	}
	c.SetBlock(x, y, canopyZ, block.Foliage)
	if canopyZ-1 >= 0 {
		for _, n := range hexmath.Neighbors6(hexmath.Coord{X: int32(x), Y: int32(y)}) {
			if n.X < 0 || n.X >= Width || n.Y < 0 || n.Y >= Width {
				continue
			}
			c.SetBlock(int(n.X), int(n.Y), canopyZ-1, block.Foliage)
		}
	}
}
