// Package world implements the chunk grid: dense per-cell block storage,
// the per-chunk special-variant side lists, and the sliding window of
// loaded chunks around the observer.
package world

import (
	"hexworld/internal/block"
	"hexworld/internal/hexmath"
)

// Fixed chunk dimensions (spec.md §3 "Chunk").
const (
	Width      = 16
	Height     = 128
	widthLog2  = 4
	heightLog2 = 7
	Cells      = Width * Width * Height
)

// addr packs a local (x,y,z) into the dense array index, matching the
// source's BlockAddr layout exactly: z | (y<<7) | (x<<11).
func addr(x, y, z int) int {
	return z | (y << heightLog2) | (x << (heightLog2 + widthLog2))
}

// InBounds reports whether local coordinates address a cell in the chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Width && z >= 0 && z < Height
}

// Chunk is a 16x16x128 vertical prism of cells at integer (longitude,
// latitude). It has no back-reference to its owning Manager or World:
// callers pass coordinates explicitly (Design Notes §9).
type Chunk struct {
	Longitude, Latitude int32

	blocks       [Cells]block.Handle
	transparency [Cells]uint8
	sunLight     [Cells]uint8
	fireLight    [Cells]uint8
	heightMap    [Width * Width]uint8
	NeedsLight   bool

	Liquids      []block.Liquid
	LightSources []block.LightSource
	Fires        []block.Fire
	NonStandard  []block.NonStandardForm
	ActiveGrass  []block.GrassState
	Failing      []block.FailingBlock
}

// NewChunk returns an all-air chunk at the given address, ready for a
// generator or a loader to populate it.
func NewChunk(lon, lat int32) *Chunk {
	c := &Chunk{
		Longitude: lon, Latitude: lat,
		Liquids:      make([]block.Liquid, 0, 256),
		LightSources: make([]block.LightSource, 0, 64),
		Fires:        make([]block.Fire, 0, 64),
		NonStandard:  make([]block.NonStandardForm, 0, 32),
		ActiveGrass:  make([]block.GrassState, 0, 64),
		Failing:      make([]block.FailingBlock, 0, 32),
	}
	air := block.NormalHandle(block.Air)
	airTransparency := block.TransparencyFor(block.Air)
	for i := range c.blocks {
		c.blocks[i] = air
		c.transparency[i] = airTransparency
	}
	return c
}

// Coord returns the chunk's address as a hexmath.Coord.
func (c *Chunk) Coord() hexmath.Coord { return hexmath.Coord{X: c.Longitude, Y: c.Latitude} }

// BlockAt returns the handle stored at local (x,y,z).
func (c *Chunk) BlockAt(x, y, z int) block.Handle {
	return c.blocks[addr(x, y, z)]
}

// TransparencyAt returns the packed transparency byte at local (x,y,z).
func (c *Chunk) TransparencyAt(x, y, z int) uint8 {
	return c.transparency[addr(x, y, z)]
}

// SunLightAt returns the sun light level at local (x,y,z).
func (c *Chunk) SunLightAt(x, y, z int) uint8 { return c.sunLight[addr(x, y, z)] }

// FireLightAt returns the fire light level at local (x,y,z).
func (c *Chunk) FireLightAt(x, y, z int) uint8 { return c.fireLight[addr(x, y, z)] }

// SetSunLight writes the sun light level at local (x,y,z).
func (c *Chunk) SetSunLight(x, y, z int, level uint8) {
	if level > block.MaxSunLight {
		level = block.MaxSunLight
	}
	c.sunLight[addr(x, y, z)] = level
}

// SetFireLight writes the fire light level at local (x,y,z).
func (c *Chunk) SetFireLight(x, y, z int, level uint8) {
	if level > block.MaxFireLight {
		level = block.MaxFireLight
	}
	c.fireLight[addr(x, y, z)] = level
}

// HeightAt returns the cached z of the first non-air cell scanning down
// from the top of column (x,y).
func (c *Chunk) HeightAt(x, y int) int {
	return int(c.heightMap[y*Width+x])
}

// SetHeightAt updates the cached column height.
func (c *Chunk) SetHeightAt(x, y, z int) {
	c.heightMap[y*Width+x] = uint8(z)
}

// SetBlock installs a normal (flyweight) block at local (x,y,z) and
// refreshes its transparency byte. It does not touch any special-variant
// side list; callers placing a variant use the New*/Delete* helpers below,
// which call setHandle themselves.
func (c *Chunk) SetBlock(x, y, z int, t block.Type) {
	c.setHandle(x, y, z, block.NormalHandle(t))
}

func (c *Chunk) setHandle(x, y, z int, h block.Handle) {
	a := addr(x, y, z)
	c.blocks[a] = h
	c.transparency[a] = block.TransparencyFor(h.Type)
}

// --- Special-variant pools -------------------------------------------------
//
// Each New*/Delete* pair maintains spec.md §8 property 2: for every entry b
// in a side list, blocks[addr(b)] points at that same entry, and removal is
// swap-with-last so no stale arena index survives a deletion.

// NewLiquid installs a liquid block and returns its arena index.
func (c *Chunk) NewLiquid(x, y, z int, level uint16) uint16 {
	idx := uint16(len(c.Liquids))
	c.Liquids = append(c.Liquids, block.Liquid{X: uint8(x), Y: uint8(y), Z: uint8(z), Level: level})
	c.setHandle(x, y, z, block.Handle{Type: block.Water, Arena: idx})
	return idx
}

// DeleteLiquid removes the liquid at arena index idx and reverts its cell
// to air.
func (c *Chunk) DeleteLiquid(idx uint16) {
	last := len(c.Liquids) - 1
	removed := c.Liquids[idx]
	c.setHandle(int(removed.X), int(removed.Y), int(removed.Z), block.NormalHandle(block.Air))
	if int(idx) != last {
		moved := c.Liquids[last]
		c.Liquids[idx] = moved
		c.setHandle(int(moved.X), int(moved.Y), int(moved.Z), block.Handle{Type: block.Water, Arena: idx})
	}
	c.Liquids = c.Liquids[:last]
}

// LiquidAt returns a pointer to the liquid entry at arena index idx, for
// in-place level mutation.
func (c *Chunk) LiquidAt(idx uint16) *block.Liquid { return &c.Liquids[idx] }

// NewLightSource installs a static light source (fire-stone).
func (c *Chunk) NewLightSource(x, y, z int, level uint8) uint16 {
	idx := uint16(len(c.LightSources))
	c.LightSources = append(c.LightSources, block.LightSource{X: uint8(x), Y: uint8(y), Z: uint8(z), Level: level})
	c.setHandle(x, y, z, block.Handle{Type: block.FireStone, Arena: idx})
	return idx
}

// DeleteLightSource removes a light source and reverts its cell to air.
func (c *Chunk) DeleteLightSource(idx uint16) {
	last := len(c.LightSources) - 1
	removed := c.LightSources[idx]
	c.setHandle(int(removed.X), int(removed.Y), int(removed.Z), block.NormalHandle(block.Air))
	if int(idx) != last {
		moved := c.LightSources[last]
		c.LightSources[idx] = moved
		c.setHandle(int(moved.X), int(moved.Y), int(moved.Z), block.Handle{Type: block.FireStone, Arena: idx})
	}
	c.LightSources = c.LightSources[:last]
}

// fireType is a synthetic type id (outside NumBlockTypes) reserved for the
// Fire variant, which spec.md separates from the base enumeration.
const fireType block.Type = block.NumBlockTypes

// NewFire installs a fire block.
func (c *Chunk) NewFire(x, y, z int, power uint8) uint16 {
	idx := uint16(len(c.Fires))
	c.Fires = append(c.Fires, block.Fire{X: uint8(x), Y: uint8(y), Z: uint8(z), Power: power})
	c.setHandle(x, y, z, block.Handle{Type: fireType, Arena: idx})
	return idx
}

// IsFire reports whether h addresses a fire block.
func IsFire(h block.Handle) bool { return h.Type == fireType }

// DeleteFire removes a fire block and reverts its cell to air.
func (c *Chunk) DeleteFire(idx uint16) {
	last := len(c.Fires) - 1
	removed := c.Fires[idx]
	c.setHandle(int(removed.X), int(removed.Y), int(removed.Z), block.NormalHandle(block.Air))
	if int(idx) != last {
		moved := c.Fires[last]
		c.Fires[idx] = moved
		c.setHandle(int(moved.X), int(moved.Y), int(moved.Z), block.Handle{Type: fireType, Arena: idx})
	}
	c.Fires = c.Fires[:last]
}

// NewNonStandardForm installs a plate/bisected block.
func (c *Chunk) NewNonStandardForm(x, y, z int, t block.Type, orientation hexmath.Direction) uint16 {
	idx := uint16(len(c.NonStandard))
	c.NonStandard = append(c.NonStandard, block.NonStandardForm{X: uint8(x), Y: uint8(y), Z: uint8(z), Type: t, Orientation: orientation})
	c.setHandle(x, y, z, block.Handle{Type: t, Arena: idx})
	return idx
}

// NewActiveGrass installs an active grass block.
func (c *Chunk) NewActiveGrass(x, y, z int) uint16 {
	idx := uint16(len(c.ActiveGrass))
	c.ActiveGrass = append(c.ActiveGrass, block.GrassState{X: uint8(x), Y: uint8(y), Z: uint8(z), Active: true})
	c.setHandle(x, y, z, block.Handle{Type: block.Grass, Arena: idx})
	return idx
}

// DeactivateGrass removes an active grass entry and reverts the cell's
// handle to the flyweight (inactive) grass normal block, matching spec.md
// §4.5 ("inactive: shared flyweight, still behaves as grass visually").
func (c *Chunk) DeactivateGrass(idx uint16) {
	c.removeActiveGrass(idx, block.Grass)
}

// RevertGrassToSoil removes an active grass entry and turns its cell to
// soil (spec.md §4.5, "removed-and-reverted-to-soil").
func (c *Chunk) RevertGrassToSoil(idx uint16) {
	c.removeActiveGrass(idx, block.Soil)
}

func (c *Chunk) removeActiveGrass(idx uint16, revertTo block.Type) {
	last := len(c.ActiveGrass) - 1
	removed := c.ActiveGrass[idx]
	c.setHandle(int(removed.X), int(removed.Y), int(removed.Z), block.NormalHandle(revertTo))
	if int(idx) != last {
		moved := c.ActiveGrass[last]
		c.ActiveGrass[idx] = moved
		c.setHandle(int(moved.X), int(moved.Y), int(moved.Z), block.Handle{Type: block.Grass, Arena: idx})
	}
	c.ActiveGrass = c.ActiveGrass[:last]
}

// NewFailingBlock installs a falling block and reverts the source cell to air.
func (c *Chunk) NewFailingBlock(x, y, z int, wrapped block.Type, velocity float64) uint16 {
	idx := uint16(len(c.Failing))
	c.Failing = append(c.Failing, block.FailingBlock{X: uint8(x), Y: uint8(y), Z: uint8(z), Wrapped: wrapped, Velocity: velocity})
	c.setHandle(x, y, z, block.NormalHandle(block.Air))
	return idx
}

// RemoveFailingBlock deletes a failing-block entry once it has settled.
func (c *Chunk) RemoveFailingBlock(idx uint16) {
	last := len(c.Failing) - 1
	if int(idx) != last {
		c.Failing[idx] = c.Failing[last]
	}
	c.Failing = c.Failing[:last]
}
