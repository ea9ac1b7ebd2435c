package world

import (
	"sync"

	"hexworld/internal/hexmath"
)

// DirtySet accumulates per-tick renderer-notification hints across the
// automata passes, deduplicating repeat touches of the same chunk the way
// the teacher's DamageSummary accumulates block changes before a single
// flush to the network layer.
type DirtySet struct {
	mu    sync.Mutex
	solid map[hexmath.Coord]bool
	water map[hexmath.Coord]bool
}

// NewDirtySet returns an empty set.
func NewDirtySet() *DirtySet {
	return &DirtySet{solid: make(map[hexmath.Coord]bool), water: make(map[hexmath.Coord]bool)}
}

// MarkSolid flags (lon,lat) and its eight grid neighbors for a solid-mesh
// refresh (spec.md §4.4: "notifies the renderer for itself and its eight
// neighbors").
func (d *DirtySet) MarkSolid(lon, lat int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.solid[hexmath.Coord{X: lon, Y: lat}] = true
	for _, n := range ChunkNeighbors8(lon, lat) {
		d.solid[n] = true
	}
}

// MarkWater flags (lon,lat) and its eight neighbors for a water-surface
// refresh.
func (d *DirtySet) MarkWater(lon, lat int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.water[hexmath.Coord{X: lon, Y: lat}] = true
	for _, n := range ChunkNeighbors8(lon, lat) {
		d.water[n] = true
	}
}

// WaterChunks returns the chunk coordinates flagged for a water-surface
// refresh since the last Flush, without consuming them — used by the
// scheduler to relight chunks whose water level changed this tick.
func (d *DirtySet) WaterChunks() []hexmath.Coord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]hexmath.Coord, 0, len(d.water))
	for c := range d.water {
		out = append(out, c)
	}
	return out
}

// Flush reports every accumulated hint to renderer and empties the set.
func (d *DirtySet) Flush(renderer Renderer) {
	d.mu.Lock()
	solid, water := d.solid, d.water
	d.solid = make(map[hexmath.Coord]bool)
	d.water = make(map[hexmath.Coord]bool)
	d.mu.Unlock()

	for c := range solid {
		renderer.UpdateChunk(c.X, c.Y, false)
	}
	for c := range water {
		renderer.UpdateChunkWater(c.X, c.Y, false)
	}
}
