// Package light implements sun- and fire-light propagation over the
// sliding chunk window as an explicit BFS, replacing the unbounded
// recursion of AddSunLight_r/AddFireLight_r/RemoveLight_r in the original
// source.
package light

import (
	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/world"
)

// Kind selects which of a cell's two light channels an operation touches.
type Kind int

const (
	Sun Kind = iota
	Fire
)

// allDirections is InPlaneDirections plus the two vertical hops; light
// propagates in all eight.
var allDirections = [8]hexmath.Direction{
	hexmath.Forward, hexmath.Back, hexmath.ForwardRight, hexmath.BackLeft,
	hexmath.ForwardLeft, hexmath.BackRight, hexmath.Up, hexmath.Down,
}

type node struct {
	lon, lat int32
	x, y, z  int
	level    uint8
}

// Engine floods light across chunk boundaries via Manager.BlockNeighbor,
// so it never needs to know chunk-local addressing beyond what *world.Chunk
// already exposes.
type Engine struct {
	mgr *world.Manager
}

// NewEngine returns a light engine bound to mgr.
func NewEngine(mgr *world.Manager) *Engine {
	return &Engine{mgr: mgr}
}

func levelAt(kind Kind, c *world.Chunk, x, y, z int) uint8 {
	if kind == Sun {
		return c.SunLightAt(x, y, z)
	}
	return c.FireLightAt(x, y, z)
}

func setLevel(kind Kind, c *world.Chunk, x, y, z int, v uint8) {
	if kind == Sun {
		c.SetSunLight(x, y, z, v)
		return
	}
	c.SetFireLight(x, y, z, v)
}

func maxLevel(kind Kind) uint8 {
	if kind == Sun {
		return block.MaxSunLight
	}
	return block.MaxFireLight
}

// AddLight floods level outward from (lon,lat,x,y,z), writing
// max(current, incoming) at every cell it reaches and stopping a branch
// once the level would drop to zero or a neighbor already holds at least
// as much light (so a cascade never revisits ground a brighter source
// already lit). The queue is a growable slice and its length is not
// bounded by maxLevel*8: a cell may be enqueued by several neighbors
// before the existing-light check discards the duplicates.
func (e *Engine) AddLight(kind Kind, lon, lat int32, x, y, z int, level uint8) {
	if level > maxLevel(kind) {
		level = maxLevel(kind)
	}
	if level == 0 {
		return
	}
	queue := []node{{lon, lat, x, y, z, level}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		c, ok := e.mgr.ChunkAt(cur.lon, cur.lat)
		if !ok {
			continue
		}
		if levelAt(kind, c, cur.x, cur.y, cur.z) >= cur.level {
			continue
		}
		setLevel(kind, c, cur.x, cur.y, cur.z, cur.level)

		if cur.level <= 1 {
			continue
		}
		for _, dir := range allDirections {
			_, nlon, nlat, nx, ny, nz, ok := e.mgr.BlockNeighbor(cur.lon, cur.lat, cur.x, cur.y, cur.z, dir)
			if !ok {
				continue
			}
			nc, ok := e.mgr.ChunkAt(nlon, nlat)
			if !ok {
				continue
			}
			_, pass := block.Unpack(nc.TransparencyAt(nx, ny, nz))
			if pass == block.PassBlocked {
				continue
			}
			next := cur.level - 1
			if pass == block.PassAttenuated && next > 0 {
				next--
			}
			if next == 0 {
				continue
			}
			queue = append(queue, node{nlon, nlat, nx, ny, nz, next})
		}
	}
}

// RemoveLight retracts a light value that used to be level at
// (lon,lat,x,y,z) (a source removed, or a block placed over it). It runs
// the classic two-phase dark/relight flood: first a BFS that zeroes every
// cell whose light could only have come from the removed source, noting
// any neighbor that holds a level from some other source along the way;
// then AddLight reseeds from each such neighbor so the darkened region is
// correctly relit by whatever other light still reaches it.
func (e *Engine) RemoveLight(kind Kind, lon, lat int32, x, y, z int, level uint8) {
	if level == 0 {
		return
	}
	type darkNode struct {
		lon, lat int32
		x, y, z  int
		level    uint8
	}
	queue := []darkNode{{lon, lat, x, y, z, level}}
	var reseed []node

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		c, ok := e.mgr.ChunkAt(cur.lon, cur.lat)
		if !ok {
			continue
		}
		got := levelAt(kind, c, cur.x, cur.y, cur.z)
		if got == 0 {
			continue
		}
		if got > cur.level {
			// This cell is lit brighter than the removal wave expects,
			// so some other source covers it; reseed from here instead
			// of darkening it.
			reseed = append(reseed, node{cur.lon, cur.lat, cur.x, cur.y, cur.z, got})
			continue
		}
		setLevel(kind, c, cur.x, cur.y, cur.z, 0)
		if cur.level <= 1 {
			continue
		}
		for _, dir := range allDirections {
			_, nlon, nlat, nx, ny, nz, ok := e.mgr.BlockNeighbor(cur.lon, cur.lat, cur.x, cur.y, cur.z, dir)
			if !ok {
				continue
			}
			queue = append(queue, darkNode{nlon, nlat, nx, ny, nz, cur.level - 1})
		}
	}

	for _, r := range reseed {
		// AddLight skips a cell that already holds its level, so the
		// reseed cell is cleared first to let the flood start from it.
		if c, ok := e.mgr.ChunkAt(r.lon, r.lat); ok {
			setLevel(kind, c, r.x, r.y, r.z, 0)
		}
		e.AddLight(kind, r.lon, r.lat, r.x, r.y, r.z, r.level)
	}
}

// SeedColumn sun-lights column (x,y) of chunk c from the top down: full
// sun light in open air, stopping (and letting AddLight's own cascade
// handle sideways leakage) at the first light-blocking cell. Used by
// SeedChunk and by the scheduler after a build or destroy action.
func (e *Engine) SeedColumn(lon, lat int32, x, y int) {
	c, ok := e.mgr.ChunkAt(lon, lat)
	if !ok {
		return
	}
	for z := world.Height - 1; z >= 0; z-- {
		_, pass := block.Unpack(c.TransparencyAt(x, y, z))
		if pass == block.PassBlocked {
			break
		}
		e.AddLight(Sun, lon, lat, x, y, z, block.MaxSunLight)
	}
}

// SeedChunk lights every column of c and every static light source and
// fire it carries, then clears NeedsLight. Used by the scheduler's
// Manager.Slide callback and its relight of chunks whose water changed.
// World construction (NewManager, Hydrate) does not call it, so chunks
// of a freshly built window carry no light until they are seeded.
func (e *Engine) SeedChunk(lon, lat int32) {
	c, ok := e.mgr.ChunkAt(lon, lat)
	if !ok {
		return
	}
	for x := 0; x < world.Width; x++ {
		for y := 0; y < world.Width; y++ {
			e.SeedColumn(lon, lat, x, y)
		}
	}
	for _, ls := range c.LightSources {
		e.AddLight(Fire, lon, lat, int(ls.X), int(ls.Y), int(ls.Z), ls.Level)
	}
	for _, f := range c.Fires {
		e.AddLight(Fire, lon, lat, int(f.X), int(f.Y), int(f.Z), f.Power/(255/block.MaxFireLight+1))
	}
	c.NeedsLight = false
}
