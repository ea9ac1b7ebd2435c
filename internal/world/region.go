package world

import "hexworld/internal/hexmath"

// Bounds on the window size, per spec.md §3 "World grid"
// (H_MIN_CHUNKS..H_MAX_CHUNKS).
const (
	MinChunksPerAxis = 8
	MaxChunksPerAxis = 64
)

// floorDiv performs floor division, correct for negative v (longitude and
// latitude both range over negative values once the window slides west or
// south of the origin).
func floorDiv(v, size int32) int32 {
	if v >= 0 {
		return v / size
	}
	return -((-v + size - 1) / size)
}

// GlobalHex returns the global hex coordinate of the block at local (x,y)
// within the chunk addressed by (lon,lat). The hex grid's column parity is
// defined over this global coordinate, not the chunk-local one, so that
// the "every other column shifted" offset lines up across chunk
// boundaries.
func GlobalHex(lon, lat int32, x, y int) hexmath.Coord {
	return hexmath.Coord{X: lon*Width + int32(x), Y: lat*Width + int32(y)}
}

// LocalFromGlobal splits a global hex coordinate back into a chunk address
// and chunk-local (x,y).
func LocalFromGlobal(g hexmath.Coord) (lon, lat int32, x, y int) {
	lon = floorDiv(g.X, Width)
	x = int(g.X - lon*Width)
	lat = floorDiv(g.Y, Width)
	y = int(g.Y - lat*Width)
	return
}

// ChunkNeighbors8 returns the eight rectangular-grid neighbors of a chunk
// address, used for renderer dirty-notification (spec.md §4.4: "notifies
// the renderer for itself and its eight neighbors"). This is plain
// matrix adjacency, distinct from the hex block-neighbor scheme used
// within a chunk.
func ChunkNeighbors8(lon, lat int32) [8]hexmath.Coord {
	var out [8]hexmath.Coord
	i := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			out[i] = hexmath.Coord{X: lon + dx, Y: lat + dy}
			i++
		}
	}
	return out
}

// MoveDirection is a cardinal direction the window slides in.
type MoveDirection int

const (
	North MoveDirection = iota
	South
	East
	West
)
