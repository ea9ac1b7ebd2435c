// Package physics builds the collision mesh the scheduler keeps current
// around the observer and resolves player movement and block-picking
// against it, ported from original_source/src/player.cpp's GetBuildPos
// and Move.
package physics

import (
	"math"
	"sync/atomic"

	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/world"
)

// BoxHalfWidths is the observer-centered collision-mesh radius, in
// blocks: x=5, y=6, z=5 (spec.md §4.8 "PhysMesh").
const (
	BoxHalfWidthX = 5
	BoxHalfWidthY = 6
	BoxHalfWidthZ = 5
)

// UpperFace is a hexagonal "lid" of a solid block: at its top when the
// cell above is open, or at its bottom (Dir Down) when the cell below is
// open, triangulated as a fan from its center for ray-picking.
// Col is the owning cell's global hex coordinate, carried through from the
// mesh build rather than reconstructed from Center by GetBuildPos: the
// rendered polygon radius (hexCorners' HexEdgeSize) deliberately overlaps
// its neighbors to keep the floor gap-free, so a world-space hit point can
// fall inside more than one cell's polygon and a bare hexmath.WorldToHex
// on it cannot be trusted to recover the cell that actually owns the face.
type UpperFace struct {
	Dir     hexmath.Direction
	Z       float64
	Center  hexmath.Vec2
	Corners [6]hexmath.Vec2
	Col     hexmath.Coord
}

// Side is a rectangular wall between two adjacent hex corners, spanning
// one cell of height, emitted where a solid block borders an open
// neighbor. Col is the owning cell's coordinate, same reasoning as
// UpperFace.Col.
type Side struct {
	Dir  hexmath.Direction
	Z    float64
	A, B hexmath.Vec2
	Col  hexmath.Coord
}

// WaterCell is a liquid-bearing block reported in the mesh so the
// renderer and collision code can treat it distinctly from solid cells.
type WaterCell struct {
	Lon, Lat int32
	X, Y, Z  int
	Level    uint16
}

// Mesh is an immutable collision-mesh snapshot, matching spec.md's
// PhysMesh shape: upper_faces, sides, water_blocks.
type Mesh struct {
	UpperFaces []UpperFace
	Sides      []Side
	Water      []WaterCell
}

// Builder rebuilds and atomically publishes a Mesh around the observer
// each tick so readers (player movement, ray-pick) never see a partially
// built mesh.
type Builder struct {
	mgr     *world.Manager
	current atomic.Pointer[Mesh]
}

func NewBuilder(mgr *world.Manager) *Builder {
	b := &Builder{mgr: mgr}
	b.current.Store(&Mesh{})
	return b
}

// Current returns the most recently published mesh snapshot.
func (b *Builder) Current() *Mesh { return b.current.Load() }

// Rebuild walks the box around (observerLon,observerLat,ox,oy,oz) and
// publishes a fresh snapshot.
func (b *Builder) Rebuild(observerLon, observerLat int32, ox, oy, oz int) {
	center := world.GlobalHex(observerLon, observerLat, ox, oy)
	mesh := &Mesh{
		UpperFaces: make([]UpperFace, 0, 256),
		Sides:      make([]Side, 0, 256),
		Water:      make([]WaterCell, 0, 32),
	}

	zLo, zHi := oz-BoxHalfWidthZ, oz+BoxHalfWidthZ
	if zLo < 0 {
		zLo = 0
	}
	if zHi >= world.Height {
		zHi = world.Height - 1
	}

	for dx := -BoxHalfWidthX; dx <= BoxHalfWidthX; dx++ {
		for dy := -BoxHalfWidthY; dy <= BoxHalfWidthY; dy++ {
			g := hexmath.Coord{X: center.X + int32(dx), Y: center.Y + int32(dy)}
			lon, lat, x, y := world.LocalFromGlobal(g)
			c, ok := b.mgr.ChunkAt(lon, lat)
			if !ok {
				continue
			}
			for z := zLo; z <= zHi; z++ {
				h := c.BlockAt(x, y, z)
				if h.Type == block.Water {
					mesh.Water = append(mesh.Water, WaterCell{
						Lon: lon, Lat: lat, X: x, Y: y, Z: z,
						Level: c.LiquidAt(h.Arena).Level,
					})
					continue
				}
				vis, _ := block.Unpack(c.TransparencyAt(x, y, z))
				if vis != block.VisSolid {
					continue
				}
				appendCellFaces(b.mgr, &mesh.UpperFaces, &mesh.Sides, lon, lat, x, y, z)
			}
		}
	}

	b.current.Store(mesh)
}

func appendCellFaces(mgr *world.Manager, upper *[]UpperFace, sides *[]Side, lon, lat int32, x, y, z int) {
	col := world.GlobalHex(lon, lat, x, y)
	center := hexmath.ToWorld(col)
	corners := hexCorners(center)

	if up, _, _, _, _, _, ok := mgr.BlockNeighbor(lon, lat, x, y, z, hexmath.Up); !ok || !blocksView(up) {
		*upper = append(*upper, UpperFace{
			Dir:     hexmath.Up,
			Z:       float64(z) + 1,
			Center:  center,
			Corners: corners,
			Col:     col,
		})
	}

	if down, _, _, _, _, _, ok := mgr.BlockNeighbor(lon, lat, x, y, z, hexmath.Down); !ok || !blocksView(down) {
		*upper = append(*upper, UpperFace{
			Dir:     hexmath.Down,
			Z:       float64(z),
			Center:  center,
			Corners: corners,
			Col:     col,
		})
	}

	for k := 0; k < 6; k++ {
		dir := edgeDirections[k]
		nh, _, _, _, _, _, ok := mgr.BlockNeighbor(lon, lat, x, y, z, dir)
		if ok && blocksView(nh) {
			continue
		}
		a := corners[k]
		bPt := corners[(k+1)%6]
		*sides = append(*sides, Side{Dir: dir, Z: float64(z), A: a, B: bPt, Col: col})
	}
}

func blocksView(h block.Handle) bool {
	return block.InfoFor(h.Type).Visibility == block.VisSolid
}

// edgeDirections lists, for each of hexCorners' six edges (corners[k] to
// corners[(k+1)%6]), the in-plane neighbor direction that edge faces.
// Each direction's outward normal sits exactly between the two corner
// angles that bound its edge, so this order follows the corner angles
// (0,60,...,300) offset by +30 degrees.
var edgeDirections = [6]hexmath.Direction{
	hexmath.ForwardRight, hexmath.Forward, hexmath.ForwardLeft,
	hexmath.BackLeft, hexmath.Back, hexmath.BackRight,
}

// hexCorners returns the six vertices of the flat-top hexagon centered at
// c, in increasing-angle (counterclockwise) order so consecutive corners
// always bound a simple, non-self-intersecting edge.
func hexCorners(c hexmath.Vec2) [6]hexmath.Vec2 {
	var out [6]hexmath.Vec2
	for i := 0; i < 6; i++ {
		rad := float64(i) * 60 * (math.Pi / 180)
		out[i] = hexmath.Vec2{
			X: c.X + hexmath.HexEdgeSize*math.Cos(rad),
			Y: c.Y + hexmath.HexEdgeSize*math.Sin(rad),
		}
	}
	return out
}
