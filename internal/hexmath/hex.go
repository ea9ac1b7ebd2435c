// Package hexmath implements the hexagonal-prism coordinate system shared
// by chunk generation, the cellular automata, the physics mesh builder and
// the player ray-pick code. The grid is an offset scheme, not a pure axial
// one: x is the "column" axis, and every other column is shifted half a
// cell in y.
package hexmath

import "math"

// Geometry constants, ported from the hex grid's scale vector.
const (
	HexEdgeSize    = 1.0
	HexInnerRadius = HexEdgeSize * 0.866025 // sqrt(3)/2
	SpaceScaleX    = HexInnerRadius
	SpaceScaleY    = 1.0
	SpaceScaleZ    = 1.0
)

// Direction enumerates the eight directions a cell has neighbors in: six
// in-plane hex neighbors plus vertical up/down.
type Direction int

const (
	Forward Direction = iota
	Back
	ForwardRight
	BackLeft
	ForwardLeft
	BackRight
	Up
	Down
	DirectionUnknown Direction = 255
)

// Coord is an integer hex column/row address.
type Coord struct {
	X, Y int32
}

// Vec2 is a continuous-space point in the xy plane.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a continuous-space point.
type Vec3 struct {
	X, Y, Z float64
}

func fwdParity(x int32) int32 { return (x + 1) & 1 }
func backParity(x int32) int32 { return x & 1 }

// Neighbor returns the coordinate reached by moving one hex in dir. dir
// must be one of the six in-plane directions; Up/Down have no meaning here
// and return c unchanged.
func Neighbor(c Coord, dir Direction) Coord {
	switch dir {
	case Forward:
		return Coord{c.X, c.Y + 1}
	case Back:
		return Coord{c.X, c.Y - 1}
	case ForwardRight:
		return Coord{c.X + 1, c.Y + fwdParity(c.X)}
	case BackLeft:
		return Coord{c.X - 1, c.Y - backParity(c.X)}
	case ForwardLeft:
		return Coord{c.X - 1, c.Y + fwdParity(c.X)}
	case BackRight:
		return Coord{c.X + 1, c.Y - backParity(c.X)}
	default:
		return c
	}
}

// InPlaneDirections lists the six in-plane neighbor directions in a fixed,
// stable order, matching the source's h_Direction ordering.
var InPlaneDirections = [6]Direction{Forward, Back, ForwardRight, BackLeft, ForwardLeft, BackRight}

// Neighbors6 returns the six in-plane neighbors of c in the fixed order of
// InPlaneDirections.
func Neighbors6(c Coord) [6]Coord {
	var out [6]Coord
	for i, d := range InPlaneDirections {
		out[i] = Neighbor(c, d)
	}
	return out
}

// Opposite returns the direction that undoes dir for the six in-plane
// directions (Forward<->Back, ForwardRight<->BackLeft, ForwardLeft<->BackRight).
func Opposite(dir Direction) Direction {
	switch dir {
	case Forward:
		return Back
	case Back:
		return Forward
	case ForwardRight:
		return BackLeft
	case BackLeft:
		return ForwardRight
	case ForwardLeft:
		return BackRight
	case BackRight:
		return ForwardLeft
	case Up:
		return Down
	case Down:
		return Up
	default:
		return DirectionUnknown
	}
}

// ToWorld maps a hex coordinate to the continuous-space center of its prism.
func ToWorld(c Coord) Vec2 {
	return Vec2{
		X: float64(c.X) * SpaceScaleX,
		Y: float64(c.Y) - 0.5*float64(c.X&1),
	}
}

// WorldToHex returns the integer hex cell containing p.
func WorldToHex(p Vec2) Coord {
	x := int32(math.Round(p.X / SpaceScaleX))
	y := int32(math.Round(p.Y + 0.5*float64(x&1)))
	return Coord{x, y}
}

// Distance returns the hex-grid distance (minimum number of Neighbors6
// hops) between two coordinates.
func Distance(a, b Coord) int {
	// Convert to an axial-like cube form consistent with the offset
	// parity scheme so hop-count distance can be computed in closed form.
	ax, az := offsetToCube(a)
	bx, bz := offsetToCube(b)
	ay, by := -ax-az, -bx-bz
	dx := abs32(ax - bx)
	dy := abs32(ay - by)
	dz := abs32(az - bz)
	return int(max32(dx, max32(dy, dz)))
}

func offsetToCube(c Coord) (int32, int32) {
	x := c.X
	z := c.Y - (c.X+(c.X&1))/2
	return x, z
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
