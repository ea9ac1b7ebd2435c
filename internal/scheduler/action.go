package scheduler

import (
	"github.com/google/uuid"

	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/light"
	"hexworld/internal/world"
)

// ActionKind distinguishes the two player-authored world mutations the
// action queue carries (spec.md §4.11).
type ActionKind uint8

const (
	Build ActionKind = iota
	Destroy
)

// Action is a player-authored build/destroy event in global hex
// coordinates, matching spec.md §4.11's wire shape
// {kind, x, y, z, block_type, horizontal_dir, vertical_dir} and the
// teacher's h_WorldAction. HorizontalDir and VerticalDir (horizontal_dir,
// vertical_dir) only matter for Build actions placing a Plate or Bisected
// form; Destroy and every other form ignore them.
type Action struct {
	Kind ActionKind
	X, Y, Z int

	BlockType     block.Type
	HorizontalDir hexmath.Direction // horizontal_dir
	VerticalDir   hexmath.Direction // vertical_dir
}

// SubmitBuild enqueues a Build action at the next tick's action-queue
// drain. Safe to call from any goroutine.
func (s *Scheduler) SubmitBuild(x, y, z int, blockType block.Type, horizontalDir, verticalDir hexmath.Direction) uuid.UUID {
	id := uuid.New()
	s.queue.pushAction(id, Action{
		Kind: Build, X: x, Y: y, Z: z,
		BlockType: blockType, HorizontalDir: horizontalDir, VerticalDir: verticalDir,
	})
	return id
}

// SubmitDestroy enqueues a Destroy action at the next tick's action-queue
// drain. Safe to call from any goroutine.
func (s *Scheduler) SubmitDestroy(x, y, z int) uuid.UUID {
	id := uuid.New()
	s.queue.pushAction(id, Action{Kind: Destroy, X: x, Y: y, Z: z})
	return id
}

// applyAction translates a's global coordinates to a loaded chunk and
// local cell, then mutates it. Per spec.md §7 it silently drops the
// action if z falls outside [0, world.Height) or the global (x,y)
// resolves to a chunk outside the loaded window; per §4.11 a Build is
// additionally dropped if the target cell is not air.
func applyAction(mgr *world.Manager, eng *light.Engine, a Action) {
	if a.Z < 0 || a.Z >= world.Height {
		return
	}
	lon, lat, lx, ly := world.LocalFromGlobal(hexmath.Coord{X: int32(a.X), Y: int32(a.Y)})
	c, ok := mgr.ChunkAt(lon, lat)
	if !ok {
		return
	}

	switch a.Kind {
	case Build:
		if c.BlockAt(lx, ly, a.Z).Type != block.Air {
			return
		}
		placeBuiltBlock(c, lx, ly, a.Z, a.BlockType, a.HorizontalDir, a.VerticalDir)
	case Destroy:
		c.SetBlock(lx, ly, a.Z, block.Air)
	}
	eng.SeedColumn(lon, lat, lx, ly)
}

// placeBuiltBlock installs blockType at local (x,y,z), routing to the
// special-variant constructor the type needs and orienting Plate/Bisected
// forms from horizontalDir/verticalDir, mirroring the teacher's
// h_World::Build dispatch.
func placeBuiltBlock(c *world.Chunk, x, y, z int, t block.Type, horizontalDir, verticalDir hexmath.Direction) {
	switch t {
	case block.Water:
		c.NewLiquid(x, y, z, block.MaxWaterLevel)
	case block.FireStone:
		c.NewLightSource(x, y, z, block.MaxFireLight)
	case block.Grass:
		c.NewActiveGrass(x, y, z)
	default:
		info := block.InfoFor(t)
		if info.Form == block.FormPlate || info.Form == block.FormBisected {
			dir := horizontalDir
			if info.Form == block.FormPlate {
				dir = verticalDir
			}
			c.NewNonStandardForm(x, y, z, t, dir)
			return
		}
		c.SetBlock(x, y, z, t)
	}
}
