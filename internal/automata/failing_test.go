package automata

import (
	"testing"

	"hexworld/internal/block"
)

// TestNewFailingBlockRevertsSourceCellToAir exercises Chunk.NewFailingBlock
// directly as a unit of the arena bookkeeping; the end-to-end scenario of
// a tick actually producing this call lives in collapse_test.go.
func TestNewFailingBlockRevertsSourceCellToAir(t *testing.T) {
	_, c := newAirChunkManager(t)
	c.SetBlock(5, 5, 80, block.Sand)
	c.NewFailingBlock(5, 5, 80, block.Sand, 0)

	if h := c.BlockAt(5, 5, 80); h.Type != block.Air {
		t.Fatalf("expected the source cell to already read air, got %v", h.Type)
	}
	if len(c.Failing) != 1 {
		t.Fatalf("expected one failing-block entry, got %d", len(c.Failing))
	}
}

func TestFailingBlockSettlesOnSolidGround(t *testing.T) {
	_, c := newAirChunkManager(t)
	c.SetBlock(5, 5, 10, block.Stone)
	c.NewFailingBlock(5, 5, 11, block.Sand, 0)

	for tick := 0; tick < 200; tick++ {
		stepChunkFailing(c, 1.0/15)
		if len(c.Failing) == 0 {
			break
		}
	}

	if len(c.Failing) != 0 {
		t.Fatalf("expected the failing block to settle, still falling: %+v", c.Failing)
	}
	if h := c.BlockAt(5, 5, 11); h.Type != block.Sand {
		t.Fatalf("expected sand settled at its resting cell, got %v", h.Type)
	}
}

func TestFailingBlockContinuesThroughAir(t *testing.T) {
	_, c := newAirChunkManager(t)
	c.NewFailingBlock(5, 5, 80, block.Sand, 0)

	stepChunkFailing(c, 1.0)

	if len(c.Failing) != 1 {
		t.Fatalf("expected the block still falling through open air, got %d entries", len(c.Failing))
	}
	if c.Failing[0].Z >= 80 {
		t.Fatalf("expected the block to have dropped at least one cell, still at z=%d", c.Failing[0].Z)
	}
}
