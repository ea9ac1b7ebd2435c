package scheduler

import (
	"context"
	"testing"
	"time"

	"hexworld/internal/world"
)

type flatOracle struct{}

func (flatOracle) HeightAt(lon, lat int32, x, y int) int        { return 40 }
func (flatOracle) BiomeAt(lon, lat int32, x, y int) world.Biome { return world.BiomePlains }

type nopRenderer struct{}

func (nopRenderer) UpdateChunk(lon, lat int32, immediate bool)      {}
func (nopRenderer) UpdateChunkWater(lon, lat int32, immediate bool) {}
func (nopRenderer) UpdateWorldPosition(lon, lat int32)              {}
func (nopRenderer) Update()                                         {}

type nopLoader struct{}

func (nopLoader) ChunkData(lon, lat int32) ([]byte, error)        { return nil, nil }
func (nopLoader) SaveChunkData(lon, lat int32, blob []byte) error { return nil }
func (nopLoader) Free(lon, lat int32)                             {}
func (nopLoader) ForceSaveAll() error                             { return nil }

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	cfg := world.Config{ChunksX: 8, ChunksY: 8, ActiveMarginX: 2, ActiveMarginY: 2, Seed: 1}
	mgr, err := world.NewManager(cfg, flatOracle{}, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	s := New(Config{
		Manager:         mgr,
		Loader:          nopLoader{},
		Renderer:        nopRenderer{},
		Oracle:          flatOracle{},
		Seed:            1,
		Latitude:        45,
		TicksInDay:      24000,
		SolarDaysInYear: 365,
	})
	s.SetObserver(mgr.Longitude()+4, mgr.Latitude()+4, 5, 5, 41)
	return s
}

func TestTickAdvancesCountAndPublishesMesh(t *testing.T) {
	s := newTestScheduler(t)
	s.tick()
	s.tick()

	if s.TickCount() != 2 {
		t.Fatalf("expected tick count 2, got %d", s.TickCount())
	}
	if s.Mesh() == nil {
		t.Fatalf("expected a non-nil mesh snapshot after ticking")
	}
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	s := newTestScheduler(t)
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if s.TickCount() == 0 {
		t.Fatalf("expected at least one tick before the context expired")
	}
}

func TestPauseStopsTickAdvancement(t *testing.T) {
	s := newTestScheduler(t)
	s.Pause()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if s.TickCount() != 0 {
		t.Fatalf("expected no ticks while paused, got %d", s.TickCount())
	}
}
