package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"hexworld/internal/config"
)

func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.World.ChunkNumberX = 8
	cfg.World.ChunkNumberY = 8
	cfg.World.ActiveAreaMarginsX = 2
	cfg.World.ActiveAreaMarginsY = 2
	cfg.Persist.Directory = filepath.Join(dir, "chunks")
	return cfg
}

func TestNewBuildsAServerWithDefaultOracleAndRenderer(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	s, err := New(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Manager == nil || s.Scheduler == nil {
		t.Fatalf("expected a fully wired manager and scheduler")
	}
}

func TestRunAdvancesTicksUntilCanceled(t *testing.T) {
	cfg := testConfig(t, t.TempDir())
	s, err := New(cfg, nil, NopRenderer{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	if s.Scheduler.TickCount() == 0 {
		t.Fatalf("expected at least one tick to have run")
	}
}
