// Package server wires internal/world, internal/scheduler, and
// internal/physics into a runnable daemon: it owns the world.Manager,
// starts the scheduler's tick loop, and exposes the read-only views
// (current mesh, rain intensity, tick count) an external front end would
// poll or stream.
package server

import (
	"context"
	"fmt"
	"log"

	"hexworld/internal/config"
	"hexworld/internal/persist"
	"hexworld/internal/physics"
	"hexworld/internal/scheduler"
	"hexworld/internal/terrain"
	"hexworld/internal/world"
)

// Server binds a world.Manager to a running scheduler. It is the
// top-level object cmd/hexworldd constructs.
type Server struct {
	Manager   *world.Manager
	Scheduler *scheduler.Scheduler
	Loader    world.ChunkLoader
	Logger    *log.Logger
}

// New constructs a Server from cfg. When oracle is nil it falls back to
// terrain.NewNoiseOracle seeded from cfg.World.Seed, matching the
// reference daemon's standalone mode.
func New(cfg *config.Config, oracle world.Oracle, renderer world.Renderer, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server: config is nil")
	}
	if logger == nil {
		logger = log.Default()
	}
	if oracle == nil {
		oracle = terrain.NewNoiseOracle(cfg.World.Seed)
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}

	loader, err := persist.NewFileChunkLoader(cfg.Persist.Directory)
	if err != nil {
		return nil, fmt.Errorf("server: chunk loader: %w", err)
	}

	mgrCfg := world.Config{
		ChunksX:       cfg.World.ChunkNumberX,
		ChunksY:       cfg.World.ChunkNumberY,
		ActiveMarginX: cfg.World.ActiveAreaMarginsX,
		ActiveMarginY: cfg.World.ActiveAreaMarginsY,
		Seed:          uint32(cfg.World.Seed),
	}
	mgr, err := world.NewManager(mgrCfg, oracle, logger)
	if err != nil {
		return nil, fmt.Errorf("server: new manager: %w", err)
	}
	mgr.Hydrate(loader)

	sched := scheduler.New(scheduler.Config{
		Manager:              mgr,
		Loader:               loader,
		Renderer:             renderer,
		Oracle:               oracle,
		Logger:               logger,
		Seed:                 cfg.World.Seed,
		Latitude:             cfg.Calendar.Latitude,
		TicksInDay:           cfg.Calendar.TicksInDay,
		SolarDaysInYear:      cfg.Calendar.SolarDaysInYear,
		RotationAxisAngleDeg: cfg.Calendar.RotationAxisAngleDeg,
		SummerSolsticeDay:    cfg.Calendar.SummerSolsticeDay,
	})

	return &Server{Manager: mgr, Scheduler: sched, Loader: loader, Logger: logger}, nil
}

// Run starts the scheduler's tick loop and blocks until ctx is canceled.
func (s *Server) Run(ctx context.Context) {
	s.Scheduler.Run(ctx)
}

// Shutdown stops the scheduler and flushes every loaded chunk to the
// configured loader.
func (s *Server) Shutdown() error {
	s.Scheduler.Stop()
	m := s.Manager
	for col := int32(0); col < m.ChunksX(); col++ {
		for row := int32(0); row < m.ChunksY(); row++ {
			c, ok := m.ChunkAt(m.Longitude()+col, m.Latitude()+row)
			if !ok || c == nil {
				continue
			}
			if err := s.Loader.SaveChunkData(c.Longitude, c.Latitude, world.SaveChunk(c)); err != nil {
				return fmt.Errorf("server: save chunk (%d,%d): %w", c.Longitude, c.Latitude, err)
			}
		}
	}
	return s.Loader.ForceSaveAll()
}

// Mesh returns the scheduler's most recently published collision mesh.
func (s *Server) Mesh() *physics.Mesh { return s.Scheduler.Mesh() }
