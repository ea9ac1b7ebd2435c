// Package scheduler owns the single goroutine that advances simulation
// state: draining the action queue, stepping every cellular automaton in
// spec.md's fixed order, rebuilding the collision mesh, sliding the
// window, and publishing tick metrics. No other package may mutate
// world.Manager state concurrently with the scheduler's own goroutine.
package scheduler

import (
	"context"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"hexworld/internal/automata"
	"hexworld/internal/calendarx"
	"hexworld/internal/light"
	"hexworld/internal/physics"
	"hexworld/internal/randx"
	"hexworld/internal/world"
)

// TickInterval is the fixed physics step spec.md §4.11 specifies: 1000/15
// ms, i.e. 15 ticks per wall-clock second.
const TickInterval = time.Second * 1000 / 15 / 1000

const ticksPerSecond = float64(time.Second) / float64(TickInterval)

// Scheduler drives the tick loop described above. Construct with New,
// then run it on its own goroutine via Run.
type Scheduler struct {
	mgr    *world.Manager
	loader world.ChunkLoader
	render world.Renderer
	eng    *light.Engine
	mesh   *physics.Builder
	cal    *calendarx.Calendar
	rain   *automata.RainMachine
	lcg    *randx.LCG
	logger *log.Logger

	latitude float64

	needStop atomic.Bool
	paused   atomic.Bool
	tickNo   atomic.Uint64

	rainIntensityBits atomic.Uint64

	queue *actionQueue

	observerLon, observerLat         int32
	observerX, observerY, observerZ int

	metrics *metrics
}

type metrics struct {
	tickDuration  prometheus.Histogram
	automatonRuns *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hexworld_tick_duration_seconds",
			Help:    "Wall-clock time spent executing one scheduler tick.",
			Buckets: prometheus.DefBuckets,
		}),
		automatonRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hexworld_automaton_ticks_total",
			Help: "Number of times each automaton's Tick function has run.",
		}, []string{"automaton"}),
	}
	if reg != nil {
		reg.MustRegister(m.tickDuration, m.automatonRuns)
	}
	return m
}

// Config bundles the Scheduler's dependencies.
type Config struct {
	Manager  *world.Manager
	Loader   world.ChunkLoader
	Renderer world.Renderer
	Oracle   world.Oracle
	Logger   *log.Logger
	Registry prometheus.Registerer

	Seed     int64
	Latitude float64

	TicksInDay           uint64
	SolarDaysInYear      uint64
	RotationAxisAngleDeg float64
	SummerSolsticeDay    uint64
}

// New builds a Scheduler ready to Run. The collision mesh is built once,
// empty, around the world origin; the first tick centers it on whatever
// observer position SetObserver reports.
func New(cfg Config) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Scheduler{
		mgr:      cfg.Manager,
		loader:   cfg.Loader,
		render:   cfg.Renderer,
		eng:      light.NewEngine(cfg.Manager),
		mesh:     physics.NewBuilder(cfg.Manager),
		cal:      calendarx.New(cfg.TicksInDay, cfg.SolarDaysInYear, cfg.RotationAxisAngleDeg, cfg.SummerSolsticeDay),
		rain:     automata.NewRainMachine(cfg.Seed, ticksPerSecond, float64(cfg.TicksInDay)),
		lcg:      randx.NewLCG(uint32(cfg.Seed)),
		logger:   logger,
		latitude: cfg.Latitude,
		queue:    newActionQueue(),
		metrics:  newMetrics(cfg.Registry),
	}
	return s
}

// SetObserver updates the point the collision mesh and window-slide logic
// center on. Safe to call from any goroutine; it only takes effect on the
// next tick.
func (s *Scheduler) SetObserver(lon, lat int32, x, y, z int) {
	s.queue.push(uuid.New(), func(*world.Manager, *light.Engine) {
		s.observerLon, s.observerLat = lon, lat
		s.observerX, s.observerY, s.observerZ = x, y, z
	})
}

// Submit enqueues an arbitrary world mutation to run at the start of the
// next tick, returning the action's correlation ID.
func (s *Scheduler) Submit(fn func(mgr *world.Manager, eng *light.Engine)) uuid.UUID {
	id := uuid.New()
	s.queue.push(id, fn)
	return id
}

// Mesh returns the most recently published collision-mesh snapshot.
func (s *Scheduler) Mesh() *physics.Mesh { return s.mesh.Current() }

// RainIntensity returns the current rain intensity, safe to call from any
// goroutine: it is published through an atomic word each tick rather than
// read directly off the single-goroutine-owned RainMachine.
func (s *Scheduler) RainIntensity() float64 {
	return math.Float64frombits(s.rainIntensityBits.Load())
}

// TickCount returns the number of ticks executed so far.
func (s *Scheduler) TickCount() uint64 { return s.tickNo.Load() }

// Pause suspends simulation advancement; the loop keeps running at a
// slower cadence (spec.md §4.11: sleep 4x the tick interval while paused)
// so Resume and queued actions are still observed promptly.
func (s *Scheduler) Pause()  { s.paused.Store(true) }
func (s *Scheduler) Resume() { s.paused.Store(false) }
func (s *Scheduler) Paused() bool { return s.paused.Load() }

// Stop requests the Run loop exit at the next opportunity.
func (s *Scheduler) Stop() { s.needStop.Store(true) }

// Run executes the tick loop until ctx is done or Stop is called.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		if s.needStop.Load() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.paused.Load() {
			s.queue.drain(s.mgr, s.eng)
			time.Sleep(TickInterval * 3)
			continue
		}

		start := time.Now()
		s.tick()
		s.metrics.tickDuration.Observe(time.Since(start).Seconds())
	}
}

// tick runs exactly one simulation step, in the fixed order spec.md §4.11
// lists.
func (s *Scheduler) tick() {
	n := s.tickNo.Add(1)
	dirty := world.NewDirtySet()

	s.queue.drain(s.mgr, s.eng)

	automata.DetectCollapses(s.mgr, dirty)
	s.metrics.automatonRuns.WithLabelValues("collapse").Inc()

	automata.FailingTick(s.mgr, dirty, TickInterval.Seconds())
	s.metrics.automatonRuns.WithLabelValues("failing").Inc()

	automata.WaterTick(s.mgr, dirty, s.observerLon, s.observerLat, n)
	s.metrics.automatonRuns.WithLabelValues("water").Inc()

	automata.GrassTick(s.mgr, dirty, s.lcg, s.cal, n, s.latitude)
	s.metrics.automatonRuns.WithLabelValues("grass").Inc()

	s.rain.Tick(n)
	s.rainIntensityBits.Store(math.Float64bits(s.rain.Intensity()))

	automata.FireTick(s.mgr, dirty, s.eng, s.lcg, s.rain.Intensity())
	s.metrics.automatonRuns.WithLabelValues("fire").Inc()

	s.relightDirtyWaterChunks(dirty)

	s.mesh.Rebuild(s.observerLon, s.observerLat, s.observerX, s.observerY, s.observerZ)

	s.slideIfNeeded()

	dirty.Flush(s.render)
	s.render.Update()
}

func (s *Scheduler) relightDirtyWaterChunks(dirty *world.DirtySet) {
	for _, coord := range dirty.WaterChunks() {
		s.eng.SeedChunk(coord.X, coord.Y)
	}
}

// slideIfNeeded moves the window one chunk toward the observer whenever
// any edge margin has shrunk below 2, per spec.md §4.10.
func (s *Scheduler) slideIfNeeded() {
	west, east, south, north := s.mgr.PlayerChunkOffsets(s.observerLon, s.observerLat)
	seedLight := func(c *world.Chunk) { s.eng.SeedChunk(c.Longitude, c.Latitude) }

	switch {
	case west < 2:
		s.mgr.Slide(world.West, s.loader, s.render, seedLight)
	case east < 2:
		s.mgr.Slide(world.East, s.loader, s.render, seedLight)
	case south < 2:
		s.mgr.Slide(world.South, s.loader, s.render, seedLight)
	case north < 2:
		s.mgr.Slide(world.North, s.loader, s.render, seedLight)
	}
}
