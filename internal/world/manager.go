package world

import (
	"fmt"
	"log"
	"sync"

	"hexworld/internal/block"
	"hexworld/internal/hexmath"
)

// Config controls window size and the active-area margins, whose ranges
// Validate checks (spec.md §6 "Recognized settings").
type Config struct {
	ChunksX, ChunksY       int32
	ActiveMarginX, ActiveMarginY int32
	Seed                   uint32
}

// Validate checks NX/NY against [MinChunksPerAxis, MaxChunksPerAxis] and
// the margins against [2, N/2-2], following the teacher's config.Validate
// idiom of reporting the first violation as an error. Out-of-range values
// are not clamped.
func (cfg *Config) Validate() error {
	if cfg.ChunksX < MinChunksPerAxis || cfg.ChunksX > MaxChunksPerAxis {
		return fmt.Errorf("chunk_number_x must be in [%d,%d], got %d", MinChunksPerAxis, MaxChunksPerAxis, cfg.ChunksX)
	}
	if cfg.ChunksY < MinChunksPerAxis || cfg.ChunksY > MaxChunksPerAxis {
		return fmt.Errorf("chunk_number_y must be in [%d,%d], got %d", MinChunksPerAxis, MaxChunksPerAxis, cfg.ChunksY)
	}
	maxMarginX := cfg.ChunksX/2 - 2
	maxMarginY := cfg.ChunksY/2 - 2
	if cfg.ActiveMarginX < 2 || cfg.ActiveMarginX > maxMarginX {
		return fmt.Errorf("active_area_margins_x must be in [2,%d], got %d", maxMarginX, cfg.ActiveMarginX)
	}
	if cfg.ActiveMarginY < 2 || cfg.ActiveMarginY > maxMarginY {
		return fmt.Errorf("active_area_margins_y must be in [2,%d], got %d", maxMarginY, cfg.ActiveMarginY)
	}
	return nil
}

// Manager owns the sliding window of loaded chunks and is the sole
// mutation surface for world state. Per spec.md §5 it is driven entirely
// by the simulation thread; the mutex below guards only the chunk lookup
// table itself (so a render thread can safely ask "is this chunk loaded"
// concurrently), never the fields inside an individual *Chunk.
type Manager struct {
	cfg Config

	mu       sync.RWMutex
	chunks   [][]*Chunk // chunks[col][row], col in [0,ChunksX), row in [0,ChunksY)
	lon, lat int32      // address of chunks[0][0]

	oracle Oracle
	log    *log.Logger
}

// NewManager builds a manager and fully populates its window by
// generating every chunk (no loader is consulted at construction time;
// callers that want to hydrate from persistence should follow up with
// Hydrate).
func NewManager(cfg Config, oracle Oracle, logger *log.Logger) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{cfg: cfg, oracle: oracle, log: logger}
	m.chunks = make([][]*Chunk, cfg.ChunksX)
	for col := range m.chunks {
		m.chunks[col] = make([]*Chunk, cfg.ChunksY)
		for row := range m.chunks[col] {
			lon, lat := m.lon+int32(col), m.lat+int32(row)
			m.chunks[col][row] = GenerateChunk(oracle, lon, lat, cfg.Seed)
		}
	}
	return m, nil
}

// Hydrate replaces generated chunks with saved ones wherever the loader
// has them, per spec.md §7 ("discard the blob and regenerate" on
// corruption).
func (m *Manager) Hydrate(loader ChunkLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for col := range m.chunks {
		for row := range m.chunks[col] {
			lon, lat := m.lon+int32(col), m.lat+int32(row)
			blob, err := loader.ChunkData(lon, lat)
			if err != nil || len(blob) == 0 {
				continue
			}
			c, err := LoadChunkBlob(blob)
			if err != nil {
				m.log.Printf("world: discarding corrupt chunk (%d,%d): %v", lon, lat, err)
				continue
			}
			m.chunks[col][row] = c
		}
	}
}

// Longitude and Latitude return the south-west chunk address of the
// window.
func (m *Manager) Longitude() int32 { m.mu.RLock(); defer m.mu.RUnlock(); return m.lon }
func (m *Manager) Latitude() int32  { m.mu.RLock(); defer m.mu.RUnlock(); return m.lat }

// ChunksX and ChunksY report the window's dimensions.
func (m *Manager) ChunksX() int32 { return m.cfg.ChunksX }
func (m *Manager) ChunksY() int32 { return m.cfg.ChunksY }

// localIndex returns the column/row of (lon,lat) within the window, if loaded.
func (m *Manager) localIndex(lon, lat int32) (col, row int32, ok bool) {
	col = lon - m.lon
	row = lat - m.lat
	if col < 0 || col >= m.cfg.ChunksX || row < 0 || row >= m.cfg.ChunksY {
		return 0, 0, false
	}
	return col, row, true
}

// ChunkAt returns the loaded chunk at (lon,lat), if any.
func (m *Manager) ChunkAt(lon, lat int32) (*Chunk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	col, row, ok := m.localIndex(lon, lat)
	if !ok {
		return nil, false
	}
	return m.chunks[col][row], true
}

// IsActive reports whether (lon,lat) lies in the interior active area,
// where automata run (spec.md §3 "active_margins").
func (m *Manager) IsActive(lon, lat int32) bool {
	col, row, ok := m.localIndex(lon, lat)
	if !ok {
		return false
	}
	return col >= m.cfg.ActiveMarginX && col < m.cfg.ChunksX-m.cfg.ActiveMarginX &&
		row >= m.cfg.ActiveMarginY && row < m.cfg.ChunksY-m.cfg.ActiveMarginY
}

// ForEachActive calls fn for every chunk in the active area.
func (m *Manager) ForEachActive(fn func(c *Chunk)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for col := m.cfg.ActiveMarginX; col < m.cfg.ChunksX-m.cfg.ActiveMarginX; col++ {
		for row := m.cfg.ActiveMarginY; row < m.cfg.ChunksY-m.cfg.ActiveMarginY; row++ {
			fn(m.chunks[col][row])
		}
	}
}

// BlockNeighbor resolves the block handle one hex (or vertical) hop away
// from (lon,lat,x,y,z), crossing chunk boundaries transparently. ok is
// false if the neighbor falls outside the loaded window or outside the
// chunk's z range.
func (m *Manager) BlockNeighbor(lon, lat int32, x, y, z int, dir hexmath.Direction) (h block.Handle, nlon, nlat int32, nx, ny, nz int, ok bool) {
	if dir == hexmath.Up {
		if z+1 >= Height {
			return block.Handle{}, 0, 0, 0, 0, 0, false
		}
		c, found := m.ChunkAt(lon, lat)
		if !found {
			return block.Handle{}, 0, 0, 0, 0, 0, false
		}
		return c.BlockAt(x, y, z+1), lon, lat, x, y, z + 1, true
	}
	if dir == hexmath.Down {
		if z-1 < 0 {
			return block.Handle{}, 0, 0, 0, 0, 0, false
		}
		c, found := m.ChunkAt(lon, lat)
		if !found {
			return block.Handle{}, 0, 0, 0, 0, 0, false
		}
		return c.BlockAt(x, y, z-1), lon, lat, x, y, z - 1, true
	}

	g := GlobalHex(lon, lat, x, y)
	ng := hexmath.Neighbor(g, dir)
	nlon, nlat, nx, ny = LocalFromGlobal(ng)
	c, found := m.ChunkAt(nlon, nlat)
	if !found {
		return block.Handle{}, 0, 0, 0, 0, 0, false
	}
	return c.BlockAt(nx, ny, z), nlon, nlat, nx, ny, z, true
}

// PlayerChunkOffsets returns how many chunks the observer's chunk
// coordinate sits from each window edge; the scheduler slides the window
// when any offset drops below 2 (spec.md §4.10).
func (m *Manager) PlayerChunkOffsets(playerLon, playerLat int32) (west, east, south, north int32) {
	// Offsets are signed: an observer outside the window gets a negative
	// offset on the side it lies beyond.
	col := playerLon - m.Longitude()
	row := playerLat - m.Latitude()
	return col, m.cfg.ChunksX - 1 - col, row, m.cfg.ChunksY - 1 - row
}
