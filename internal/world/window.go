package world

// Slide moves the window one chunk in dir: it saves and drops the lead
// row/column one chunk at a time, shifts the matrix pointers, then loads
// or generates the new trailing row/column (spec.md §4.10). The chunks of
// both border rows/columns along the slide axis are reported to renderer
// so the caller's own dirty-notification pass need not rediscover them.
// Once the window lock is released, each newly loaded chunk is handed to
// seedLight for initial light propagation.
func (m *Manager) Slide(dir MoveDirection, loader ChunkLoader, renderer Renderer, seedLight func(*Chunk)) {
	m.mu.Lock()
	var seeded []*Chunk

	switch dir {
	case East:
		for row := int32(0); row < m.cfg.ChunksY; row++ {
			m.saveAndFree(loader, 0, row)
		}
		for col := int32(0); col < m.cfg.ChunksX-1; col++ {
			m.chunks[col] = m.chunks[col+1]
		}
		m.lon++
		newCol := m.cfg.ChunksX - 1
		m.chunks[newCol] = make([]*Chunk, m.cfg.ChunksY)
		for row := int32(0); row < m.cfg.ChunksY; row++ {
			c := m.loadOrGenerate(loader, m.lon+newCol, m.lat+row)
			m.chunks[newCol][row] = c
			seeded = append(seeded, c)
		}
	case West:
		lastCol := m.cfg.ChunksX - 1
		for row := int32(0); row < m.cfg.ChunksY; row++ {
			m.saveAndFree(loader, lastCol, row)
		}
		for col := lastCol; col > 0; col-- {
			m.chunks[col] = m.chunks[col-1]
		}
		m.lon--
		m.chunks[0] = make([]*Chunk, m.cfg.ChunksY)
		for row := int32(0); row < m.cfg.ChunksY; row++ {
			c := m.loadOrGenerate(loader, m.lon, m.lat+row)
			m.chunks[0][row] = c
			seeded = append(seeded, c)
		}
	case North:
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			m.saveAndFree(loader, col, 0)
		}
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			copy(m.chunks[col][:m.cfg.ChunksY-1], m.chunks[col][1:])
		}
		m.lat++
		newRow := m.cfg.ChunksY - 1
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			c := m.loadOrGenerate(loader, m.lon+col, m.lat+newRow)
			m.chunks[col][newRow] = c
			seeded = append(seeded, c)
		}
	case South:
		lastRow := m.cfg.ChunksY - 1
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			m.saveAndFree(loader, col, lastRow)
		}
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			copy(m.chunks[col][1:], m.chunks[col][:lastRow])
		}
		m.lat--
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			c := m.loadOrGenerate(loader, m.lon+col, m.lat)
			m.chunks[col][0] = c
			seeded = append(seeded, c)
		}
	}

	renderer.UpdateWorldPosition(m.lon, m.lat)
	m.notifyBorderRows(dir, renderer)
	m.mu.Unlock()

	// seedLight may look chunks up through ChunkAt, which takes the read
	// lock, so it runs only after the write lock is released.
	for _, c := range seeded {
		seedLight(c)
	}
}

func (m *Manager) saveAndFree(loader ChunkLoader, col, row int32) {
	c := m.chunks[col][row]
	if c == nil {
		return
	}
	if loader != nil {
		blob := SaveChunk(c)
		if err := loader.SaveChunkData(c.Longitude, c.Latitude, blob); err != nil {
			m.log.Printf("world: failed to save chunk (%d,%d): %v", c.Longitude, c.Latitude, err)
		}
	}
	m.chunks[col][row] = nil
}

func (m *Manager) loadOrGenerate(loader ChunkLoader, lon, lat int32) *Chunk {
	if loader != nil {
		if blob, err := loader.ChunkData(lon, lat); err == nil && len(blob) > 0 {
			if c, err := LoadChunkBlob(blob); err == nil {
				return c
			} else {
				m.log.Printf("world: discarding corrupt chunk (%d,%d): %v", lon, lat, err)
			}
		}
	}
	return GenerateChunk(m.oracle, lon, lat, m.cfg.Seed)
}

func (m *Manager) notifyBorderRows(dir MoveDirection, renderer Renderer) {
	notify := func(col, row int32) {
		if col < 0 || col >= m.cfg.ChunksX || row < 0 || row >= m.cfg.ChunksY {
			return
		}
		c := m.chunks[col][row]
		if c == nil {
			return
		}
		renderer.UpdateChunk(c.Longitude, c.Latitude, true)
		renderer.UpdateChunkWater(c.Longitude, c.Latitude, true)
	}
	switch dir {
	case East, West:
		for row := int32(0); row < m.cfg.ChunksY; row++ {
			notify(0, row)
			notify(m.cfg.ChunksX-1, row)
		}
	case North, South:
		for col := int32(0); col < m.cfg.ChunksX; col++ {
			notify(col, 0)
			notify(col, m.cfg.ChunksY-1)
		}
	}
}
