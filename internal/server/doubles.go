package server

import "sync"

// NopRenderer is a world.Renderer that discards every notification. It is
// the renderer a headless daemon (no attached client) runs with, and the
// same shape the teacher's own manager_test.go uses as an in-memory test
// double, promoted here to an exported type other packages' tests can
// reuse directly instead of redefining it.
type NopRenderer struct{}

func (NopRenderer) UpdateChunk(lon, lat int32, immediate bool)      {}
func (NopRenderer) UpdateChunkWater(lon, lat int32, immediate bool) {}
func (NopRenderer) UpdateWorldPosition(lon, lat int32)              {}
func (NopRenderer) Update()                                         {}

// NopChunkLoader is a world.ChunkLoader that never has a saved chunk and
// discards every write: useful for tests and for a fully ephemeral,
// never-persisted world.
type NopChunkLoader struct{}

func (NopChunkLoader) ChunkData(lon, lat int32) ([]byte, error)        { return nil, nil }
func (NopChunkLoader) SaveChunkData(lon, lat int32, blob []byte) error { return nil }
func (NopChunkLoader) Free(lon, lat int32)                             {}
func (NopChunkLoader) ForceSaveAll() error                             { return nil }

// MemChunkLoader is an in-memory world.ChunkLoader, the exported
// counterpart of the teacher's manager_test.go memLoader: useful for
// tests that need round-tripped saves without touching disk.
type MemChunkLoader struct {
	mu    sync.Mutex
	saved map[[2]int32][]byte
}

// NewMemChunkLoader returns an empty in-memory loader.
func NewMemChunkLoader() *MemChunkLoader {
	return &MemChunkLoader{saved: make(map[[2]int32][]byte)}
}

func (l *MemChunkLoader) ChunkData(lon, lat int32) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saved[[2]int32{lon, lat}], nil
}

func (l *MemChunkLoader) SaveChunkData(lon, lat int32, blob []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.saved[[2]int32{lon, lat}] = blob
	return nil
}

func (l *MemChunkLoader) Free(lon, lat int32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.saved, [2]int32{lon, lat})
}

func (l *MemChunkLoader) ForceSaveAll() error { return nil }

// Count reports how many chunks currently have a saved blob.
func (l *MemChunkLoader) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.saved)
}
