package persist

import (
	"path/filepath"
	"testing"
)

func TestFileChunkLoaderRoundTrips(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileChunkLoader(filepath.Join(dir, "chunks"))
	if err != nil {
		t.Fatalf("NewFileChunkLoader: %v", err)
	}

	if err := l.SaveChunkData(3, -2, []byte("a-blob")); err != nil {
		t.Fatalf("SaveChunkData: %v", err)
	}
	got, err := l.ChunkData(3, -2)
	if err != nil {
		t.Fatalf("ChunkData: %v", err)
	}
	if string(got) != "a-blob" {
		t.Fatalf("expected round-tripped blob, got %q", got)
	}
}

func TestFileChunkLoaderMissingChunkReturnsNilNil(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileChunkLoader(filepath.Join(dir, "chunks"))
	if err != nil {
		t.Fatalf("NewFileChunkLoader: %v", err)
	}
	data, err := l.ChunkData(99, 99)
	if err != nil || data != nil {
		t.Fatalf("expected (nil, nil) for a missing chunk, got (%v, %v)", data, err)
	}
}

func TestFileChunkLoaderFreeRemovesFile(t *testing.T) {
	dir := t.TempDir()
	l, err := NewFileChunkLoader(filepath.Join(dir, "chunks"))
	if err != nil {
		t.Fatalf("NewFileChunkLoader: %v", err)
	}
	if err := l.SaveChunkData(0, 0, []byte("x")); err != nil {
		t.Fatalf("SaveChunkData: %v", err)
	}
	l.Free(0, 0)
	data, err := l.ChunkData(0, 0)
	if err != nil || data != nil {
		t.Fatalf("expected chunk to be gone after Free, got (%v, %v)", data, err)
	}
}
