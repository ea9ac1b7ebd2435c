// Package persist implements the generic DEFLATE framing spec.md §4.10/§6
// specifies for chunk blobs: a 4-byte little-endian uncompressed-length
// prefix followed by a DEFLATE stream. It knows nothing about chunk
// layout; internal/world owns the chunk-specific binary format and calls
// through this package for the byte-level codec.
package persist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/klauspost/compress/flate"
)

// ErrShortStream is returned when a blob ends before its declared length
// prefix or before a complete DEFLATE stream has been read.
var ErrShortStream = errors.New("persist: blob ends before declared length")

// ErrLengthMismatch is returned when the decompressed length disagrees
// with the blob's length prefix.
var ErrLengthMismatch = errors.New("persist: decompressed length does not match prefix")

// Compress returns data framed as a 4-byte LE uncompressed-length prefix
// followed by a DEFLATE stream.
func Compress(data []byte) []byte {
	var buf bytes.Buffer
	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(len(data)))
	buf.Write(prefix[:])

	w, _ := flate.NewWriter(&buf, flate.BestSpeed)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

// Decompress reverses Compress, validating the length prefix against the
// actual decompressed size.
func Decompress(blob []byte) ([]byte, error) {
	if len(blob) < 4 {
		return nil, ErrShortStream
	}
	want := binary.LittleEndian.Uint32(blob[:4])

	r := flate.NewReader(bytes.NewReader(blob[4:]))
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrShortStream
		}
		return nil, err
	}
	if uint32(len(out)) != want {
		return nil, ErrLengthMismatch
	}
	return out, nil
}
