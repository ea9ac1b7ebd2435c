package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"hexworld/internal/block"
	"hexworld/internal/hexmath"
	"hexworld/internal/persist"
)

// ErrUnknownBlockType is logged and papered over by rewriting the cell as
// air, per spec.md §7 ("Unknown block type in a load stream").
var ErrUnknownBlockType = errors.New("world: unknown block type in load stream")

// ErrCorruptChunk covers any structural problem with a chunk blob: bad
// compression framing or a stream that ends before its declared lists are
// fully read. Per spec.md §7 the caller discards the blob and regenerates.
var ErrCorruptChunk = errors.New("world: corrupt persisted chunk")

// EncodeChunk serializes c into the uncompressed wire format spec.md §6
// describes: a fixed header, the dense per-cell type-id grid, then the
// special-variant side lists.
func EncodeChunk(c *Chunk) []byte {
	var buf bytes.Buffer

	writeU32(&buf, uint32(len(c.Liquids)))
	writeI32(&buf, c.Longitude)
	writeI32(&buf, c.Latitude)

	for i := 0; i < Cells; i++ {
		writeU16(&buf, uint16(c.blocks[i].Type))
	}

	writeU16(&buf, uint16(len(c.Liquids)))
	for _, l := range c.Liquids {
		buf.WriteByte(l.X)
		buf.WriteByte(l.Y)
		buf.WriteByte(l.Z)
		writeU16(&buf, l.Level)
	}

	writeU16(&buf, uint16(len(c.NonStandard)))
	for _, n := range c.NonStandard {
		buf.WriteByte(n.X)
		buf.WriteByte(n.Y)
		buf.WriteByte(n.Z)
		writeU16(&buf, uint16(n.Type))
		buf.WriteByte(byte(n.Orientation))
	}

	writeU16(&buf, uint16(len(c.LightSources)))
	for _, ls := range c.LightSources {
		buf.WriteByte(ls.X)
		buf.WriteByte(ls.Y)
		buf.WriteByte(ls.Z)
		buf.WriteByte(ls.Level)
	}

	writeU16(&buf, uint16(len(c.Fires)))
	for _, f := range c.Fires {
		buf.WriteByte(f.X)
		buf.WriteByte(f.Y)
		buf.WriteByte(f.Z)
		buf.WriteByte(f.Power)
	}

	writeU16(&buf, uint16(len(c.ActiveGrass)))
	for _, g := range c.ActiveGrass {
		buf.WriteByte(g.X)
		buf.WriteByte(g.Y)
		buf.WriteByte(g.Z)
	}

	writeU16(&buf, uint16(len(c.Failing)))
	for _, fb := range c.Failing {
		buf.WriteByte(fb.X)
		buf.WriteByte(fb.Y)
		buf.WriteByte(fb.Z)
		writeU16(&buf, uint16(fb.Wrapped))
		writeU64(&buf, math.Float64bits(fb.Velocity))
	}

	return buf.Bytes()
}

// DecodeChunk reverses EncodeChunk. It rebuilds transparency and arena
// handles from the type-id grid and the side lists, restoring spec.md §8
// property 2 (special-list consistency) from scratch.
func DecodeChunk(data []byte) (*Chunk, error) {
	r := bytes.NewReader(data)

	waterHint, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: header water count: %v", ErrCorruptChunk, err)
	}
	lon, err := readI32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: header longitude: %v", ErrCorruptChunk, err)
	}
	lat, err := readI32(r)
	if err != nil {
		return nil, fmt.Errorf("%w: header latitude: %v", ErrCorruptChunk, err)
	}

	c := NewChunk(lon, lat)
	c.Liquids = make([]block.Liquid, 0, waterHint)

	unknown := 0
	for i := 0; i < Cells; i++ {
		t, err := readU16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: block grid short at cell %d: %v", ErrCorruptChunk, i, err)
		}
		bt := block.Type(t)
		if bt != fireType && bt >= block.NumBlockTypes {
			bt = block.Air
			unknown++
		}
		c.blocks[i] = block.Handle{Type: bt, Arena: block.ArenaNone}
		c.transparency[i] = transparencyForStored(bt)
	}
	if unknown > 0 {
		log.Printf("%v: %d cell(s) of chunk (%d,%d) rewritten as air", ErrUnknownBlockType, unknown, lon, lat)
	}

	liquidCount, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: liquid count: %v", ErrCorruptChunk, err)
	}
	for i := 0; i < int(liquidCount); i++ {
		x, y, z, err := readXYZ(r)
		if err != nil {
			return nil, fmt.Errorf("%w: liquid %d: %v", ErrCorruptChunk, i, err)
		}
		level, err := readU16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: liquid %d level: %v", ErrCorruptChunk, i, err)
		}
		c.NewLiquid(int(x), int(y), int(z), level)
	}

	nsfCount, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: nsf count: %v", ErrCorruptChunk, err)
	}
	for i := 0; i < int(nsfCount); i++ {
		x, y, z, err := readXYZ(r)
		if err != nil {
			return nil, fmt.Errorf("%w: nsf %d: %v", ErrCorruptChunk, i, err)
		}
		t, err := readU16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: nsf %d type: %v", ErrCorruptChunk, i, err)
		}
		dir, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: nsf %d orientation: %v", ErrCorruptChunk, i, err)
		}
		c.NewNonStandardForm(int(x), int(y), int(z), block.Type(t), hexmath.Direction(dir))
	}

	lsCount, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: light source count: %v", ErrCorruptChunk, err)
	}
	for i := 0; i < int(lsCount); i++ {
		x, y, z, err := readXYZ(r)
		if err != nil {
			return nil, fmt.Errorf("%w: light source %d: %v", ErrCorruptChunk, i, err)
		}
		level, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: light source %d level: %v", ErrCorruptChunk, i, err)
		}
		c.NewLightSource(int(x), int(y), int(z), level)
	}

	fireCount, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: fire count: %v", ErrCorruptChunk, err)
	}
	for i := 0; i < int(fireCount); i++ {
		x, y, z, err := readXYZ(r)
		if err != nil {
			return nil, fmt.Errorf("%w: fire %d: %v", ErrCorruptChunk, i, err)
		}
		power, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: fire %d power: %v", ErrCorruptChunk, i, err)
		}
		c.NewFire(int(x), int(y), int(z), power)
	}

	grassCount, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: grass count: %v", ErrCorruptChunk, err)
	}
	for i := 0; i < int(grassCount); i++ {
		x, y, z, err := readXYZ(r)
		if err != nil {
			return nil, fmt.Errorf("%w: grass %d: %v", ErrCorruptChunk, i, err)
		}
		c.NewActiveGrass(int(x), int(y), int(z))
	}

	failingCount, err := readU16(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failing count: %v", ErrCorruptChunk, err)
	}
	for i := 0; i < int(failingCount); i++ {
		x, y, z, err := readXYZ(r)
		if err != nil {
			return nil, fmt.Errorf("%w: failing %d: %v", ErrCorruptChunk, i, err)
		}
		wrapped, err := readU16(r)
		if err != nil {
			return nil, fmt.Errorf("%w: failing %d wrapped: %v", ErrCorruptChunk, i, err)
		}
		bits, err := readU64(r)
		if err != nil {
			return nil, fmt.Errorf("%w: failing %d velocity: %v", ErrCorruptChunk, i, err)
		}
		c.NewFailingBlock(int(x), int(y), int(z), block.Type(wrapped), math.Float64frombits(bits))
	}

	// Rebuild the height map from the reconstructed grid; it is a cache,
	// not part of the wire format.
	for x := 0; x < Width; x++ {
		for y := 0; y < Width; y++ {
			top := 0
			for z := Height - 1; z >= 0; z-- {
				if c.blocks[addr(x, y, z)].Type != block.Air {
					top = z
					break
				}
			}
			c.SetHeightAt(x, y, top)
		}
	}
	c.NeedsLight = true

	return c, nil
}

// transparencyForStored mirrors TransparencyFor but accepts the synthetic
// fireType: fire never blocks visibility or light, so a fire cell gets
// air's transparency.
func transparencyForStored(t block.Type) uint8 {
	if t == fireType {
		return block.TransparencyFor(block.Air)
	}
	return block.TransparencyFor(t)
}

// SaveChunk returns the compressed, length-prefixed blob for c, ready to
// hand to a ChunkLoader.
func SaveChunk(c *Chunk) []byte {
	return persist.Compress(EncodeChunk(c))
}

// LoadChunkBlob decompresses and decodes a blob produced by SaveChunk.
func LoadChunkBlob(blob []byte) (*Chunk, error) {
	raw, err := persist.Decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptChunk, err)
	}
	return DecodeChunk(raw)
}

func readXYZ(r *bytes.Reader) (x, y, z uint8, err error) {
	x, err = r.ReadByte()
	if err != nil {
		return
	}
	y, err = r.ReadByte()
	if err != nil {
		return
	}
	z, err = r.ReadByte()
	return
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeI32(buf *bytes.Buffer, v int32) { writeU32(buf, uint32(v)) }

func readU16(r *bytes.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func readU64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func readI32(r *bytes.Reader) (int32, error) {
	v, err := readU32(r)
	return int32(v), err
}
