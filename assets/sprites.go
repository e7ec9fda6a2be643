package assets

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SpriteArchive holds one level's decoded .CEL/.CL2 sprite frames: each
// frame is preceded in the file by a frame-table of 32-bit offsets;
// SpriteArchive keeps the already-sliced-out raw frame bytes so
// spritedecode can run its six primitive decoders directly against
// Frames[i] without re-parsing the offset table on every access.
type SpriteArchive struct {
	Frames [][]byte
}

// FrameCount returns how many frames this archive declares.
func (a *SpriteArchive) FrameCount() int { return len(a.Frames) }

// Frame returns frame i's raw encoded bytes, or nil if i is out of range.
// Callers are expected to treat a nil return as "skip this sprite", not
// panic.
func (a *SpriteArchive) Frame(i int) []byte {
	if i < 0 || i >= len(a.Frames) {
		return nil
	}
	return a.Frames[i]
}

// LoadSpriteArchive reads a .CEL/.CL2 archive: a little-endian uint32
// frame count, then (count+1) little-endian uint32 offsets (the last
// marking end-of-data), then the concatenated frame bytes those offsets
// slice.
func LoadSpriteArchive(r io.ReaderAt) (*SpriteArchive, error) {
	var countBuf [4]byte
	if _, err := r.ReadAt(countBuf[:], 0); err != nil {
		return nil, fmt.Errorf("assets: reading archive frame count: %w", err)
	}
	count := binary.LittleEndian.Uint32(countBuf[:])

	offsets := make([]uint32, count+1)
	offsetBytes := make([]byte, 4*(count+1))
	if _, err := r.ReadAt(offsetBytes, 4); err != nil {
		return nil, fmt.Errorf("assets: reading archive offset table: %w", err)
	}
	for i := range offsets {
		offsets[i] = binary.LittleEndian.Uint32(offsetBytes[4*i:])
	}

	headerLen := int64(4 + 4*(count+1))
	frames := make([][]byte, count)
	for i := uint32(0); i < count; i++ {
		start, end := int64(offsets[i]), int64(offsets[i+1])
		if end < start {
			return nil, fmt.Errorf("assets: archive frame %d has negative length", i)
		}
		buf := make([]byte, end-start)
		if _, err := r.ReadAt(buf, headerLen+start); err != nil {
			return nil, fmt.Errorf("assets: reading archive frame %d: %w", i, err)
		}
		frames[i] = buf
	}

	return &SpriteArchive{Frames: frames}, nil
}
