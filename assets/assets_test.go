package assets

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildDunBytes(t *testing.T, width, height int, tiles []uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	microN := (2 * width) * (2 * height)
	write := func(v interface{}) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("building fixture: %v", err)
		}
	}
	write([2]uint16{uint16(width), uint16(height)})
	write(tiles)
	write(make([]uint16, microN)) // monsters
	write(make([]uint16, microN)) // objects
	write(make([]uint16, microN)) // transvals
	return buf.Bytes()
}

func TestLoadDun(t *testing.T) {
	tiles := []uint16{1, 2, 3, 4, 5, 6}
	data := buildDunBytes(t, 3, 2, tiles)

	dun, err := LoadDun(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadDun: %v", err)
	}
	if dun.Width != 3 || dun.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", dun.Width, dun.Height)
	}
	if dun.At(1, 1) != 5 {
		t.Fatalf("At(1,1) = %d, want 5", dun.At(1, 1))
	}
	if dun.At(-1, 0) != 0 || dun.At(3, 0) != 0 {
		t.Fatal("out-of-range At should return the 0 sentinel")
	}
	if len(dun.Monsters) != 24 || len(dun.Objects) != 24 || len(dun.TransVals) != 24 {
		t.Fatal("micro layers not sized (2W)x(2H)")
	}
}

func TestLoadDunTruncated(t *testing.T) {
	data := buildDunBytes(t, 3, 2, []uint16{1, 2, 3, 4, 5, 6})
	if _, err := LoadDun(bytes.NewReader(data[:10])); err == nil {
		t.Fatal("expected error for truncated .DUN")
	}
	if _, err := LoadDun(bytes.NewReader([]byte{0, 0, 0, 0})); err == nil {
		t.Fatal("expected error for zero dimensions")
	}
}

func TestLoadAmpPacksNibbles(t *testing.T) {
	raw := make([]byte, AmpEntryCount)
	raw[3] = 0x42 // type 2, flags 0x4
	entries, err := LoadAmp(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("LoadAmp: %v", err)
	}
	if entries[3].Type != 2 || entries[3].Flags != 4 {
		t.Fatalf("entry 3 = %+v, want type 2 flags 4", entries[3])
	}
}

func TestLoadTilAndMin(t *testing.T) {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, []uint16{10, 11, 12, 13, 20, 21, 22, 23})
	til, err := LoadTil(&buf)
	if err != nil {
		t.Fatalf("LoadTil: %v", err)
	}
	if len(til) != 2 || til[1].Micro3 != 22 {
		t.Fatalf("TIL decoded wrong: %+v", til)
	}

	buf.Reset()
	_ = binary.Write(&buf, binary.LittleEndian, []uint16{7, 8, 9})
	min, err := LoadMin(&buf)
	if err != nil {
		t.Fatalf("LoadMin: %v", err)
	}
	if len(min) != 3 || min[2].FrameIndex != 9 {
		t.Fatalf("MIN decoded wrong: %+v", min)
	}
}

func TestLoadPalette(t *testing.T) {
	raw := make([]byte, 256*3)
	raw[3], raw[4], raw[5] = 10, 20, 30 // entry 1
	pal, err := LoadPalette(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	r, g, b, _ := pal[1].RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Fatalf("entry 1 = (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = pal[0].RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatal("index 0 must stay black")
	}
}

func TestLoadSpriteArchive(t *testing.T) {
	var buf bytes.Buffer
	frameA := []byte{1, 2, 3}
	frameB := []byte{4, 5}
	_ = binary.Write(&buf, binary.LittleEndian, uint32(2))
	_ = binary.Write(&buf, binary.LittleEndian, []uint32{0, 3, 5})
	buf.Write(frameA)
	buf.Write(frameB)

	arch, err := LoadSpriteArchive(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("LoadSpriteArchive: %v", err)
	}
	if arch.FrameCount() != 2 {
		t.Fatalf("FrameCount = %d, want 2", arch.FrameCount())
	}
	if !bytes.Equal(arch.Frame(0), frameA) || !bytes.Equal(arch.Frame(1), frameB) {
		t.Fatal("frame bytes sliced wrong")
	}
	if arch.Frame(2) != nil || arch.Frame(-1) != nil {
		t.Fatal("out-of-range frames should be nil, not panic")
	}
}

func TestBuildTransparencyLookupAveragesChannels(t *testing.T) {
	raw := make([]byte, 256*3)
	raw[3] = 200 // entry 1: (200,0,0)
	raw[6] = 100 // entry 2: (100,0,0)
	pal, err := LoadPalette(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("LoadPalette: %v", err)
	}
	tl := BuildTransparencyLookup(pal)
	blended := tl[1][2]
	r, _, _, _ := pal[blended].RGBA()
	// Nearest palette entry to (150,0,0) must be one of the two reds, not
	// black.
	if r>>8 == 0 {
		t.Fatalf("blend of two reds resolved to black (index %d)", blended)
	}
}
