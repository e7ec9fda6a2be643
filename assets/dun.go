// Package assets loads the engine's binary asset formats: .DUN level
// presets, .AMP automap palettes, .MIN/.TIL mega/micro tables, and
// .CEL/.CL2 sprite archives, plus the 256-color palette and light tables.
// Every reader uses encoding/binary with an explicit binary.LittleEndian,
// reading into typed structs field by field.
package assets

import (
	"encoding/binary"
	"fmt"
	"io"
)

// DunPreset is a parsed .DUN file: a fixed-size layout blob with four
// layers — mega-tile ids, monster spawn ids, object spawn ids, and
// transparency region ids. Layer 1 is Width*Height cells; layers 2..4 are
// (2*Width)*(2*Height) cells, matching the mega vs. micro grid split.
type DunPreset struct {
	Width, Height int
	Tiles         []uint16 // layer 1: mega-tile piece ids, Width*Height
	Monsters      []uint16 // layer 2: monster spawn ids, (2W)*(2H)
	Objects       []uint16 // layer 3: object spawn ids, (2W)*(2H)
	TransVals     []uint16 // layer 4: transparency region ids, (2W)*(2H)
}

// At returns the layer-1 tile id at (x, y), or the impassable-black
// sentinel 0 if out of range.
func (d *DunPreset) At(x, y int) uint16 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0
	}
	return d.Tiles[y*d.Width+x]
}

// LoadDun reads a .DUN preset from r. A missing or corrupt asset is fatal
// to the engine, which cannot degrade without tiles; LoadDun itself only
// returns the error, leaving the log.Fatal call to the caller so this
// package stays testable without exiting the process.
func LoadDun(r io.Reader) (*DunPreset, error) {
	var header [2]uint16
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("assets: reading .DUN header: %w", err)
	}
	width, height := int(header[0]), int(header[1])
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("assets: invalid .DUN dimensions %dx%d", width, height)
	}

	readLayer := func(n int) ([]uint16, error) {
		buf := make([]uint16, n)
		if err := binary.Read(r, binary.LittleEndian, &buf); err != nil {
			return nil, fmt.Errorf("assets: reading .DUN layer: %w", err)
		}
		return buf, nil
	}

	tiles, err := readLayer(width * height)
	if err != nil {
		return nil, err
	}
	microN := (2 * width) * (2 * height)
	monsters, err := readLayer(microN)
	if err != nil {
		return nil, err
	}
	objs, err := readLayer(microN)
	if err != nil {
		return nil, err
	}
	transVals, err := readLayer(microN)
	if err != nil {
		return nil, err
	}

	return &DunPreset{
		Width: width, Height: height,
		Tiles: tiles, Monsters: monsters, Objects: objs, TransVals: transVals,
	}, nil
}
