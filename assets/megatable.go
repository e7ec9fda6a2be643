package assets

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MegaTile is one palette-to-micro mapping entry: the four
// micro-tile/frame ids a mega-tile piece id expands to. A zero value means
// "empty/black diamond" for that micro slot.
type MegaTile struct {
	Micro1, Micro2, Micro3, Micro4 uint16
}

// MegaTable is the per-level-kind palette of up to 256 mega-tile shapes
// loaded from a .TIL file.
type MegaTable []MegaTile

// LoadTil reads a .TIL file: a flat sequence of four little-endian uint16
// micro ids per mega-tile entry, one entry per piece id in the level's
// palette.
func LoadTil(r io.Reader) (MegaTable, error) {
	var table MegaTable
	for {
		var entry [4]uint16
		if err := binary.Read(r, binary.LittleEndian, &entry); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("assets: reading .TIL: %w", err)
		}
		table = append(table, MegaTile{Micro1: entry[0], Micro2: entry[1], Micro3: entry[2], Micro4: entry[3]})
	}
	return table, nil
}

// MicroFrame indexes a single 32x32 sprite frame within a level's sprite
// archive, as stored in a .MIN table.
type MicroFrame struct {
	FrameIndex uint16
}

// MinTable maps a micro-tile id to the sprite frame it draws, loaded from
// a .MIN file (one little-endian uint16 per micro id).
type MinTable []MicroFrame

// LoadMin reads a .MIN file.
func LoadMin(r io.Reader) (MinTable, error) {
	var table MinTable
	for {
		var idx uint16
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("assets: reading .MIN: %w", err)
		}
		table = append(table, MicroFrame{FrameIndex: idx})
	}
	return table, nil
}
