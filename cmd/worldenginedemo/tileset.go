package main

import (
	"image/color"

	"worldcore/assets"
	"worldcore/spritedecode"
	"worldcore/worldstate"
)

// The demo ships no game data, so it synthesizes a minimal tileset in
// memory: flat-shaded diamond floors and wall slabs, one frame per piece
// category, all encoded exactly the way real .CEL frames are so the
// decoder and compositor run the production path end to end.

// playerFrameIndex is the archive slot holding the player marker sprite.
const playerFrameIndex = 40

// encodeSquare produces a Square-encoded frame filled with one palette
// index.
func encodeSquare(idx byte) []byte {
	frame := make([]byte, spritedecode.SquareHeight*spritedecode.TileWidth)
	for i := range frame {
		frame[i] = idx
	}
	return frame
}

// encodeDiamond produces a TransparentSquare frame whose opaque runs form
// the 64/2-wide isometric diamond silhouette, filled with idx.
func encodeDiamond(idx byte) []byte {
	var frame []byte
	for row := 0; row < spritedecode.SquareHeight; row++ {
		half := row
		if row >= 16 {
			half = 31 - row
		}
		width := 2 * (half + 1)
		lead := (spritedecode.TileWidth - width) / 2
		if lead > 0 {
			frame = append(frame, byte(-int8(lead)))
		}
		frame = append(frame, byte(width))
		for i := 0; i < width; i++ {
			frame = append(frame, idx)
		}
		trail := spritedecode.TileWidth - lead - width
		if trail > 0 {
			frame = append(frame, byte(-int8(trail)))
		}
	}
	return frame
}

// buildDebugTileset constructs the mega/micro tables, sprite archive, and
// palette the compositor needs, covering piece ids 1..32 plus the player
// marker frame.
func buildDebugTileset() (assets.MegaTable, assets.MinTable, *assets.SpriteArchive, color.Palette) {
	arch := &assets.SpriteArchive{}

	// Frames 0..31: one flat diamond per piece id, hue stepped by id.
	for id := 0; id < 32; id++ {
		arch.Frames = append(arch.Frames, encodeDiamond(byte(32+id)))
	}
	// Frames 32..39: solid wall squares in a darker ramp.
	for i := 0; i < 8; i++ {
		arch.Frames = append(arch.Frames, encodeSquare(byte(128+i)))
	}
	// Frame 40: player marker.
	arch.Frames = append(arch.Frames, encodeDiamond(200))

	var min assets.MinTable
	transparentSquare := uint16(spritedecode.PrimitiveTransparentSquare) << 12
	for id := 0; id < 32; id++ {
		min = append(min, assets.MicroFrame{FrameIndex: transparentSquare | uint16(id)})
	}
	for i := 0; i < 8; i++ {
		min = append(min, assets.MicroFrame{FrameIndex: uint16(32 + i)}) // Square primitive
	}

	var mega assets.MegaTable
	for id := 1; id <= 32; id++ {
		entry := assets.MegaTile{Micro1: uint16(id), Micro2: uint16(id)}
		if id == 22 || id == 17 || id == 27 {
			// Walls and pillars add the two upper (roof) slots.
			wall := uint16(33)
			entry.Micro3, entry.Micro4 = wall, wall
		}
		mega = append(mega, entry)
	}

	pal := make(color.Palette, 256)
	for i := range pal {
		v := uint8(i)
		pal[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	for i := 32; i < 64; i++ {
		pal[i] = color.RGBA{R: uint8(60 + i), G: uint8(40 + i), B: 30, A: 0xff}
	}
	pal[200] = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	pal[0] = color.RGBA{A: 0xff}

	return mega, min, arch, pal
}

// buildDebugLightTable derives a 16-level dimming ramp over the debug
// palette: level 0 is identity, deeper levels step every index toward 0.
func buildDebugLightTable() *assets.LightTable {
	var lt assets.LightTable
	for level := 0; level < 16; level++ {
		for idx := 0; idx < 256; idx++ {
			dimmed := idx * (16 - level) / 16
			lt[level][idx] = byte(dimmed)
		}
	}
	return &lt
}

// buildDebugAmp classifies the generated level's piece ids for the
// automap: solid pieces map as diamonds, floors as dirt, doors and arches
// with their flag bits.
func buildDebugAmp(w *worldstate.World) [assets.AmpEntryCount]assets.AmpEntry {
	var amp [assets.AmpEntryCount]assets.AmpEntry
	for id := 0; id < assets.AmpEntryCount && id < len(w.Pieces); id++ {
		switch {
		case id == 2:
			amp[id] = assets.AmpEntry{Type: 3, Flags: uint8(assets.AmpHorizontalDoor)}
		case id == 11:
			amp[id] = assets.AmpEntry{Type: 3, Flags: uint8(assets.AmpHorizontalArch)}
		case w.Pieces.Get(id).Solid:
			amp[id] = assets.AmpEntry{Type: 1} // diamond
		default:
			amp[id] = assets.AmpEntry{Type: 5} // dirt
		}
	}
	return amp
}
