package assets

import (
	"fmt"
	"image/color"
	"io"
)

// LoadPalette reads a 256-entry RGB palette (index 0 is always black) as
// a standard image/color.Palette so spritedecode and compositor can hand
// it straight to Ebiten/image helpers.
func LoadPalette(r io.Reader) (color.Palette, error) {
	buf := make([]byte, 256*3)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("assets: reading palette: %w", err)
	}
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.RGBA{R: buf[3*i], G: buf[3*i+1], B: buf[3*i+2], A: 0xff}
	}
	return pal, nil
}

// LightTable is the 16x256 per-level-index light lookup:
// LightTable[level][paletteIndex] gives the palette index to draw
// instead, for PartiallyLit rendering.
type LightTable [16][256]byte

// LoadLightTable reads the 16x256-byte light table.
func LoadLightTable(r io.Reader) (*LightTable, error) {
	var lt LightTable
	for level := 0; level < 16; level++ {
		if _, err := io.ReadFull(r, lt[level][:]); err != nil {
			return nil, fmt.Errorf("assets: reading light table level %d: %w", level, err)
		}
	}
	return &lt, nil
}

// TransparencyLookup is the precomputed 256x256 blended-transparency
// table: TransparencyLookup[dst][src] gives the 50/50-blended palette
// index for a destination pixel dst and a lit source pixel src.
type TransparencyLookup [256][256]byte

// LoadTransparencyLookup reads the 256x256-byte blend table.
func LoadTransparencyLookup(r io.Reader) (*TransparencyLookup, error) {
	var tl TransparencyLookup
	for i := 0; i < 256; i++ {
		if _, err := io.ReadFull(r, tl[i][:]); err != nil {
			return nil, fmt.Errorf("assets: reading transparency lookup row %d: %w", i, err)
		}
	}
	return &tl, nil
}

// BuildTransparencyLookup derives a blend table from a palette when no
// precomputed asset is available: each entry is the nearest palette index
// to the channel-wise average of dst and src.
func BuildTransparencyLookup(pal color.Palette) *TransparencyLookup {
	var tl TransparencyLookup
	for d := 0; d < 256; d++ {
		dr, dg, db, _ := pal[d].RGBA()
		for s := 0; s < 256; s++ {
			sr, sg, sb, _ := pal[s].RGBA()
			avg := color.RGBA{
				R: uint8(((dr + sr) / 2) >> 8),
				G: uint8(((dg + sg) / 2) >> 8),
				B: uint8(((db + sb) / 2) >> 8),
				A: 0xff,
			}
			tl[d][s] = uint8(pal.Index(avg))
		}
	}
	return &tl
}
