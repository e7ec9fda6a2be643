package spritedecode

import "worldcore/assets"

// Surface is the palette-indexed backing buffer RenderTile writes into.
// Frames encode their rows bottom to top; Surface itself stores rows top
// to bottom and RenderTile accounts for the flip internally, so callers
// address it with ordinary (x, y) screen coordinates.
type Surface struct {
	Pix           []byte
	Width, Height int

	// Clip rectangle, half-open. Writes outside it are dropped; the frame
	// composer narrows it when a side panel occludes part of the
	// viewport.
	clipX0, clipY0, clipX1, clipY1 int
}

// NewSurface allocates a zeroed palette-indexed surface with the clip
// rectangle covering the whole surface.
func NewSurface(width, height int) *Surface {
	return &Surface{
		Pix: make([]byte, width*height), Width: width, Height: height,
		clipX1: width, clipY1: height,
	}
}

// SetClip narrows the writable region to the half-open rectangle
// [x0,x1) x [y0,y1), intersected with the surface bounds.
func (s *Surface) SetClip(x0, y0, x1, y1 int) {
	s.clipX0 = max(x0, 0)
	s.clipY0 = max(y0, 0)
	s.clipX1 = min(x1, s.Width)
	s.clipY1 = min(y1, s.Height)
}

// Clear zeroes every pixel inside the active clip rectangle, leaving
// clipped-out regions (an open side panel) untouched.
func (s *Surface) Clear() {
	for y := s.clipY0; y < s.clipY1; y++ {
		row := s.Pix[y*s.Width : (y+1)*s.Width]
		for x := s.clipX0; x < s.clipX1; x++ {
			row[x] = 0
		}
	}
}

// ResetClip restores the clip rectangle to the full surface.
func (s *Surface) ResetClip() {
	s.clipX0, s.clipY0 = 0, 0
	s.clipX1, s.clipY1 = s.Width, s.Height
}

// set writes one pixel, clipping silently to the surface bounds and the
// active clip rectangle; nothing is ever written outside the surface.
func (s *Surface) set(x, y int, v byte) {
	if x < s.clipX0 || x >= s.clipX1 || y < s.clipY0 || y >= s.clipY1 {
		return
	}
	s.Pix[y*s.Width+x] = v
}

func (s *Surface) get(x, y int) byte {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return 0
	}
	return s.Pix[y*s.Width+x]
}

// LightMode is the light-table strategy a render variant is specialized
// over: FullyLit copies, FullyDark blacks out, PartiallyLit runs a
// per-pixel light-table lookup.
type LightMode interface {
	shade(v byte) byte
}

// FullyLit copies the source pixel unchanged.
type FullyLit struct{}

func (FullyLit) shade(v byte) byte { return v }

// FullyDark always yields palette index 0 (black).
type FullyDark struct{}

func (FullyDark) shade(byte) byte { return 0 }

// PartiallyLit looks up each pixel through a 256-byte light table row
// selected by the tile's dLight level.
type PartiallyLit struct {
	Table *assets.LightTable
	Level uint8
}

func (p PartiallyLit) shade(v byte) byte {
	if p.Table == nil {
		return v
	}
	return p.Table[p.Level%16][v]
}

// TransparencyMode is the mask-application strategy a render variant is
// specialized over: Solid ignores the mask, Stippled writes only opaque
// mask columns, Blended writes a 50/50 dst/src blend through the palette
// blend table where the mask is clear.
type TransparencyMode interface {
	write(s *Surface, x, y int, opaqueBit bool, lit byte, blend *assets.TransparencyLookup)
}

// Solid writes the lit pixel unconditionally, ignoring the mask entirely.
type Solid struct{}

func (Solid) write(s *Surface, x, y int, _ bool, lit byte, _ *assets.TransparencyLookup) {
	s.set(x, y, lit)
}

// Stippled writes the lit pixel only where the mask bit is set, leaving
// the destination untouched elsewhere (the "dithered" transparency mode).
type Stippled struct{}

func (Stippled) write(s *Surface, x, y int, opaqueBit bool, lit byte, _ *assets.TransparencyLookup) {
	if opaqueBit {
		s.set(x, y, lit)
	}
}

// Blended writes the lit pixel where the mask is set, and a 50/50
// destination/source blend (via the precomputed transparency lookup)
// everywhere else.
type Blended struct{}

func (Blended) write(s *Surface, x, y int, opaqueBit bool, lit byte, blend *assets.TransparencyLookup) {
	if opaqueBit {
		s.set(x, y, lit)
		return
	}
	if blend == nil {
		return
	}
	dst := s.get(x, y)
	s.set(x, y, blend[dst][lit])
}

// renderGeneric is the single generic body every one of the nine (3
// transparency x 3 light) specializations compiles down to. L and T are
// instantiated with the zero-size strategy types above, so the compiler
// can inline shade/write at each of the nine call sites in RenderTile and
// the hot loop never pays for dynamic dispatch.
func renderGeneric[L LightMode, T TransparencyMode](
	s *Surface, originX, originY int, tile DecodedTile, mask RowMasks,
	light L, trans T, blend *assets.TransparencyLookup,
) {
	for row := 0; row < tile.Rows; row++ {
		// Frames encode rows bottom to top.
		destRow := originY + (tile.Rows - 1 - row)
		for col := 0; col < TileWidth; col++ {
			if !tile.Opaque[row][col] {
				continue
			}
			lit := light.shade(tile.Pixel[row][col])
			trans.write(s, originX+col, destRow, mask.bitSet(row, col), lit, blend)
		}
	}
}

// RenderTile decodes the block's primitive, resolves its mask from
// (transparent, archType, foliage), and blits through the
// light/transparency combination the caller selected.
// light and transparent must each be one of this package's three LightMode
// / TransparencyMode implementations; RenderTile itself just dispatches to
// the matching compile-time specialization.
func RenderTile(s *Surface, destX, destY int, block uint16, frame []byte, archType ArchType, foliage bool, light LightMode, transparent TransparencyMode, blend *assets.TransparencyLookup) error {
	tile, err := Decode(block, frame)
	if err != nil {
		return err
	}

	var mask RowMasks
	if _, isSolid := transparent.(Solid); !isSolid {
		m, ok := ResolveMask(archType, foliage)
		if ok {
			mask = m
		} else {
			mask = SolidMask
		}
	}

	switch l := light.(type) {
	case FullyLit:
		switch t := transparent.(type) {
		case Solid:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		case Stippled:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		case Blended:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		}
	case FullyDark:
		switch t := transparent.(type) {
		case Solid:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		case Stippled:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		case Blended:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		}
	case PartiallyLit:
		switch t := transparent.(type) {
		case Solid:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		case Stippled:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		case Blended:
			renderGeneric(s, destX, destY, tile, mask, l, t, blend)
		}
	}
	return nil
}
