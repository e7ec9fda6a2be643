package compositor

import "worldcore/spritedecode"

// CursorBuffer implements the cursor save/restore cycle: before the
// cursor is drawn, the destination rectangle is saved; on the next frame
// the saved pixels are restored first, so a moving cursor never leaves a
// one-frame ghost.
type CursorBuffer struct {
	saved      []byte
	x, y, w, h int
	valid      bool
}

// restore copies the previously saved rectangle back onto the surface.
func (b *CursorBuffer) restore(s *spritedecode.Surface) {
	if !b.valid {
		return
	}
	i := 0
	for dy := 0; dy < b.h; dy++ {
		for dx := 0; dx < b.w; dx++ {
			x, y := b.x+dx, b.y+dy
			if x >= 0 && x < s.Width && y >= 0 && y < s.Height {
				s.Pix[y*s.Width+x] = b.saved[i]
			}
			i++
		}
	}
	b.valid = false
}

// save captures the rectangle the cursor is about to cover.
func (b *CursorBuffer) save(s *spritedecode.Surface, x, y, w, h int) {
	if cap(b.saved) < w*h {
		b.saved = make([]byte, w*h)
	}
	b.saved = b.saved[:w*h]
	i := 0
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			sx, sy := x+dx, y+dy
			if sx >= 0 && sx < s.Width && sy >= 0 && sy < s.Height {
				b.saved[i] = s.Pix[sy*s.Width+sx]
			} else {
				b.saved[i] = 0
			}
			i++
		}
	}
	b.x, b.y, b.w, b.h = x, y, w, h
	b.valid = true
}

// DrawCursor restores last frame's rectangle, saves the new one, and blits
// the cursor frame on top. frame is a TransparentSquare-encoded sprite
// from the compositor's archive.
func (c *Compositor) DrawCursor(x, y int, frame []byte) {
	c.cursor.restore(c.Surface)
	if frame == nil {
		return
	}
	c.cursor.save(c.Surface, x, y, spritedecode.TileWidth, spritedecode.SquareHeight)
	block := uint16(spritedecode.PrimitiveTransparentSquare) << 12
	_ = spritedecode.RenderTile(c.Surface, x, y, block, frame, spritedecode.ArchNone, false, spritedecode.FullyLit{}, spritedecode.Solid{}, c.Blend)
}
