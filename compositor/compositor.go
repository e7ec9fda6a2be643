// Package compositor composes one frame of the world: camera math, the
// floor and content passes over the visible tile region, per-tile sprite
// ordering, panel-aware clipping, and the mouse-cursor save/restore
// cycle. Composition targets a palette-indexed CPU surface; the
// Ebiten-facing presentation side (present.go) uploads that surface once
// per frame.
package compositor

import (
	"worldcore/assets"
	"worldcore/coords"
	"worldcore/spritedecode"
	"worldcore/worldstate"
)

// Panels describes how many pixels the open side panels (character sheet
// on the left, inventory on the right) occlude.
type Panels struct {
	LeftPixels  int
	RightPixels int
}

// Compositor owns everything one frame needs besides the world itself:
// the level's mega/micro tables and sprite archive, the palette-derived
// light and blend tables, and the destination surface. It holds no
// per-frame world state; rendering is pure over (camera, grid, objects,
// missiles, light).
type Compositor struct {
	Mega  assets.MegaTable
	Min   assets.MinTable
	Tiles *assets.SpriteArchive

	Light *assets.LightTable
	Blend *assets.TransparencyLookup

	// BlendedTransparency selects the alpha-blend mask mode instead of the
	// dithered stipple when a tile renders transparent.
	BlendedTransparency bool

	Surface *spritedecode.Surface

	cursor CursorBuffer
}

// New builds a Compositor rendering into a fresh surface of the given
// pixel size.
func New(width, height int, mega assets.MegaTable, min assets.MinTable, tiles *assets.SpriteArchive) *Compositor {
	return &Compositor{
		Mega:    mega,
		Min:     min,
		Tiles:   tiles,
		Surface: spritedecode.NewSurface(width, height),
	}
}

// ComposeFrame renders one complete frame: floor pass, content pass with
// sprites in draw order, and the dSpecial overlay row correction. The
// surface clip is narrowed for the duration when panels occlude columns,
// so no pixel lands under an open panel.
func (c *Compositor) ComposeFrame(w *worldstate.World, cam coords.Camera, sprites *SpriteLayer, panels Panels) {
	s := c.Surface
	s.SetClip(panels.LeftPixels, 0, s.Width-panels.RightPixels, s.Height)
	defer s.ResetClip()
	s.Clear()

	geo := coords.CalcViewportGeometry(s.Width, s.Height, cam.Zoom)

	// One extra tile on every side, whatever the scroll direction, so
	// sprites entering or leaving the screen are not popped.
	startX := cam.ViewX - geo.TileShiftX - 1
	startY := cam.ViewY - geo.TileShiftY - 1
	endX := startX + geo.TileColumns + 2
	endY := startY + geo.TileRows + microTileRows + 2

	c.floorPass(w, cam, startX, startY, endX, startY+geo.TileRows+2)
	c.contentPass(w, cam, sprites, startX, startY, endX, endY)
}

// microTileRows extends the content pass downward past the floor region
// so tall wall pieces whose tops poke into the viewport from below are
// still drawn.
const microTileRows = 4

// tileScreenOrigin projects dungeon tile (tx, ty) to the pixel position of
// its 64x32-diamond top-left corner, relative to the camera.
func (c *Compositor) tileScreenOrigin(cam coords.Camera, tx, ty int) (int, int) {
	relX := tx - cam.ViewX
	relY := ty - cam.ViewY
	sx := (relX-relY)*32 + c.Surface.Width/2 + int(cam.ScrollOffsetX)
	sy := (relX+relY)*16 + c.Surface.Height/2 + int(cam.ScrollOffsetY)
	return sx, sy
}

// megaOf resolves a dungeon cell to its MegaTile expansion entry, or the
// zero value ("empty/black diamond" in every micro slot) when the piece id
// is outside the loaded table.
func (c *Compositor) megaOf(pieceID int) assets.MegaTile {
	if pieceID <= 0 || pieceID > len(c.Mega) {
		return assets.MegaTile{}
	}
	return c.Mega[pieceID-1]
}

func (c *Compositor) floorPass(w *worldstate.World, cam coords.Camera, x0, y0, x1, y1 int) {
	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			if !w.InBounds(tx, ty) {
				continue
			}
			mega := c.megaOf(w.Dungeon[ty][tx])
			sx, sy := c.tileScreenOrigin(cam, tx, ty)
			// Micro slots 1 and 2 are the two floor frames of the mega.
			c.renderMicro(w, tx, ty, mega.Micro1, sx, sy+16, false)
			c.renderMicro(w, tx, ty, mega.Micro2, sx+32, sy+16, false)
		}
	}
}

func (c *Compositor) contentPass(w *worldstate.World, cam coords.Camera, sprites *SpriteLayer, x0, y0, x1, y1 int) {
	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			if !w.InBounds(tx, ty) {
				continue
			}
			mega := c.megaOf(w.Dungeon[ty][tx])
			sx, sy := c.tileScreenOrigin(cam, tx, ty)

			// Wall/roof micro slots 3 and 4: the left and right halves of
			// the row above the floor frames.
			c.renderMicro(w, tx, ty, mega.Micro3, sx, sy-16, true)
			c.renderMicro(w, tx, ty, mega.Micro4, sx+32, sy-16, true)

			// "Peek behind wall": if the south neighbor is walkable but
			// hidden behind this wall piece, its sprites draw first so the
			// wall's transparency mask reveals them.
			if w.Pieces.Get(w.Dungeon[ty][tx]).Solid {
				nx, ny := tx, ty+1
				if w.InBounds(nx, ny) && !w.Pieces.Get(w.Dungeon[ny][nx]).Solid {
					c.drawTileSprites(w, cam, sprites, nx, ny)
				}
			}

			c.drawTileSprites(w, cam, sprites, tx, ty)
		}

		// Overlay frames (open-door arches, town tree leaves) from the row
		// above render after the row below them so they cover sprites
		// entering the tile.
		for tx := x0; tx < x1; tx++ {
			if ty-1 < 0 || !w.InBounds(tx, ty-1) {
				continue
			}
			if special := w.DSpecial[ty-1][tx]; special != 0 {
				sx, sy := c.tileScreenOrigin(cam, tx, ty-1)
				c.renderSpecial(w, tx, ty-1, special, sx, sy-16)
			}
		}
	}
}

// renderMicro draws one 32x32 micro frame of a mega tile at (sx, sy),
// resolving its light and transparency context from the owning dungeon
// cell. The context is computed per tile and passed down; no rendering
// hints live in globals.
func (c *Compositor) renderMicro(w *worldstate.World, tx, ty int, micro uint16, sx, sy int, wall bool) {
	if micro == 0 {
		return
	}
	block, frame := c.resolveFrame(int(micro))
	if frame == nil {
		return
	}

	light := c.lightModeFor(w, tx, ty)
	trans, arch := c.transModeFor(w, tx, ty, wall)
	_ = spritedecode.RenderTile(c.Surface, sx, sy, block, frame, arch, false, light, trans, c.Blend)
}

// renderSpecial draws a dSpecial overlay frame (door arch, tree leaves)
// with the stippled mask so the sprite underneath stays readable.
func (c *Compositor) renderSpecial(w *worldstate.World, tx, ty int, special, sx, sy int) {
	block, frame := c.resolveFrame(special)
	if frame == nil {
		return
	}
	light := c.lightModeFor(w, tx, ty)
	_ = spritedecode.RenderTile(c.Surface, sx, sy, block, frame, spritedecode.ArchNone, false, light, spritedecode.Stippled{}, c.Blend)
}

// resolveFrame maps a micro id through the .MIN table to its encoded
// frame bytes plus the block word whose high nibble selects the primitive
// decoder. A nil frame means "skip this slot". The skip is silent for
// every cause: an empty micro slot (id 0) and an out-of-range id are both
// dropped without being logged or reported.
func (c *Compositor) resolveFrame(micro int) (uint16, []byte) {
	if micro <= 0 || micro > len(c.Min) {
		return 0, nil
	}
	block := c.Min[micro-1].FrameIndex
	frame := c.Tiles.Frame(int(block & 0x0FFF))
	return block, frame
}

func (c *Compositor) lightModeFor(w *worldstate.World, tx, ty int) spritedecode.LightMode {
	lvl := w.DLight[ty][tx]
	switch {
	case lvl == 0:
		return spritedecode.FullyLit{}
	case lvl >= 15:
		return spritedecode.FullyDark{}
	default:
		return spritedecode.PartiallyLit{Table: c.Light, Level: lvl}
	}
}

// transModeFor picks the transparency mode and arch mask for a wall micro:
// a wall piece standing between the camera and a different transparency
// region renders see-through (stippled or blended per user setting); floor
// micros and same-region walls render solid.
func (c *Compositor) transModeFor(w *worldstate.World, tx, ty int, wall bool) (spritedecode.TransparencyMode, spritedecode.ArchType) {
	if !wall {
		return spritedecode.Solid{}, spritedecode.ArchNone
	}
	south := ty + 1
	if !w.InBounds(tx, south) || w.DTransVal[south][tx] == w.DTransVal[ty][tx] {
		return spritedecode.Solid{}, spritedecode.ArchNone
	}
	arch := spritedecode.ArchLeftWall
	if tx%2 == 1 {
		arch = spritedecode.ArchRightWall
	}
	if c.BlendedTransparency {
		return spritedecode.Blended{}, arch
	}
	return spritedecode.Stippled{}, arch
}
