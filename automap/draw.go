package automap

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"worldcore/coords"
	"worldcore/worldstate"
)

// Overlay colors per segment kind. Walls draw dim, doors bright, stairs
// distinct.
var lineColors = map[LineKind]color.RGBA{
	KindWall:   {R: 0x80, G: 0x70, B: 0x50, A: 0xff},
	KindDoor:   {R: 0xd0, G: 0xb0, B: 0x40, A: 0xff},
	KindArch:   {R: 0x90, G: 0x90, B: 0x90, A: 0xff},
	KindStairs: {R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff},
}

// DrawAutomap strokes the overlay onto screen, centered on the player's
// tile. Stroke width stays 1px at every scale so the map reads as line
// art, not filled tiles.
func (a *Automap) DrawAutomap(screen *ebiten.Image, w *worldstate.World, center coords.DungeonPosition) {
	bounds := screen.Bounds()
	lines := a.Lines(w, center, bounds.Dx(), bounds.Dy())
	for _, l := range lines {
		vector.StrokeLine(screen, l.X1, l.Y1, l.X2, l.Y2, 1, lineColors[l.Kind], false)
	}
}
