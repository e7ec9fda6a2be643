// Package automap mirrors the dungeon grid into a vector-line overlay: a
// per-cell exploration memory, a zoomable scale, and the line-segment
// diamonds DrawAutomap renders. Line geometry is computed separately from
// drawing (Lines) so the overlay is testable without a GPU; the draw side
// (draw.go) strokes the segments with Ebiten's vector package.
package automap

import (
	"worldcore/assets"
	"worldcore/coords"
	"worldcore/worldstate"
)

// ExploreLevel is one cell's exploration memory. Levels only ever
// upgrade: once a player has seen a cell themselves, a teammate's weaker
// "seen by others" report can never downgrade it.
type ExploreLevel uint8

const (
	ExploreNone ExploreLevel = iota
	ExploreOld               // carried over from a previous visit to this level
	ExploreOthers            // revealed by another player
	ExploreSelf              // walked by this player
	ExploreShrine            // revealed wholesale by a map shrine
)

// Piece type nibble values from the .AMP table.
const (
	AmpTypeNone = iota
	AmpTypeDiamond
	AmpTypeVertical
	AmpTypeHorizontal
	AmpTypeCross
	AmpTypeDirt
	AmpTypeStairs
	AmpTypeCorner
)

// Scale bounds and step: the map zooms between 50% and 200% in 5%
// steps.
const (
	MinScale  = 50
	MaxScale  = 200
	ScaleStep = 5
)

// Automap is the overlay state for one level.
type Automap struct {
	View  [coords.DungeonHeight][coords.DungeonWidth]ExploreLevel
	Scale int
	Amp   [assets.AmpEntryCount]assets.AmpEntry
}

// New builds an automap at the default 100% scale using the level's .AMP
// classification table.
func New(amp [assets.AmpEntryCount]assets.AmpEntry) *Automap {
	return &Automap{Scale: 100, Amp: amp}
}

// ZoomIn raises the scale one step, clamped to MaxScale.
func (a *Automap) ZoomIn() {
	a.Scale += ScaleStep
	if a.Scale > MaxScale {
		a.Scale = MaxScale
	}
}

// ZoomOut lowers the scale one step, clamped to MinScale.
func (a *Automap) ZoomOut() {
	a.Scale -= ScaleStep
	if a.Scale < MinScale {
		a.Scale = MinScale
	}
}

// AmLines returns the five scaled line lengths every diamond primitive is
// built from: 64, 32, 16, 8, and 4 pixels at 100% scale.
func (a *Automap) AmLines() (l64, l32, l16, l8, l4 int) {
	return 64 * a.Scale / 100, 32 * a.Scale / 100, 16 * a.Scale / 100, 8 * a.Scale / 100, 4 * a.Scale / 100
}

func (a *Automap) entryFor(pieceID int) assets.AmpEntry {
	if pieceID < 0 || pieceID >= len(a.Amp) {
		return assets.AmpEntry{}
	}
	return a.Amp[pieceID]
}

// SetView upgrades the exploration level of pos and, for horizontal,
// vertical, and cross pieces, propagates the upgrade into at most three
// neighboring dirt cells so corner joins draw connected.
func (a *Automap) SetView(w *worldstate.World, pos coords.DungeonPosition, explorer ExploreLevel) {
	if !pos.InBounds() {
		return
	}
	a.upgrade(pos, explorer)

	entry := a.entryFor(w.Dungeon[pos.Y][pos.X])
	var spill []coords.DungeonPosition
	switch entry.Type {
	case AmpTypeHorizontal:
		spill = []coords.DungeonPosition{pos.Add(1, 0), pos.Add(-1, 0), pos.Add(0, -1)}
	case AmpTypeVertical:
		spill = []coords.DungeonPosition{pos.Add(0, 1), pos.Add(0, -1), pos.Add(-1, 0)}
	case AmpTypeCross:
		spill = []coords.DungeonPosition{pos.Add(1, 0), pos.Add(0, 1), pos.Add(-1, -1)}
	}
	for _, n := range spill {
		if !n.InBounds() {
			continue
		}
		if a.entryFor(w.Dungeon[n.Y][n.X]).Type == AmpTypeDirt {
			a.upgrade(n, explorer)
		}
	}
}

func (a *Automap) upgrade(pos coords.DungeonPosition, explorer ExploreLevel) {
	if explorer > a.View[pos.Y][pos.X] {
		a.View[pos.Y][pos.X] = explorer
	}
}

// LineKind distinguishes the sub-shapes a cell renders as: doors,
// stairs, and arches each get their own shape keyed by the cell's piece
// flags.
type LineKind int

const (
	KindWall LineKind = iota
	KindDoor
	KindArch
	KindStairs
)

// Line is one overlay segment in screen pixels.
type Line struct {
	X1, Y1, X2, Y2 float32
	Kind           LineKind
}

// Lines computes every visible overlay segment for the explored cells,
// centered on the given dungeon position. Pure over (View, Scale, grid),
// so re-zooming to the same scale reproduces identical segments.
func (a *Automap) Lines(w *worldstate.World, center coords.DungeonPosition, screenW, screenH int) []Line {
	l64, l32, l16, l8, _ := a.AmLines()
	var out []Line

	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			if a.View[y][x] == ExploreNone {
				continue
			}
			entry := a.entryFor(w.Dungeon[y][x])
			if entry.Type == AmpTypeNone || entry.Type == AmpTypeDirt {
				continue
			}

			// Same isometric projection as the world view, at map scale.
			cx := float32(screenW/2 + (x-y-(center.X-center.Y))*l32/2)
			cy := float32(screenH/2 + (x+y-(center.X+center.Y))*l16/2)

			out = appendCellLines(out, entry, cx, cy, float32(l64), float32(l32), float32(l16), float32(l8))
		}
	}
	return out
}

// appendCellLines emits the diamond edges a cell's type calls for, plus
// door/arch/stairs sub-shapes keyed by the flag nibble. Each edge is a
// single segment at the current scale.
func appendCellLines(out []Line, entry assets.AmpEntry, cx, cy, l64, l32, l16, l8 float32) []Line {
	nw := func(k LineKind) Line { return Line{cx - l32/2, cy, cx, cy - l16/2, k} }
	ne := func(k LineKind) Line { return Line{cx, cy - l16/2, cx + l32/2, cy, k} }
	sw := func(k LineKind) Line { return Line{cx - l32/2, cy, cx, cy + l16/2, k} }
	se := func(k LineKind) Line { return Line{cx, cy + l16/2, cx + l32/2, cy, k} }

	switch entry.Type {
	case AmpTypeDiamond:
		out = append(out, nw(KindWall), ne(KindWall), sw(KindWall), se(KindWall))
	case AmpTypeVertical:
		out = append(out, nw(KindWall), sw(KindWall))
	case AmpTypeHorizontal:
		out = append(out, nw(KindWall), ne(KindWall))
	case AmpTypeCross:
		out = append(out, nw(KindWall), ne(KindWall), sw(KindWall), se(KindWall))
	case AmpTypeStairs:
		for i := float32(0); i < 3; i++ {
			off := (i - 1) * l16 / 2
			out = append(out, Line{cx - l16 + off, cy + off/2, cx + l16 + off, cy + off/2, KindStairs})
		}
	case AmpTypeCorner:
		out = append(out, nw(KindWall))
	}

	if entry.Flags&uint8(assets.AmpVerticalDoor) != 0 {
		out = append(out, Line{cx - l16, cy - l8/2, cx - l16/2, cy - l8, KindDoor},
			Line{cx - l16/2, cy - l8, cx, cy - l8/2, KindDoor},
			Line{cx, cy - l8/2, cx - l16/2, cy, KindDoor},
			Line{cx - l16/2, cy, cx - l16, cy - l8/2, KindDoor})
	}
	if entry.Flags&uint8(assets.AmpHorizontalDoor) != 0 {
		out = append(out, Line{cx, cy - l8/2, cx + l16/2, cy - l8, KindDoor},
			Line{cx + l16/2, cy - l8, cx + l16, cy - l8/2, KindDoor},
			Line{cx + l16, cy - l8/2, cx + l16/2, cy, KindDoor},
			Line{cx + l16/2, cy, cx, cy - l8/2, KindDoor})
	}
	if entry.Flags&uint8(assets.AmpVerticalArch) != 0 {
		out = append(out, Line{cx - l16, cy, cx - l16/2, cy - l8/2, KindArch})
	}
	if entry.Flags&uint8(assets.AmpHorizontalArch) != 0 {
		out = append(out, Line{cx + l16/2, cy - l8/2, cx + l16, cy, KindArch})
	}
	return out
}
