// Package worldstate owns the dungeon's mutable grid state: the mega-tile
// and micro-tile arrays, per-tile flags, lighting, and the occupancy grids
// that tell the object engine and frame composer what sits on each square.
// One World struct owns every array; there is no package-level mutable
// state.
package worldstate

import (
	"github.com/norendren/go-fov/fov"

	"worldcore/coords"
	"worldcore/rng"
)

// DTileFlags is the per-tile flag bitmask.
type DTileFlags uint16

const (
	FlagMissile DTileFlags = 1 << iota
	FlagVisible
	FlagPopulated
	FlagDeadPlayer
	FlagLit
	FlagSaved // set by ComputeVisibility on every tile seen since this level loaded
)

// PieceProperties describes one piece id's fixed traits: whether it blocks
// movement, sight, and missiles, and whether a trap may anchor on it.
type PieceProperties struct {
	Solid        bool
	BlocksLight  bool
	BlocksMissile bool
	TrapSurface  bool
}

// PieceTable maps a dPiece id to its properties. Index 0 is always the
// "no piece" sentinel and carries the zero value.
type PieceTable []PieceProperties

// Get returns the properties for piece id, or the zero value if id is out
// of range; out-of-range ids behave like the empty sentinel 0.
func (t PieceTable) Get(id int) PieceProperties {
	if id < 0 || id >= len(t) {
		return PieceProperties{}
	}
	return t[id]
}

// ObjectRef is a narrow read-only view of an object: the object engine owns
// the full Object record (see package objects); worldstate only needs an
// index, which DObject stores as a plain int, so rendering and triggers can
// look occupants up without this package importing objects and creating a
// cycle.
type ObjectRef int

// World aggregates the full dungeon grid state for one level: the mega-tile
// layout, the micro-tile (dPiece) expansion, lighting, and the six
// occupancy grids (object/monster/player/item/dead/missile) plus the
// automap-special overlay. One World exists per loaded level.
type World struct {
	Seed  uint32
	Rand  *rng.Stream
	Depth int

	Pieces PieceTable

	Dungeon  [coords.DungeonHeight][coords.DungeonWidth]int
	DPiece   [coords.MicroHeight][coords.MicroWidth]int
	DFlags   [coords.DungeonHeight][coords.DungeonWidth]DTileFlags
	DTransVal [coords.DungeonHeight][coords.DungeonWidth]uint8
	DLight   [coords.DungeonHeight][coords.DungeonWidth]uint8
	DPreLight [coords.DungeonHeight][coords.DungeonWidth]uint8

	DObject  [coords.DungeonHeight][coords.DungeonWidth]int // 0 = empty, objectIndex+1 at the anchor, -(objectIndex+1) on shadow tiles
	DMonster [coords.DungeonHeight][coords.DungeonWidth]int
	DPlayer  [coords.DungeonHeight][coords.DungeonWidth]int
	DItem    [coords.DungeonHeight][coords.DungeonWidth]int
	DDead    [coords.DungeonHeight][coords.DungeonWidth]int
	DMissile [coords.DungeonHeight][coords.DungeonWidth]int
	DSpecial [coords.DungeonHeight][coords.DungeonWidth]int

	// PDungeon is the "post-open" map: the generator stamps the piece ids
	// a region should reveal once a lever or quest trigger fires here, and
	// ObjChangeMap promotes a rectangle of it into Dungeon/DPiece on
	// demand. Index 0 means "no override recorded", so promoting an
	// untouched cell leaves Dungeon unchanged.
	PDungeon [coords.DungeonHeight][coords.DungeonWidth]int

	// Missiles in flight, rebuilt as the external missile subsystem and
	// trap engine spawn/retire them; DMissile mirrors their tile
	// occupancy.
	Missiles []Missile

	visible *fov.View
}

// New builds an empty World for the given seed and nesting depth, with a
// piece table sized for capacity pieces (index 0 reserved as empty).
func New(seed uint32, depth int, capacity int) *World {
	w := &World{
		Seed:    seed,
		Rand:    rng.New(seed),
		Depth:   depth,
		Pieces:  make(PieceTable, capacity),
		visible: fov.New(),
	}
	return w
}

// InBounds satisfies the go-fov map contract used by ComputeVisibility.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && x < coords.DungeonWidth && y >= 0 && y < coords.DungeonHeight
}

// IsOpaque satisfies the go-fov map contract: a tile blocks sight if its
// piece properties say so, distinct from DTransVal's static, generation-time
// region flood used for shadowing, which never changes after generation.
func (w *World) IsOpaque(x, y int) bool {
	if !w.InBounds(x, y) {
		return true
	}
	return w.Pieces.Get(w.Dungeon[y][x]).BlocksLight
}

// ComputeVisibility recomputes the dynamic FlagVisible bit for every tile
// within radius of (originX, originY) via go-fov's shadowcasting. This is
// runtime line of sight; DTransVal is the static, generation-time region
// grouping and never changes after the level is built.
func (w *World) ComputeVisibility(originX, originY, radius int) {
	w.visible.Compute(w, originX, originY, radius)
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			if w.visible.IsVisible(x, y) {
				w.DFlags[y][x] |= FlagVisible
				w.DFlags[y][x] |= FlagSaved
			} else {
				w.DFlags[y][x] &^= FlagVisible
			}
		}
	}
}

// IsVisible reports the last-computed dynamic visibility of (x, y).
func (w *World) IsVisible(x, y int) bool {
	if !w.InBounds(x, y) {
		return false
	}
	return w.DFlags[y][x]&FlagVisible != 0
}

// SetMegaTile expands a dungeon-scale tile assignment into its 2x2 micro
// block. DPiece always reflects Dungeon's current mega tile ids; every
// write goes through here to keep that invariant.
func (w *World) SetMegaTile(x, y, pieceID int) {
	w.Dungeon[y][x] = pieceID
	mp := coords.DungeonPosition{X: x, Y: y}.ToMicro()
	w.DPiece[mp.Y][mp.X] = pieceID
	w.DPiece[mp.Y][mp.X+1] = pieceID
	w.DPiece[mp.Y+1][mp.X] = pieceID
	w.DPiece[mp.Y+1][mp.X+1] = pieceID
}

// SetPostOpenTile records the piece id a cell should take on once the
// region covering it is promoted, without touching the currently-visible
// Dungeon/DPiece arrays yet.
func (w *World) SetPostOpenTile(x, y, pieceID int) {
	if w.InBounds(x, y) {
		w.PDungeon[y][x] = pieceID
	}
}

// PromoteRegion copies every non-zero PDungeon cell in the inclusive
// rectangle [x1,y1]-[x2,y2] into Dungeon, re-expanding DPiece for each
// promoted cell. Promoting the same rectangle twice is idempotent: a cell
// with no recorded override (PDungeon == 0) is left untouched, so a second
// call over an already-promoted region is a no-op.
func (w *World) PromoteRegion(x1, y1, x2, y2 int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if !w.InBounds(x, y) {
				continue
			}
			if pieceID := w.PDungeon[y][x]; pieceID != 0 {
				w.SetMegaTile(x, y, pieceID)
			}
		}
	}
}

// Missile is the render-facing record of a projectile in flight: tile
// position, sub-tile pixel offset, sprite/animation state, and the
// pre/post draw-layer flag. The core spawns these (traps) and the renderer
// reads them; flight simulation belongs to the external missile
// subsystem.
type Missile struct {
	X, Y             int
	OffsetX, OffsetY int
	DirX, DirY       int // unit direction toward the target
	Kind             int
	Frame            int
	Sprite           int
	Lit              bool
	Pre              bool
}

// SpawnMissile appends a missile and marks its tile in DMissile (1-based,
// matching the other occupancy grids).
func (w *World) SpawnMissile(m Missile) int {
	w.Missiles = append(w.Missiles, m)
	idx := len(w.Missiles) - 1
	if w.InBounds(m.X, m.Y) {
		w.DMissile[m.Y][m.X] = idx + 1
	}
	return idx
}

// FloodRegion is the result of FloodFillTransparency: every tile reachable
// from the seed point without crossing a light-blocking piece, plus the
// light-blocking tiles bordering them, tagged with a shared region id.
type FloodRegion struct {
	ID    uint8
	Tiles []coords.DungeonPosition
}

// FloodFillTransparency assigns DTransVal region ids by iterative
// (queue-based) flood fill starting at (startX, startY). Blocked tiles
// next to the region take its id but never propagate it; open tiles flood
// through any neighbor. The
// explicit queue bounds memory by the grid size where per-tile recursion
// could overflow the stack on large open areas.
func (w *World) FloodFillTransparency(startX, startY int, regionID uint8) FloodRegion {
	region := FloodRegion{ID: regionID}
	if !w.InBounds(startX, startY) || w.DTransVal[startY][startX] != 0 {
		return region
	}

	type point struct{ x, y int }
	queue := []point{{startX, startY}}
	w.DTransVal[startY][startX] = regionID
	region.Tiles = append(region.Tiles, coords.DungeonPosition{X: startX, Y: startY})

	// Eight-neighborhood flood, unlike ComputeVisibility's go-fov
	// line-of-sight pass which only cares about orthogonal shadowcasting.
	deltas := []point{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if w.IsOpaque(cur.x, cur.y) {
			continue
		}

		for _, d := range deltas {
			nx, ny := cur.x+d.x, cur.y+d.y
			if !w.InBounds(nx, ny) || w.DTransVal[ny][nx] != 0 {
				continue
			}
			w.DTransVal[ny][nx] = regionID
			region.Tiles = append(region.Tiles, coords.DungeonPosition{X: nx, Y: ny})
			queue = append(queue, point{nx, ny})
		}
	}

	return region
}

// ClearOccupant removes whatever occupies (x, y) from the object grid
// (0 means "nothing here").
func (w *World) ClearOccupant(x, y int) {
	if w.InBounds(x, y) {
		w.DObject[y][x] = 0
	}
}

// SetOccupant records that object index occupies (x, y). Index is stored
// 1-based (0 means empty) so the zero value of the grid means "no object".
func (w *World) SetOccupant(x, y, objectIndex int) {
	if w.InBounds(x, y) {
		w.DObject[y][x] = objectIndex + 1
	}
}

// SetOccupantShadow marks (x, y) as reserved by an object whose anchor is
// on another tile, stored negative per the DObject sign convention.
func (w *World) SetOccupantShadow(x, y, objectIndex int) {
	if w.InBounds(x, y) {
		w.DObject[y][x] = -(objectIndex + 1)
	}
}

// OccupantAt returns the object index at (x, y) and whether a square is
// occupied at all. Shadow (negative) entries resolve to the anchoring
// object's index.
func (w *World) OccupantAt(x, y int) (int, bool) {
	if !w.InBounds(x, y) {
		return 0, false
	}
	v := w.DObject[y][x]
	if v == 0 {
		return 0, false
	}
	if v < 0 {
		return -v - 1, true
	}
	return v - 1, true
}
