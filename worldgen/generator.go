// Package worldgen builds a dungeon level's grid state: room-tree layout,
// micro-grid expansion, chamber/hall fill, tile fixups, wall/door stamping,
// transparency flood, stair placement, shadowing, and decoration
// substitution. One Generator is registered per level kind; all of them
// share the same pipeline skeleton and differ only in tuning.
package worldgen

import (
	"fmt"

	"worldcore/config"
	"worldcore/coords"
	"worldcore/objects"
	"worldcore/rng"
	"worldcore/worldstate"
)

// LevelKind selects which tileset/rule family a level belongs to. Every
// kind shares the room-tree/micro-grid/tile-fix skeleton and the same
// minisets and substitution tables; only the area threshold, door tileset,
// crypt pattern pass, and trap level offset differ.
type LevelKind int

const (
	Cathedral LevelKind = iota
	Catacombs
	Caves
	Hell
	Nest
	Crypt
)

// AreaThreshold is the minimum floor-cell count a room-tree layout must
// reach before generation proceeds past room placement; levels below it
// are discarded and regenerated.
func (k LevelKind) AreaThreshold() int {
	switch k {
	case Cathedral:
		return 533
	case Catacombs:
		return 693
	default:
		return 761
	}
}

// IsCrypt reports whether k uses the Crypt door/pattern family.
func (k LevelKind) IsCrypt() bool { return k == Crypt }

// IsNest reports whether k uses the Nest effective-level adjustment
// (objects.PlaceTrap's effectiveLevel -= 4).
func (k LevelKind) IsNest() bool { return k == Nest }

// Level is one generated (or preset-loaded) dungeon level: its grid state,
// its object pool, and where each entry kind drops the player.
type Level struct {
	World  *worldstate.World
	Pool   *objects.Pool
	stairs []stairsResult
}

// SpawnPoint returns where a player arriving through the given entry kind
// lands: descending (EntryMain) puts them at the up stairway, ascending
// (EntryPrev) at the down stairway, and a town-warp at the up stairway
// again.
func (l *Level) SpawnPoint(entry objects.Entry) coords.DungeonPosition {
	wantUp := entry != objects.EntryPrev
	for _, s := range l.stairs {
		if s.Up == wantUp {
			return coords.DungeonPosition{X: s.X, Y: s.Y}
		}
	}
	if len(l.stairs) > 0 {
		return coords.DungeonPosition{X: l.stairs[0].X, Y: l.stairs[0].Y}
	}
	return coords.DungeonPosition{X: coords.DungeonWidth / 2, Y: coords.DungeonHeight / 2}
}

// Generator builds one level from a seed. Registered per LevelKind so
// callers can add new level families without touching the core generation
// pipeline.
type Generator interface {
	Generate(seed uint32, depth int) (*Level, error)
	Name() string
}

var registry = map[LevelKind]Generator{}

// Register installs a Generator for a LevelKind.
func Register(kind LevelKind, g Generator) {
	registry[kind] = g
}

// Create fills a fresh World's grid arrays and object pool for the given
// level kind, seed, and depth, retrying internally if a required miniset
// (most commonly stairs) cannot be placed.
func Create(kind LevelKind, seed uint32, depth int) (*Level, error) {
	g, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("worldgen: no generator registered for kind %d", kind)
	}
	return g.Generate(seed, depth)
}

// RoomTreeGenerator is the shared skeleton every LevelKind's Generate uses.
// Per-kind differences (area threshold, crypt doors, nest level offset) are
// read off the Kind field rather than duplicated across separate types.
type RoomTreeGenerator struct {
	Kind LevelKind
}

func init() {
	Register(Cathedral, RoomTreeGenerator{Kind: Cathedral})
	Register(Catacombs, RoomTreeGenerator{Kind: Catacombs})
	Register(Caves, RoomTreeGenerator{Kind: Caves})
	Register(Hell, RoomTreeGenerator{Kind: Hell})
	Register(Nest, RoomTreeGenerator{Kind: Nest})
	Register(Crypt, RoomTreeGenerator{Kind: Crypt})
}

func (g RoomTreeGenerator) Name() string {
	names := [...]string{"cathedral", "catacombs", "caves", "hell", "nest", "crypt"}
	if int(g.Kind) < len(names) {
		return names[g.Kind]
	}
	return "unknown"
}

// maxRetries bounds the outer retry loop: regenerate from a fresh RNG
// draw until a layout clears the area threshold and a stair miniset can be
// placed, or give up.
const maxRetries = 200

func (g RoomTreeGenerator) Generate(seed uint32, depth int) (*Level, error) {
	stream := rng.New(seed)

	// Track the largest layout seen so the hard cap degrades to "accept
	// the best observed floor area" instead of deadlocking on an
	// unreachable threshold.
	bestSeed := seed
	bestArea := -1

	for attempt := 0; attempt < maxRetries; attempt++ {
		attemptSeed := stream.Seed()
		w := worldstate.New(attemptSeed, depth, maxPieceID)
		initPieceTable(w)

		tree := generateRoomTree(w.Rand, g.Kind)
		if area := tree.Area(); area < g.Kind.AreaThreshold() {
			if area > bestArea {
				bestArea, bestSeed = area, attemptSeed
			}
			stream.Advance()
			continue
		}

		if level, ok := g.build(w, tree, depth); ok {
			return level, nil
		}
		stream.Advance()
	}

	w := worldstate.New(bestSeed, depth, maxPieceID)
	initPieceTable(w)
	tree := generateRoomTree(w.Rand, g.Kind)
	if level, ok := g.build(w, tree, depth); ok {
		return level, nil
	}
	return nil, fmt.Errorf("worldgen: exhausted %d regeneration attempts for %s", maxRetries, g.Name())
}

// build runs the post-room-placement pipeline over an accepted layout.
// Returns ok=false when a required miniset (stairs) cannot be placed,
// which sends the caller back for a fresh layout.
func (g RoomTreeGenerator) build(w *worldstate.World, tree *roomTree, depth int) (*Level, bool) {
	applyRoomTreeToGrid(w, tree)
	fillChambersAndHalls(w, tree)
	applyTileFixes(w)
	protected, doors := stampWallsAndDoors(w)
	applySubstitutions(w, protected)
	floodTransparency(w)

	pool := objects.NewPool(config.MaxObjects)
	stairs, ok := placeStairs(w, pool, &protected)
	if !ok {
		return nil, false
	}

	applyShadowPass(w, protected)
	if g.Kind.IsCrypt() {
		applyCryptPatterns(w, protected)
	}
	placeObjects(w, pool, g.Kind, depth, protected, doors, stairs)

	return &Level{World: w, Pool: pool, stairs: stairs}, true
}

// maxPieceID sizes the piece-property table: one slot per id in the
// per-level palette of 256 shapes.
const maxPieceID = 256

func initPieceTable(w *worldstate.World) {
	for id := range w.Pieces {
		w.Pieces[id] = worldstate.PieceProperties{}
	}
	// Category ids 1..16 are floor/doorway variants and 18..21 decoration
	// and shadow variants (passable, transparent); 22 is the solid/wall
	// sentinel every cell defaults to before the room-tree shapes it; 17 is
	// the chamber pillar and 27 the crypt column (both solid); 25/26 are
	// stairways.
	if solidPieceID < len(w.Pieces) {
		w.Pieces[solidPieceID] = worldstate.PieceProperties{Solid: true, BlocksLight: true, BlocksMissile: true}
	}
	if pillarPieceID < len(w.Pieces) {
		w.Pieces[pillarPieceID] = worldstate.PieceProperties{Solid: true, BlocksLight: true, BlocksMissile: true}
	}
	if cryptColumnPieceID < len(w.Pieces) {
		w.Pieces[cryptColumnPieceID] = worldstate.PieceProperties{Solid: true, BlocksLight: true}
	}
}
