package worldgen

import (
	"worldcore/config"
	"worldcore/objects"
	"worldcore/worldstate"
)

// doorPlacement records where stampWallsAndDoors embedded a door tile so
// a later pass (placeObjects) can register the matching Door object once
// the level's object pool exists.
type doorPlacement struct {
	X, Y       int
	Horizontal bool
}

const (
	doorPieceID = 2
	archPieceID = 11
)

// stampWallsAndDoors stamps, for runs of floor cells long enough to hold
// a 2..7-tile wall segment (never longer than the run) and with
// probability config.WallChanceOutOf100,
// a wall across the run, inserting a door or arch tile at a random offset
// inside it. Every cell the segment writes is marked protected so later
// passes (shadow, substitutions) leave it alone.
func stampWallsAndDoors(w *worldstate.World) (protected [40][40]bool, doors []doorPlacement) {
	for y := 0; y < 40; y++ {
		doors = stampRun(w, &protected, doors, y, true)
	}
	for x := 0; x < 40; x++ {
		doors = stampRun(w, &protected, doors, x, false)
	}
	return protected, doors
}

func stampRun(w *worldstate.World, protected *[40][40]bool, doors []doorPlacement, line int, horizontal bool) []doorPlacement {
	runStart := -1
	flush := func(end int) []doorPlacement {
		if runStart < 0 {
			return doors
		}
		length := end - runStart
		if length < 2 {
			runStart = -1
			return doors
		}
		segLen := 2 + w.Rand.Intn(minInt(length-2, 5)+1)
		if !w.Rand.Chance(config.WallChanceOutOf100, 100) {
			runStart = -1
			return doors
		}
		offset := w.Rand.Intn(segLen)
		hasArch := w.Rand.Chance(1, 2)
		for i := 0; i < segLen; i++ {
			pos := runStart + i
			x, y := pos, line
			if !horizontal {
				x, y = line, pos
			}
			if x < 0 || x >= 40 || y < 0 || y >= 40 || protected[y][x] {
				continue
			}
			if i == offset {
				piece := doorPieceID
				if hasArch {
					piece = archPieceID
				}
				w.SetMegaTile(x, y, piece)
				if !hasArch {
					doors = append(doors, doorPlacement{X: x, Y: y, Horizontal: horizontal})
				}
			} else {
				w.SetMegaTile(x, y, solidPieceID)
			}
			protected[y][x] = true
		}
		runStart = -1
		return doors
	}

	for i := 0; i <= 40; i++ {
		var floor bool
		if i < 40 {
			x, y := i, line
			if !horizontal {
				x, y = line, i
			}
			floor = w.Pieces.Get(w.Dungeon[y][x]).Solid == false && w.Dungeon[y][x] != 0
		}
		if floor {
			if runStart < 0 {
				runStart = i
			}
		} else {
			doors = flush(i)
		}
	}
	return doors
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// doorStyleFor picks the Left/Right door style pair for a level kind and
// the parity of how many doors have already been placed, alternating
// left/right; the wall segment's orientation is not consulted.
func doorStyleFor(kind LevelKind, index int) objects.DoorStyle {
	pairs := map[LevelKind][2]objects.DoorStyle{
		Cathedral: {objects.StyleCathedralLeft, objects.StyleCathedralRight},
		Catacombs: {objects.StyleCatacombsLeft, objects.StyleCatacombsRight},
		Caves:     {objects.StyleCavesLeft, objects.StyleCavesRight},
		Crypt:     {objects.StyleCryptLeft, objects.StyleCryptRight},
		// Hell and Nest levels reuse the Catacombs door tileset.
		Hell: {objects.StyleCatacombsLeft, objects.StyleCatacombsRight},
		Nest: {objects.StyleCatacombsLeft, objects.StyleCatacombsRight},
	}
	p := pairs[kind]
	if index%2 == 0 {
		return p[0]
	}
	return p[1]
}
