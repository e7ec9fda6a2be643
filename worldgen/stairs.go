package worldgen

import (
	"worldcore/config"
	"worldcore/objects"
	"worldcore/worldstate"
)

const (
	stairsUpPieceID   = 25
	stairsDownPieceID = 26
)

// stairsResult records where a placed stairway landed, for placeObjects
// to anchor its object record and for the caller to use as the next
// level's entry point.
type stairsResult struct {
	X, Y int
	Up   bool
}

// placeStairs places both the up and down stairway: scan random 2x2
// locations and accept the first unprotected, fully-floor spot found,
// writing the stairway's piece ids. Retries up to
// config.MinisetPlaceRetries times per stairway; if either cannot be
// placed, the whole level generation attempt fails and the caller
// regenerates from a fresh seed.
func placeStairs(w *worldstate.World, pool *objects.Pool, protected *[40][40]bool) ([]stairsResult, bool) {
	up, ok := placeOneStair(w, protected, stairsUpPieceID)
	if !ok {
		return nil, false
	}
	down, ok := placeOneStair(w, protected, stairsDownPieceID)
	if !ok {
		return nil, false
	}
	return []stairsResult{
		{X: up[0], Y: up[1], Up: true},
		{X: down[0], Y: down[1], Up: false},
	}, true
}

func placeOneStair(w *worldstate.World, protected *[40][40]bool, pieceID int) ([2]int, bool) {
	for attempt := 0; attempt < config.MinisetPlaceRetries; attempt++ {
		x := 2 + w.Rand.Intn(36)
		y := 2 + w.Rand.Intn(36)

		if !stairSpotFree(w, protected, x, y) {
			continue
		}

		w.SetMegaTile(x, y, pieceID)
		w.SetMegaTile(x+1, y, pieceID)
		w.SetMegaTile(x, y+1, pieceID)
		w.SetMegaTile(x+1, y+1, pieceID)
		protected[y][x] = true
		protected[y][x+1] = true
		protected[y+1][x] = true
		protected[y+1][x+1] = true
		return [2]int{x, y}, true
	}
	return [2]int{}, false
}

func stairSpotFree(w *worldstate.World, protected *[40][40]bool, x, y int) bool {
	for dy := 0; dy <= 1; dy++ {
		for dx := 0; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= 40 || ny < 0 || ny >= 40 {
				return false
			}
			if protected[ny][nx] {
				return false
			}
			if w.Pieces.Get(w.Dungeon[ny][nx]).Solid {
				return false
			}
		}
	}
	return true
}
