package worldgen

import "worldcore/worldstate"

// shadowPattern is one entry of the shadow-stamp table: a 2x2 piece-id
// match plus a neighbor overwrite. The table is sized at 207 rows: three
// live patterns for this generator's smaller piece-id space, followed by
// all-zero padding rows.
type shadowPattern struct {
	TopLeft, TopRight, BottomLeft, BottomRight int
	NX, NY, NPiece                              int // single neighbor overwrite; 0 means none
}

var shadowPatterns = buildShadowPatterns()

// buildShadowPatterns constructs the fixed-length 207-entry table, padded
// with zero-value terminator rows past the live patterns.
func buildShadowPatterns() []shadowPattern {
	real := []shadowPattern{
		{TopLeft: solidPieceID, TopRight: 1, BottomLeft: solidPieceID, BottomRight: 1, NX: 1, NY: 0, NPiece: 20},
		{TopLeft: solidPieceID, TopRight: 2, BottomLeft: solidPieceID, BottomRight: 2, NX: 1, NY: 0, NPiece: 20},
		{TopLeft: doorPieceID, TopRight: 1, BottomLeft: solidPieceID, BottomRight: 1, NX: 0, NY: 1, NPiece: 21},
	}
	padded := make([]shadowPattern, 207)
	copy(padded, real)
	return padded
}

// applyShadowPass overwrites, for every 2x2 neighborhood matching one of
// the shadow patterns, its neighbor cell with the shadow variant, unless
// that cell is protected.
func applyShadowPass(w *worldstate.World, protected [40][40]bool) {
	for y := 0; y < 39; y++ {
		for x := 0; x < 39; x++ {
			for _, p := range shadowPatterns {
				if p.TopLeft == 0 && p.TopRight == 0 && p.BottomLeft == 0 && p.BottomRight == 0 {
					continue // terminator row
				}
				if w.Dungeon[y][x] != p.TopLeft || w.Dungeon[y][x+1] != p.TopRight ||
					w.Dungeon[y+1][x] != p.BottomLeft || w.Dungeon[y+1][x+1] != p.BottomRight {
					continue
				}
				nx, ny := x+p.NX, y+p.NY
				if nx < 0 || nx >= 40 || ny < 0 || ny >= 40 || protected[ny][nx] {
					continue
				}
				w.SetMegaTile(nx, ny, p.NPiece)
			}
		}
	}
}

// Crypt decoration columns. Only Crypt-kind levels reach this pass.
const cryptColumnPieceID = 27

// applyCryptPatterns stamps a handful of randomized decoration columns
// onto non-protected floor cells of a Crypt level.
func applyCryptPatterns(w *worldstate.World, protected [40][40]bool) {
	const patternAttempts = 12
	for i := 0; i < patternAttempts; i++ {
		x := w.Rand.Intn(40)
		y := w.Rand.Intn(40)
		if protected[y][x] || w.Pieces.Get(w.Dungeon[y][x]).Solid {
			continue
		}
		w.SetMegaTile(x, y, cryptColumnPieceID)
	}
}
