package worldgen

import "worldcore/worldstate"

// tileFixRule is one neighborhood patch: "if dungeon[x][y]==From and
// dungeon[x+dx][y+dy]==Adjacent then dungeon[x+dx][y+dy]:=To". The table
// holds the rules that matter for the piece ids this generator produces
// (solid/door/arch/pillar); illegal wall joins the room-tree/convTbl pass
// can produce are resolved here.
type tileFixRule struct {
	From, Adjacent, To int
	DX, DY              int
}

var tileFixes = []tileFixRule{
	{From: doorPieceID, Adjacent: solidPieceID, To: doorPieceID, DX: 1, DY: 0},
	{From: archPieceID, Adjacent: solidPieceID, To: archPieceID, DX: 0, DY: 1},
	{From: pillarPieceID, Adjacent: 0, To: pillarPieceID, DX: -1, DY: 0},
}

// applyTileFixes runs the neighborhood patch pass. Every neighbor access
// is bounds-checked before it happens; an out-of-range neighbor simply
// never matches.
func applyTileFixes(w *worldstate.World) {
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			for _, rule := range tileFixes {
				nx, ny := x+rule.DX, y+rule.DY
				if nx < 0 || nx >= 40 || ny < 0 || ny >= 40 {
					continue
				}
				if rule.Adjacent != 0 && w.Dungeon[ny][nx] != rule.Adjacent {
					continue
				}
				if w.Dungeon[y][x] != rule.From {
					continue
				}
				w.SetMegaTile(nx, ny, rule.To)
			}
		}
	}
}

// substitutionGroups maps a base piece id to the same-category decoration
// variants the substitution pass picks among.
var substitutionGroups = map[int][]int{
	1: {1, 18, 19},
	2: {2, 18, 19},
}

// applySubstitutions replaces, for each non-protected cell with
// probability 1/4, its piece with a same-category decoration variant.
func applySubstitutions(w *worldstate.World, protected [40][40]bool) {
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if protected[y][x] {
				continue
			}
			if !w.Rand.Chance(1, 4) {
				continue
			}
			variants, ok := substitutionGroups[w.Dungeon[y][x]]
			if !ok {
				continue
			}
			w.SetMegaTile(x, y, variants[w.Rand.Intn(len(variants))])
		}
	}
}
