package worldgen

import "worldcore/worldstate"

// convTbl maps a 4-bit {north,south,east,west}-is-floor neighbor mask to
// a floor piece id variant. Floor piece ids occupy 1..16 (see
// initPieceTable); id 22 is the fixed solid/wall sentinel.
var convTbl = [16]int{
	1, 2, 3, 4, 5, 6, 7, 8,
	9, 10, 11, 12, 13, 14, 15, 16,
}

const solidPieceID = 22

// applyRoomTreeToGrid converts the room/floor boolean grid into dungeon
// piece ids: every floor cell gets a variant keyed by which of its four
// orthogonal neighbors are also floor. The neighbor mask carries the same
// adjacency information as doubling the grid and folding 2x2
// neighborhoods through a 16-entry template, without the intermediate
// 80x80 array.
func applyRoomTreeToGrid(w *worldstate.World, t *roomTree) {
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if !t.floor[y][x] {
				w.SetMegaTile(x, y, solidPieceID)
				continue
			}
			mask := 0
			if floorAt(t, x, y-1) {
				mask |= 1
			}
			if floorAt(t, x, y+1) {
				mask |= 2
			}
			if floorAt(t, x+1, y) {
				mask |= 4
			}
			if floorAt(t, x-1, y) {
				mask |= 8
			}
			w.SetMegaTile(x, y, convTbl[mask])
		}
	}
}

func floorAt(t *roomTree, x, y int) bool {
	if x < 0 || x >= 40 || y < 0 || y >= 40 {
		return false
	}
	return t.floor[y][x]
}

// pillarPieceID marks the four chamber pillar cells stamped at offsets
// {4,4},{7,4},{4,7},{7,7} inside an anchor room.
const pillarPieceID = 17

// fillChambersAndHalls stamps the chamber pillar quartet at the center of
// every 10x10 anchor room in the tree. The pillar placement is what later
// passes (shadows, substitutions) key off; the chamber's archway border
// tiles render identically to the floor variant convTbl already assigned,
// so they need no separate ids.
func fillChambersAndHalls(w *worldstate.World, t *roomTree) {
	offsets := [4][2]int{{4, 4}, {7, 4}, {4, 7}, {7, 7}}
	anchors := [3][2]int{{1, 15}, {15, 15}, {29, 15}}
	vAnchors := [3][2]int{{15, 1}, {15, 15}, {15, 29}}

	stamp := func(base [2]int) {
		for _, off := range offsets {
			x, y := base[0]+off[0], base[1]+off[1]
			if x >= 0 && x < 40 && y >= 0 && y < 40 && t.floor[y][x] {
				w.SetMegaTile(x, y, pillarPieceID)
			}
		}
	}
	for _, a := range anchors {
		stamp(a)
	}
	for _, a := range vAnchors {
		stamp(a)
	}
}
