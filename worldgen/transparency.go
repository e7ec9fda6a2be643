package worldgen

import "worldcore/worldstate"

// floodTransparency assigns visibility regions over the whole level:
// starting from each unvisited floor cell, flood-fill a fresh TransVal
// region using World.FloodFillTransparency.
func floodTransparency(w *worldstate.World) {
	var nextRegion uint8 = 1
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if w.DTransVal[y][x] != 0 || w.IsOpaque(x, y) {
				continue
			}
			w.FloodFillTransparency(x, y, nextRegion)
			if nextRegion != 255 {
				nextRegion++
			}
		}
	}
}
