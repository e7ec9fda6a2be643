package worldstate

import "testing"

func TestSetMegaTileExpandsToMicroBlock(t *testing.T) {
	w := New(1, 1, 4)
	w.SetMegaTile(3, 5, 7)

	if w.Dungeon[5][3] != 7 {
		t.Fatalf("dungeon tile not set: got %d", w.Dungeon[5][3])
	}

	mp := struct{ x, y int }{2 * (3 + 8), 2 * (5 + 8)}
	if w.DPiece[mp.y][mp.x] != 7 || w.DPiece[mp.y][mp.x+1] != 7 ||
		w.DPiece[mp.y+1][mp.x] != 7 || w.DPiece[mp.y+1][mp.x+1] != 7 {
		t.Fatalf("micro block not fully expanded at (%d,%d)", mp.x, mp.y)
	}
}

func TestFloodFillTransparencyStopsAtOpaquePieces(t *testing.T) {
	w := New(2, 1, 3)
	w.Pieces[2] = PieceProperties{Solid: true, BlocksLight: true}

	// A one-tile-high corridor along y=0, walled in on every other row.
	for y := 0; y < coordsDungeonHeight; y++ {
		for x := 0; x < coordsDungeonWidth; x++ {
			w.SetMegaTile(x, y, 2)
		}
	}
	for x := 0; x < coordsDungeonWidth; x++ {
		w.SetMegaTile(x, 0, 1)
	}
	w.SetMegaTile(5, 0, 2) // wall splits the corridor

	region := w.FloodFillTransparency(0, 0, 1)
	open := 0
	for _, tile := range region.Tiles {
		// Walls bordering the region (x <= 5) carry its id; nothing past
		// the splitting wall may.
		if tile.X > 5 {
			t.Fatalf("flood fill crossed an opaque tile at x=%d", tile.X)
		}
		if !w.IsOpaque(tile.X, tile.Y) {
			open++
		}
	}
	if open != 5 {
		t.Fatalf("expected flood to cover open tiles 0..4, got %d open tiles", open)
	}
}

func TestOccupantRoundTrip(t *testing.T) {
	w := New(3, 1, 1)
	w.SetOccupant(2, 2, 9)

	idx, ok := w.OccupantAt(2, 2)
	if !ok || idx != 9 {
		t.Fatalf("expected occupant 9, got %d ok=%v", idx, ok)
	}

	w.ClearOccupant(2, 2)
	if _, ok := w.OccupantAt(2, 2); ok {
		t.Fatal("expected no occupant after ClearOccupant")
	}
}

func TestComputeVisibilityMarksOrigin(t *testing.T) {
	w := New(4, 1, 1)
	for y := 0; y < coordsDungeonHeight; y++ {
		for x := 0; x < coordsDungeonWidth; x++ {
			w.SetMegaTile(x, y, 1)
		}
	}

	w.ComputeVisibility(10, 10, 5)
	if !w.IsVisible(10, 10) {
		t.Fatal("origin tile should always be visible")
	}
}

// local aliases so this test file does not need to import coords directly
// for simple bound constants used only in assertions.
const (
	coordsDungeonWidth  = 40
	coordsDungeonHeight = 40
)
