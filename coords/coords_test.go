package coords

import "testing"

func TestViewportGeometry1xZoom(t *testing.T) {
	tests := []struct {
		name           string
		screenW, viewH int
		wantCols       int
		wantRows       int
	}{
		{"640x352 panel-less", 640, 352, 10, 23},
		{"800x600", 800, 600, 13, 39},
		{"odd width rounds up", 650, 352, 11, 23},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			geo := CalcViewportGeometry(tc.screenW, tc.viewH, 1)
			if geo.TileColumns != tc.wantCols {
				t.Errorf("TileColumns = %d, want %d", geo.TileColumns, tc.wantCols)
			}
			if geo.TileRows != tc.wantRows {
				t.Errorf("TileRows = %d, want %d", geo.TileRows, tc.wantRows)
			}
		})
	}
}

func TestViewportGeometry2xZoomHalvesExtents(t *testing.T) {
	full := CalcViewportGeometry(640, 352, 1)
	half := CalcViewportGeometry(640, 352, 2)
	if half.TileColumns >= full.TileColumns {
		t.Errorf("2x zoom should shrink columns: %d vs %d", half.TileColumns, full.TileColumns)
	}
	if half.TileRows >= full.TileRows {
		t.Errorf("2x zoom should shrink rows: %d vs %d", half.TileRows, full.TileRows)
	}
}

func TestIsoProjection(t *testing.T) {
	// screen = (worldX - worldY)*32 + camX, (worldX + worldY)*16 + camY.
	p := IsoProject(MicroPosition{X: 3, Y: 1}, 100, 50)
	if p.X != (3-1)*32+100 || p.Y != (3+1)*16+50 {
		t.Fatalf("projection mismatch: got (%v,%v)", p.X, p.Y)
	}

	// Moving one step south-east in world space moves the point down-right.
	q := IsoProject(MicroPosition{X: 4, Y: 1}, 100, 50)
	if q.X <= p.X || q.Y <= p.Y {
		t.Fatalf("south-east step projected wrong direction: %+v -> %+v", p, q)
	}
}

func TestToMicroHonorsBorder(t *testing.T) {
	mp := DungeonPosition{X: 0, Y: 0}.ToMicro()
	if mp.X != 2*BorderTiles || mp.Y != 2*BorderTiles {
		t.Fatalf("origin should map inside the border: %+v", mp)
	}
	last := DungeonPosition{X: DungeonWidth - 1, Y: DungeonHeight - 1}.ToMicro()
	if last.X+1 >= MicroWidth || last.Y+1 >= MicroHeight {
		t.Fatalf("last tile's micro block out of range: %+v", last)
	}
}

func TestDrawableSectionClamp(t *testing.T) {
	s := NewDrawableSection(2, 2, 10).Clamp()
	if s.StartX != 0 || s.StartY != 0 {
		t.Errorf("section near origin should clamp to 0: %+v", s)
	}
	s = NewDrawableSection(DungeonWidth-1, DungeonHeight-1, 10).Clamp()
	if s.EndX != DungeonWidth-1 || s.EndY != DungeonHeight-1 {
		t.Errorf("section near far corner should clamp to max: %+v", s)
	}
}
