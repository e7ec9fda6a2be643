package compositor

import (
	"bytes"
	"testing"

	"worldcore/assets"
	"worldcore/coords"
	"worldcore/spritedecode"
	"worldcore/worldstate"
)

func solidFrame(fill byte) []byte {
	frame := make([]byte, spritedecode.SquareHeight*spritedecode.TileWidth)
	for i := range frame {
		frame[i] = fill
	}
	return frame
}

// testScene builds a small world with floor piece 1 everywhere and wall
// piece 2 in a line, plus the matching mega/min/archive tables.
func testScene() (*worldstate.World, *Compositor) {
	w := worldstate.New(42, 1, 8)
	w.Pieces[2] = worldstate.PieceProperties{Solid: true, BlocksLight: true}
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			w.SetMegaTile(x, y, 1)
		}
	}
	for x := 10; x < 20; x++ {
		w.SetMegaTile(x, 12, 2)
	}

	arch := &assets.SpriteArchive{Frames: [][]byte{solidFrame(10), solidFrame(20)}}
	min := assets.MinTable{
		{FrameIndex: 0}, // micro 1: floor frame, Square primitive
		{FrameIndex: 1}, // micro 2: wall frame
	}
	mega := assets.MegaTable{
		{Micro1: 1, Micro2: 1},                         // piece 1: floor only
		{Micro1: 1, Micro2: 1, Micro3: 2, Micro4: 2},   // piece 2: floor + wall
	}

	c := New(640, 352, mega, min, arch)
	return w, c
}

func writtenOutside(s *spritedecode.Surface, x0, x1 int) bool {
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if (x < x0 || x >= x1) && s.Pix[y*s.Width+x] != 0 {
				return true
			}
		}
	}
	return false
}

func TestComposeFrameWritesSomething(t *testing.T) {
	w, c := testScene()
	cam := coords.Camera{ViewX: 15, ViewY: 12, Zoom: 1}

	c.ComposeFrame(w, cam, nil, Panels{})
	nonZero := 0
	for _, p := range c.Surface.Pix {
		if p != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Fatal("compose produced an empty frame")
	}
}

func TestComposeFrameHonorsPanelOcclusion(t *testing.T) {
	w, c := testScene()
	cam := coords.Camera{ViewX: 15, ViewY: 12, Zoom: 1}

	const leftPanel, rightPanel = 10, 20
	c.ComposeFrame(w, cam, nil, Panels{LeftPixels: leftPanel, RightPixels: rightPanel})

	if writtenOutside(c.Surface, leftPanel, c.Surface.Width-rightPanel) {
		t.Fatal("pixels written under an occluding panel")
	}
}

func TestComposeFrameIsPure(t *testing.T) {
	w, c := testScene()
	cam := coords.Camera{ViewX: 15, ViewY: 12, Zoom: 1}

	c.ComposeFrame(w, cam, nil, Panels{})
	first := make([]byte, len(c.Surface.Pix))
	copy(first, c.Surface.Pix)

	c.ComposeFrame(w, cam, nil, Panels{})
	if !bytes.Equal(first, c.Surface.Pix) {
		t.Fatal("two composes over identical state differ")
	}
}

func TestSpriteLayerOrdersByClass(t *testing.T) {
	layer := NewSpriteLayer(&assets.SpriteArchive{})
	pos := coords.DungeonPosition{X: 4, Y: 4}
	layer.Add(Sprite{Class: ClassPostMissile, Tile: pos})
	layer.Add(Sprite{Class: ClassCorpse, Tile: pos})
	layer.Add(Sprite{Class: ClassActor, Tile: pos})
	layer.Add(Sprite{Class: ClassPreMissile, Tile: pos})

	list := layer.at(pos)
	if len(list) != 4 {
		t.Fatalf("expected 4 sprites, got %d", len(list))
	}
	// A pre-flagged missile renders before the corpse it may land on.
	want := []SpriteClass{ClassPreMissile, ClassCorpse, ClassActor, ClassPostMissile}
	for i, w := range want {
		if list[i].Class != w {
			t.Fatalf("draw order slot %d = %v, want %v", i, list[i].Class, w)
		}
	}
}

func TestSpriteLayerResetKeepsMap(t *testing.T) {
	layer := NewSpriteLayer(&assets.SpriteArchive{})
	pos := coords.DungeonPosition{X: 1, Y: 1}
	layer.Add(Sprite{Class: ClassActor, Tile: pos})
	layer.Reset()
	if len(layer.at(pos)) != 0 {
		t.Fatal("Reset left sprites behind")
	}
}

func TestCursorSaveRestore(t *testing.T) {
	_, c := testScene()
	s := c.Surface
	for i := range s.Pix {
		s.Pix[i] = 7
	}

	cursorFrame := func() []byte {
		// TransparentSquare: every row fully opaque.
		var data []byte
		for row := 0; row < spritedecode.SquareHeight; row++ {
			data = append(data, byte(spritedecode.TileWidth))
			for i := 0; i < spritedecode.TileWidth; i++ {
				data = append(data, 99)
			}
		}
		return data
	}()

	c.DrawCursor(100, 100, cursorFrame)
	if s.Pix[110*s.Width+110] != 99 {
		t.Fatal("cursor not drawn")
	}

	// Next frame, cursor moved: the old rectangle must be restored.
	c.DrawCursor(300, 100, cursorFrame)
	if s.Pix[110*s.Width+110] != 7 {
		t.Fatal("old cursor rectangle not restored")
	}
	if s.Pix[110*s.Width+310] != 99 {
		t.Fatal("cursor not drawn at new position")
	}
}

func TestBuildSpriteLayerRoutesGrids(t *testing.T) {
	w := worldstate.New(1, 1, 4)
	w.DPlayer[5][6] = 1
	w.DMonster[7][8] = 3

	layer := NewSpriteLayer(&assets.SpriteArchive{})
	var seen []GridKind
	BuildSpriteLayer(w, layer, func(kind GridKind, index int) (Sprite, bool) {
		seen = append(seen, kind)
		return Sprite{Class: ClassActor}, true
	})

	if len(seen) != 2 {
		t.Fatalf("expected 2 lookups, got %d", len(seen))
	}
	if len(layer.at(coords.DungeonPosition{X: 6, Y: 5})) != 1 {
		t.Fatal("player sprite not registered on its tile")
	}
	if len(layer.at(coords.DungeonPosition{X: 8, Y: 7})) != 1 {
		t.Fatal("monster sprite not registered on its tile")
	}
}
