package worldgen

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"worldcore/coords"
	"worldcore/objects"
)

// dungeonHash flattens the mega-tile array into the SHA-256 the
// determinism scenario keys on.
func dungeonHash(level *Level) [32]byte {
	h := sha256.New()
	var buf [4]byte
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			binary.LittleEndian.PutUint32(buf[:], uint32(level.World.Dungeon[y][x]))
			h.Write(buf[:])
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func TestCreateIsDeterministic(t *testing.T) {
	const seed = 0xCAFEBABE

	a, err := Create(Cathedral, seed, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	b, err := Create(Cathedral, seed, 1)
	if err != nil {
		t.Fatalf("Create (second): %v", err)
	}

	if dungeonHash(a) != dungeonHash(b) {
		t.Fatal("same seed produced different dungeon arrays")
	}
	if a.World.DTransVal != b.World.DTransVal {
		t.Fatal("same seed produced different transparency regions")
	}

	objsA, objsB := a.Pool.Active(), b.Pool.Active()
	if len(objsA) != len(objsB) {
		t.Fatalf("object pool contents diverged: %d vs %d objects", len(objsA), len(objsB))
	}
	for i := range objsA {
		if objsA[i].Kind != objsB[i].Kind || objsA[i].X != objsB[i].X || objsA[i].Y != objsB[i].Y {
			t.Fatalf("object %d diverged: %+v vs %+v", i, objsA[i], objsB[i])
		}
	}

	c, err := Create(Cathedral, seed+1, 1)
	if err != nil {
		t.Fatalf("Create (seed+1): %v", err)
	}
	if dungeonHash(a) == dungeonHash(c) {
		t.Fatal("seed+1 reproduced the same dungeon array")
	}
}

func TestMicroGridMatchesMegaExpansion(t *testing.T) {
	level, err := Create(Catacombs, 12345, 2)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w := level.World

	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			piece := w.Dungeon[y][x]
			mp := coords.DungeonPosition{X: x, Y: y}.ToMicro()
			for dy := 0; dy <= 1; dy++ {
				for dx := 0; dx <= 1; dx++ {
					if w.DPiece[mp.Y+dy][mp.X+dx] != piece {
						t.Fatalf("dPiece[%d][%d] = %d, want mega expansion of %d",
							mp.Y+dy, mp.X+dx, w.DPiece[mp.Y+dy][mp.X+dx], piece)
					}
				}
			}
		}
	}
}

func TestCreatePlacesBothStairways(t *testing.T) {
	level, err := Create(Cathedral, 777, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var up, down bool
	for _, o := range level.Pool.Active() {
		if o.Kind != objects.KindStairs {
			continue
		}
		if o.Var2 == 1 {
			up = true
		} else {
			down = true
		}
	}
	if !up || !down {
		t.Fatalf("missing stairway objects: up=%v down=%v", up, down)
	}

	spawn := level.SpawnPoint(objects.EntryMain)
	if !spawn.InBounds() {
		t.Fatalf("spawn point out of bounds: %+v", spawn)
	}
}

func TestCreateReachesAreaThreshold(t *testing.T) {
	level, err := Create(Cathedral, 31337, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w := level.World

	open := 0
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			if !w.Pieces.Get(w.Dungeon[y][x]).Solid {
				open++
			}
		}
	}
	// The room tree had to clear 533 floor cells before walls and stairs
	// were stamped back over some of them; the generous lower bound guards
	// against a degenerate near-empty layout slipping through.
	if open < 400 {
		t.Fatalf("level looks degenerate: only %d open cells", open)
	}
}

func TestTransparencyRegionsAssigned(t *testing.T) {
	level, err := Create(Cathedral, 2024, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	w := level.World

	tagged := 0
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			if w.Pieces.Get(w.Dungeon[y][x]).Solid {
				continue
			}
			if w.DTransVal[y][x] != 0 {
				tagged++
			}
		}
	}
	if tagged == 0 {
		t.Fatal("transparency flood tagged no open cells")
	}
}
