package worldgen

import (
	"worldcore/objects"
	"worldcore/worldstate"
)

// placeObjects registers the stairway and door objects the earlier passes
// already stamped tiles for, then scatters randomized containers, barrels,
// and triggered traps across the remaining non-protected floor. Traps can
// watch either a container or a door.
func placeObjects(w *worldstate.World, pool *objects.Pool, kind LevelKind, depth int, protected [40][40]bool, doors []doorPlacement, stairs []stairsResult) {
	placeStairObjects(w, pool, stairs)
	placedDoors := placeDoorObjects(w, pool, kind, doors)
	placedContainers := placeRandomContainers(w, pool, protected)
	placeRandomBarrels(w, pool, protected)
	placeTrapsOnTriggers(w, pool, kind, depth, append(placedContainers, placedDoors...))
}

func placeStairObjects(w *worldstate.World, pool *objects.Pool, stairs []stairsResult) {
	for _, s := range stairs {
		obj, err := pool.AddObject(w, objects.KindStairs, s.X, s.Y)
		if err != nil {
			continue // pool exhaustion is tolerated; the stairway object is skipped
		}
		entry := objects.EntryMain
		if !s.Up {
			entry = objects.EntryPrev
		}
		objects.PlaceStairs(obj, entry, s.Up)
		_ = pool.FinalizePlacement(w, obj.ID)
	}
}

func placeDoorObjects(w *worldstate.World, pool *objects.Pool, kind LevelKind, doors []doorPlacement) []*objects.Object {
	var placed []*objects.Object
	for i, d := range doors {
		obj, err := pool.AddObject(w, objects.KindDoor, d.X, d.Y)
		if err != nil {
			continue
		}
		objects.PlaceDoor(obj, doorStyleFor(kind, i))
		_ = pool.FinalizePlacement(w, obj.ID)
		placed = append(placed, obj)
	}
	return placed
}

// containerSpawnChance is the per-cell probability (out of 1000) that an
// eligible floor tile gets a sarcophagus or chest.
const containerSpawnChance = 15

func placeRandomContainers(w *worldstate.World, pool *objects.Pool, protected [40][40]bool) []*objects.Object {
	var placed []*objects.Object
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if protected[y][x] || w.Pieces.Get(w.Dungeon[y][x]).Solid {
				continue
			}
			if _, occupied := w.OccupantAt(x, y); occupied {
				continue
			}
			if !w.Rand.Chance(containerSpawnChance, 1000) {
				continue
			}

			kind := objects.KindChest
			if w.Rand.Chance(1, 4) {
				kind = objects.KindSarcophagus
			}
			obj, err := pool.AddObject(w, kind, x, y)
			if err != nil {
				return placed
			}
			if kind == objects.KindChest {
				objects.PlaceChest(obj, 0)
			}
			_ = pool.FinalizePlacement(w, obj.ID)
			placed = append(placed, obj)
		}
	}
	return placed
}

// barrelSpawnChance tunes the barrel scatter density (out of 1000).
const barrelSpawnChance = 10

func placeRandomBarrels(w *worldstate.World, pool *objects.Pool, protected [40][40]bool) {
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if protected[y][x] || w.Pieces.Get(w.Dungeon[y][x]).Solid {
				continue
			}
			if _, occupied := w.OccupantAt(x, y); occupied {
				continue
			}
			if !w.Rand.Chance(barrelSpawnChance, 1000) {
				continue
			}
			kind := objects.KindBarrel
			if w.Rand.Chance(1, 5) {
				kind = objects.KindExplosiveBarrel
			}
			obj, err := pool.AddObject(w, kind, x, y)
			if err != nil {
				return
			}
			_ = pool.FinalizePlacement(w, obj.ID)
		}
	}
}

// trapChanceOutOf100 tunes how often an eligible trigger object (container
// or door) gets a trap watching it.
const trapChanceOutOf100 = 20

// placeTrapsOnTriggers walks, for each eligible trigger object, left (even
// x) or up (odd x) until a wall and places a trigger trap object there
// watching it. The watched object is marked so its open transition springs
// the trap.
func placeTrapsOnTriggers(w *worldstate.World, pool *objects.Pool, kind LevelKind, depth int, triggers []*objects.Object) {
	for _, c := range triggers {
		if !w.Rand.Chance(trapChanceOutOf100, 100) {
			continue
		}

		tx, ty := c.X, c.Y
		goLeft := c.X%2 == 0
		for {
			nx, ny := tx, ty
			if goLeft {
				nx--
			} else {
				ny--
			}
			if nx < 0 || ny < 0 || w.Pieces.Get(w.Dungeon[ny][nx]).Solid {
				break
			}
			tx, ty = nx, ny
		}
		if tx == c.X && ty == c.Y {
			continue // already against a wall, nowhere to anchor the trap
		}
		if _, occupied := w.OccupantAt(tx, ty); occupied {
			continue
		}

		trap, err := pool.AddObject(w, objects.KindTrap, tx, ty)
		if err != nil {
			continue
		}
		objects.PlaceTrap(trap, c.X, c.Y, depth, kind.IsNest(), kind.IsCrypt())
		_ = pool.FinalizePlacement(w, trap.ID)
		c.Trapped = true
	}
}
