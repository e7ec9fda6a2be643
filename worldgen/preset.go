package worldgen

import (
	"fmt"
	"os"

	"worldcore/assets"
	"worldcore/config"
	"worldcore/coords"
	"worldcore/objects"
	"worldcore/worldstate"
)

// Preset-object ids as they appear in a .DUN file's third layer. The
// table covers the ids the quest presets this engine loads actually use
// (levers, doors, books, the Na-Krul gate room's contents).
const (
	presetObjNone       = 0
	presetObjLever      = 1
	presetObjDoorLeft   = 2
	presetObjDoorRight  = 3
	presetObjBook       = 4
	presetObjChest      = 5
	presetObjBarrel     = 6
	presetObjShrine     = 7
	presetObjSarcophagus = 8
)

// LoadPreset fills a fresh World from a fixed .DUN asset instead of the
// room-tree pipeline, stamping the preset's mega-tile layer at the given
// origin and registering the objects its object layer calls for. The
// preset's transparency layer is copied verbatim rather than re-flooded,
// since an authored set-piece fixes its own visibility regions.
func LoadPreset(path string, origin coords.DungeonPosition, seed uint32, depth int) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("worldgen: opening preset: %w", err)
	}
	defer f.Close()

	dun, err := assets.LoadDun(f)
	if err != nil {
		return nil, err
	}
	return buildPresetLevel(dun, origin, seed, depth)
}

// StampPreset overlays a parsed .DUN blob onto an already-generated
// level, marking every written cell in protected so later passes cannot
// overwrite the authored content.
func StampPreset(w *worldstate.World, dun *assets.DunPreset, origin coords.DungeonPosition, protected *[40][40]bool) {
	for y := 0; y < dun.Height; y++ {
		for x := 0; x < dun.Width; x++ {
			id := int(dun.At(x, y))
			if id == 0 {
				continue
			}
			dx, dy := origin.X+x, origin.Y+y
			if dx < 0 || dx >= coords.DungeonWidth || dy < 0 || dy >= coords.DungeonHeight {
				continue
			}
			w.SetMegaTile(dx, dy, id)
			if protected != nil {
				protected[dy][dx] = true
			}
		}
	}
	for y := 0; y < 2*dun.Height; y++ {
		for x := 0; x < 2*dun.Width; x++ {
			tv := dun.TransVals[y*2*dun.Width+x]
			if tv == 0 {
				continue
			}
			dx, dy := origin.X+x/2, origin.Y+y/2
			if dx >= 0 && dx < coords.DungeonWidth && dy >= 0 && dy < coords.DungeonHeight {
				w.DTransVal[dy][dx] = uint8(tv)
			}
		}
	}
}

func buildPresetLevel(dun *assets.DunPreset, origin coords.DungeonPosition, seed uint32, depth int) (*Level, error) {
	w := worldstate.New(seed, depth, maxPieceID)
	initPieceTable(w)
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			w.SetMegaTile(x, y, solidPieceID)
		}
	}
	StampPreset(w, dun, origin, nil)

	pool := objects.NewPool(config.MaxObjects)
	placePresetObjects(w, pool, dun, origin, depth)
	return &Level{World: w, Pool: pool}, nil
}

// placePresetObjects walks the .DUN object layer (2x the mega resolution,
// so object cells land on micro coordinates; the anchor is the mega tile
// the micro cell falls in) and registers each recognized id.
func placePresetObjects(w *worldstate.World, pool *objects.Pool, dun *assets.DunPreset, origin coords.DungeonPosition, depth int) {
	// The Na-Krul room's levers all share one group; books form the tome
	// sequence. Both counters run per preset load.
	leverGroup := 0
	bookIndex := 0
	for y := 0; y < 2*dun.Height; y++ {
		for x := 0; x < 2*dun.Width; x++ {
			id := int(dun.Objects[y*2*dun.Width+x])
			if id == presetObjNone {
				continue
			}
			dx, dy := origin.X+x/2, origin.Y+y/2
			if dx < 0 || dx >= coords.DungeonWidth || dy < 0 || dy >= coords.DungeonHeight {
				continue
			}
			if _, occupied := w.OccupantAt(dx, dy); occupied {
				continue
			}

			switch id {
			case presetObjLever:
				if leverGroup == 0 {
					leverGroup = 1
				}
				obj, err := pool.AddObject(w, objects.KindLever, dx, dy)
				if err != nil {
					continue
				}
				// The rectangle a preset lever mutates is the preset's own
				// footprint: authored rooms open inside themselves.
				objects.PlaceLever(obj, origin.X, origin.Y, origin.X+dun.Width-1, origin.Y+dun.Height-1, leverGroup)
				_ = pool.FinalizePlacement(w, obj.ID)
			case presetObjDoorLeft, presetObjDoorRight:
				obj, err := pool.AddObject(w, objects.KindDoor, dx, dy)
				if err != nil {
					continue
				}
				style := objects.StyleCathedralLeft
				if id == presetObjDoorRight {
					style = objects.StyleCathedralRight
				}
				objects.PlaceDoor(obj, style)
				_ = pool.FinalizePlacement(w, obj.ID)
			case presetObjBook:
				obj, err := pool.AddObject(w, objects.KindBook, dx, dy)
				if err != nil {
					continue
				}
				// Preset books number into the Na-Krul order as authored,
				// left-to-right, top-to-bottom.
				objects.PlaceBook(obj, objects.NaKrulBookOrder[0]+bookIndex)
				bookIndex++
				_ = pool.FinalizePlacement(w, obj.ID)
			case presetObjChest:
				obj, err := pool.AddObject(w, objects.KindChest, dx, dy)
				if err != nil {
					continue
				}
				objects.PlaceChest(obj, 0)
				_ = pool.FinalizePlacement(w, obj.ID)
			case presetObjBarrel:
				obj, err := pool.AddObject(w, objects.KindBarrel, dx, dy)
				if err != nil {
					continue
				}
				_ = pool.FinalizePlacement(w, obj.ID)
			case presetObjShrine:
				obj, err := pool.AddObject(w, objects.KindShrine, dx, dy)
				if err != nil {
					continue
				}
				objects.PlaceShrine(obj, depth, false, false)
				_ = pool.FinalizePlacement(w, obj.ID)
			case presetObjSarcophagus:
				obj, err := pool.AddObject(w, objects.KindSarcophagus, dx, dy)
				if err != nil {
					continue
				}
				_ = pool.FinalizePlacement(w, obj.ID)
			}
		}
	}
}
