package compositor

import (
	"sort"

	"github.com/bytearena/ecs"

	"worldcore/coords"
	"worldcore/spritedecode"
	"worldcore/worldstate"
)

// SpriteClass orders sprites within one tile: pre-missiles, corpse,
// floor objects, items under sprites, player/monster, dead player, items
// over, post objects, then post missiles.
type SpriteClass int

const (
	ClassPreMissile SpriteClass = iota
	ClassCorpse
	ClassObjectPre
	ClassItemUnder
	ClassActor
	ClassDeadPlayer
	ClassItemOver
	ClassObjectPost
	ClassPostMissile
)

// Sprite is one renderable occupant of a tile for the current frame.
// Entity is the owning gameplay entity's ecs id — the core never holds
// the monster/player/item structs themselves, only the handle the
// external collaborators registered.
type Sprite struct {
	Entity ecs.EntityID
	Class  SpriteClass
	Tile   coords.DungeonPosition

	Frame   int // frame index in the layer's archive
	OffsetX int // sub-tile pixel offset (missiles in flight)
	OffsetY int
	Lit     bool // false forces FullyDark regardless of dLight
}

// SpriteLayer is the per-frame multimap of sprites keyed by tile,
// rebuilt at frame start. It is the only buffer rendering writes;
// composing a frame never touches world state.
type SpriteLayer struct {
	byTile map[coords.DungeonPosition][]Sprite
	arch   spriteSource
}

// spriteSource is the minimal archive view the layer needs; satisfied by
// *assets.SpriteArchive.
type spriteSource interface {
	Frame(i int) []byte
}

// NewSpriteLayer builds an empty layer drawing frames from arch.
func NewSpriteLayer(arch spriteSource) *SpriteLayer {
	return &SpriteLayer{byTile: map[coords.DungeonPosition][]Sprite{}, arch: arch}
}

// Reset clears the layer for the next frame without reallocating the map.
func (l *SpriteLayer) Reset() {
	for k := range l.byTile {
		delete(l.byTile, k)
	}
}

// Add registers a sprite for this frame.
func (l *SpriteLayer) Add(s Sprite) {
	l.byTile[s.Tile] = append(l.byTile[s.Tile], s)
}

// at returns the tile's sprites in draw order. Stable sort so two
// sprites of the same class keep their registration order.
func (l *SpriteLayer) at(pos coords.DungeonPosition) []Sprite {
	sprites := l.byTile[pos]
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Class < sprites[j].Class
	})
	return sprites
}

// drawTileSprites renders every sprite on (tx, ty) in class order.
func (c *Compositor) drawTileSprites(w *worldstate.World, cam coords.Camera, sprites *SpriteLayer, tx, ty int) {
	if sprites == nil {
		return
	}
	list := sprites.at(coords.DungeonPosition{X: tx, Y: ty})
	if len(list) == 0 {
		return
	}
	sx, sy := c.tileScreenOrigin(cam, tx, ty)
	for _, sp := range list {
		frame := sprites.arch.Frame(sp.Frame)
		if frame == nil {
			continue // illegal frame index: skip the sprite
		}
		var light spritedecode.LightMode = spritedecode.FullyDark{}
		if sp.Lit {
			light = c.lightModeFor(w, tx, ty)
		}
		// Sprites are TransparentSquare-encoded frames drawn solid; the
		// block word only carries the primitive selector here.
		block := uint16(spritedecode.PrimitiveTransparentSquare) << 12
		_ = spritedecode.RenderTile(c.Surface, sx+16+sp.OffsetX, sy-16+sp.OffsetY, block, frame, spritedecode.ArchNone, false, light, spritedecode.Solid{}, c.Blend)
	}
}

// BuildSpriteLayer populates a layer from the world's occupancy grids
// for the entities the caller has registered handles for. lookup maps an
// occupancy-grid value (1-based index) to the entity handle and its
// current frame; grids with no registered handle are skipped. The Sprite
// lookup returns carries its draw class, so lookup decides pre/post for
// missiles and objects; BuildSpriteLayer does not read either flag itself.
func BuildSpriteLayer(w *worldstate.World, layer *SpriteLayer, lookup func(grid GridKind, index int) (Sprite, bool)) {
	layer.Reset()
	for y := 0; y < coords.DungeonHeight; y++ {
		for x := 0; x < coords.DungeonWidth; x++ {
			pos := coords.DungeonPosition{X: x, Y: y}
			add := func(kind GridKind, raw int) {
				if raw == 0 {
					return
				}
				if sp, ok := lookup(kind, raw); ok {
					sp.Tile = pos
					layer.Add(sp)
				}
			}
			add(GridDead, w.DDead[y][x])
			add(GridObject, w.DObject[y][x])
			add(GridItem, w.DItem[y][x])
			add(GridPlayer, w.DPlayer[y][x])
			add(GridMonster, w.DMonster[y][x])
			add(GridMissile, w.DMissile[y][x])
		}
	}
}

// GridKind names which occupancy grid a raw index came from, so the
// lookup callback can route it to the right entity table.
type GridKind int

const (
	GridDead GridKind = iota
	GridObject
	GridItem
	GridPlayer
	GridMonster
	GridMissile
)
