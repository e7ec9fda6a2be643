// Command worldenginedemo is the thin game-loop caller the core is
// designed for: it generates a level, owns the player entity, runs object
// ticks at the fixed logic rate, and hands the camera plus grid state to
// the compositor every frame. It stands in for the real game's
// UI/combat/net layers, which consume the same narrow contract.
package main

import (
	"image/color"
	"log"

	"github.com/bytearena/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"worldcore/automap"
	"worldcore/compositor"
	"worldcore/config"
	"worldcore/coords"
	"worldcore/objects"
	"worldcore/worldgen"
)

const (
	screenWidth  = 640
	screenHeight = 352

	// Logic runs at 20 Hz; Ebiten updates at 60, so one object tick fires
	// every third update.
	updatesPerTick = 3
)

// PositionData is the demo's only ECS component payload: where the
// player entity stands, in dungeon coordinates.
type PositionData struct {
	Pos coords.DungeonPosition
}

type Game struct {
	level     *worldgen.Level
	comp      *compositor.Compositor
	presenter *compositor.Presenter
	sprites   *compositor.SpriteLayer
	pal       color.Palette
	am        *automap.Automap

	manager           *ecs.Manager
	positionComponent *ecs.Component
	player            *ecs.Entity

	cam         coords.Camera
	updateCount int
	showMap     bool
}

func (g *Game) playerPos() coords.DungeonPosition {
	data, ok := g.player.GetComponentData(g.positionComponent)
	if !ok {
		return coords.DungeonPosition{}
	}
	return data.(*PositionData).Pos
}

func (g *Game) movePlayer(dx, dy int) {
	w := g.level.World
	cur := g.playerPos()
	next := cur.Add(dx, dy)
	if !next.InBounds() || w.Pieces.Get(w.Dungeon[next.Y][next.X]).Solid {
		return
	}

	w.DPlayer[cur.Y][cur.X] = 0
	w.DPlayer[next.Y][next.X] = 1
	data, _ := g.player.GetComponentData(g.positionComponent)
	data.(*PositionData).Pos = next

	// Stepping onto a tile operates whatever trap trigger watches it and
	// advances exploration memory.
	for _, o := range g.level.Pool.Active() {
		if o.Kind == objects.KindTrap && o.Var1 == next.X && o.Var2 == next.Y {
			_ = g.level.Pool.OperateObject(w, o.ID, false)
		}
	}
	g.am.SetView(w, next, automap.ExploreSelf)
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.movePlayer(-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.movePlayer(1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.movePlayer(0, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.movePlayer(0, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.showMap = !g.showMap
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.operateAdjacent()
	}

	g.updateCount++
	if g.updateCount%updatesPerTick == 0 {
		g.level.Pool.ProcessObjects(g.level.World)
	}

	pos := g.playerPos()
	g.level.World.ComputeVisibility(pos.X, pos.Y, 10)
	g.cam.ViewX, g.cam.ViewY = pos.X, pos.Y
	return nil
}

// operateAdjacent fires OperateObject on the first interactable object on
// or orthogonally next to the player.
func (g *Game) operateAdjacent() {
	w := g.level.World
	pos := g.playerPos()
	deltas := [5][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range deltas {
		if idx, ok := w.OccupantAt(pos.X+d[0], pos.Y+d[1]); ok {
			if o := g.level.Pool.Get(idx); o != nil && o.Selectable {
				_ = g.level.Pool.OperateObject(w, idx, false)
				return
			}
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.level.World
	compositor.BuildSpriteLayer(w, g.sprites, func(kind compositor.GridKind, raw int) (compositor.Sprite, bool) {
		if kind != compositor.GridPlayer {
			return compositor.Sprite{}, false
		}
		return compositor.Sprite{
			Entity: g.player.GetID(),
			Class:  compositor.ClassActor,
			Frame:  playerFrameIndex,
			Lit:    true,
		}, true
	})

	g.comp.ComposeFrame(w, g.cam, g.sprites, compositor.Panels{})
	g.presenter.Present(screen, g.comp.Surface, g.pal, g.cam.Zoom)

	if g.showMap {
		g.am.DrawAutomap(screen, w, g.playerPos())
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	level, err := worldgen.Create(worldgen.Cathedral, 0xCAFEBABE, 1)
	if err != nil {
		log.Fatal(err)
	}

	mega, min, tiles, pal := buildDebugTileset()

	manager := ecs.NewManager()
	positionComponent := manager.NewComponent()
	spawn := level.SpawnPoint(objects.EntryMain)
	player := manager.NewEntity().AddComponent(positionComponent, &PositionData{Pos: spawn})
	level.World.DPlayer[spawn.Y][spawn.X] = 1

	settings := config.LoadUserSettings("settings.json")

	comp := compositor.New(screenWidth, screenHeight, mega, min, tiles)
	comp.Light = buildDebugLightTable()
	comp.BlendedTransparency = settings.BlendedTransparency

	g := &Game{
		level:             level,
		comp:              comp,
		presenter:         compositor.NewPresenter(),
		sprites:           compositor.NewSpriteLayer(tiles),
		pal:               pal,
		am:                automap.New(buildDebugAmp(level.World)),
		manager:           manager,
		positionComponent: positionComponent,
		player:            player,
		cam:               coords.Camera{ViewX: spawn.X, ViewY: spawn.Y, Zoom: 1},
	}
	g.am.Scale = settings.AutomapScale
	g.am.SetView(level.World, spawn, automap.ExploreSelf)

	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("worldcore demo")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
