package objects

import "worldcore/worldstate"

// Door states, stored in Object.Var4. A blocked door is one that refused
// to close because something stood in the frame.
const (
	DoorClosed = 0
	DoorOpen   = 1
	DoorBlocked = 2
)

// DoorStyle selects which of the level tileset's paired left/right door
// pieces an object represents. Each style fixes the neighbor tile a door
// swing touches and, for the styles whose closed piece is level-fixed
// rather than captured from the map at placement time, that fixed piece id.
type DoorStyle int

const (
	StyleCathedralLeft DoorStyle = iota // OBJ_L1LDOOR
	StyleCathedralRight                 // OBJ_L1RDOOR
	StyleCatacombsLeft                  // OBJ_L2LDOOR
	StyleCatacombsRight                 // OBJ_L2RDOOR
	StyleCavesLeft                      // OBJ_L3LDOOR
	StyleCavesRight                     // OBJ_L3RDOOR
	StyleCryptLeft                      // OBJ_L5LDOOR
	StyleCryptRight                     // OBJ_L5RDOOR
)

// doorDef captures the per-style constants a closed/open swap needs. Styles
// that capture their piece ids dynamically from the map (cathedral, crypt)
// leave OpenMicro/ClosedMicro at 0 and use Object.Var1/Var2 instead.
type doorDef struct {
	OpenMicro    int // fixed open-state micro id, 0 if captured dynamically
	ClosedMicro  int // fixed closed-state micro id, 0 if captured dynamically
	NeighborDX   int
	NeighborDY   int
	SpecialOverlay int // dSpecial overlay id while open, 0 if none
	Dynamic      bool // true if Var1/Var2 hold the captured piece ids
}

var doorDefs = map[DoorStyle]doorDef{
	StyleCathedralLeft:  {NeighborDX: 1, NeighborDY: -1, SpecialOverlay: 7, Dynamic: true},
	StyleCathedralRight: {NeighborDX: -1, NeighborDY: -1, SpecialOverlay: 8, Dynamic: true},
	StyleCatacombsLeft:  {OpenMicro: 12, ClosedMicro: 537, SpecialOverlay: 5},
	StyleCatacombsRight: {OpenMicro: 16, ClosedMicro: 539, SpecialOverlay: 6},
	StyleCavesLeft:      {OpenMicro: 537, ClosedMicro: 530},
	StyleCavesRight:     {OpenMicro: 540, ClosedMicro: 533},
	StyleCryptLeft:       {NeighborDX: 1, NeighborDY: -1, Dynamic: true},
	StyleCryptRight:      {NeighborDX: -1, NeighborDY: -1, Dynamic: true},
}

// DoorStyleOf returns the style an object was placed with (stored in Var5
// at Add time).
func DoorStyleOf(o *Object) DoorStyle {
	return DoorStyle(o.Var5)
}

// doorBehavior is the door Behavior, registered for KindDoor in init().
type doorBehavior struct{}

func init() {
	Register(KindDoor, doorBehavior{})
}

// PlaceDoor configures a freshly-added door object with its style before
// the first Add hook runs; the generator calls this right after
// Pool.AddObject(w, KindDoor, x, y).
func PlaceDoor(o *Object, style DoorStyle) {
	o.Var5 = int(style)
	o.Selectable = true
}

func (doorBehavior) Add(w *worldstate.World, o *Object) {
	o.DoorFlag = true
	def := doorDefs[DoorStyleOf(o)]

	if def.Dynamic {
		pieceHere := w.Dungeon[o.Y][o.X]
		nx, ny := o.X+def.NeighborDX, o.Y+def.NeighborDY
		pieceNeighbor := 0
		if w.InBounds(nx, ny) {
			pieceNeighbor = w.Dungeon[ny][nx]
		}
		o.Var1 = pieceHere + 1
		o.Var2 = pieceNeighbor + 1
	}

	setDoorClosed(w, o)
}

func (doorBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	switch o.Var4 {
	case DoorBlocked:
		// Not interactable until Process clears it.
		return nil
	case DoorOpen:
		if IsDoorClear(w, o) {
			setDoorClosed(w, o)
		} else {
			// Something stands in the frame: the door stays visually open
			// but refuses interaction until the anchor tile is clear.
			o.Var4 = DoorBlocked
			o.Selectable = false
		}
	default:
		setDoorOpen(w, o)
	}
	return nil
}

// IsDoorClear reports whether the door's anchor tile is free of corpses,
// monsters, items, and players — the precondition for closing.
func IsDoorClear(w *worldstate.World, o *Object) bool {
	if !w.InBounds(o.X, o.Y) {
		return false
	}
	return w.DDead[o.Y][o.X] == 0 && w.DMonster[o.Y][o.X] == 0 &&
		w.DItem[o.Y][o.X] == 0 && w.DPlayer[o.Y][o.X] == 0
}

// Process returns a blocked door to the open, interactable state once the
// obstruction is gone.
func (doorBehavior) Process(w *worldstate.World, o *Object) {
	if o.Var4 == DoorBlocked && IsDoorClear(w, o) {
		o.Var4 = DoorOpen
		o.Selectable = true
	}
}

func (doorBehavior) SyncOp(w *worldstate.World, o *Object) {
	if o.Var4 == DoorOpen {
		setDoorOpen(w, o)
	} else {
		setDoorClosed(w, o)
	}
}

func (doorBehavior) Break(w *worldstate.World, o *Object) bool {
	setDoorOpen(w, o)
	o.Var4 = DoorBlocked
	return false
}

func setDoorOpen(w *worldstate.World, o *Object) {
	o.Var4 = DoorOpen
	o.PreFlag = true

	// A watched door springs its trigger trap the first time it opens,
	// the same signal an opened chest sends.
	if o.Trapped {
		fireTrapAt(w, o.X, o.Y)
		o.Trapped = false
	}

	style := DoorStyleOf(o)
	def := doorDefs[style]

	if def.SpecialOverlay != 0 {
		w.DSpecial[o.Y][o.X] = def.SpecialOverlay
	}

	switch style {
	case StyleCathedralLeft:
		open := 392
		if o.Var1 == 215 { // captured piece id 214+1: blood splatter tile
			open = 407
		}
		setMicro(w, o.X, o.Y, open)
	case StyleCathedralRight:
		setMicro(w, o.X, o.Y, 394)
	case StyleCatacombsLeft, StyleCatacombsRight, StyleCavesLeft, StyleCavesRight:
		setMicro(w, o.X, o.Y, def.OpenMicro)
	case StyleCryptLeft:
		setMicro(w, o.X, o.Y, 205)
	case StyleCryptRight:
		setMicro(w, o.X, o.Y, 208)
	}
}

func setDoorClosed(w *worldstate.World, o *Object) {
	o.Var4 = DoorClosed
	o.PreFlag = false
	style := DoorStyleOf(o)
	def := doorDefs[style]

	switch style {
	case StyleCathedralLeft, StyleCathedralRight:
		w.DSpecial[o.Y][o.X] = 0
		setMicro(w, o.X, o.Y, o.Var1-1)
		nx, ny := o.X+def.NeighborDX, o.Y+def.NeighborDY
		restore := o.Var2 - 1
		if o.Var2 == 50 && w.InBounds(nx, ny) && w.Dungeon[ny][nx] == 395 {
			if style == StyleCathedralLeft {
				restore = 411
			} else {
				restore = 410
			}
		}
		setMicro(w, nx, ny, restore)
	case StyleCatacombsLeft, StyleCatacombsRight:
		w.DSpecial[o.Y][o.X] = 0
		setMicro(w, o.X, o.Y, def.ClosedMicro)
	case StyleCavesLeft, StyleCavesRight:
		setMicro(w, o.X, o.Y, def.ClosedMicro)
	case StyleCryptLeft, StyleCryptRight:
		setMicro(w, o.X, o.Y, o.Var1-1)
		nx, ny := o.X+def.NeighborDX, o.Y+def.NeighborDY
		restore := o.Var2 - 1
		if o.Var2 == 86 && w.InBounds(nx, ny) && w.Dungeon[ny][nx] == 209 {
			if style == StyleCryptLeft {
				restore = 233
			} else {
				restore = 231
			}
		}
		setMicro(w, nx, ny, restore)
	}
}

// setMicro writes a piece id to the full 2x2 micro block the given mega
// tile expands to.
func setMicro(w *worldstate.World, x, y, pieceID int) {
	if !w.InBounds(x, y) {
		return
	}
	w.SetMegaTile(x, y, pieceID)
}
