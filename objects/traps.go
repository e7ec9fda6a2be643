package objects

import "worldcore/worldstate"

// MissileKind identifies which projectile a trigger trap fires, held in
// its Object.Var3 (flame traps use Var3 for their facing instead).
type MissileKind int

const (
	MissileArrow MissileKind = iota
	MissileFirebolt
	MissileLightning
)

// --- Arrow/firebolt/lightning trigger trap --------------------------------

type trapBehavior struct{}

func init() {
	Register(KindTrap, trapBehavior{})
}

// PlaceTrap configures a freshly-added trap: (triggerX, triggerY) is the
// tile whose stepping-on arms and fires the trap, and depth/levelKind pick
// the missile roll the same way AddTrap's effective-level math does.
func PlaceTrap(o *Object, triggerX, triggerY, depth int, isNest, isCrypt bool) {
	o.Var1 = triggerX
	o.Var2 = triggerY
	o.Trapped = true

	effectiveLevel := depth
	if isNest {
		effectiveLevel -= 4
	} else if isCrypt {
		effectiveLevel -= 8
	}
	if effectiveLevel < 1 {
		effectiveLevel = 1
	}
	_ = effectiveLevel // captured for the Add-time roll below
	o.Var5 = effectiveLevel
}

func (trapBehavior) Add(w *worldstate.World, o *Object) {
	roll := w.Rand.Intn(o.Var5/3 + 1)
	switch roll {
	case 0:
		o.Var3 = int(MissileArrow)
	case 1:
		o.Var3 = int(MissileFirebolt)
	default:
		o.Var3 = int(MissileLightning)
	}
	o.Var4 = 0
}

// Operate arms an idle trap; the missile itself fires on the next Process
// tick that finds a player around the trigger tile. Traps are stepped on,
// not clicked, so callers invoke this when a player or monster enters the
// trigger tile rather than through a player-initiated interaction.
func (trapBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if o.Var4 != trapIdle {
		return nil
	}
	o.Var4 = trapArmed
	return nil
}

// Trap arming states held in Var4.
const (
	trapIdle  = 0
	trapArmed = 1
	trapSpent = 2
)

// Process runs the trigger-trap cycle: an idle trap arms the tick its
// trigger tile reports a sprung container/door (FlagMissile, set by
// fireTrapAt), then an armed trap scans the 3x3 around the trigger for a
// player, scanning in reverse order, and fires its missile from the
// trap's anchor toward the first one found.
func (trapBehavior) Process(w *worldstate.World, o *Object) {
	if o.Var4 == trapIdle {
		if w.InBounds(o.Var1, o.Var2) && w.DFlags[o.Var2][o.Var1]&worldstate.FlagMissile != 0 {
			o.Var4 = trapArmed
			w.DFlags[o.Var2][o.Var1] &^= worldstate.FlagMissile
		}
	}
	if o.Var4 != trapArmed {
		return
	}

	for dy := 1; dy >= -1; dy-- {
		for dx := 1; dx >= -1; dx-- {
			tx, ty := o.Var1+dx, o.Var2+dy
			if !w.InBounds(tx, ty) || w.DPlayer[ty][tx] == 0 {
				continue
			}
			w.SpawnMissile(worldstate.Missile{
				X: o.X, Y: o.Y,
				DirX: sign(tx - o.X), DirY: sign(ty - o.Y),
				Kind: o.Var3,
				Lit:  o.Var3 != int(MissileArrow),
			})
			o.Var4 = trapSpent
			o.Trapped = false
			return
		}
	}
}

func (trapBehavior) SyncOp(w *worldstate.World, o *Object) {
	if o.Var4 == trapSpent {
		o.Trapped = false
	}
}

func (trapBehavior) Break(*worldstate.World, *Object) bool { return false }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// fireTrapAt is the shared "something sprung a trap here" hook opened
// chests and doors both use. It only marks the tile with FlagMissile; the
// trigger trap watching that tile arms on its next Process tick and spawns
// the missile itself.
func fireTrapAt(w *worldstate.World, x, y int) {
	if w.InBounds(x, y) {
		w.DFlags[y][x] |= worldstate.FlagMissile
	}
}

// --- Flame trap / flame lever pair ----------------------------------------

// flameTrapBehavior models a floor flame trap that burns in pulses along a
// line once armed by its paired lever.
type flameTrapBehavior struct{}

func init() {
	Register(KindFlameTrap, flameTrapBehavior{})
}

// PlaceFlameTrap assigns the trap to a line group (groupID) and facing
// direction (0-7).
func PlaceFlameTrap(o *Object, groupID, direction int) {
	o.Var1 = groupID
	o.Var3 = direction
}

func (flameTrapBehavior) Add(*worldstate.World, *Object) {}

func (flameTrapBehavior) Operate(*worldstate.World, *Object, bool) error { return nil }

// Process animates the flame burst once armed (Var4 != 0): counts the
// animation frame down and disarms at frame 1.
func (flameTrapBehavior) Process(w *worldstate.World, o *Object) {
	if o.Var4 == 0 {
		return
	}
	o.AnimFrame--
	if o.AnimFrame <= 1 {
		o.Var4 = 0
		o.AnimFrame = 0
	}
}

func (flameTrapBehavior) SyncOp(*worldstate.World, *Object) {}
func (flameTrapBehavior) Break(*worldstate.World, *Object) bool { return false }

// ArmFlameTrapLine arms every flame trap sharing groupID; fired when the
// paired lever is pulled.
func ArmFlameTrapLine(pool *Pool, groupID int) {
	for _, o := range pool.Active() {
		if o.Kind == KindFlameTrap && o.Var1 == groupID {
			o.Var4 = 1
			o.AnimFrame = 10
		}
	}
}

// flameLeverBehavior is the lever variant that arms a flame trap line
// instead of toggling a door.
type flameLeverBehavior struct{}

func init() {
	Register(KindFlameLever, flameLeverBehavior{})
}

// PlaceFlameLever links a flame lever to the trap line it arms.
func PlaceFlameLever(o *Object, groupID int) {
	o.Var1 = groupID
	o.Selectable = true
}

func (flameLeverBehavior) Add(*worldstate.World, *Object) {}

func (flameLeverBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if !o.Selectable {
		return nil
	}
	return nil
}

func (flameLeverBehavior) Process(*worldstate.World, *Object)          {}
func (flameLeverBehavior) SyncOp(*worldstate.World, *Object)           {}
func (flameLeverBehavior) Break(*worldstate.World, *Object) bool       { return false }
