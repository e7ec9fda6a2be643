package objects

import "worldcore/worldstate"

// Stairs and plain decorations (urns, lamps, torches, skeleton piles)
// share the simplest possible lifecycle: placed once by the generator,
// never animate, and are never destroyed by play. Stairs additionally
// record which entry point they correspond to (Var1), since an arriving
// player spawns at the matching stairway.
type stairsBehavior struct{}

func init() {
	Register(KindStairs, stairsBehavior{})
	Register(KindDecoration, decorationBehavior{})
}

// Entry identifies which level-transition a stairway serves.
type Entry int

const (
	EntryMain Entry = iota
	EntryPrev
	EntryTWarpUp
)

// PlaceStairs configures a freshly-added stairs object with its entry kind
// and whether it leads up or down (Var2 = 1 for "up").
func PlaceStairs(o *Object, entry Entry, up bool) {
	o.Var1 = int(entry)
	if up {
		o.Var2 = 1
	}
	o.Selectable = true
}

func (stairsBehavior) Add(*worldstate.World, *Object)                     {}
func (stairsBehavior) Operate(*worldstate.World, *Object, bool) error     { return nil }
func (stairsBehavior) Process(*worldstate.World, *Object)                 {}
func (stairsBehavior) SyncOp(*worldstate.World, *Object)                  {}
func (stairsBehavior) Break(*worldstate.World, *Object) bool              { return false }

// decorationBehavior covers static, non-interactive scenery (urns, lamps,
// torches) placed by InitRndLocObj*/InitRndBarrels-equivalent passes.
type decorationBehavior struct{}

// PlaceDecoration tags a decoration with a variant id (sprite selection is
// an external concern; the core only needs a stable id to hand to it).
func PlaceDecoration(o *Object, variant int) {
	o.Var1 = variant
}

func (decorationBehavior) Add(*worldstate.World, *Object)                 {}
func (decorationBehavior) Operate(*worldstate.World, *Object, bool) error { return nil }
func (decorationBehavior) Process(*worldstate.World, *Object)             {}
func (decorationBehavior) SyncOp(*worldstate.World, *Object)              {}
func (decorationBehavior) Break(*worldstate.World, *Object) bool          { return false }
