package objects

import "worldcore/worldstate"

// Containers (chests, sarcophagi, barrels) all follow the same shape: they
// roll their loot count/kind at Add time, optionally hide a trap or a
// pre-spawned skeleton, and become inert once Operated or Broken.

const (
	containerLootRollMax = 10
	skeletonAmbushThreshold = 8
)

// --- Chest ---------------------------------------------------------------

type chestBehavior struct{}

func init() {
	Register(KindChest, chestBehavior{})
}

// PlaceChest configures a freshly-added chest's trap chance (out of 100)
// before the engine calls Add.
func PlaceChest(o *Object, trapChanceOutOf100 int) {
	o.Var3 = trapChanceOutOf100
	o.Selectable = true
	o.BreakableHP = 0 // chests are unlocked by operating, not bashing
}

func (chestBehavior) Add(w *worldstate.World, o *Object) {
	o.Var1 = w.Rand.Intn(containerLootRollMax)
	o.RndSeed = w.Rand.Seed()
	o.Trapped = w.Rand.Chance(o.Var3, 100)
}

func (chestBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if !o.Selectable {
		return nil
	}
	o.Selectable = false
	if o.Trapped {
		fireTrapAt(w, o.X, o.Y)
	}
	return nil
}

func (chestBehavior) Process(*worldstate.World, *Object) {}
func (chestBehavior) SyncOp(*worldstate.World, *Object)  {}
func (chestBehavior) Break(w *worldstate.World, o *Object) bool {
	o.Selectable = false
	return true
}

// --- Sarcophagus ----------------------------------------------------------

type sarcophagusBehavior struct{}

func init() {
	Register(KindSarcophagus, sarcophagusBehavior{})
}

func (sarcophagusBehavior) Add(w *worldstate.World, o *Object) {
	// Sarcophagi are two tiles tall; the tile above the anchor is reserved
	// with the negative shadow marker.
	w.SetOccupantShadow(o.X, o.Y-1, o.ID)
	o.Var1 = w.Rand.Intn(containerLootRollMax)
	o.RndSeed = w.Rand.Seed()
	if o.Var1 >= skeletonAmbushThreshold {
		o.Var2 = 1 // skeleton ambush armed; caller wires the actual monster id
	} else {
		o.Var2 = -1
	}
	o.Selectable = true
}

func (sarcophagusBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if !o.Selectable {
		return nil
	}
	o.Selectable = false
	return nil
}

func (sarcophagusBehavior) Process(*worldstate.World, *Object) {}
func (sarcophagusBehavior) SyncOp(*worldstate.World, *Object)  {}
func (sarcophagusBehavior) Break(w *worldstate.World, o *Object) bool {
	o.Selectable = false
	return true
}

// --- Barrel / explosive barrel --------------------------------------------

type barrelBehavior struct {
	explosive bool
}

func init() {
	Register(KindBarrel, barrelBehavior{explosive: false})
	Register(KindExplosiveBarrel, barrelBehavior{explosive: true})
}

func (b barrelBehavior) Add(w *worldstate.World, o *Object) {
	o.RndSeed = w.Rand.Seed()
	if b.explosive {
		o.Var2 = 0
	} else {
		o.Var2 = w.Rand.Intn(containerLootRollMax)
	}
	o.Var3 = w.Rand.Intn(3)

	if o.Var2 >= skeletonAmbushThreshold {
		o.Var4 = 1
	} else {
		o.Var4 = -1
	}
	o.BreakableHP = 1
}

func (b barrelBehavior) Operate(*worldstate.World, *Object, bool) error { return nil }
func (b barrelBehavior) Process(*worldstate.World, *Object)             {}
func (b barrelBehavior) SyncOp(*worldstate.World, *Object)              {}

// Break destroys the barrel. Chain-detonation across adjacent explosive
// barrels is handled by Pool.BreakObject, which knows about object
// adjacency; this hook just reports that the barrel itself is destroyed.
func (barrelBehavior) Break(*worldstate.World, *Object) bool {
	return true
}
