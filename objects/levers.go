package objects

import "worldcore/worldstate"

// Lever objects hold the rectangle they mutate when pulled (Var1..Var4,
// the x1,y1,x2,y2 ObjChangeMap promotes) and an optional group id (Var5).
// Grouped levers — the Na-Krul room is the canonical example — only
// promote their rectangle once every lever sharing the group has been
// pulled; an ungrouped lever (Var5 == 0) promotes immediately. A pull on
// an incomplete group just advances the animation and deselects the
// lever.
type leverBehavior struct{}

func init() {
	Register(KindLever, leverBehavior{})
}

// PlaceLever configures a freshly-added lever: the rectangle it reveals via
// ObjChangeMap, and the group id it belongs to (0 for an ungrouped lever
// that reveals its rectangle the moment it is pulled).
func PlaceLever(o *Object, x1, y1, x2, y2, group int) {
	o.Var1, o.Var2, o.Var3, o.Var4 = x1, y1, x2, y2
	o.Var5 = group
	o.Selectable = true
}

func (leverBehavior) Add(*worldstate.World, *Object) {}

func (leverBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if !o.Selectable {
		return nil
	}
	o.Var6 = 1 // pulled
	o.AnimFrame++
	o.Selectable = false
	return nil
}

func (leverBehavior) Process(*worldstate.World, *Object) {}

func (leverBehavior) SyncOp(w *worldstate.World, o *Object) {
	o.Var6 = 1
	o.Selectable = false
}

func (leverBehavior) Break(*worldstate.World, *Object) bool { return false }

// LeverGroup returns the group id a lever belongs to (0 if ungrouped).
func LeverGroup(o *Object) int { return o.Var5 }

// LeverRect returns the rectangle a lever promotes via ObjChangeMap.
func LeverRect(o *Object) (x1, y1, x2, y2 int) {
	return o.Var1, o.Var2, o.Var3, o.Var4
}

// LeversPulledInGroup reports how many levers in the given group have been
// pulled, for callers that gate a door or quest state on "all levers in
// this group are down".
func LeversPulledInGroup(pool *Pool, group int) int {
	count := 0
	for _, o := range pool.Active() {
		if o.Kind == KindLever && o.Var5 == group && o.Var6 == 1 {
			count++
		}
	}
	return count
}

// leverGroupSize counts how many levers belong to the group, pulled or not,
// so allLeversInGroupPulled can tell "all pulled" from "none placed".
func leverGroupSize(pool *Pool, group int) int {
	count := 0
	for _, o := range pool.Active() {
		if o.Kind == KindLever && o.Var5 == group {
			count++
		}
	}
	return count
}

// allLeversInGroupPulled reports whether every lever sharing group has been
// pulled at least once.
func allLeversInGroupPulled(pool *Pool, group int) bool {
	size := leverGroupSize(pool, group)
	return size > 0 && LeversPulledInGroup(pool, group) == size
}

// IsUberLeverActivated reports whether the uber-lever group guarding the
// Na-Krul gate has been fully pulled.
func IsUberLeverActivated(pool *Pool, uberGroup int) bool {
	return allLeversInGroupPulled(pool, uberGroup)
}
