// Package objects implements the level object/trigger state engine: doors,
// levers, chests, sarcophagi, barrels, traps, and shrines. Each kind's
// full behavior lives in one Behavior implementation, dispatched through a
// kind-keyed registry populated from init().
package objects

import (
	"fmt"

	"worldcore/worldstate"
)

// Kind identifies an object's behavior and, indirectly, its sprite set.
type Kind int

const (
	KindDoor Kind = iota
	KindLever
	KindChest
	KindSarcophagus
	KindBarrel
	KindExplosiveBarrel
	KindTrap
	KindFlameTrap
	KindFlameLever
	KindShrine
	KindStairs
	KindDecoration
	KindBook
)

// Object is the engine's record for one placed interactive object. The
// VarN scratch fields carry kind-specific state (see doors.go, shrines.go
// for what each kind stores there); fields with a fixed meaning across
// every kind are named normally.
type Object struct {
	ID   int
	Kind Kind
	X, Y int

	AnimFrame int
	AnimLen   int
	AnimCnt   int
	AnimDelay int

	Selectable bool
	PreFlag    bool // drawn before the player/monster layer
	DoorFlag   bool
	Trapped    bool
	BreakableHP int // 0 means "cannot be broken open"

	RndSeed uint32

	Var1, Var2, Var3, Var4, Var5, Var6 int
}

// Behavior is the dispatch contract every object kind implements. Operate
// fires on player interaction, Process runs once per game tick for objects
// that animate or tick down on their own (flame traps, blocked doors),
// SyncOp replays deterministic state after a remote/save-game sync, and
// Break handles a forced-open (bashed) object.
type Behavior interface {
	Add(w *worldstate.World, o *Object)
	Operate(w *worldstate.World, o *Object, sendMsg bool) error
	Process(w *worldstate.World, o *Object)
	SyncOp(w *worldstate.World, o *Object)
	Break(w *worldstate.World, o *Object) bool
}

var registry = map[Kind]Behavior{}

// Register installs the Behavior for a Kind. Called from each behavior
// file's init().
func Register(kind Kind, b Behavior) {
	registry[kind] = b
}

func behaviorFor(kind Kind) (Behavior, error) {
	b, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("objects: no behavior registered for kind %d", kind)
	}
	return b, nil
}

// Pool is the fixed-capacity, free-list-backed object table for one
// level.
type Pool struct {
	slots     []*Object
	free      []int
	active    []int
	nextID    int
}

// NewPool creates a pool with the given fixed capacity (127 slots for a
// standard level).
func NewPool(capacity int) *Pool {
	p := &Pool{slots: make([]*Object, capacity)}
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// ErrPoolExhausted is returned by AddObject when every slot is occupied.
var ErrPoolExhausted = fmt.Errorf("objects: pool exhausted")

// AddObject allocates a slot, constructs an Object of the given kind at
// (x, y), and registers it in the world's occupancy grid. It does not run
// the kind's Behavior.Add hook yet — callers configure kind-specific
// placement fields first (PlaceDoor, PlaceTrap, PlaceShrine, ...) and then
// call FinalizePlacement, since several behaviors' Add hooks read fields
// those Place* helpers set.
func (p *Pool) AddObject(w *worldstate.World, kind Kind, x, y int) (*Object, error) {
	if len(p.free) == 0 {
		return nil, ErrPoolExhausted
	}

	if _, err := behaviorFor(kind); err != nil {
		return nil, err
	}

	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]

	obj := &Object{ID: slot, Kind: kind, X: x, Y: y}
	p.slots[slot] = obj
	p.active = append(p.active, slot)

	w.SetOccupant(x, y, slot)
	return obj, nil
}

// FinalizePlacement runs the object's Behavior.Add hook. Call it once,
// after configuring the object with the matching Place* helper for its
// kind.
func (p *Pool) FinalizePlacement(w *worldstate.World, slot int) error {
	obj := p.Get(slot)
	if obj == nil {
		return fmt.Errorf("objects: no object in slot %d", slot)
	}
	behavior, err := behaviorFor(obj.Kind)
	if err != nil {
		return err
	}
	behavior.Add(w, obj)
	return nil
}

// Get returns the object in the given slot, or nil if the slot is free.
func (p *Pool) Get(slot int) *Object {
	if slot < 0 || slot >= len(p.slots) {
		return nil
	}
	return p.slots[slot]
}

// Active returns every live object, in pool order.
func (p *Pool) Active() []*Object {
	out := make([]*Object, 0, len(p.active))
	for _, slot := range p.active {
		if o := p.slots[slot]; o != nil {
			out = append(out, o)
		}
	}
	return out
}

// RemoveObject frees an object's slot and clears its occupancy grid entry.
// Nothing in this module calls it: a broken barrel keeps its record in the
// pool.
func (p *Pool) RemoveObject(w *worldstate.World, slot int) {
	obj := p.Get(slot)
	if obj == nil {
		return
	}
	w.ClearOccupant(obj.X, obj.Y)
	p.slots[slot] = nil
	p.free = append(p.free, slot)

	for i, s := range p.active {
		if s == slot {
			p.active = append(p.active[:i], p.active[i+1:]...)
			break
		}
	}
}

// OperateObject fires the interaction behavior for the object in slot.
func (p *Pool) OperateObject(w *worldstate.World, slot int, sendMsg bool) error {
	obj := p.Get(slot)
	if obj == nil {
		return fmt.Errorf("objects: no object in slot %d", slot)
	}
	behavior, err := behaviorFor(obj.Kind)
	if err != nil {
		return err
	}
	if err := behavior.Operate(w, obj, sendMsg); err != nil {
		return err
	}
	if obj.Kind == KindFlameLever && obj.Selectable {
		ArmFlameTrapLine(p, obj.Var1)
	}
	if obj.Kind == KindLever && obj.Var6 == 1 {
		group := LeverGroup(obj)
		if group == 0 || allLeversInGroupPulled(p, group) {
			x1, y1, x2, y2 := LeverRect(obj)
			p.ObjChangeMap(w, x1, y1, x2, y2)
		}
	}
	return nil
}

// SyncOpObject replays an object's deterministic post-sync state.
func (p *Pool) SyncOpObject(w *worldstate.World, slot int) error {
	obj := p.Get(slot)
	if obj == nil {
		return fmt.Errorf("objects: no object in slot %d", slot)
	}
	behavior, err := behaviorFor(obj.Kind)
	if err != nil {
		return err
	}
	behavior.SyncOp(w, obj)
	return nil
}

// BreakObject forces an object open (bashed rather than operated). Returns
// true if the object was destroyed by the break. Breaking an explosive
// barrel chain-detonates any explosive barrel on an orthogonally adjacent
// tile.
func (p *Pool) BreakObject(w *worldstate.World, slot int) bool {
	return p.breakObject(w, slot, map[int]bool{})
}

func (p *Pool) breakObject(w *worldstate.World, slot int, visited map[int]bool) bool {
	if visited[slot] {
		return false
	}
	visited[slot] = true

	obj := p.Get(slot)
	if obj == nil {
		return false
	}
	behavior, err := behaviorFor(obj.Kind)
	if err != nil {
		return false
	}
	destroyed := behavior.Break(w, obj)

	if destroyed && obj.Kind == KindExplosiveBarrel {
		deltas := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		for _, d := range deltas {
			nx, ny := obj.X+d[0], obj.Y+d[1]
			if idx, ok := w.OccupantAt(nx, ny); ok {
				if n := p.Get(idx); n != nil && n.Kind == KindExplosiveBarrel {
					p.breakObject(w, idx, visited)
				}
			}
		}
	}

	return destroyed
}

// ProcessObjects advances every live object by one tick, for objects whose
// behavior is time-driven rather than purely interaction-driven.
func (p *Pool) ProcessObjects(w *worldstate.World) {
	for _, slot := range p.active {
		obj := p.slots[slot]
		if obj == nil {
			continue
		}
		if behavior, err := behaviorFor(obj.Kind); err == nil {
			behavior.Process(w, obj)
		}
	}
}

// ObjChangeMap promotes the rectangle [x1,y1]-[x2,y2] from the world's
// post-open map into the live dungeon/dPiece arrays, then replays the Add
// hook of every live object whose anchor falls inside that rectangle so
// newly-revealed objects (re)compute their position-dependent state. This
// is how a lever or quest trigger opens a wall and spawns a room. Calling
// it twice over the same rectangle is idempotent: PromoteRegion only
// touches cells with a recorded override, and replaying Add twice on an
// object whose world-facing state is unchanged reproduces the same
// fields.
func (p *Pool) ObjChangeMap(w *worldstate.World, x1, y1, x2, y2 int) {
	w.PromoteRegion(x1, y1, x2, y2)

	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}

	for _, slot := range p.active {
		obj := p.slots[slot]
		if obj == nil {
			continue
		}
		if obj.X < x1 || obj.X > x2 || obj.Y < y1 || obj.Y > y2 {
			continue
		}
		if behavior, err := behaviorFor(obj.Kind); err == nil {
			behavior.Add(w, obj)
		}
	}
}
