package objects

import "testing"

func TestTrapArmsAndFiresAtPlayer(t *testing.T) {
	w := newTestWorld()
	pool := NewPool(4)

	chest, _ := pool.AddObject(w, KindChest, 10, 10)
	PlaceChest(chest, 100) // always trapped
	if err := pool.FinalizePlacement(w, chest.ID); err != nil {
		t.Fatalf("FinalizePlacement chest: %v", err)
	}
	if !chest.Trapped {
		t.Fatal("certain trap chance should always trap the chest")
	}

	trap, _ := pool.AddObject(w, KindTrap, 5, 10)
	PlaceTrap(trap, 10, 10, 1, false, false)
	if err := pool.FinalizePlacement(w, trap.ID); err != nil {
		t.Fatalf("FinalizePlacement trap: %v", err)
	}
	trap.Var3 = int(MissileArrow) // pin the rolled kind for the assertion below

	// The player steps onto the chest tile and opens it.
	w.DPlayer[10][10] = 1
	if err := pool.OperateObject(w, chest.ID, false); err != nil {
		t.Fatalf("OperateObject chest: %v", err)
	}

	pool.ProcessObjects(w)

	if len(w.Missiles) != 1 {
		t.Fatalf("expected 1 missile after the tick, got %d", len(w.Missiles))
	}
	m := w.Missiles[0]
	if m.X != 5 || m.Y != 10 {
		t.Fatalf("missile spawned at (%d,%d), want the trap anchor (5,10)", m.X, m.Y)
	}
	if m.DirX != 1 || m.DirY != 0 {
		t.Fatalf("missile direction (%d,%d), want east", m.DirX, m.DirY)
	}
	if m.Kind != int(MissileArrow) {
		t.Fatalf("missile kind %d, want arrow", m.Kind)
	}
	if trap.Trapped {
		t.Fatal("trap flag should clear after firing")
	}

	// A second tick must not fire again.
	pool.ProcessObjects(w)
	if len(w.Missiles) != 1 {
		t.Fatalf("spent trap fired again: %d missiles", len(w.Missiles))
	}
}

func TestTrapStaysIdleWithoutTrigger(t *testing.T) {
	w := newTestWorld()
	pool := NewPool(2)

	trap, _ := pool.AddObject(w, KindTrap, 5, 10)
	PlaceTrap(trap, 10, 10, 1, false, false)
	if err := pool.FinalizePlacement(w, trap.ID); err != nil {
		t.Fatalf("FinalizePlacement: %v", err)
	}

	w.DPlayer[10][10] = 1 // player present, but nothing sprang the trigger
	pool.ProcessObjects(w)
	if len(w.Missiles) != 0 {
		t.Fatal("idle trap fired without its trigger springing")
	}
}

func TestFlameLeverArmsTrapLine(t *testing.T) {
	w := newTestWorld()
	pool := NewPool(4)

	lever, _ := pool.AddObject(w, KindFlameLever, 1, 1)
	PlaceFlameLever(lever, 3)
	holeA, _ := pool.AddObject(w, KindFlameTrap, 2, 1)
	PlaceFlameTrap(holeA, 3, 0)
	holeB, _ := pool.AddObject(w, KindFlameTrap, 3, 1)
	PlaceFlameTrap(holeB, 5, 0) // different line, must stay off

	if err := pool.OperateObject(w, lever.ID, false); err != nil {
		t.Fatalf("OperateObject: %v", err)
	}
	if holeA.Var4 == 0 {
		t.Fatal("flame hole sharing the lever's line should arm")
	}
	if holeB.Var4 != 0 {
		t.Fatal("flame hole on another line must not arm")
	}

	for i := 0; i < 20; i++ {
		pool.ProcessObjects(w)
	}
	if holeA.Var4 != 0 {
		t.Fatal("flame burst should wind down after its animation")
	}
}

func TestTrapArmsAndFiresWhenDoorOpens(t *testing.T) {
	w := newTestWorld()
	pool := NewPool(4)

	door, _ := pool.AddObject(w, KindDoor, 10, 10)
	PlaceDoor(door, StyleCatacombsLeft)
	if err := pool.FinalizePlacement(w, door.ID); err != nil {
		t.Fatalf("FinalizePlacement door: %v", err)
	}
	door.Trapped = true // a trap watches this door

	trap, _ := pool.AddObject(w, KindTrap, 10, 5)
	PlaceTrap(trap, 10, 10, 1, false, false)
	if err := pool.FinalizePlacement(w, trap.ID); err != nil {
		t.Fatalf("FinalizePlacement trap: %v", err)
	}
	trap.Var3 = int(MissileFirebolt) // pin the rolled kind

	// Nothing fires while the door stays closed.
	w.DPlayer[10][10] = 1
	pool.ProcessObjects(w)
	if len(w.Missiles) != 0 {
		t.Fatal("trap fired before its door opened")
	}

	if err := pool.OperateObject(w, door.ID, false); err != nil {
		t.Fatalf("OperateObject door: %v", err)
	}
	if door.Var4 != DoorOpen {
		t.Fatalf("expected open door, got %d", door.Var4)
	}
	if door.Trapped {
		t.Fatal("opening should consume the door's trap mark")
	}

	pool.ProcessObjects(w)
	if len(w.Missiles) != 1 {
		t.Fatalf("expected 1 missile after the door opened, got %d", len(w.Missiles))
	}
	m := w.Missiles[0]
	if m.X != 10 || m.Y != 5 {
		t.Fatalf("missile spawned at (%d,%d), want the trap anchor (10,5)", m.X, m.Y)
	}
	if m.DirX != 0 || m.DirY != 1 {
		t.Fatalf("missile direction (%d,%d), want south toward the player", m.DirX, m.DirY)
	}
	if m.Kind != int(MissileFirebolt) {
		t.Fatalf("missile kind %d, want firebolt", m.Kind)
	}
}
