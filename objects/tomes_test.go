package objects

import "testing"

func TestTomeSequenceInOrder(t *testing.T) {
	var seq TomeSequence

	if seq.Activate(6) {
		t.Fatal("first book must not complete the sequence")
	}
	if seq.Progress() != 1 {
		t.Fatalf("progress = %d, want 1", seq.Progress())
	}
	if seq.Activate(7) {
		t.Fatal("second book must not complete the sequence")
	}
	if seq.Progress() != 2 {
		t.Fatalf("progress = %d, want 2", seq.Progress())
	}
	if !seq.Activate(8) {
		t.Fatal("third book in order should spawn the gate")
	}
}

func TestTomeSequenceResetsOnWrongOrder(t *testing.T) {
	var seq TomeSequence

	seq.Activate(6)
	if seq.Activate(8) {
		t.Fatal("out-of-order book must not complete the sequence")
	}
	if seq.Progress() != 0 {
		t.Fatalf("wrong order should reset progress, got %d", seq.Progress())
	}
	if seq.Activate(7) {
		t.Fatal("book 7 after a reset is still out of order")
	}
	if seq.Activate(8) {
		t.Fatal("book 8 must not spawn the gate after a broken sequence")
	}
}

func TestBookOperateIsOneShot(t *testing.T) {
	w := newTestWorld()
	pool := NewPool(4)

	book, err := pool.AddObject(w, KindBook, 3, 3)
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	PlaceBook(book, 6)
	if err := pool.FinalizePlacement(w, book.ID); err != nil {
		t.Fatalf("FinalizePlacement: %v", err)
	}

	if err := pool.OperateObject(w, book.ID, false); err != nil {
		t.Fatalf("OperateObject: %v", err)
	}
	if book.Selectable || book.Var6 != 1 || book.AnimFrame != 2 {
		t.Fatalf("book not opened: %+v", book)
	}

	book.AnimFrame = 99
	if err := pool.OperateObject(w, book.ID, false); err != nil {
		t.Fatalf("OperateObject (second): %v", err)
	}
	if book.AnimFrame != 99 {
		t.Fatal("operating a read book should be a no-op")
	}
}
