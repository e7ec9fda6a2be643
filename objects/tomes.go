package objects

import "worldcore/worldstate"

// The Na-Krul antechamber gates its final lever group behind three books
// that must be opened in a fixed order. Book objects carry their id in
// Var1; the level's TomeSequence tracks progress across operates.

// NaKrulBookOrder is the required activation order.
var NaKrulBookOrder = [3]int{6, 7, 8}

// TomeSequence tracks how far into the book order the player has
// progressed. The zero value is the starting state.
type TomeSequence struct {
	progress int
}

// Progress reports how many books have been activated in order so far.
func (s *TomeSequence) Progress() int { return s.progress }

// Activate records a book activation and reports whether the full
// sequence just completed (the "gate spawns" result). A book out of order
// resets progress to zero and does not itself count as the first step,
// even when it is the first book in the order.
func (s *TomeSequence) Activate(book int) bool {
	if s.progress < len(NaKrulBookOrder) && book == NaKrulBookOrder[s.progress] {
		s.progress++
		return s.progress == len(NaKrulBookOrder)
	}
	s.progress = 0
	return false
}

// Reset clears the sequence, for level reload.
func (s *TomeSequence) Reset() { s.progress = 0 }

// bookBehavior is the object-side half: a book is selectable once, flips
// to its opened animation frame on operate, and records that it was read
// in Var6. Which sequence (if any) the read advances is the quest layer's
// concern; it watches Var6 and calls TomeSequence.Activate with the
// book's Var1 id.
type bookBehavior struct{}

func init() {
	Register(KindBook, bookBehavior{})
}

// PlaceBook assigns a book its sequence id.
func PlaceBook(o *Object, bookID int) {
	o.Var1 = bookID
	o.Selectable = true
	o.AnimFrame = 1
}

func (bookBehavior) Add(*worldstate.World, *Object) {}

func (bookBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if !o.Selectable {
		return nil
	}
	o.Selectable = false
	o.Var6 = 1
	o.AnimFrame = 2 // opened
	return nil
}

func (bookBehavior) Process(*worldstate.World, *Object) {}

func (bookBehavior) SyncOp(w *worldstate.World, o *Object) {
	o.Selectable = false
	o.Var6 = 1
	o.AnimFrame = 2
}

func (bookBehavior) Break(*worldstate.World, *Object) bool { return false }
