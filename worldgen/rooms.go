package worldgen

import (
	"worldcore/config"
	"worldcore/rng"
)

// roomTree is the room-and-corridor floor plan, before it is converted
// into dungeon piece ids. It is a plain floor/wall grid rather than a
// literal tree of Room nodes: the recursive "attach a room to each
// anchor's free sides" process only needs to know which cells are already
// floor to run its free-space check.
type roomTree struct {
	floor [40][40]bool
}

// Area returns the total floor-cell count compared against
// AreaThreshold.
func (t *roomTree) Area() int {
	n := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if t.floor[y][x] {
				n++
			}
		}
	}
	return n
}

func (t *roomTree) fillRect(x, y, w, h int) {
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if i >= 0 && i < 40 && j >= 0 && j < 40 {
				t.floor[j][i] = true
			}
		}
	}
}

// checkRoom reports whether the rectangle is entirely free: every cell
// inside must be currently non-floor and within bounds, so attaching a
// room here cannot overlap an existing one.
func (t *roomTree) checkRoom(x, y, w, h int) bool {
	if x < 1 || y < 1 || x+w >= 39 || y+h >= 39 {
		return false
	}
	for j := y; j < y+h; j++ {
		for i := x; i < x+w; i++ {
			if t.floor[j][i] {
				return false
			}
		}
	}
	return true
}

// anchorPositions returns the three 10x10 anchor room origins along the
// chosen primary axis: x in {1,15,29} for a horizontal primary axis, y in
// {1,15,29} for vertical, the cross-axis fixed at the middle position.
func anchorPositions(horizontal bool) [3][2]int {
	if horizontal {
		return [3][2]int{{1, 15}, {15, 15}, {29, 15}}
	}
	return [3][2]int{{15, 1}, {15, 15}, {15, 29}}
}

// generateRoomTree places three 10x10 anchors along a random primary axis
// (each independently present with probability 1/2, with at least two
// guaranteed), joins existing anchors with a width-6 corridor, then
// recursively attaches perpendicular rooms to each anchor's free sides.
func generateRoomTree(rand *rng.Stream, kind LevelKind) *roomTree {
	t := &roomTree{}
	horizontal := rand.Chance(1, 2)
	anchors := anchorPositions(horizontal)

	present := [3]bool{}
	count := 0
	for i := 0; i < 3; i++ {
		present[i] = rand.Chance(1, 2)
		if present[i] {
			count++
		}
	}
	// "at least two of three must exist": force the deficit onto the
	// anchors still missing, in index order, for a deterministic outcome.
	for i := 0; count < 2 && i < 3; i++ {
		if !present[i] {
			present[i] = true
			count++
		}
	}

	for i, ok := range present {
		if ok {
			t.fillRect(anchors[i][0], anchors[i][1], 10, 10)
		}
	}

	// Width-6 corridor joining consecutive existing anchors.
	for i := 0; i < 2; i++ {
		if !present[i] || !present[i+1] {
			continue
		}
		a, b := anchors[i], anchors[i+1]
		if horizontal {
			x0, x1 := a[0]+10, b[0]
			t.fillRect(x0, a[1]+2, x1-x0, 6)
		} else {
			y0, y1 := a[1]+10, b[1]
			t.fillRect(a[0]+2, y0, 6, y1-y0)
		}
	}

	for i, ok := range present {
		if !ok {
			continue
		}
		attachRooms(t, rand, anchors[i][0], anchors[i][1], 10, 10)
	}

	_ = kind // room-tree geometry is the same for every level kind
	return t
}

// attachRooms recursively tries, up to config.RoomAttachRetries times per
// side, to attach a randomly sized (2..6, even) room flush against each of
// the four sides of the rectangle at (x,y,w,h), subject to checkRoom.
func attachRooms(t *roomTree, rand *rng.Stream, x, y, w, h int) {
	type side struct{ dx, dy int }
	sides := []side{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

	for _, s := range sides {
		for attempt := 0; attempt < config.RoomAttachRetries; attempt++ {
			rw := 2 + 2*rand.Intn(3) // even, 2..6
			rh := 2 + 2*rand.Intn(3)

			var nx, ny, nw, nh int
			switch {
			case s.dx == 1: // east
				nx, ny, nw, nh = x+w, y+rand.Intn(maxInt(h-rh, 1)), rw, rh
			case s.dx == -1: // west
				nx, ny, nw, nh = x-rw, y+rand.Intn(maxInt(h-rh, 1)), rw, rh
			case s.dy == 1: // south
				nx, ny, nw, nh = x+rand.Intn(maxInt(w-rw, 1)), y+h, rw, rh
			default: // north
				nx, ny, nw, nh = x+rand.Intn(maxInt(w-rw, 1)), y-rh, rw, rh
			}

			if t.checkRoom(nx, ny, nw, nh) {
				t.fillRect(nx, ny, nw, nh)
				attachRooms(t, rand, nx, ny, nw, nh)
				break
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
