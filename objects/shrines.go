package objects

import "worldcore/worldstate"

// ShrineAvailability splits the shrine pool between single-player and
// multiplayer games.
type ShrineAvailability int

const (
	ShrineAny ShrineAvailability = iota
	ShrineSingleplayerOnly
	ShrineMultiplayerOnly
)

// ShrineDef is one row of the 34-row shrine table.
type ShrineDef struct {
	Name         string
	MinDepth     int
	MaxDepth     int
	Availability ShrineAvailability
}

// MaxNonHellfireShrines is how many leading rows of ShrineTable are valid
// when the Hellfire-only shrines (rows 26..33) are excluded.
const MaxNonHellfireShrines = 26

// ShrineTable is the full 34-entry shrine effect table (kinds 0..33). MinDepth/MaxDepth
// default to the full 1..24 range; Enchanted caps at depth 8.
var ShrineTable = []ShrineDef{
	{"Mysterious", 1, 24, ShrineAny},
	{"Hidden", 1, 24, ShrineAny},
	{"Gloomy", 1, 24, ShrineSingleplayerOnly},
	{"Weird", 1, 24, ShrineSingleplayerOnly},
	{"Magical", 1, 24, ShrineAny},
	{"Stone", 1, 24, ShrineAny},
	{"Religious", 1, 24, ShrineAny},
	{"Enchanted", 1, 8, ShrineAny},
	{"Thaumaturgic", 1, 24, ShrineSingleplayerOnly},
	{"Fascinating", 1, 24, ShrineAny},
	{"Cryptic", 1, 24, ShrineAny},
	{"Magical", 1, 24, ShrineAny},
	{"Eldritch", 1, 24, ShrineAny},
	{"Eerie", 1, 24, ShrineAny},
	{"Divine", 1, 24, ShrineAny},
	{"Holy", 1, 24, ShrineAny},
	{"Sacred", 1, 24, ShrineAny},
	{"Spiritual", 1, 24, ShrineAny},
	{"Spooky", 1, 24, ShrineMultiplayerOnly},
	{"Abandoned", 1, 24, ShrineAny},
	{"Creepy", 1, 24, ShrineAny},
	{"Quiet", 1, 24, ShrineAny},
	{"Secluded", 1, 24, ShrineAny},
	{"Ornate", 1, 24, ShrineAny},
	{"Glimmering", 1, 24, ShrineAny},
	{"Tainted", 1, 24, ShrineMultiplayerOnly},
	{"Oily", 1, 24, ShrineAny},                // Hellfire-only from here
	{"Glowing", 1, 24, ShrineAny},
	{"Mendicant's", 1, 24, ShrineAny},
	{"Sparkling", 1, 24, ShrineAny},
	{"Town", 1, 24, ShrineAny},
	{"Shimmering", 1, 24, ShrineAny},
	{"Solar", 1, 24, ShrineSingleplayerOnly},
	{"Murphy's", 1, 24, ShrineAny},
}

// eligibleShrines returns the indices into ShrineTable that can appear on
// the given depth, for the given ruleset (hellfire enables rows 26..33)
// and multiplayer flag.
func eligibleShrines(depth int, hellfire, multiplayer bool) []int {
	limit := MaxNonHellfireShrines
	if hellfire {
		limit = len(ShrineTable)
	}

	var out []int
	for i := 0; i < limit; i++ {
		def := ShrineTable[i]
		if depth < def.MinDepth || depth > def.MaxDepth {
			continue
		}
		if multiplayer && def.Availability == ShrineSingleplayerOnly {
			continue
		}
		if !multiplayer && def.Availability == ShrineMultiplayerOnly {
			continue
		}
		out = append(out, i)
	}
	return out
}

type shrineBehavior struct{}

func init() {
	Register(KindShrine, shrineBehavior{})
}

// PlaceShrine configures a freshly-added shrine's selection context; the
// actual effect roll happens in Add so it draws from the world's
// deterministic stream at placement time.
func PlaceShrine(o *Object, depth int, hellfire, multiplayer bool) {
	o.Var2 = depth
	o.Var3 = boolToInt(hellfire)
	o.Var4 = boolToInt(multiplayer)
	o.PreFlag = true
	o.Selectable = true
}

func (shrineBehavior) Add(w *worldstate.World, o *Object) {
	o.RndSeed = w.Rand.Seed()

	candidates := eligibleShrines(o.Var2, o.Var3 != 0, o.Var4 != 0)
	if len(candidates) == 0 {
		candidates = []int{0} // Mysterious always qualifies
	}

	o.Var1 = candidates[w.Rand.Intn(len(candidates))]

	if !w.Rand.Chance(1, 2) {
		o.AnimFrame = 12
		o.AnimLen = 22
	}
}

func (shrineBehavior) Operate(w *worldstate.World, o *Object, sendMsg bool) error {
	if !o.Selectable {
		return nil
	}
	o.Selectable = false
	o.Var5 = 1 // consumed; ShrineTable[o.Var1] names the effect applied by the caller
	o.AnimFrame = 1
	return nil
}

func (shrineBehavior) Process(*worldstate.World, *Object)    {}
func (shrineBehavior) SyncOp(w *worldstate.World, o *Object) {}
func (shrineBehavior) Break(*worldstate.World, *Object) bool { return false }

// EffectOf returns the ShrineDef a shrine object rolled at placement.
func EffectOf(o *Object) ShrineDef {
	return ShrineTable[o.Var1]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
