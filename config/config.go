package config

// Game configuration constants and default values

// Debug and diagnostics flags
const (
	// DebugMode is the verbose generator/object logging switch; no package
	// in this module reads it.
	DebugMode = true

	// EnableBenchmarking is the pprof profiling-server switch for
	// ProfileServerAddr; no package in this module reads it or starts a
	// server.
	EnableBenchmarking = false
)

// Dungeon grid constants: fixed extents, 40x40 mega tiles, 112x112 micro.
const (
	DungeonWidth   = 40
	DungeonHeight  = 40
	MicroTileLen   = 32 // pixel extent of one micro-tile/frame
	MaxObjects     = 127
	MaxLightLevel  = 15
)

// Dungeon generation tuning.
const (
	RoomAttachRetries   = 20
	MinisetPlaceRetries = 4000
	WallChanceOutOf100  = 5
)

// Default screen/camera configuration.
const (
	DefaultTilePixels   = 32
	DefaultScaleFactor  = 1
	DefaultRightPadding = 0
)

// Asset paths, relative to the process working directory. Game data lives
// outside the module root.
const (
	AssetLevelsDir  = "../assets/levels/"
	AssetSpritesDir = "../assets/sprites/"
	AssetPaletteDir = "../assets/palettes/"
)

// Profiling configuration
const (
	ProfileServerAddr = "localhost:6060"
	CPUProfileRate    = 1000
	MemoryProfileRate = 1
)
