package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// UserSettings holds the player-tunable knobs the engine reads at startup:
// backbuffer resolution, automap zoom, and the optional viewport column
// override. Persisted as JSON next to the save data.
type UserSettings struct {
	ResolutionWidth  int `json:"resolution_width"`
	ResolutionHeight int `json:"resolution_height"`

	// AutomapScale is the overlay zoom percentage, 50..200 in steps of 5.
	AutomapScale int `json:"automap_scale"`

	// BlendedTransparency selects alpha-blended see-through walls instead
	// of the dithered stipple.
	BlendedTransparency bool `json:"blended_transparency"`

	// ViewportTileColumns overrides the computed tile column count when
	// nonzero; 0 means "compute from screen width".
	ViewportTileColumns int `json:"viewport_tile_columns"`
}

// DefaultSettings returns the settings a fresh install runs with.
func DefaultSettings() UserSettings {
	return UserSettings{
		ResolutionWidth:  640,
		ResolutionHeight: 480,
		AutomapScale:     100,
	}
}

// normalize clamps every field to a value the engine can actually run
// with, so a hand-edited settings file cannot push the automap or
// viewport out of range.
func (s *UserSettings) normalize() {
	if s.ResolutionWidth <= 0 || s.ResolutionHeight <= 0 {
		d := DefaultSettings()
		s.ResolutionWidth, s.ResolutionHeight = d.ResolutionWidth, d.ResolutionHeight
	}
	if s.AutomapScale < 50 {
		s.AutomapScale = 50
	}
	if s.AutomapScale > 200 {
		s.AutomapScale = 200
	}
	s.AutomapScale -= s.AutomapScale % 5
	if s.ViewportTileColumns < 0 {
		s.ViewportTileColumns = 0
	}
}

// LoadUserSettings reads settings from the given JSON path. A missing,
// unreadable or unparseable file yields the defaults; a file that decodes
// is normalized field-by-field, so one out-of-range value is clamped
// without discarding the rest.
func LoadUserSettings(path string) UserSettings {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings()
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		fmt.Printf("WARNING: ignoring unparseable settings at %s: %v\n", path, err)
		return DefaultSettings()
	}
	settings.normalize()
	return settings
}

// Save writes the settings as indented JSON.
func (s UserSettings) Save(path string) error {
	s.normalize()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: writing settings: %w", err)
	}
	return nil
}
