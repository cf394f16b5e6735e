package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the engine prefs file, relative to the
// process working directory. Scene configuration (theme, counts, geometry)
// lives separately in config/tree.yaml.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds engine-only preferences (debug overlays, grid, camera
// distance). Persisted across runs.
type EnginePrefs struct {
	ShowFPS        bool    `json:"show_fps"`
	ShowMemAlloc   bool    `json:"show_memalloc"`
	GridVisible    bool    `json:"grid_visible"`
	CameraDistance float32 `json:"camera_distance,omitempty"`
}

// Default returns default engine preferences (overlays off, grid off,
// camera distance derived from geometry when zero).
func Default() EnginePrefs {
	return EnginePrefs{}
}

// Load reads engine preferences from config/engine.json. If the file is
// missing or invalid, returns Default() and does not create a file.
func Load() (EnginePrefs, error) {
	data, err := os.ReadFile(EngineConfigPath)
	if err != nil {
		return Default(), nil
	}
	var p EnginePrefs
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	return p, nil
}

// Save writes engine preferences to config/engine.json, creating the config
// directory if needed.
func Save(p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(EngineConfigPath), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(EngineConfigPath, data, 0644)
}
