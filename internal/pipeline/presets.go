package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset tunes the capture stage for one detection mode.
type Preset struct {
	FrameIntervalSeconds float64 `yaml:"frame_interval_seconds"`
	SceneThreshold       float64 `yaml:"scene_threshold"`
	MaxScreenshots       int     `yaml:"max_screenshots"`
}

// Presets maps detection modes to capture tuning.
type Presets map[string]Preset

// DefaultPresets mirrors the two shipped detection modes.
func DefaultPresets() Presets {
	return Presets{
		"basic": {
			FrameIntervalSeconds: 30,
			SceneThreshold:       0.4,
			MaxScreenshots:       20,
		},
		"advanced": {
			FrameIntervalSeconds: 10,
			SceneThreshold:       0.3,
			MaxScreenshots:       50,
		},
	}
}

// LoadPresets reads preset overrides from a YAML file, falling back to
// the defaults for any mode the file omits. An empty path returns the
// defaults unchanged.
func LoadPresets(path string) (Presets, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}

	var overrides Presets
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}
	for mode, p := range overrides {
		presets[strings.ToLower(mode)] = p
	}
	return presets, nil
}

// For resolves a detection mode, defaulting unknown modes to basic.
func (p Presets) For(mode string) Preset {
	if preset, ok := p[strings.ToLower(strings.TrimSpace(mode))]; ok {
		return preset
	}
	return p["basic"]
}
