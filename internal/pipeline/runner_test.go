package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSceneTimes(t *testing.T) {
	meta := `frame:0 pts:0 pts_time:0
lavfi.scene_score=0.52
frame:1 pts:112612 pts_time:4.504
lavfi.scene_score=0.61
garbage line
frame:2 pts:225224 pts_time:9.008`

	times := parseSceneTimes(meta)
	require.Equal(t, []float64{0, 4.504, 9.008}, times)
}

func TestParseSceneTimesEmpty(t *testing.T) {
	require.Empty(t, parseSceneTimes(""))
	require.Empty(t, parseSceneTimes("no timestamps here"))
}

func TestPresetsFor(t *testing.T) {
	presets := DefaultPresets()

	basic := presets.For("basic")
	require.Equal(t, 30.0, basic.FrameIntervalSeconds)

	advanced := presets.For(" Advanced ")
	require.Equal(t, 10.0, advanced.FrameIntervalSeconds)

	// Unknown modes fall back to basic.
	require.Equal(t, basic, presets.For("turbo"))
	require.Equal(t, basic, presets.For(""))
}

func TestLoadPresetsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := []byte("advanced:\n  frame_interval_seconds: 5\n  scene_threshold: 0.2\n  max_screenshots: 100\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	presets, err := LoadPresets(path)
	require.NoError(t, err)
	require.Equal(t, 5.0, presets.For("advanced").FrameIntervalSeconds)
	require.Equal(t, 100, presets.For("advanced").MaxScreenshots)
	// Untouched modes keep defaults.
	require.Equal(t, 30.0, presets.For("basic").FrameIntervalSeconds)
}

func TestLoadPresetsMissingFile(t *testing.T) {
	_, err := LoadPresets("/does/not/exist.yaml")
	require.Error(t, err)
}

func TestLoadPresetsEmptyPath(t *testing.T) {
	presets, err := LoadPresets("")
	require.NoError(t, err)
	require.Equal(t, DefaultPresets(), presets)
}
