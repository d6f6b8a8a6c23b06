package staging

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
)

// Sweeper periodically removes staged videos older than the window. It
// covers files left behind when a best-effort Release did not run.
type Sweeper struct {
	dir      string
	window   time.Duration
	interval time.Duration
}

// NewSweeper constructs a Sweeper over dir. Files older than window are
// removed every interval.
func NewSweeper(dir string, window, interval time.Duration) *Sweeper {
	return &Sweeper{dir: dir, window: window, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	telemetry.Info("staging.sweeper_started", map[string]any{
		"dir":    s.dir,
		"window": s.window.String(),
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce(time.Now())
		}
	}
}

func (s *Sweeper) sweepOnce(now time.Time) {
	cutoff := now.Add(-s.window)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			telemetry.Warn("staging.sweep_failed", map[string]any{"error": err.Error()})
		}
		return
	}

	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				telemetry.Warn("staging.sweep_remove_failed", map[string]any{
					"path":  path,
					"error": err.Error(),
				})
				continue
			}
			deleted++
		}
	}

	if deleted > 0 {
		telemetry.Info("staging.swept", map[string]any{"deleted": deleted})
	}
}
