package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
)

// ErrUnsupportedType is returned before any byte is written when the
// upload's extension is not an accepted video container.
var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExtensions = map[string]struct{}{
	".mp4": {},
	".avi": {},
	".mov": {},
	".mkv": {},
}

// AllowedExtensions returns the accepted video extensions, for error messages.
func AllowedExtensions() []string {
	return []string{".mp4", ".avi", ".mov", ".mkv"}
}

// Stager writes uploaded videos to collision-free paths under a temp dir.
type Stager struct {
	dir string
}

// New constructs a Stager rooted at dir.
func New(dir string) *Stager {
	return &Stager{dir: dir}
}

// Dir returns the staging directory.
func (s *Stager) Dir() string {
	return s.dir
}

// Stage validates the file extension and writes r to a fresh uuid-named
// file under the staging directory, creating the directory on first use.
// Validation happens before any write; an invalid extension leaves no
// file behind.
func (s *Stager) Stage(fileName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %s (allowed: %s)", ErrUnsupportedType, ext, strings.Join(AllowedExtensions(), ", "))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := filepath.Join(s.dir, uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close staged file: %w", err)
	}

	telemetry.Info("staging.saved", map[string]any{"path": path})
	return path, nil
}

// Release removes a staged file. Failures are logged, not escalated: the
// file is scratch space and a leftover is recovered by the sweeper.
func (s *Stager) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		telemetry.Warn("staging.release_failed", map[string]any{
			"path":  path,
			"error": err.Error(),
		})
	}
}
