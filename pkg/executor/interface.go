package executor

import "context"

// Executor runs external commands. Kept as an interface so pipeline
// stages can be tested without ffmpeg or whisper on the machine.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
