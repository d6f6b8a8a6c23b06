package pipeline

import (
	"context"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
)

// Options is the per-run configuration bundle accepted by the upload
// endpoint and threaded through to the pipeline stages.
type Options struct {
	DetectionMode     string
	UseSpeech         bool
	UseMouseDetection bool
	UseSceneDetection bool
	UseAIAnalysis     bool
}

// Result is the output of one processing run. SessionGUID echoes the
// identifier passed in so the orchestrator and pipeline agree on identity.
type Result struct {
	Screenshots    []sessions.Screenshot
	SpeechSegments []sessions.SpeechSegment
	KeywordResults []sessions.KeywordResult
	SessionGUID    string
	ProcessingTime float64
}

// Processor runs the full analysis pipeline for a staged video. It either
// returns a complete Result or an error; there is no partial-result
// contract.
type Processor interface {
	Process(ctx context.Context, videoPath, clientName string, opts Options, sessionGUID string) (Result, error)
}
