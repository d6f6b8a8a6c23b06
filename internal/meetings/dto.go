package meetings

import "github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"

// TranscriptEntry is the wire form of one speech segment.
type TranscriptEntry struct {
	Timestamp float64 `json:"timestamp"`
	Text      string  `json:"text"`
}

// ScreenshotMeta is the transmission projection of a screenshot: the
// image payload is stripped, only capture metadata travels.
type ScreenshotMeta struct {
	Timestamp float64 `json:"timestamp"`
	Reason    string  `json:"reason"`
}

// VideoInfo summarizes the probed source video.
type VideoInfo struct {
	Filename        string  `json:"filename"`
	DurationMinutes float64 `json:"duration_minutes"`
	FPS             float64 `json:"fps"`
	FrameCount      int64   `json:"frame_count"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
}

// ProcessResponse is the upload endpoint's summary payload.
//
// SpeechSegments is a compatibility alias for Transcript required by
// existing clients; both fields are marshalled from the same underlying
// slice, never duplicated in memory.
type ProcessResponse struct {
	Success             bool                     `json:"success"`
	SessionGUID         string                   `json:"session_guid"`
	VideoPath           string                   `json:"video_path"`
	VideoInfo           VideoInfo                `json:"video_info"`
	Screenshots         []ScreenshotMeta         `json:"screenshots"`
	ScreenshotsCount    int                      `json:"screenshots_count"`
	Transcript          []TranscriptEntry        `json:"transcript"`
	SpeechSegments      []TranscriptEntry        `json:"speech_segments"`
	SpeechSegmentsCount int                      `json:"speech_segments_count"`
	KeywordResults      []sessions.KeywordResult `json:"keyword_results"`
	ProcessingTime      float64                  `json:"processing_time"`
	Message             string                   `json:"message"`
}

// NoArtifactResponse reports the recoverable "nothing to return" outcome
// when the renderer produced no bytes for the requested format.
type NoArtifactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	HasPDF  bool   `json:"has_pdf"`
	HasDOCX bool   `json:"has_docx"`
}
