package sessions

import "time"

// Screenshot is one captured frame with the moment and trigger of capture.
// Image holds the full encoded payload and never leaves the store in API
// responses; callers build metadata projections instead.
type Screenshot struct {
	Image     []byte
	Timestamp float64
	Reason    string
}

// SpeechSegment is one recognized speech span, ordered by timestamp.
type SpeechSegment struct {
	Timestamp float64
	Text      string
}

// KeywordResult is a single analysis finding. The shape is owned by the
// pipeline; the store treats it as opaque cargo.
type KeywordResult struct {
	Keyword    string  `json:"keyword"`
	Timestamp  float64 `json:"timestamp"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Session is the record of one completed processing run. It is created
// exactly once and never mutated afterwards.
type Session struct {
	GUID           string
	VideoPath      string
	ClientName     string
	Screenshots    []Screenshot
	SpeechSegments []SpeechSegment
	KeywordResults []KeywordResult
	CreatedAt      time.Time
}
