package analysis

import (
	"context"
	"strings"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
)

// Analyzer extracts keyword findings from a transcript.
type Analyzer interface {
	Analyze(ctx context.Context, segments []sessions.SpeechSegment, clientName string) ([]sessions.KeywordResult, error)
}

// Default keyword set scanned when no AI analyzer is configured. Matches
// the action-item vocabulary a meeting summary cares about.
var defaultKeywords = []string{
	"action item",
	"follow up",
	"deadline",
	"decision",
	"blocker",
	"next steps",
	"agreed",
	"requirement",
	"risk",
	"deliverable",
}

type keywordScanner struct {
	keywords []string
}

// NewKeywordScanner builds an Analyzer doing a plain substring scan. Used
// as the fallback when AI analysis is disabled or unconfigured.
func NewKeywordScanner(keywords []string) Analyzer {
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}
	return &keywordScanner{keywords: keywords}
}

func (k *keywordScanner) Analyze(ctx context.Context, segments []sessions.SpeechSegment, clientName string) ([]sessions.KeywordResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []sessions.KeywordResult
	for _, seg := range segments {
		lowered := strings.ToLower(seg.Text)
		for _, kw := range k.keywords {
			if strings.Contains(lowered, kw) {
				results = append(results, sessions.KeywordResult{
					Keyword:   kw,
					Timestamp: seg.Timestamp,
					Source:    "keyword_scan",
				})
			}
		}
	}
	return results, nil
}
