package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
)

func TestKeywordScanner(t *testing.T) {
	analyzer := NewKeywordScanner(nil)

	segments := []sessions.SpeechSegment{
		{Timestamp: 5.0, Text: "Let's make that an Action Item for Bob"},
		{Timestamp: 12.0, Text: "nothing interesting here"},
		{Timestamp: 30.0, Text: "the deadline is Friday, that's the decision"},
	}

	results, err := analyzer.Analyze(context.Background(), segments, "Acme")
	require.NoError(t, err)
	require.Len(t, results, 3)
	require.Equal(t, "action item", results[0].Keyword)
	require.Equal(t, 5.0, results[0].Timestamp)
	require.Equal(t, "keyword_scan", results[0].Source)
	require.Equal(t, "deadline", results[1].Keyword)
	require.Equal(t, "decision", results[2].Keyword)
}

func TestKeywordScannerCustomList(t *testing.T) {
	analyzer := NewKeywordScanner([]string{"invoice"})

	results, err := analyzer.Analyze(context.Background(), []sessions.SpeechSegment{
		{Timestamp: 1, Text: "send the INVOICE tomorrow"},
	}, "Acme")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "invoice", results[0].Keyword)
}

func TestParseFindings(t *testing.T) {
	raw := "```json\n[{\"keyword\":\"budget approval\",\"timestamp\":42.5,\"confidence\":0.9}]\n```"
	findings, err := parseFindings(raw)
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, "budget approval", findings[0].Keyword)
	require.Equal(t, 42.5, findings[0].Timestamp)
	require.Equal(t, "ai_analysis", findings[0].Source)
}

func TestParseFindingsInvalid(t *testing.T) {
	_, err := parseFindings("I could not analyze that transcript.")
	require.Error(t, err)
}
