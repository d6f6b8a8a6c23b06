package speech

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWhisperOutput(t *testing.T) {
	raw := []byte(`{
		"segments": [
			{"start": 12.4, "end": 15.0, "text": " second line "},
			{"start": 1.0, "end": 3.2, "text": "first line"},
			{"start": 20.0, "end": 21.0, "text": "   "}
		]
	}`)

	segments, err := parseWhisperOutput(raw)
	require.NoError(t, err)
	require.Len(t, segments, 2, "blank segments dropped")
	require.Equal(t, 1.0, segments[0].Timestamp, "segments sorted ascending")
	require.Equal(t, "first line", segments[0].Text)
	require.Equal(t, "second line", segments[1].Text, "text trimmed")
}

func TestParseWhisperOutputInvalid(t *testing.T) {
	_, err := parseWhisperOutput([]byte("not json"))
	require.Error(t, err)
}

func TestParseWhisperOutputEmpty(t *testing.T) {
	segments, err := parseWhisperOutput([]byte(`{"segments": []}`))
	require.NoError(t, err)
	require.Empty(t, segments)
}
