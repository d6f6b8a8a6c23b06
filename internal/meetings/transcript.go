package meetings

import "github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"

// SegmentsToEntries converts the session-stored pair form into the wire
// record form. The transform is pure and lossless; order is preserved.
func SegmentsToEntries(segments []sessions.SpeechSegment) []TranscriptEntry {
	entries := make([]TranscriptEntry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, TranscriptEntry{
			Timestamp: seg.Timestamp,
			Text:      seg.Text,
		})
	}
	return entries
}

// EntriesToSegments is the inverse of SegmentsToEntries, applied at the
// generation boundary when inputs arrive in record form.
func EntriesToSegments(entries []TranscriptEntry) []sessions.SpeechSegment {
	segments := make([]sessions.SpeechSegment, 0, len(entries))
	for _, entry := range entries {
		segments = append(segments, sessions.SpeechSegment{
			Timestamp: entry.Timestamp,
			Text:      entry.Text,
		})
	}
	return segments
}
