package meetings

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/render"
)

var fixedDate = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func TestBuildDownloadBoth(t *testing.T) {
	bundle := render.Bundle{
		Title:     "Quarterly Sync",
		DocType:   "meeting_summary",
		Format:    "Both",
		PDFBytes:  []byte("pdf-bytes"),
		DOCXBytes: []byte("docx-bytes"),
	}

	download, fallback, err := BuildDownload(bundle, fixedDate)
	require.NoError(t, err)
	require.Nil(t, fallback)
	require.Equal(t, "application/zip", download.ContentType)
	require.Equal(t, "Quarterly_Sync_meeting_summary_2026-03-14.zip", download.Filename)

	zr, err := zip.NewReader(bytes.NewReader(download.Content), int64(len(download.Content)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	names := []string{zr.File[0].Name, zr.File[1].Name}
	require.Contains(t, names, "Quarterly_Sync_meeting_summary_2026-03-14.pdf")
	require.Contains(t, names, "Quarterly_Sync_meeting_summary_2026-03-14.docx")
}

func TestBuildDownloadBothWithSingleArtifact(t *testing.T) {
	bundle := render.Bundle{
		Title:    "Sync",
		DocType:  "meeting_summary",
		Format:   "Both",
		PDFBytes: []byte("pdf-bytes"),
	}

	download, fallback, err := BuildDownload(bundle, fixedDate)
	require.NoError(t, err)
	require.Nil(t, fallback)

	zr, err := zip.NewReader(bytes.NewReader(download.Content), int64(len(download.Content)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
}

func TestBuildDownloadPDF(t *testing.T) {
	bundle := render.Bundle{
		Title:    "Weekly Standup Notes",
		DocType:  "meeting_summary",
		Format:   "PDF",
		PDFBytes: []byte("pdf-bytes"),
	}

	download, fallback, err := BuildDownload(bundle, fixedDate)
	require.NoError(t, err)
	require.Nil(t, fallback)
	require.Equal(t, "application/pdf", download.ContentType)
	require.Equal(t, "Weekly_Standup_Notes_meeting_summary_2026-03-14.pdf", download.Filename)
	require.Equal(t, []byte("pdf-bytes"), download.Content)
}

func TestBuildDownloadDOCXAndWordAlias(t *testing.T) {
	for _, format := range []string{"DOCX", "WORD"} {
		bundle := render.Bundle{
			Title:     "Notes",
			DocType:   "meeting_summary",
			Format:    format,
			DOCXBytes: []byte("docx-bytes"),
		}

		download, fallback, err := BuildDownload(bundle, fixedDate)
		require.NoError(t, err, format)
		require.Nil(t, fallback, format)
		require.Equal(t, docxMediaType, download.ContentType)
		require.Equal(t, "Notes_meeting_summary_2026-03-14.docx", download.Filename)
	}
}

func TestBuildDownloadFallbackWhenNoArtifact(t *testing.T) {
	bundle := render.Bundle{
		Title:     "Notes",
		DocType:   "meeting_summary",
		Format:    "PDF",
		DOCXBytes: []byte("docx-bytes"), // wrong artifact for the format
	}

	download, fallback, err := BuildDownload(bundle, fixedDate)
	require.NoError(t, err)
	require.NotNil(t, fallback)
	require.Empty(t, download.Content)
	require.False(t, fallback.Success)
	require.False(t, fallback.HasPDF)
	require.True(t, fallback.HasDOCX)
}
