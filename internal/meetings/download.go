package meetings

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/render"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Download is a single HTTP-deliverable file built from an artifact
// bundle.
type Download struct {
	Content     []byte
	ContentType string
	Filename    string
}

// BuildDownload shapes the artifact bundle into either a raw file, a zip
// of both formats, or a NoArtifactResponse when the requested format has
// no bytes. The fallback is a recoverable outcome, not an error.
func BuildDownload(bundle render.Bundle, now time.Time) (Download, *NoArtifactResponse, error) {
	base := artifactBaseName(bundle.Title, bundle.DocType, now)

	switch {
	case strings.EqualFold(bundle.Format, "Both"):
		content, err := zipArtifacts(bundle, base)
		if err != nil {
			return Download{}, nil, err
		}
		return Download{
			Content:     content,
			ContentType: "application/zip",
			Filename:    base + ".zip",
		}, nil, nil

	case strings.EqualFold(bundle.Format, "PDF") && bundle.PDFBytes != nil:
		return Download{
			Content:     bundle.PDFBytes,
			ContentType: "application/pdf",
			Filename:    base + ".pdf",
		}, nil, nil

	case (strings.EqualFold(bundle.Format, "DOCX") || strings.EqualFold(bundle.Format, "WORD")) && bundle.DOCXBytes != nil:
		return Download{
			Content:     bundle.DOCXBytes,
			ContentType: docxMediaType,
			Filename:    base + ".docx",
		}, nil, nil

	default:
		return Download{}, &NoArtifactResponse{
			Success: false,
			Message: "No document generated. Please check your parameters.",
			HasPDF:  bundle.PDFBytes != nil,
			HasDOCX: bundle.DOCXBytes != nil,
		}, nil
	}
}

func zipArtifacts(bundle render.Bundle, base string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if bundle.PDFBytes != nil {
		w, err := zw.Create(base + ".pdf")
		if err != nil {
			return nil, fmt.Errorf("create zip entry: %w", err)
		}
		if _, err := w.Write(bundle.PDFBytes); err != nil {
			return nil, fmt.Errorf("write pdf entry: %w", err)
		}
	}
	if bundle.DOCXBytes != nil {
		w, err := zw.Create(base + ".docx")
		if err != nil {
			return nil, fmt.Errorf("create zip entry: %w", err)
		}
		if _, err := w.Write(bundle.DOCXBytes); err != nil {
			return nil, fmt.Errorf("write docx entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

func artifactBaseName(title, docType string, now time.Time) string {
	safeTitle := strings.ReplaceAll(title, " ", "_")
	return fmt.Sprintf("%s_%s_%s", safeTitle, docType, now.Format("2006-01-02"))
}
