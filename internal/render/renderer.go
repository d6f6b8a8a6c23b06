package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/sessions"
	"github.com/KSKrishna1410/MDOC-meeting-summary/internal/shared/telemetry"
)

// Request carries everything the document engine needs for one render.
type Request struct {
	VideoPath              string
	Screenshots            []sessions.Screenshot
	ClientName             string
	Title                  string
	DocType                string
	Format                 string
	SpeechSegments         []sessions.SpeechSegment
	KeywordResults         []sessions.KeywordResult
	EnableMissingQuestions bool
	EnableProcessMap       bool
	IncludeScreenshots     bool
	SessionGUID            string
}

// Bundle is the set of generated binary documents for one request. Byte
// slices are nil for formats that were not requested or failed to build.
type Bundle struct {
	Title     string
	DocType   string
	Format    string
	PDFBytes  []byte
	DOCXBytes []byte
}

// Renderer turns a Request into an artifact Bundle.
type Renderer interface {
	Render(ctx context.Context, req Request) (Bundle, error)
}

// Engine renders meeting summaries to PDF (fpdf) and DOCX (godocx).
type Engine struct {
	workDir string
}

// NewEngine constructs the document engine. workDir is scratch space for
// the DOCX writer.
func NewEngine(workDir string) *Engine {
	return &Engine{workDir: workDir}
}

// Render builds the artifacts selected by req.Format. The format tag is
// echoed back unchanged so the packager can shape the response.
func (e *Engine) Render(ctx context.Context, req Request) (Bundle, error) {
	if err := ctx.Err(); err != nil {
		return Bundle{}, err
	}

	bundle := Bundle{
		Title:   req.Title,
		DocType: req.DocType,
		Format:  req.Format,
	}

	content := buildContent(req)

	switch strings.ToUpper(req.Format) {
	case "BOTH":
		pdf, err := e.renderPDF(req, content)
		if err != nil {
			return Bundle{}, err
		}
		docx, err := e.renderDOCX(req, content)
		if err != nil {
			return Bundle{}, err
		}
		bundle.PDFBytes = pdf
		bundle.DOCXBytes = docx
	case "PDF":
		pdf, err := e.renderPDF(req, content)
		if err != nil {
			return Bundle{}, err
		}
		bundle.PDFBytes = pdf
	case "DOCX", "WORD":
		docx, err := e.renderDOCX(req, content)
		if err != nil {
			return Bundle{}, err
		}
		bundle.DOCXBytes = docx
	default:
		return Bundle{}, fmt.Errorf("unknown document format %q", req.Format)
	}

	telemetry.Info("render.complete", map[string]any{
		"session_guid": req.SessionGUID,
		"format":       req.Format,
		"pdf_bytes":    len(bundle.PDFBytes),
		"docx_bytes":   len(bundle.DOCXBytes),
	})
	return bundle, nil
}

// content is the document body shared by both writers.
type content struct {
	overview         []string
	transcript       []string
	findings         []string
	missingQuestions []string
	processSteps     []string
}

func buildContent(req Request) content {
	var c content

	c.overview = []string{
		fmt.Sprintf("Client: %s", req.ClientName),
		fmt.Sprintf("Speech segments: %d", len(req.SpeechSegments)),
		fmt.Sprintf("Screenshots captured: %d", len(req.Screenshots)),
	}
	if req.SessionGUID != "" {
		c.overview = append(c.overview, fmt.Sprintf("Session: %s", req.SessionGUID))
	}

	for _, seg := range req.SpeechSegments {
		c.transcript = append(c.transcript, fmt.Sprintf("[%s] %s", formatTimestamp(seg.Timestamp), seg.Text))
	}

	for _, kw := range req.KeywordResults {
		c.findings = append(c.findings, fmt.Sprintf("[%s] %s (%s)", formatTimestamp(kw.Timestamp), kw.Keyword, kw.Source))
	}

	if req.EnableMissingQuestions {
		c.missingQuestions = missingQuestions(req.SpeechSegments)
	}
	if req.EnableProcessMap {
		c.processSteps = processSteps(req)
	}
	return c
}

// missingQuestions lists transcript lines that were asked but never
// directly answered in the following segment.
func missingQuestions(segments []sessions.SpeechSegment) []string {
	var questions []string
	for i, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if !strings.HasSuffix(text, "?") {
			continue
		}
		answered := false
		if i+1 < len(segments) {
			next := strings.ToLower(segments[i+1].Text)
			for _, marker := range []string{"yes", "no", "sure", "correct", "we will", "we can"} {
				if strings.HasPrefix(next, marker) {
					answered = true
					break
				}
			}
		}
		if !answered {
			questions = append(questions, fmt.Sprintf("[%s] %s", formatTimestamp(seg.Timestamp), text))
		}
	}
	return questions
}

// processSteps derives an ordered flow from keyword findings, falling
// back to screenshot capture points when no findings exist.
func processSteps(req Request) []string {
	var steps []string
	for i, kw := range req.KeywordResults {
		steps = append(steps, fmt.Sprintf("%d. %s (%s)", i+1, kw.Keyword, formatTimestamp(kw.Timestamp)))
	}
	if len(steps) > 0 {
		return steps
	}
	for i, shot := range req.Screenshots {
		steps = append(steps, fmt.Sprintf("%d. %s at %s", i+1, shot.Reason, formatTimestamp(shot.Timestamp)))
	}
	return steps
}

func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
