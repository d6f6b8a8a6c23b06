package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/google/uuid"
)

const (
	docxFont     = "Calibri"
	docxFontSize = 11
)

// renderDOCX writes the summary through godocx. The library saves to a
// path, so the document goes through a scratch file and comes back as
// bytes.
func (e *Engine) renderDOCX(req Request, c content) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create docx: %w", err)
	}

	addDocxLine(doc, req.Title, true, 18)
	doc.AddParagraph("")

	writeDocxSection(doc, "Overview", c.overview)
	writeDocxSection(doc, "Key Findings", c.findings)

	if req.EnableMissingQuestions && len(c.missingQuestions) > 0 {
		writeDocxSection(doc, "Open Questions", c.missingQuestions)
	}
	if req.EnableProcessMap && len(c.processSteps) > 0 {
		writeDocxSection(doc, "Process Map", c.processSteps)
	}

	writeDocxSection(doc, "Transcript", c.transcript)

	if req.IncludeScreenshots && len(req.Screenshots) > 0 {
		var captions []string
		for _, shot := range req.Screenshots {
			captions = append(captions, fmt.Sprintf("Screenshot at %s (%s)", formatTimestamp(shot.Timestamp), shot.Reason))
		}
		writeDocxSection(doc, "Screenshots", captions)
	}

	scratch := filepath.Join(e.workDir, uuid.NewString()+".docx")
	if err := os.MkdirAll(e.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	if err := doc.SaveTo(scratch); err != nil {
		return nil, fmt.Errorf("save docx: %w", err)
	}
	defer os.Remove(scratch)

	data, err := os.ReadFile(scratch)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}
	return data, nil
}

func writeDocxSection(doc *docx.RootDoc, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	addDocxLine(doc, title, true, 14)
	for _, line := range lines {
		addDocxLine(doc, line, false, docxFontSize)
	}
	doc.AddParagraph("")
}

func addDocxLine(doc *docx.RootDoc, text string, bold bool, size uint64) {
	p := doc.AddParagraph("")
	run := p.AddText(text).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
