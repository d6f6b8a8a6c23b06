package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

func (e *Engine) renderPDF(req Request, c content) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(req.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, req.Title, "", "C", false)
	pdf.Ln(4)

	writePDFSection(pdf, "Overview", c.overview)
	writePDFSection(pdf, "Key Findings", c.findings)

	if req.EnableMissingQuestions && len(c.missingQuestions) > 0 {
		writePDFSection(pdf, "Open Questions", c.missingQuestions)
	}
	if req.EnableProcessMap && len(c.processSteps) > 0 {
		writePDFSection(pdf, "Process Map", c.processSteps)
	}

	writePDFSection(pdf, "Transcript", c.transcript)

	if req.IncludeScreenshots && len(req.Screenshots) > 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Screenshots", "", 1, "L", false, 0, "")
		pdf.Ln(2)

		for i, shot := range req.Screenshots {
			name := fmt.Sprintf("screenshot_%d", i)
			opts := fpdf.ImageOptions{ImageType: "JPG", ReadDpi: true}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(shot.Image))
			if pdf.Err() {
				return nil, fmt.Errorf("embed screenshot %d: %s", i, pdf.Error())
			}
			pdf.ImageOptions(name, -1, -1, 120, 0, true, opts, 0, "")
			pdf.SetFont("Helvetica", "I", 9)
			caption := fmt.Sprintf("%s (%s)", formatTimestamp(shot.Timestamp), shot.Reason)
			pdf.CellFormat(0, 6, caption, "", 1, "L", false, 0, "")
			pdf.Ln(3)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePDFSection(pdf *fpdf.Fpdf, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
	pdf.Ln(4)
}
