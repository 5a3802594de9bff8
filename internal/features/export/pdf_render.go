package export

import (
	"bytes"
	"time"

	"github.com/go-pdf/fpdf"
)

// Rasterize draws the recorded layout into a letter-size PDF. Every call
// builds its own document, so concurrent calls share nothing.
func Rasterize(layout *Layout, title string, created time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(MarginLeft, MarginTop, MarginLeft)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(title, true)
	pdf.SetCreator(signonApp, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	page := 0
	for _, op := range layout.Ops() {
		for page < op.Page {
			pdf.AddPage()
			page++
		}
		switch op.Kind {
		case OpBand:
			pdf.SetFillColor(op.Gray, op.Gray, op.Gray)
			pdf.Rect(op.X, op.Y, op.W, op.H, "F")
		case OpRule:
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetLineWidth(0.5)
			pdf.Line(op.X, op.Y, op.X+op.W, op.Y)
		case OpText:
			style := ""
			if op.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, op.Size)
			pdf.SetTextColor(op.Gray, op.Gray, op.Gray)
			pdf.Text(op.X, op.Y, tr(op.Text))
		}
	}
	for page < layout.Pages() {
		pdf.AddPage()
		page++
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
