package export

import "strings"

// Letter page geometry in points. Y grows downward from the top edge.
const (
	PageWidth             = 612.0
	PageHeight            = 792.0
	MarginLeft            = 50.0
	MarginTop             = 50.0
	LineHeight            = 15.0
	DefaultBreakThreshold = 100.0

	contentWidth = PageWidth - 2*MarginLeft
	valueColumn  = MarginLeft + 200
	valueWrap    = 60
	footerY      = PageHeight - 30
)

type OpKind int

const (
	OpText OpKind = iota
	OpBand
	OpRule
)

// Op is one drawing instruction. For bands Gray is the fill level, for text the colour.
type Op struct {
	Kind OpKind
	Page int
	X    float64
	Y    float64
	W    float64
	H    float64
	Text string
	Size float64
	Bold bool
	Gray int
}

type Cursor struct {
	Page int
	Y    float64
}

// Layout places document content on pages. It records Ops and never draws.
type Layout struct {
	cursor Cursor
	ops    []Op
}

func NewLayout() *Layout {
	return &Layout{cursor: Cursor{Page: 1, Y: MarginTop}}
}

func (l *Layout) Cursor() Cursor { return l.cursor }

func (l *Layout) Ops() []Op { return l.ops }

func (l *Layout) Pages() int { return l.cursor.Page }

// Reserve starts a new page when less than threshold points remain below the cursor.
func (l *Layout) Reserve(threshold float64) bool {
	if PageHeight-l.cursor.Y < threshold {
		l.NewPage()
		return true
	}
	return false
}

func (l *Layout) NewPage() {
	l.cursor.Page++
	l.cursor.Y = MarginTop
}

func (l *Layout) Advance(dy float64) {
	l.cursor.Y += dy
}

func (l *Layout) text(x float64, s string, size float64, bold bool, gray int) {
	l.ops = append(l.ops, Op{Kind: OpText, Page: l.cursor.Page, X: x, Y: l.cursor.Y, Text: s, Size: size, Bold: bold, Gray: gray})
}

func (l *Layout) band(y, h float64, gray int) {
	l.ops = append(l.ops, Op{Kind: OpBand, Page: l.cursor.Page, X: MarginLeft - 5, Y: y, W: contentWidth + 10, H: h, Gray: gray})
}

// Title draws the dark title band at the top of the current page.
func (l *Layout) Title(title, subtitle string) {
	l.band(l.cursor.Y-20, 50, 60)
	l.text(MarginLeft, title, 18, true, 255)
	l.Advance(20)
	l.text(MarginLeft, subtitle, 10, false, 255)
	l.Advance(2 * LineHeight)
}

// SectionHeader draws a shaded band with the section title.
func (l *Layout) SectionHeader(title string) {
	l.Advance(LineHeight / 2)
	l.Reserve(DefaultBreakThreshold)
	l.band(l.cursor.Y-12, 18, 225)
	l.text(MarginLeft, strings.ToUpper(title), 11, true, 0)
	l.Advance(LineHeight + 5)
}

// Field draws "label: value". Long values wrap, and every wrapped line is
// checked against the page-break threshold on its own.
func (l *Layout) Field(label, value string) {
	lines := wrapText(value, valueWrap)
	for i, chunk := range lines {
		l.Reserve(DefaultBreakThreshold)
		if i == 0 {
			l.text(MarginLeft, label+":", 10, true, 0)
		}
		l.text(valueColumn, chunk, 10, false, 0)
		l.Advance(LineHeight)
	}
}

// Paragraph draws wrapped free text across the full content width.
func (l *Layout) Paragraph(s string, width int) {
	for _, chunk := range wrapText(s, width) {
		l.Reserve(DefaultBreakThreshold)
		l.text(MarginLeft, chunk, 10, false, 0)
		l.Advance(LineHeight)
	}
}

// Signatures draws one signature and date rule per label. The whole block
// moves to the next page when it does not fit under threshold.
func (l *Layout) Signatures(threshold float64, labels ...string) {
	l.Reserve(threshold)
	for _, label := range labels {
		l.Advance(2 * LineHeight)
		l.ops = append(l.ops,
			Op{Kind: OpRule, Page: l.cursor.Page, X: MarginLeft, Y: l.cursor.Y, W: 300},
			Op{Kind: OpRule, Page: l.cursor.Page, X: MarginLeft + 340, Y: l.cursor.Y, W: 170},
		)
		l.Advance(12)
		l.text(MarginLeft, label, 9, false, 0)
		l.text(MarginLeft+340, "Date", 9, false, 0)
		l.Advance(LineHeight)
	}
}

// Footer draws s at the bottom of the current page without moving the cursor.
func (l *Layout) Footer(s string) {
	l.ops = append(l.ops, Op{Kind: OpText, Page: l.cursor.Page, X: MarginLeft, Y: footerY, Text: s, Size: 8, Gray: 110})
}

// wrapText splits s on word boundaries into lines of at most width runes.
// Words longer than width are split. It always returns at least one line.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current []rune
	for _, word := range words {
		w := []rune(word)
		for len(w) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(current) == 0:
			current = append(current, w...)
		case len(current)+1+len(w) <= width:
			current = append(current, ' ')
			current = append(current, w...)
		default:
			lines = append(lines, string(current))
			current = append([]rune{}, w...)
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
