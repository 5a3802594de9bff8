package export

import (
	"bytes"
	"strings"
	"testing"

	common_models "agency-forms/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueOps(l *Layout) []Op {
	var out []Op
	for _, op := range l.Ops() {
		if op.Kind == OpText && op.X == valueColumn {
			out = append(out, op)
		}
	}
	return out
}

func TestPageBreakIsCheckedPerLine(t *testing.T) {
	l := NewLayout()
	l.Advance(627)

	l.Field("Loss Description", strings.TrimSpace(strings.Repeat("word ", 36)))

	ops := valueOps(l)
	require.Len(t, ops, 3)
	assert.Equal(t, []int{1, 1, 2}, []int{ops[0].Page, ops[1].Page, ops[2].Page})
	assert.Equal(t, 677.0, ops[0].Y)
	assert.Equal(t, 692.0, ops[1].Y)
	assert.Equal(t, MarginTop, ops[2].Y)
	assert.Equal(t, Cursor{Page: 2, Y: MarginTop + LineHeight}, l.Cursor())
}

func TestReserveHonoursCallerThreshold(t *testing.T) {
	l := NewLayout()
	l.Advance(600)

	assert.False(t, l.Reserve(DefaultBreakThreshold))
	assert.True(t, l.Reserve(200))
	assert.Equal(t, Cursor{Page: 2, Y: MarginTop}, l.Cursor())
}

func TestSectionHeaderHasShadedBand(t *testing.T) {
	l := NewLayout()
	l.SectionHeader("Applicant Information")

	ops := l.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, OpBand, ops[0].Kind)
	assert.Equal(t, OpText, ops[1].Kind)
	assert.Equal(t, "APPLICANT INFORMATION", ops[1].Text)
	assert.Equal(t, MarginLeft, ops[1].X)
	assert.Less(t, ops[0].Y, ops[1].Y)
}

func sectionHeaders(l *Layout) []string {
	var out []string
	for _, op := range l.Ops() {
		if op.Kind == OpText && op.Bold && op.Size == 11 {
			out = append(out, op.Text)
		}
	}
	return out
}

func TestSectionOrderFollowsLinesOfBusiness(t *testing.T) {
	gen := newTestPDF()

	assert.Equal(t, []string{
		"AGENCY INFORMATION", "APPLICANT INFORMATION", "VEHICLE INFORMATION", "AUTO COVERAGE", "UNDERWRITING QUESTIONS",
	}, sectionHeaders(gen.Layout(sourceFor(nil, common_models.LOBAuto))))

	assert.Equal(t, []string{
		"AGENCY INFORMATION", "APPLICANT INFORMATION", "PROPERTY INFORMATION", "HOME COVERAGE", "UNDERWRITING QUESTIONS",
	}, sectionHeaders(gen.Layout(sourceFor(nil, common_models.LOBDwelling))))

	assert.Equal(t, []string{
		"AGENCY INFORMATION", "APPLICANT INFORMATION", "UNDERWRITING QUESTIONS",
	}, sectionHeaders(gen.Layout(sourceFor(nil, common_models.LOBCommercial))))
}

func TestFullApplicationPaginates(t *testing.T) {
	src := sourceFor(map[string]interface{}{
		"has_losses":       true,
		"loss_description": strings.Repeat("Hail damage to the roof and siding. ", 20),
	}, common_models.LOBAuto, common_models.LOBHome)

	l := newTestPDF().Layout(src)

	assert.GreaterOrEqual(t, l.Pages(), 2)
	for _, op := range valueOps(l) {
		assert.LessOrEqual(t, op.Y, PageHeight-DefaultBreakThreshold, "value %q drawn inside the bottom margin", op.Text)
	}

	ops := l.Ops()
	footer := ops[len(ops)-1]
	assert.Equal(t, "Submission ID: "+src.SubmissionID(), footer.Text)
	assert.Equal(t, l.Pages(), footer.Page)
}

func TestPDFCurrencyDefaultsMatchXML(t *testing.T) {
	l := newTestPDF().Layout(sourceFor(nil, common_models.LOBAuto, common_models.LOBHome))

	var values []string
	for _, op := range valueOps(l) {
		values = append(values, op.Text)
	}
	for _, want := range []string{"$100,000", "$50,000", "$500", "$250,000", "$25,000", "$125,000", "$1,000"} {
		assert.Contains(t, values, want)
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	out, err := newTestPDF().Generate(sourceFor(map[string]interface{}{
		"applicant_first_name": "José",
		"applicant_last_name":  "Núñez",
	}, common_models.LOBAuto))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("   ", 10))
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
	assert.Equal(t, []string{"abcdefghij", "klm"}, wrapText("abcdefghijklm", 10))
	assert.Equal(t, []string{"ab", "cdefghijkl", "mn"}, wrapText("ab cdefghijklmn", 10))
}
