package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	common_models "agency-forms/internal/common/models"
	"agency-forms/internal/features/form"
	"agency-forms/internal/features/policy"
	"agency-forms/internal/features/submission"
	"agency-forms/pkg/condition"
)

// IDFunc produces request UIDs.
type IDFunc func() string

// Clock supplies the generation date.
type Clock func() time.Time

// Source is everything a generator reads. Policy may be nil.
type Source struct {
	Submission *submission.FormSubmission
	Template   *form.FormTemplate
	Policy     *policy.Policy
}

func (s Source) data() map[string]interface{} {
	if s.Submission == nil || s.Submission.SubmissionData == nil {
		return map[string]interface{}{}
	}
	return s.Submission.SubmissionData
}

// LinesOfBusiness is the template's line-of-business set; it decides which blocks are emitted.
func (s Source) LinesOfBusiness() common_models.LOBSet {
	if s.Template == nil {
		return common_models.NewLOBSet()
	}
	return s.Template.LineOfBusiness
}

func (s Source) HasAuto() bool {
	return s.LinesOfBusiness().Has(common_models.LOBAuto)
}

func (s Source) HasHome() bool {
	lob := s.LinesOfBusiness()
	return lob.Has(common_models.LOBHome) || lob.Has(common_models.LOBDwelling)
}

func (s Source) SubmissionID() string {
	if s.Submission == nil {
		return ""
	}
	return s.Submission.ID.Hex()
}

func (s Source) PolicyNumber() string {
	if s.Policy == nil {
		return ""
	}
	return s.Policy.PolicyNumber
}

func (s Source) text(name string) string {
	return strings.TrimSpace(condition.Stringify(s.data()[name]))
}

func (s Source) textOr(name, fallback string) string {
	if v := s.text(name); v != "" {
		return v
	}
	return fallback
}

func (s Source) flag(name string) bool {
	return truthy(s.data()[name])
}

// dateOrPolicyExpiration returns the field as YYYY-MM-DD, falling back to the policy's expiration date.
func (s Source) dateOrPolicyExpiration(name string) string {
	if v := s.text(name); v != "" {
		return formatDate(v)
	}
	if s.Policy != nil && s.Policy.ExpirationDate != nil {
		return s.Policy.ExpirationDate.Format(dateLayout)
	}
	return ""
}

const dateLayout = "2006-01-02"

var dateInputLayouts = []string{
	dateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// formatDate renders raw as YYYY-MM-DD. Unparseable input is returned unchanged.
func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout)
		}
	}
	return raw
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "y", "1", "on":
			return true
		}
		return false
	}
	if n, ok := condition.ToFloat(v); ok {
		return n != 0
	}
	return false
}

// amount strips currency formatting so "$1,000" becomes "1000". Non-numeric input is returned unchanged.
func amount(raw string) string {
	n, ok := condition.ToFloat(raw)
	if !ok {
		return raw
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// formatCurrency renders a numeric amount as "$100,000". Non-numeric input is returned unchanged.
func formatCurrency(raw string) string {
	n, ok := condition.ToFloat(raw)
	if !ok {
		return raw
	}

	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	whole := math.Floor(n)
	cents := math.Round((n - whole) * 100)
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}
	if cents > 0 {
		return fmt.Sprintf("%s$%s.%02d", sign, grouped.String(), int(cents))
	}
	return sign + "$" + grouped.String()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// shortID is the first 8 characters of a submission id, used in file names.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
